package api

import "time"

// Request payloads

type AssistantMessageRequest struct {
	Message string `json:"message" minLength:"1" maxLength:"4000" doc:"Free-form user message"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name" minLength:"1"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty" enum:"active,paused,completed,cancelled"`
	ClientID    *string  `json:"client_id,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" minimum:"0"`
}

type UpdateProjectRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty" enum:"active,paused,completed,cancelled"`
	ClientID    *string  `json:"client_id,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" minimum:"0"`
}

type CreateClientRequest struct {
	Name    string `json:"name" minLength:"1"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Status  string `json:"status,omitempty" enum:"active,inactive"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Status  *string `json:"status,omitempty" enum:"active,inactive"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" minLength:"1"`
	Description string     `json:"description,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty"`
	Status      string     `json:"status,omitempty" enum:"todo,in_progress,done"`
	Priority    string     `json:"priority,omitempty" enum:"low,medium,high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty" doc:"Empty string detaches the task"`
	Status      *string    `json:"status,omitempty" enum:"todo,in_progress,done"`
	Priority    *string    `json:"priority,omitempty" enum:"low,medium,high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type StartTimerRequest struct {
	ProjectID   string  `json:"project_id" minLength:"1"`
	TaskID      *string `json:"task_id,omitempty"`
	Description string  `json:"description,omitempty"`
	Billable    *bool   `json:"billable,omitempty"`
}
