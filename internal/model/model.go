// Package model defines the freelo business records.
package model

import (
	"slices"
	"time"
)

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectPaused    = "paused"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Client statuses.
const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var (
	projectStatuses = []string{ProjectActive, ProjectPaused, ProjectCompleted, ProjectCancelled}
	clientStatuses  = []string{ClientActive, ClientInactive}
	taskStatuses    = []string{TaskTodo, TaskInProgress, TaskDone}
	priorities      = []string{PriorityLow, PriorityMedium, PriorityHigh}
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool { return slices.Contains(projectStatuses, s) }

// ValidClientStatus reports whether s is a known client status.
func ValidClientStatus(s string) bool { return slices.Contains(clientStatuses, s) }

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool { return slices.Contains(taskStatuses, s) }

// ValidPriority reports whether s is a known task priority.
func ValidPriority(s string) bool { return slices.Contains(priorities, s) }

// Priorities returns the accepted task priorities.
func Priorities() []string { return slices.Clone(priorities) }

// ProjectStatuses returns the accepted project statuses.
func ProjectStatuses() []string { return slices.Clone(projectStatuses) }

// ProjectRef is the minimal project identity handed to the assistant.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is a customer of the freelancer.
type Client struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status" enum:"active,inactive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a billable engagement, optionally tied to a client.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	ClientID    *string   `json:"client_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status" enum:"active,paused,completed,cancelled"`
	HourlyRate  float64   `json:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ref returns the project's id/name pair.
func (p Project) Ref() ProjectRef {
	return ProjectRef{ID: p.ID, Name: p.Name}
}

// Task is a unit of work, optionally inside a project.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	ProjectID   *string    `json:"project_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" enum:"todo,in_progress,done"`
	Priority    string     `json:"priority" enum:"low,medium,high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TimeEntry records time spent on a project. An entry without EndedAt is running.
type TimeEntry struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	ProjectID       string     `json:"project_id"`
	TaskID          *string    `json:"task_id,omitempty"`
	Description     string     `json:"description,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Billable        bool       `json:"billable"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Running reports whether the entry has not been stopped.
func (e TimeEntry) Running() bool {
	return e.EndedAt == nil
}
