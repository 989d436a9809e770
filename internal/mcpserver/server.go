// Package mcpserver exposes the assistant and read-only record listings as
// MCP tools for a single configured owner.
package mcpserver

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/metalagman/freelo/internal/assistant"
	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

// Assistant answers one user message on behalf of an owner.
type Assistant interface {
	HandleUtterance(ctx context.Context, ownerID, text string) assistant.Reply
}

// Config for the MCP server.
type Config struct {
	Records   *records.Store
	Assistant Assistant
	OwnerID   string
	Version   string
}

type ChatInput struct {
	Message string `json:"message" jsonschema:"free-form message for the freelo assistant"`
}

type ChatOutput struct {
	OK           bool   `json:"ok"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Intent       string `json:"intent,omitempty"`
	RecordID     string `json:"record_id,omitempty"`
}

type ListProjectsInput struct {
	Status string `json:"status,omitempty" jsonschema:"optional status filter: active, paused, completed or cancelled"`
}

type ProjectItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	ClientID   string  `json:"client_id,omitempty"`
	HourlyRate float64 `json:"hourly_rate"`
}

type ListProjectsOutput struct {
	Projects []ProjectItem `json:"projects"`
}

type ListTasksInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"optional project id filter"`
	Status    string `json:"status,omitempty" jsonschema:"optional status filter: todo, in_progress or done"`
}

type TaskItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	ProjectID string `json:"project_id,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
}

type ListTasksOutput struct {
	Tasks []TaskItem `json:"tasks"`
}

// New builds the MCP server with the freelo tools registered.
func New(cfg Config) (*mcp.Server, error) {
	if cfg.Records == nil || cfg.Assistant == nil {
		return nil, errors.New("records and assistant are required")
	}
	if cfg.OwnerID == "" {
		return nil, errors.New("owner id is required")
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{Name: "freelo", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "assistant_chat",
		Description: "Send a natural-language message to the freelo assistant. It may create one task, project or client.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in ChatInput) (*mcp.CallToolResult, ChatOutput, error) {
		if in.Message == "" {
			return nil, ChatOutput{}, errors.New("message is required")
		}
		reply := cfg.Assistant.HandleUtterance(ctx, cfg.OwnerID, in.Message)
		log.Debug().Str("intent", string(reply.Intent)).Bool("ok", reply.OK).Msg("mcp assistant_chat")
		return nil, ChatOutput{
			OK:           reply.OK,
			Message:      reply.Message,
			ErrorMessage: reply.ErrorMessage,
			Intent:       string(reply.Intent),
			RecordID:     reply.RecordID,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List the owner's projects.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
		var status *string
		if in.Status != "" {
			status = &in.Status
		}
		items, err := cfg.Records.ListProjects(ctx, cfg.OwnerID, status)
		if err != nil {
			return nil, ListProjectsOutput{}, err
		}
		out := ListProjectsOutput{Projects: make([]ProjectItem, 0, len(items))}
		for _, p := range items {
			out.Projects = append(out.Projects, projectItem(p))
		}
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List the owner's tasks, optionally filtered by project or status.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
		items, err := cfg.Records.ListTasks(ctx, cfg.OwnerID, records.TaskFilter{
			ProjectID: in.ProjectID,
			Status:    in.Status,
		})
		if err != nil {
			return nil, ListTasksOutput{}, err
		}
		out := ListTasksOutput{Tasks: make([]TaskItem, 0, len(items))}
		for _, t := range items {
			out.Tasks = append(out.Tasks, taskItem(t))
		}
		return nil, out, nil
	})

	return server, nil
}

// Serve runs the server over stdio until ctx is done or the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	log.Info().Msg("mcp server listening on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

func projectItem(p model.Project) ProjectItem {
	item := ProjectItem{ID: p.ID, Name: p.Name, Status: p.Status, HourlyRate: p.HourlyRate}
	if p.ClientID != nil {
		item.ClientID = *p.ClientID
	}
	return item
}

func taskItem(t model.Task) TaskItem {
	item := TaskItem{ID: t.ID, Title: t.Title, Status: t.Status, Priority: t.Priority}
	if t.ProjectID != nil {
		item.ProjectID = *t.ProjectID
	}
	if t.DueDate != nil {
		item.DueDate = t.DueDate.Format(time.DateOnly)
	}
	return item
}
