package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/metalagman/freelo/internal/model"
)

// User-facing messages.
const (
	msgFallback          = "Lo siento, no he entendido bien la respuesta. ¿Puedes reformular tu petición?"
	msgTaskTitleRequired = "Necesito un título para crear la tarea. ¿Cómo quieres llamarla?"
	msgUnknownProject    = "No encuentro ese proyecto entre los tuyos. Indica un proyecto existente o crea la tarea sin proyecto."
	msgProjectNameNeeded = "Necesito un nombre para crear el proyecto. ¿Cómo quieres llamarlo?"
	msgClientNameNeeded  = "Necesito un nombre para registrar el cliente. ¿Cómo se llama?"
	msgTaskCreated       = "Tarea creada."
	msgTaskCreatedIn     = "Tarea creada en %s."
	msgProjectCreated    = "Proyecto creado."
	msgClientCreated     = "Cliente creado."
	msgMutationFailed    = "No he podido guardar %s. Inténtalo de nuevo en unos momentos."
)

// ValidationError reports a structurally valid intent whose content cannot be
// applied. No mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MutationError reports a failed store write.
type MutationError struct {
	Kind Kind
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Store performs the writes the assistant is allowed to make.
type Store interface {
	InsertTask(ctx context.Context, t model.Task) (model.Task, error)
	InsertProject(ctx context.Context, p model.Project) (model.Project, error)
	InsertClient(ctx context.Context, c model.Client) (model.Client, error)
}

// Defaults are applied to fields the model leaves out.
type Defaults struct {
	Priority      string
	ProjectStatus string
	ClientStatus  string
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Priority:      model.PriorityMedium,
		ProjectStatus: model.ProjectActive,
		ClientStatus:  model.ClientActive,
	}
}

// Outcome is the result of dispatching one intent.
type Outcome struct {
	Kind     Kind
	Message  string
	RecordID string
	Err      error
}

// Dispatcher turns intents into at most one store mutation.
type Dispatcher struct {
	store    Store
	defaults Defaults
}

// NewDispatcher creates a dispatcher writing to store.
func NewDispatcher(store Store, defaults Defaults) *Dispatcher {
	base := DefaultDefaults()
	if !model.ValidPriority(defaults.Priority) {
		defaults.Priority = base.Priority
	}
	if !model.ValidProjectStatus(defaults.ProjectStatus) {
		defaults.ProjectStatus = base.ProjectStatus
	}
	if !model.ValidClientStatus(defaults.ClientStatus) {
		defaults.ClientStatus = base.ClientStatus
	}
	return &Dispatcher{store: store, defaults: defaults}
}

// Dispatch applies in on behalf of ownerID. Owner identity always comes from
// the caller, never from model output.
func (d *Dispatcher) Dispatch(ctx context.Context, ownerID string, snapshot Snapshot, in Intent) Outcome {
	switch in := in.(type) {
	case Chat:
		return d.chat(in)
	case CreateTask:
		return d.createTask(ctx, ownerID, snapshot, in)
	case CreateProject:
		return d.createProject(ctx, ownerID, in)
	case CreateClient:
		return d.createClient(ctx, ownerID, in)
	default:
		return Outcome{Kind: KindChat, Message: msgFallback}
	}
}

func (d *Dispatcher) chat(in Chat) Outcome {
	msg := in.Response
	if in.Malformed || strings.TrimSpace(msg) == "" {
		msg = msgFallback
	}
	return Outcome{Kind: KindChat, Message: msg}
}

func (d *Dispatcher) createTask(ctx context.Context, ownerID string, snapshot Snapshot, in CreateTask) Outcome {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return invalid(KindCreateTask, "title", "empty", msgTaskTitleRequired)
	}

	var projectID *string
	if in.ProjectID != nil && strings.TrimSpace(*in.ProjectID) != "" {
		id := strings.TrimSpace(*in.ProjectID)
		if !snapshot.HasProject(id) {
			return invalid(KindCreateTask, "project_id", "not among the caller's projects", msgUnknownProject)
		}
		projectID = &id
	}

	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	if !model.ValidPriority(priority) {
		priority = d.defaults.Priority
	}

	task, err := d.store.InsertTask(ctx, model.Task{
		OwnerID:     ownerID,
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      model.TaskTodo,
		Priority:    priority,
	})
	if err != nil {
		return failed(KindCreateTask, err, "la tarea")
	}
	log.Info().Str("owner_id", ownerID).Str("task_id", task.ID).Msg("assistant created task")
	confirm := msgTaskCreated
	if projectID != nil {
		confirm = fmt.Sprintf(msgTaskCreatedIn, snapshot.ProjectName(*projectID))
	}
	return succeeded(KindCreateTask, task.ID, in.ResponseText, confirm)
}

func (d *Dispatcher) createProject(ctx context.Context, ownerID string, in CreateProject) Outcome {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid(KindCreateProject, "name", "empty", msgProjectNameNeeded)
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !model.ValidProjectStatus(status) {
		status = d.defaults.ProjectStatus
	}

	project, err := d.store.InsertProject(ctx, model.Project{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
	})
	if err != nil {
		return failed(KindCreateProject, err, "el proyecto")
	}
	log.Info().Str("owner_id", ownerID).Str("project_id", project.ID).Msg("assistant created project")
	return succeeded(KindCreateProject, project.ID, in.ResponseText, msgProjectCreated)
}

func (d *Dispatcher) createClient(ctx context.Context, ownerID string, in CreateClient) Outcome {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid(KindCreateClient, "name", "empty", msgClientNameNeeded)
	}

	client, err := d.store.InsertClient(ctx, model.Client{
		OwnerID: ownerID,
		Name:    name,
		Email:   strings.TrimSpace(in.Email),
		Company: strings.TrimSpace(in.Company),
		Phone:   strings.TrimSpace(in.Phone),
		Status:  d.defaults.ClientStatus,
	})
	if err != nil {
		return failed(KindCreateClient, err, "el cliente")
	}
	log.Info().Str("owner_id", ownerID).Str("client_id", client.ID).Msg("assistant created client")
	return succeeded(KindCreateClient, client.ID, in.ResponseText, msgClientCreated)
}

func invalid(kind Kind, field, reason, msg string) Outcome {
	return Outcome{Kind: kind, Message: msg, Err: &ValidationError{Field: field, Reason: reason}}
}

func failed(kind Kind, err error, what string) Outcome {
	log.Error().Err(err).Str("intent", string(kind)).Msg("assistant mutation failed")
	return Outcome{
		Kind:    kind,
		Message: fmt.Sprintf(msgMutationFailed, what),
		Err:     &MutationError{Kind: kind, Err: err},
	}
}

func succeeded(kind Kind, id, responseText, fallback string) Outcome {
	msg := strings.TrimSpace(responseText)
	if msg == "" {
		msg = fallback
	}
	return Outcome{Kind: kind, Message: fmt.Sprintf("%s (id: %s)", msg, id), RecordID: id}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
