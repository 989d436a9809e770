package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalagman/freelo/internal/model"
)

func TestDispatch_CreateTaskDefaults(t *testing.T) {
	store := newFakeRecords()
	d := NewDispatcher(store, Defaults{})
	snap := Snapshot{Projects: []model.ProjectRef{{ID: "p1", Name: "Web"}}}

	out := d.Dispatch(context.Background(), "u1", snap, CreateTask{
		Title:     "  Revisar contrato ",
		ProjectID: strPtr("p1"),
		Priority:  "urgent",
	})

	require.NoError(t, out.Err)
	require.Len(t, store.tasks, 1)
	task := store.tasks[0]
	assert.Equal(t, "u1", task.OwnerID)
	assert.Equal(t, "Revisar contrato", task.Title)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.TaskTodo, task.Status)
	require.NotNil(t, task.ProjectID)
	assert.Equal(t, "p1", *task.ProjectID)
	assert.Equal(t, task.ID, out.RecordID)
	assert.Equal(t, "Tarea creada en Web. (id: "+task.ID+")", out.Message)
}

func TestDispatch_CreateTaskConfiguredPriority(t *testing.T) {
	store := newFakeRecords()
	d := NewDispatcher(store, Defaults{Priority: model.PriorityHigh})

	out := d.Dispatch(context.Background(), "u1", Snapshot{}, CreateTask{Title: "Llamar", ProjectID: strPtr("")})

	require.NoError(t, out.Err)
	require.Len(t, store.tasks, 1)
	assert.Equal(t, model.PriorityHigh, store.tasks[0].Priority)
	assert.Nil(t, store.tasks[0].ProjectID)
	assert.Equal(t, "Tarea creada. (id: "+out.RecordID+")", out.Message)
}

func TestDispatch_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		in    Intent
		field string
		msg   string
	}{
		{name: "empty task title", in: CreateTask{Title: "   "}, field: "title", msg: msgTaskTitleRequired},
		{name: "unknown project", in: CreateTask{Title: "x", ProjectID: strPtr("ghost")}, field: "project_id", msg: msgUnknownProject},
		{name: "empty project name", in: CreateProject{Name: ""}, field: "name", msg: msgProjectNameNeeded},
		{name: "empty client name", in: CreateClient{Name: "\t"}, field: "name", msg: msgClientNameNeeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeRecords()
			d := NewDispatcher(store, DefaultDefaults())
			snap := Snapshot{Projects: []model.ProjectRef{{ID: "p1", Name: "Web"}}}

			out := d.Dispatch(context.Background(), "u1", snap, tt.in)

			var verr *ValidationError
			require.ErrorAs(t, out.Err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.True(t, IsValidation(out.Err))
			assert.Equal(t, tt.msg, out.Message)
			assert.Empty(t, out.RecordID)
			assert.Zero(t, store.mutations())
		})
	}
}

func TestDispatch_CreateProjectAndClient(t *testing.T) {
	store := newFakeRecords()
	d := NewDispatcher(store, DefaultDefaults())

	out := d.Dispatch(context.Background(), "u1", Snapshot{}, CreateProject{Name: "Web", Status: "bogus", ResponseText: "Proyecto listo"})
	require.NoError(t, out.Err)
	require.Len(t, store.projects, 1)
	assert.Equal(t, model.ProjectActive, store.projects[0].Status)
	assert.Equal(t, "u1", store.projects[0].OwnerID)
	assert.Equal(t, "Proyecto listo (id: "+out.RecordID+")", out.Message)

	out = d.Dispatch(context.Background(), "u1", Snapshot{}, CreateProject{Name: "Viejo", Status: "Completed"})
	require.NoError(t, out.Err)
	assert.Equal(t, model.ProjectCompleted, store.projects[1].Status)

	out = d.Dispatch(context.Background(), "u1", Snapshot{}, CreateClient{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, out.Err)
	require.Len(t, store.clients, 1)
	assert.Equal(t, model.ClientActive, store.clients[0].Status)
	assert.Equal(t, "ana@example.com", store.clients[0].Email)
	assert.Equal(t, KindCreateClient, out.Kind)
}

func TestDispatch_Chat(t *testing.T) {
	store := newFakeRecords()
	d := NewDispatcher(store, DefaultDefaults())

	out := d.Dispatch(context.Background(), "u1", Snapshot{}, Chat{Response: "Hola"})
	assert.Equal(t, "Hola", out.Message)
	assert.NoError(t, out.Err)

	out = d.Dispatch(context.Background(), "u1", Snapshot{}, Chat{Response: "{broken", Malformed: true})
	assert.Equal(t, msgFallback, out.Message)

	out = d.Dispatch(context.Background(), "u1", Snapshot{}, Chat{Response: "  "})
	assert.Equal(t, msgFallback, out.Message)
	assert.Zero(t, store.mutations())
}

func TestDispatch_MutationFailure(t *testing.T) {
	store := newFakeRecords()
	store.insertErr = errors.New("disk full")
	d := NewDispatcher(store, DefaultDefaults())

	out := d.Dispatch(context.Background(), "u1", Snapshot{}, CreateTask{Title: "x"})

	var merr *MutationError
	require.ErrorAs(t, out.Err, &merr)
	assert.Equal(t, KindCreateTask, merr.Kind)
	assert.EqualError(t, errors.Unwrap(out.Err), "disk full")
	assert.Equal(t, "No he podido guardar la tarea. Inténtalo de nuevo en unos momentos.", out.Message)
	assert.False(t, IsValidation(out.Err))
}
