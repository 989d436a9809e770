package records

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/metalagman/freelo/internal/db"
	"github.com/metalagman/freelo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "freelo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewStore(conn, WithClock(clock.Now)), clock
}

func strPtr(s string) *string { return &s }

func TestProjects_CRUDIsOwnerScoped(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	p, err := store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "  Web redesign ", HourlyRate: 40})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Web redesign", p.Name)
	assert.Equal(t, model.ProjectActive, p.Status)

	clock.Advance(time.Minute)
	_, err = store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "Logo"})
	require.NoError(t, err)
	_, err = store.InsertProject(ctx, model.Project{OwnerID: "bob", Name: "Other"})
	require.NoError(t, err)

	refs, err := store.ListProjectRefs(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, model.ProjectRef{ID: p.ID, Name: "Web redesign"}, refs[0])
	assert.Equal(t, "Logo", refs[1].Name)

	_, err = store.GetProject(ctx, "bob", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	status := model.ProjectPaused
	updated, err := store.UpdateProject(ctx, "ana", p.ID, ProjectUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectPaused, updated.Status)

	paused, err := store.ListProjects(ctx, "ana", &status)
	require.NoError(t, err)
	require.Len(t, paused, 1)
	assert.Equal(t, p.ID, paused[0].ID)

	assert.ErrorIs(t, store.DeleteProject(ctx, "bob", p.ID), ErrNotFound)
	require.NoError(t, store.DeleteProject(ctx, "ana", p.ID))
	_, err = store.GetProject(ctx, "ana", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectRefs_EmptyIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t)

	refs, err := store.ListProjectRefs(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestInsertProject_Validation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "  "})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "x", Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "x", ClientID: strPtr("missing")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClients_CRUD(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	c, err := store.InsertClient(ctx, model.Client{OwnerID: "ana", Name: "Acme", Email: "hi@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, model.ClientActive, c.Status)

	p, err := store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "Site", ClientID: &c.ID})
	require.NoError(t, err)
	require.NotNil(t, p.ClientID)

	company := "Acme Corp"
	updated, err := store.UpdateClient(ctx, "ana", c.ID, ClientUpdate{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Company)

	clients, err := store.ListClients(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, clients, 1)

	require.NoError(t, store.DeleteClient(ctx, "ana", c.ID))
	got, err := store.GetProject(ctx, "ana", p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ClientID)
}

func TestTasks_CRUDAndFilters(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "Site"})
	require.NoError(t, err)

	t1, err := store.InsertTask(ctx, model.Task{OwnerID: "ana", Title: "Wireframes", ProjectID: &p.ID, Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, t1.Status)
	_, err = store.InsertTask(ctx, model.Task{OwnerID: "ana", Title: "Invoice"})
	require.NoError(t, err)

	inProject, err := store.ListTasks(ctx, "ana", TaskFilter{ProjectID: p.ID})
	require.NoError(t, err)
	require.Len(t, inProject, 1)
	assert.Equal(t, "Wireframes", inProject[0].Title)

	all, err := store.ListTasks(ctx, "ana", TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, model.PriorityMedium, all[1].Priority)

	done, err := store.MarkTaskStatus(ctx, "ana", t1.ID, model.TaskDone)
	require.NoError(t, err)
	assert.Equal(t, model.TaskDone, done.Status)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	withDue, err := store.UpdateTask(ctx, "ana", t1.ID, TaskUpdate{DueDate: &due, ProjectID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, withDue.ProjectID)

	reloaded, err := store.GetTask(ctx, "ana", t1.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.DueDate)
	assert.True(t, due.Equal(*reloaded.DueDate))

	require.NoError(t, store.DeleteTask(ctx, "ana", t1.ID))
	assert.ErrorIs(t, store.DeleteTask(ctx, "ana", t1.ID), ErrNotFound)
}

func TestInsertTask_RejectsForeignProject(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.InsertProject(ctx, model.Project{OwnerID: "bob", Name: "Bob's"})
	require.NoError(t, err)

	_, err = store.InsertTask(ctx, model.Task{OwnerID: "ana", Title: "sneaky", ProjectID: &p.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.InsertTask(ctx, model.Task{OwnerID: "ana", Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTimer_StartStop(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	p, err := store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "Site"})
	require.NoError(t, err)

	entry, err := store.StartTimer(ctx, model.TimeEntry{OwnerID: "ana", ProjectID: p.ID, Billable: true})
	require.NoError(t, err)
	assert.True(t, entry.Running())

	_, err = store.StartTimer(ctx, model.TimeEntry{OwnerID: "ana", ProjectID: p.ID})
	assert.ErrorIs(t, err, ErrTimerRunning)

	clock.Advance(90*time.Minute + 10*time.Second)
	stopped, err := store.StopTimer(ctx, "ana", entry.ID)
	require.NoError(t, err)
	assert.False(t, stopped.Running())
	assert.Equal(t, 91, stopped.DurationMinutes)

	entries, err := store.ListTimeEntries(ctx, "ana", p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Billable)
	assert.Equal(t, 91, entries[0].DurationMinutes)

	_, err = store.StopTimer(ctx, "bob", entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.DeleteTimeEntry(ctx, "ana", entry.ID))
}
