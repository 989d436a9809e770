package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/metalagman/freelo/internal/model"
)

type fakeRecords struct {
	mu        sync.Mutex
	refs      map[string][]model.ProjectRef
	refsErr   error
	insertErr error
	listCalls int
	tasks     []model.Task
	projects  []model.Project
	clients   []model.Client
	seq       int
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{refs: map[string][]model.ProjectRef{}}
}

func (f *fakeRecords) ListProjectRefs(_ context.Context, ownerID string) ([]model.ProjectRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.refsErr != nil {
		return nil, f.refsErr
	}
	return f.refs[ownerID], nil
}

func (f *fakeRecords) InsertTask(_ context.Context, t model.Task) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return model.Task{}, f.insertErr
	}
	t.ID = f.nextID("task")
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeRecords) InsertProject(_ context.Context, p model.Project) (model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return model.Project{}, f.insertErr
	}
	p.ID = f.nextID("project")
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeRecords) InsertClient(_ context.Context, c model.Client) (model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return model.Client{}, f.insertErr
	}
	c.ID = f.nextID("client")
	f.clients = append(f.clients, c)
	return c, nil
}

func (f *fakeRecords) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRecords) mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks) + len(f.projects) + len(f.clients)
}
