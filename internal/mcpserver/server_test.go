package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalagman/freelo/internal/assistant"
	"github.com/metalagman/freelo/internal/db"
	"github.com/metalagman/freelo/internal/llm"
	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

func connect(t *testing.T, raw string) (*mcp.ClientSession, *records.Store) {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "freelo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	store := records.NewStore(conn)

	gen := llm.GeneratorFunc(func(context.Context, []string) (string, error) { return raw, nil })
	server, err := New(Config{Records: store, Assistant: assistant.New(store, gen), OwnerID: "ana"})
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs, store
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError)
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestAssistantChatCreatesProject(t *testing.T) {
	cs, store := connect(t, `{"intent":"create_project","data":{"name":"Web"},"response_text":"Proyecto creado"}`)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "assistant_chat",
		Arguments: map[string]any{"message": "crea el proyecto Web"},
	})
	require.NoError(t, err)
	out := decode[ChatOutput](t, res)
	assert.True(t, out.OK)
	assert.Equal(t, string(assistant.KindCreateProject), out.Intent)
	require.NotEmpty(t, out.RecordID)

	p, err := store.GetProject(ctx, "ana", out.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Web", p.Name)
}

func TestListTools(t *testing.T) {
	cs, store := connect(t, "")
	ctx := context.Background()
	p, err := store.InsertProject(ctx, model.Project{OwnerID: "ana", Name: "Web"})
	require.NoError(t, err)
	_, err = store.InsertTask(ctx, model.Task{OwnerID: "ana", ProjectID: &p.ID, Title: "Maqueta"})
	require.NoError(t, err)
	_, err = store.InsertProject(ctx, model.Project{OwnerID: "bob", Name: "Ajeno"})
	require.NoError(t, err)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "list_projects", Arguments: map[string]any{}})
	require.NoError(t, err)
	projects := decode[ListProjectsOutput](t, res)
	require.Len(t, projects.Projects, 1)
	assert.Equal(t, "Web", projects.Projects[0].Name)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: "list_tasks", Arguments: map[string]any{"project_id": p.ID}})
	require.NoError(t, err)
	tasks := decode[ListTasksOutput](t, res)
	require.Len(t, tasks.Tasks, 1)
	assert.Equal(t, "Maqueta", tasks.Tasks[0].Title)
	assert.Equal(t, p.ID, tasks.Tasks[0].ProjectID)
}
