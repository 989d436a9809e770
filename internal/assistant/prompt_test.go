package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metalagman/freelo/internal/model"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	snap := Snapshot{Projects: []model.ProjectRef{
		{ID: "p1", Name: "Website Redesign"},
		{ID: "p2", Name: "Logo"},
	}}
	first := BuildPrompt(snap)
	second := BuildPrompt(Snapshot{Projects: append([]model.ProjectRef(nil), snap.Projects...)})
	assert.Equal(t, first, second)
}

func TestBuildPrompt_Content(t *testing.T) {
	prompt := BuildPrompt(Snapshot{Projects: []model.ProjectRef{{ID: "p1", Name: "Website Redesign"}}})

	assert.Contains(t, prompt, `"id": "p1"`)
	assert.Contains(t, prompt, `"name": "Website Redesign"`)
	for _, kind := range []Kind{KindChat, KindCreateTask, KindCreateProject, KindCreateClient} {
		assert.Contains(t, prompt, `"intent": "`+string(kind)+`"`)
	}
	assert.Contains(t, prompt, "Never invent ids")
	assert.Contains(t, prompt, "low, medium, high")
}

func TestBuildPrompt_EmptySnapshot(t *testing.T) {
	prompt := BuildPrompt(Snapshot{})
	assert.Contains(t, prompt, "(id and name):\n[]\n")
}

func TestBuildPrompt_ExamplesParse(t *testing.T) {
	examples := []string{
		`{"intent": "create_task", "data": {"title": "Revisar el contrato", "description": "", "project_id": null, "priority": "medium"}, "response_text": "Tarea creada."}`,
		`{"intent": "create_project", "data": {"name": "Rediseño web", "description": "", "status": "active"}, "response_text": "Proyecto creado."}`,
		`{"intent": "create_client", "data": {"name": "Ana López", "email": "ana@example.com", "company": "Acme", "phone": ""}, "response_text": "Cliente creado."}`,
	}
	prompt := BuildPrompt(Snapshot{})
	for _, ex := range examples {
		assert.Contains(t, prompt, ex)
		_, isChat := Parse(ex).(Chat)
		assert.False(t, isChat, ex)
	}
}
