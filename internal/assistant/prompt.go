package assistant

import (
	"fmt"
	"strings"

	"github.com/metalagman/freelo/internal/model"
)

// BuildPrompt renders the instruction block for one invocation. It is pure:
// equal snapshots produce byte-identical prompts.
func BuildPrompt(snapshot Snapshot) string {
	var b strings.Builder

	b.WriteString(`You are the assistant of a business-management app for freelancers.
You help the user manage projects, clients and tasks, and you answer short questions about their work.
Always answer in the language the user writes in.

`)
	b.WriteString("The user's projects (id and name):\n")
	b.WriteString(snapshot.projectsJSON())
	b.WriteString("\n\n")

	b.WriteString(`Reply with exactly ONE JSON object in a single json code block. Write no text before or after it.
Pick exactly one of these shapes:

1. chat: conversation, questions, or anything that is not one creation request.
{"intent": "chat", "response_text": "..."}

2. create_task: the user asks to create one task.
{"intent": "create_task", "data": {"title": "Revisar el contrato", "description": "", "project_id": null, "priority": "medium"}, "response_text": "Tarea creada."}

3. create_project: the user asks to create one project.
{"intent": "create_project", "data": {"name": "Rediseño web", "description": "", "status": "active"}, "response_text": "Proyecto creado."}

4. create_client: the user asks to register one client.
{"intent": "create_client", "data": {"name": "Ana López", "email": "ana@example.com", "company": "Acme", "phone": ""}, "response_text": "Cliente creado."}

`)
	b.WriteString("Rules:\n")
	rules := []string{
		"Emit one intent per reply. If the user asks for several things, handle the first creation and mention the rest in response_text.",
		"project_id must be one of the ids listed above, or null. Never invent ids. If the user names a project that is not listed, use null and say so in response_text.",
		fmt.Sprintf("priority is one of %s. Use %q when the user does not say.", strings.Join(model.Priorities(), ", "), model.PriorityMedium),
		fmt.Sprintf("project status is one of %s. Use %q when the user does not say.", strings.Join(model.ProjectStatuses(), ", "), model.ProjectActive),
		"Never include owner or user identifiers. The application sets them.",
		"If the request is ambiguous, use chat and ask a clarifying question.",
	}
	for _, r := range rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}
