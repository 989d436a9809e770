package assistant

// Kind names a structured intent.
type Kind string

// Known intent kinds.
const (
	KindChat          Kind = "chat"
	KindCreateTask    Kind = "create_task"
	KindCreateProject Kind = "create_project"
	KindCreateClient  Kind = "create_client"
)

// Intent is the parsed, tagged result of one model response. Implementations
// are Chat, CreateTask, CreateProject and CreateClient.
type Intent interface {
	Kind() Kind
	isIntent()
}

// Chat is a conversational reply with no side effects. Malformed marks a
// response that looked structured but did not satisfy the output contract.
type Chat struct {
	Response  string
	Malformed bool
}

// CreateTask asks for one task to be created.
type CreateTask struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	ProjectID    *string `json:"project_id"`
	Priority     string  `json:"priority,omitempty"`
	ResponseText string  `json:"-"`
}

// CreateProject asks for one project to be created.
type CreateProject struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status,omitempty"`
	ResponseText string `json:"-"`
}

// CreateClient asks for one client to be created.
type CreateClient struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ResponseText string `json:"-"`
}

func (Chat) Kind() Kind          { return KindChat }
func (CreateTask) Kind() Kind    { return KindCreateTask }
func (CreateProject) Kind() Kind { return KindCreateProject }
func (CreateClient) Kind() Kind  { return KindCreateClient }

func (Chat) isIntent()          {}
func (CreateTask) isIntent()    {}
func (CreateProject) isIntent() {}
func (CreateClient) isIntent()  {}
