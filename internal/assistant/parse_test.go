package assistant

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestStripWrappers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `{"a":1}`, want: `{"a":1}`},
		{name: "whitespace", in: "\n\t  {\"a\":1}  \n", want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fence without newline", in: "```json{\"a\":1}```", want: `{"a":1}`},
		{name: "nested fences", in: "```json\n```json\n{\"a\":1}\n```\n```", want: `{"a":1}`},
		{name: "only closing fence", in: "{\"a\":1}\n```", want: `{"a":1}`},
		{name: "empty", in: "", want: ""},
		{name: "only fences", in: "``````", want: ""},
		{name: "prose", in: "Hola, ¿qué tal?", want: "Hola, ¿qué tal?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripWrappers(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{
			name: "create task in fence",
			raw:  "```json\n{\"intent\":\"create_task\",\"data\":{\"title\":\"Revisar contrato\",\"project_id\":\"p1\",\"priority\":\"high\"},\"response_text\":\"Hecho\"}\n```",
			want: CreateTask{Title: "Revisar contrato", ProjectID: strPtr("p1"), Priority: "high", ResponseText: "Hecho"},
		},
		{
			name: "create task null project",
			raw:  `{"intent":"create_task","data":{"title":"Llamar","project_id":null}}`,
			want: CreateTask{Title: "Llamar"},
		},
		{
			name: "unknown fields dropped",
			raw:  `{"intent":"create_task","data":{"title":"Llamar","owner_id":"evil","user_id":"evil"}}`,
			want: CreateTask{Title: "Llamar"},
		},
		{
			name: "case variant of known key ignored",
			raw:  `{"intent":"create_task","data":{"title":"a","TITLE":"b","Priority":"high"}}`,
			want: CreateTask{Title: "a"},
		},
		{
			name: "create project",
			raw:  `{"intent":"create_project","data":{"name":"Web","status":"paused"},"response_text":"Listo"}`,
			want: CreateProject{Name: "Web", Status: "paused", ResponseText: "Listo"},
		},
		{
			name: "create client",
			raw:  `{"intent":"create_client","data":{"name":"Ana","email":"ana@example.com","company":null}}`,
			want: CreateClient{Name: "Ana", Email: "ana@example.com"},
		},
		{
			name: "chat",
			raw:  `{"intent":"chat","response_text":"Tienes 3 proyectos."}`,
			want: Chat{Response: "Tienes 3 proyectos."},
		},
		{
			name: "plain prose",
			raw:  "Claro, te ayudo con eso.",
			want: Chat{Response: "Claro, te ayudo con eso."},
		},
		{
			name: "truncated json",
			raw:  `{"intent":"create_task","data":{"title":`,
			want: Chat{Response: `{"intent":"create_task","data":{"title":`, Malformed: true},
		},
		{
			name: "missing title",
			raw:  `{"intent":"create_task","data":{"priority":"high"}}`,
			want: Chat{Response: `{"intent":"create_task","data":{"priority":"high"}}`, Malformed: true},
		},
		{
			name: "wrong title type",
			raw:  `{"intent":"create_task","data":{"title":42}}`,
			want: Chat{Response: `{"intent":"create_task","data":{"title":42}}`, Malformed: true},
		},
		{
			name: "missing data",
			raw:  `{"intent":"create_project"}`,
			want: Chat{Response: `{"intent":"create_project"}`, Malformed: true},
		},
		{
			name: "unknown intent with text",
			raw:  `{"intent":"delete_everything","response_text":"No puedo hacer eso."}`,
			want: Chat{Response: "No puedo hacer eso."},
		},
		{
			name: "unknown intent without text",
			raw:  `{"intent":"delete_everything"}`,
			want: Chat{Response: `{"intent":"delete_everything"}`, Malformed: true},
		},
		{
			name: "chat without text",
			raw:  `{"intent":"chat"}`,
			want: Chat{Response: `{"intent":"chat"}`, Malformed: true},
		},
		{
			name: "trailing prose",
			raw:  `{"intent":"chat","response_text":"hola"} y algo más`,
			want: Chat{Response: `{"intent":"chat","response_text":"hola"} y algo más`, Malformed: true},
		},
		{
			name: "empty",
			raw:  "",
			want: Chat{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_StripIdempotent(t *testing.T) {
	payload := `{"intent":"create_project","data":{"name":"Web"}}`
	want := Parse(payload)
	for _, wrapped := range []string{
		"```json\n" + payload + "\n```",
		"  \n```\n" + payload + "```\n\n",
		"```json\n```json\n" + payload + "\n```\n```",
	} {
		assert.Equal(t, want, Parse(wrapped), wrapped)
	}
}

func TestParse_ArbitraryInputNeverPanics(t *testing.T) {
	alphabet := []rune("{}[]\":,`json intent data title create_task chat ñá\n\t0123456789")
	rng := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		n := rng.IntN(64)
		buf := make([]rune, n)
		for i := range buf {
			buf[i] = alphabet[rng.IntN(len(alphabet))]
		}
		raw := string(buf)
		assert.NotPanics(t, func() {
			in := Parse(raw)
			if c, ok := in.(Chat); ok && c.Malformed {
				assert.Equal(t, raw, c.Response)
			}
		})
	}
}
