// Package tui implements the interactive terminal chat with the assistant.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/metalagman/freelo/internal/assistant"
)

// Assistant answers one user message on behalf of an owner.
type Assistant interface {
	HandleUtterance(ctx context.Context, ownerID, text string) assistant.Reply
}

type role int

const (
	roleUser role = iota
	roleAssistant
)

type entry struct {
	role     role
	text     string
	recordID string
	failed   bool
}

type replyMsg struct {
	reply assistant.Reply
}

const (
	headerHeight = 2
	footerHeight = 4
)

// Model is the bubbletea model of the chat screen.
type Model struct {
	ctx       context.Context
	assistant Assistant
	ownerID   string
	style     string

	input    textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	history  []entry
	pending  bool
	ready    bool
	width    int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithStyle selects the glamour style used for assistant replies.
func WithStyle(style string) Option {
	return func(m *Model) { m.style = style }
}

// New creates a chat model for ownerID.
func New(ctx context.Context, a Assistant, ownerID string, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "Escribe un mensaje..."
	input.CharLimit = 4000
	input.Prompt = "> "
	input.Focus()

	m := Model{
		ctx:       ctx,
		assistant: a,
		ownerID:   ownerID,
		style:     "auto",
		input:     input,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, a Assistant, ownerID string) error {
	p := tea.NewProgram(New(ctx, a, ownerID), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			cmd := m.submit()
			return m, cmd
		case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case replyMsg:
		m.pending = false
		e := entry{role: roleAssistant, text: msg.reply.Message, recordID: msg.reply.RecordID}
		if !msg.reply.OK {
			e.text = msg.reply.ErrorMessage
			e.failed = true
		}
		m.history = append(m.history, e)
		m.refresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.pending {
		return nil
	}
	m.input.Reset()
	m.history = append(m.history, entry{role: roleUser, text: text})
	m.pending = true
	m.refresh()

	ctx, a, owner := m.ctx, m.assistant, m.ownerID
	return func() tea.Msg {
		return replyMsg{reply: a.HandleUtterance(ctx, owner, text)}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	bodyHeight := max(height-headerHeight-footerHeight, 3)
	if !m.ready {
		m.viewport = viewport.New(width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = bodyHeight
	}
	m.input.Width = max(width-8, 10)
	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithStylePath(m.style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) transcript() string {
	var b strings.Builder
	for _, e := range m.history {
		switch e.role {
		case roleUser:
			b.WriteString(styleUser.Render("tú: "))
			b.WriteString(e.text)
			b.WriteString("\n\n")
		case roleAssistant:
			if e.failed {
				b.WriteString(styleError.Render(e.text))
				b.WriteString("\n\n")
				continue
			}
			b.WriteString(m.render(e.text))
			if e.recordID != "" {
				b.WriteString(styleRecord.Render(fmt.Sprintf("registro %s", e.recordID)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}
	if m.pending {
		b.WriteString(styleStatusBar.Render("pensando..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) render(text string) string {
	if m.renderer == nil {
		return text + "\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Cargando..."
	}
	header := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styleTitle.Render("freelo"))
	status := "enter: enviar  esc: salir  pgup/pgdown: desplazar"
	if m.pending {
		status = "esperando respuesta..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		styleInput.Render(m.input.View()),
		styleStatusBar.Render(status),
	)
}
