// Package assistant turns free-form user messages into at most one grounded
// record mutation, or a conversational reply.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/metalagman/freelo/internal/llm"
)

var (
	// ErrContextUnavailable is returned when the caller's context could not be gathered.
	ErrContextUnavailable = errors.New("context unavailable")
	// ErrModelUnavailable is returned when the model call fails or times out.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrCanceled is returned when the caller abandons the invocation before dispatch.
	ErrCanceled = errors.New("invocation canceled")
)

const (
	msgContextUnavailable = "No he podido cargar tus datos. Inténtalo de nuevo en unos momentos."
	msgModelUnavailable   = "El asistente no está disponible ahora mismo. Inténtalo de nuevo en unos momentos."
	msgCanceled           = "La petición se ha cancelado."
)

// DefaultTimeout bounds one model call.
const DefaultTimeout = 30 * time.Second

// Stage is a step of one invocation.
type Stage string

// Invocation stages, in order.
const (
	StageReceived        Stage = "received"
	StageContextGathered Stage = "context_gathered"
	StagePromptBuilt     Stage = "prompt_built"
	StageModelInvoked    Stage = "model_invoked"
	StageParsed          Stage = "parsed"
	StageDispatched      Stage = "dispatched"
	StageFailed          Stage = "failed"
)

// Reply is the caller-facing result of one invocation. OK is false only when
// the invocation failed before dispatch.
type Reply struct {
	OK           bool   `json:"ok"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Intent       Kind   `json:"intent,omitempty"`
	RecordID     string `json:"record_id,omitempty"`
	Stage        Stage  `json:"stage"`
	Err          error  `json:"-"`
}

// Records is the persistence the pipeline needs.
type Records interface {
	ProjectSource
	Store
}

// Pipeline runs the intent-to-action flow. It holds no per-invocation state
// and is safe for concurrent use.
type Pipeline struct {
	projects   ProjectSource
	generator  llm.Generator
	dispatcher *Dispatcher
	timeout    time.Duration
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	timeout  time.Duration
	defaults Defaults
}

// WithTimeout bounds each model call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *pipelineOptions) { o.timeout = d }
}

// WithDefaults sets the values applied to fields the model leaves out.
func WithDefaults(d Defaults) Option {
	return func(o *pipelineOptions) { o.defaults = d }
}

// New creates a pipeline reading context from and writing to records.
func New(records Records, generator llm.Generator, opts ...Option) *Pipeline {
	o := pipelineOptions{timeout: DefaultTimeout, defaults: DefaultDefaults()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		projects:   records,
		generator:  generator,
		dispatcher: NewDispatcher(records, o.defaults),
		timeout:    o.timeout,
	}
}

// HandleUtterance processes one user message for ownerID.
func (p *Pipeline) HandleUtterance(ctx context.Context, ownerID, text string) Reply {
	logger := log.With().Str("owner_id", ownerID).Logger()
	stage := StageReceived
	advance := func(next Stage) {
		stage = next
		logger.Debug().Str("stage", string(stage)).Msg("assistant stage")
	}
	fail := func(err error, msg string) Reply {
		logger.Warn().Err(err).Str("stage", string(stage)).Msg("assistant invocation failed")
		return Reply{ErrorMessage: msg, Stage: StageFailed, Err: err}
	}
	advance(StageReceived)

	if err := ctx.Err(); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrCanceled, err), msgCanceled)
	}

	snapshot, err := gatherContext(ctx, p.projects, ownerID)
	if err != nil {
		return fail(err, msgContextUnavailable)
	}
	advance(StageContextGathered)

	prompt := BuildPrompt(snapshot)
	advance(StagePromptBuilt)

	raw, err := p.generate(ctx, prompt, text)
	if err != nil {
		if ctx.Err() != nil {
			return fail(fmt.Errorf("%w: %w", ErrCanceled, err), msgCanceled)
		}
		return fail(fmt.Errorf("%w: %w", ErrModelUnavailable, err), msgModelUnavailable)
	}
	advance(StageModelInvoked)

	intent := Parse(raw)
	advance(StageParsed)
	logger.Debug().Str("intent", string(intent.Kind())).Msg("assistant intent parsed")

	if err := ctx.Err(); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrCanceled, err), msgCanceled)
	}

	out := p.dispatcher.Dispatch(ctx, ownerID, snapshot, intent)
	advance(StageDispatched)
	return Reply{
		OK:       true,
		Message:  out.Message,
		Intent:   out.Kind,
		RecordID: out.RecordID,
		Stage:    StageDispatched,
		Err:      out.Err,
	}
}

func (p *Pipeline) generate(ctx context.Context, prompt, text string) (string, error) {
	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// The call is bounded here even when a generator ignores its context.
	done := make(chan generation, 1)
	go func() {
		raw, err := p.generator.Generate(callCtx, []string{prompt, text})
		done <- generation{raw: raw, err: err}
	}()

	var res generation
	select {
	case res = <-done:
	case <-callCtx.Done():
		return "", fmt.Errorf("generate: %w", callCtx.Err())
	}
	if err := callCtx.Err(); err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if errors.Is(res.err, llm.ErrEmptyResponse) {
		return "", nil
	}
	return res.raw, res.err
}

type generation struct {
	raw string
	err error
}
