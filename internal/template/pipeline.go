package template

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/calvinalkan/agent-todo/internal/document"
	"github.com/calvinalkan/agent-todo/internal/store"
)

// Renderer produces document text from a named template.
type Renderer interface {
	Render(name string, vars Vars) (string, error)
}

// Pipeline creates records from templates.
type Pipeline struct {
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithClock sets the clock used for a zero Vars.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline returns a pipeline rendering through renderer.
func NewPipeline(renderer Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer: renderer,
		logger:   slog.New(slog.DiscardHandler),
		now:      func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Create renders the named template and parses the output as a record.
//
// Rendering failures wrap [ErrTemplate]. Output that is not a valid document
// fails with an error naming the template and wrapping
// [document.ErrFormat] or [document.ErrSchema].
func (p *Pipeline) Create(name string, vars Vars) (store.Record, error) {
	if vars.CreatedAt.IsZero() {
		vars.CreatedAt = p.now()
	}

	if vars.Tags == nil {
		vars.Tags = []string{}
	}

	text, err := p.renderer.Render(name, vars)
	if err != nil {
		return store.Record{}, err
	}

	p.logger.Debug("rendered template", "template", name, "id", vars.ID, "bytes", len(text))

	doc, err := document.Parse([]byte(text))
	if err != nil {
		return store.Record{}, fmt.Errorf("invalid template %q: %w", name, err)
	}

	return store.NewRecord(doc), nil
}
