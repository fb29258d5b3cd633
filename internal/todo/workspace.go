package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/store"
	"github.com/calvinalkan/agent-todo/internal/template"
)

// Workspace is an initialized data directory.
type Workspace struct {
	cfg     Config
	fs      fs.FS
	backend *store.DirBackend
	logger  *slog.Logger
}

// Open returns the workspace at cfg.DataDirAbs. It fails with
// [ErrNotInitialized] if the tasks or templates directory is missing.
func Open(fsys fs.FS, cfg Config, logger *slog.Logger) (*Workspace, error) {
	ok, err := Initialized(fsys, cfg)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, cfg.DataDirAbs)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Workspace{
		cfg:     cfg,
		fs:      fsys,
		backend: store.NewDirBackend(fsys, cfg.TasksDir()),
		logger:  logger,
	}, nil
}

// Load reads the collection from the tasks directory.
func (w *Workspace) Load(ctx context.Context) (store.Collection, error) {
	return store.Load(ctx, w.backend, w.logger)
}

// CreateInput describes a record to create from a template.
type CreateInput struct {
	Template string // empty selects the configured default
	Title    string
	Tags     []string
}

// Create allocates the next id, renders the template and writes the record.
// The rendered document must carry the allocated id.
func (w *Workspace) Create(ctx context.Context, input CreateInput) (store.Record, error) {
	name := input.Template
	if name == "" {
		name = w.cfg.DefaultTemplate
	}

	collection, err := w.Load(ctx)
	if err != nil {
		return store.Record{}, err
	}

	id := collection.NextID()
	if id == 0 {
		return store.Record{}, ErrIDSpaceExhausted
	}

	registry, err := template.LoadRegistry(w.fs, w.cfg.TemplatesDir())
	if err != nil {
		return store.Record{}, err
	}

	pipeline := template.NewPipeline(registry, template.WithLogger(w.logger))

	rec, err := pipeline.Create(name, template.Vars{
		ID:    id,
		Tags:  input.Tags,
		Title: input.Title,
	})
	if err != nil {
		return store.Record{}, err
	}

	if rec.ID != id {
		return store.Record{}, fmt.Errorf("%w: template %q rendered id %d, want %d", ErrUnexpectedID, name, rec.ID, id)
	}

	err = store.Put(ctx, w.backend, rec)
	if err != nil {
		return store.Record{}, err
	}

	w.logger.Info("created record", "id", rec.ID, "path", rec.Path, "template", name)

	return rec, nil
}
