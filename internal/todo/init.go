package todo

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/store"
	"github.com/calvinalkan/agent-todo/internal/template"
)

const (
	templatesDirName = "templates"

	dirPerms      = 0o755
	templatePerms = 0o644
)

// Init creates the tasks and templates directories under dataDir and seeds
// the default template. It refuses to touch a data directory where either
// directory already exists.
func Init(ctx context.Context, fsys fs.FS, dataDir string) error {
	tasksDir := filepath.Join(dataDir, store.TasksDir)
	templatesDir := filepath.Join(dataDir, templatesDirName)

	for _, dir := range []string{tasksDir, templatesDir} {
		exists, err := fsys.Exists(dir)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}

		if exists {
			return fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
		}
	}

	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("init: canceled: %w", context.Cause(ctx))
	}

	for _, dir := range []string{tasksDir, templatesDir} {
		err := fsys.MkdirAll(dir, dirPerms)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
	}

	seed := filepath.Join(templatesDir, template.DefaultName+template.Ext)

	err = fsys.WriteFileAtomic(seed, []byte(template.DefaultSource), templatePerms)
	if err != nil {
		return fmt.Errorf("init: write default template: %w", err)
	}

	return nil
}

// Initialized reports whether both the tasks and templates directories exist.
// A non-directory at either path is an error.
func Initialized(fsys fs.FS, cfg Config) (bool, error) {
	for _, dir := range []string{cfg.TasksDir(), cfg.TemplatesDir()} {
		info, err := fsys.Stat(dir)
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}

		if err != nil {
			return false, err
		}

		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
	}

	return true, nil
}
