package store

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/calvinalkan/agent-todo/internal/fs"
)

// Backend is the persistence medium behind the tasks directory.
// Names are plain file names relative to that directory.
type Backend interface {
	// List returns the names of all regular files, sorted.
	List(ctx context.Context) ([]string, error)

	// Read returns the content of name.
	Read(ctx context.Context, name string) ([]byte, error)

	// Create writes a new file. It fails with [ErrRecordExists] if name is
	// already taken.
	Create(ctx context.Context, name string, data []byte) error
}

const recordPerms = 0o644

// DirBackend stores records as files in a directory.
type DirBackend struct {
	fs  fs.FS
	dir string
}

// NewDirBackend returns a backend rooted at dir.
func NewDirBackend(fsys fs.FS, dir string) *DirBackend {
	return &DirBackend{fs: fsys, dir: filepath.Clean(dir)}
}

// List returns regular files only; subdirectories and symlinks are skipped.
func (b *DirBackend) List(ctx context.Context) ([]string, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("list %s: canceled: %w", b.dir, context.Cause(ctx))
	}

	entries, err := b.fs.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		names = append(names, entry.Name())
	}

	return names, nil
}

func (b *DirBackend) Read(ctx context.Context, name string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("read %s: canceled: %w", name, context.Cause(ctx))
	}

	data, err := b.fs.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrRecordNotFound, name, err)
		}

		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return data, nil
}

func (b *DirBackend) Create(ctx context.Context, name string, data []byte) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("create %s: canceled: %w", name, context.Cause(ctx))
	}

	path := filepath.Join(b.dir, name)

	exists, err := b.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrRecordExists, path)
	}

	err = b.fs.WriteFileAtomic(path, data, recordPerms)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	return nil
}

// MemoryBackend keeps files in a map. It is safe for concurrent use.
type MemoryBackend struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryBackend returns a backend holding a copy of files.
func NewMemoryBackend(files map[string]string) *MemoryBackend {
	b := &MemoryBackend{files: make(map[string][]byte, len(files))}

	for name, content := range files {
		b.files[name] = []byte(content)
	}

	return b
}

func (b *MemoryBackend) List(ctx context.Context) ([]string, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("list: canceled: %w", context.Cause(ctx))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

func (b *MemoryBackend) Read(ctx context.Context, name string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("read %s: canceled: %w", name, context.Cause(ctx))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}

	return slices.Clone(data), nil
}

func (b *MemoryBackend) Create(ctx context.Context, name string, data []byte) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("create %s: canceled: %w", name, context.Cause(ctx))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.files[name]; ok {
		return fmt.Errorf("%w: %s", ErrRecordExists, name)
	}

	b.files[name] = slices.Clone(data)

	return nil
}

// Compile-time interface checks.
var (
	_ Backend = (*DirBackend)(nil)
	_ Backend = (*MemoryBackend)(nil)
)
