package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// -----------------------------------------------------------------------------
// Exists() Tests
// -----------------------------------------------------------------------------

func TestReal_Exists_ReturnsFalseForNonExistent(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	dir := t.TempDir()

	exists, err := fsys.Exists(filepath.Join(dir, "does-not-exist.md"))

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, false; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

func TestReal_Exists_ReturnsTrueForFileAndDirectory(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	dir := t.TempDir()
	file := filepath.Join(dir, "0000000001.todo.md")
	subdir := filepath.Join(dir, "tasks")

	if err := os.WriteFile(file, []byte("+++\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := os.MkdirAll(subdir, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for _, path := range []string{file, subdir} {
		exists, err := fsys.Exists(path)
		if err != nil {
			t.Fatalf("Exists(%s) err=%v", path, err)
		}

		if !exists {
			t.Fatalf("Exists(%s)=false, want=true", path)
		}
	}
}

// -----------------------------------------------------------------------------
// WriteFileAtomic() Tests
// -----------------------------------------------------------------------------

func TestReal_WriteFileAtomic_CreatesFileWithPerm(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "record.md")

	err := fsys.WriteFileAtomic(path, []byte("hello"), 0o640)
	if err != nil {
		t.Fatalf("WriteFileAtomic err=%v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile err=%v", err)
	}

	if got, want := string(data), "hello"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat err=%v", err)
	}

	if got, want := info.Mode().Perm(), os.FileMode(0o640); got != want {
		t.Fatalf("perm=%v, want=%v", got, want)
	}
}

func TestReal_WriteFileAtomic_NoTempFileLeftOnSuccess(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	dir := t.TempDir()

	err := fsys.WriteFileAtomic(filepath.Join(dir, "record.md"), []byte("hello"), 0o644)
	if err != nil {
		t.Fatalf("WriteFileAtomic err=%v", err)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir err=%v", err)
	}

	if got, want := len(entries), 1; got != want {
		t.Fatalf("entries=%d, want=%d (%v)", got, want, entries)
	}
}

func TestReal_WriteFileAtomic_MissingDirectoryFails(t *testing.T) {
	t.Parallel()

	fsys := NewReal()
	path := filepath.Join(t.TempDir(), "missing", "record.md")

	err := fsys.WriteFileAtomic(path, []byte("hello"), 0o644)
	if err == nil {
		t.Fatal("WriteFileAtomic into missing directory succeeded, want error")
	}
}
