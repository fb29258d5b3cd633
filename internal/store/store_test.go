package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/agent-todo/internal/document"
	"github.com/calvinalkan/agent-todo/internal/fs"
)

func recordText(id int, tags ...string) string {
	quoted := make([]string, 0, len(tags))
	for _, tag := range tags {
		quoted = append(quoted, fmt.Sprintf("%q", tag))
	}

	return fmt.Sprintf("+++\nid = %d\ncreated_at = \"2026-01-02T03:04:05Z\"\ntags = [%s]\n+++\n# Record %d\n",
		id, strings.Join(quoted, ", "), id)
}

func TestNextID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ids  []document.ID
		want document.ID
	}{
		{name: "empty collection", ids: nil, want: 1},
		{name: "single record", ids: []document.ID{1}, want: 2},
		{name: "unordered with gaps", ids: []document.ID{3, 7, 2}, want: 8},
		{name: "starts above one", ids: []document.ID{41}, want: 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			collection := Collection{}
			for _, id := range tc.ids {
				collection[id] = Record{Document: document.Document{FrontMatter: document.FrontMatter{ID: id}}}
			}

			// Map iteration order varies between calls; the result must not.
			for range 20 {
				if got := collection.NextID(); got != tc.want {
					t.Fatalf("NextID()=%d, want=%d", got, tc.want)
				}
			}
		})
	}
}

func TestFileNameIsPaddedAndStable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   document.ID
		want string
	}{
		{id: 0, want: "0000000000.todo.md"},
		{id: 1, want: "0000000001.todo.md"},
		{id: 42, want: "0000000042.todo.md"},
		{id: 4294967295, want: "4294967295.todo.md"},
	}

	for _, tc := range tests {
		if got := FileName(tc.id); got != tc.want {
			t.Errorf("FileName(%d)=%q, want=%q", tc.id, got, tc.want)
		}
	}

	if got, want := RecordPath(42), filepath.Join("tasks", "0000000042.todo.md"); got != want {
		t.Errorf("RecordPath(42)=%q, want=%q", got, want)
	}

	seen := map[string]document.ID{}
	for _, id := range []document.ID{1, 10, 100, 1000, 10000, 99999, 4294967295} {
		name := FileName(id)
		if other, ok := seen[name]; ok {
			t.Fatalf("FileName(%d) collides with FileName(%d): %s", id, other, name)
		}

		seen[name] = id
	}
}

func TestLoadBuildsCollection(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend(map[string]string{
		"0000000001.todo.md": recordText(1, "home"),
		"0000000003.todo.md": recordText(3),
		"renamed.md":         recordText(9, "a", "b"),
		"notes.txt":          recordText(4),
	})

	collection, err := Load(context.Background(), backend, nil)
	require.NoError(t, err)

	got := map[document.ID]string{}
	for id, rec := range collection {
		got[id] = rec.Path
	}

	want := map[document.ID]string{
		1: filepath.Join("tasks", "0000000001.todo.md"),
		3: filepath.Join("tasks", "0000000003.todo.md"),
		9: filepath.Join("tasks", "renamed.md"),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded paths mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"a", "b"}, collection[9].Tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	if got, want := collection.NextID(), document.ID(10); got != want {
		t.Fatalf("NextID()=%d, want=%d", got, want)
	}
}

func TestLoadSkipsUnparsableFiles(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, nil))

	backend := NewMemoryBackend(map[string]string{
		"0000000001.todo.md": recordText(1),
		"garbage.md":         "this file has no delimiters at all\n",
		"badschema.md":       "+++\nid = \"x\"\n+++\n",
	})

	collection, err := Load(context.Background(), backend, logger)
	require.NoError(t, err)

	if got, want := len(collection), 1; got != want {
		t.Fatalf("len(collection)=%d, want=%d", got, want)
	}

	if _, ok := collection.Get(1); !ok {
		t.Fatal("record 1 missing from collection")
	}

	for _, name := range []string{"garbage.md", "badschema.md"} {
		if !strings.Contains(logs.String(), name) {
			t.Errorf("log output does not mention skipped %s:\n%s", name, logs.String())
		}
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend(map[string]string{
		"a.md":               recordText(5),
		"b.md":               recordText(5, "dup"),
		"0000000001.todo.md": recordText(1),
	})

	collection, err := Load(context.Background(), backend, nil)

	require.ErrorIs(t, err, ErrConflict)
	require.Nil(t, collection)
	require.Contains(t, err.Error(), "a.md")
	require.Contains(t, err.Error(), "b.md")
}

func TestLoadHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, NewMemoryBackend(map[string]string{"a.md": recordText(1)}), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollectionSorted(t *testing.T) {
	t.Parallel()

	collection := Collection{}
	for _, id := range []document.ID{5, 1, 3} {
		collection[id] = NewRecord(document.Document{FrontMatter: document.FrontMatter{ID: id}})
	}

	var got []document.ID
	for _, rec := range collection.Sorted() {
		got = append(got, rec.ID)
	}

	if diff := cmp.Diff([]document.ID{1, 3, 5}, got); diff != "" {
		t.Fatalf("Sorted() mismatch (-want +got):\n%s", diff)
	}
}

func TestPutThenLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend(nil)

	doc, err := document.Parse([]byte(recordText(42, "errand")))
	require.NoError(t, err)

	rec := NewRecord(doc)
	require.NoError(t, Put(ctx, backend, rec))

	err = Put(ctx, backend, rec)
	require.ErrorIs(t, err, ErrRecordExists)

	collection, err := Load(ctx, backend, nil)
	require.NoError(t, err)

	got, ok := collection.Get(42)
	require.True(t, ok)

	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("loaded record mismatch (-want +got):\n%s", diff)
	}
}

// -----------------------------------------------------------------------------
// DirBackend Tests
// -----------------------------------------------------------------------------

func TestDirBackendLoadsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "0000000001.todo.md"), recordText(1))
	writeFile(t, filepath.Join(dir, "garbage.md"), "no front matter here")
	writeFile(t, filepath.Join(dir, "README.txt"), recordText(2))

	if err := os.MkdirAll(filepath.Join(dir, "nested.md"), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}

	collection, err := Load(context.Background(), NewDirBackend(fs.NewReal(), dir), nil)
	require.NoError(t, err)

	if got, want := len(collection), 1; got != want {
		t.Fatalf("len(collection)=%d, want=%d", got, want)
	}
}

func TestDirBackendDuplicateIDsOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "first.md"), recordText(5))
	writeFile(t, filepath.Join(dir, "second.md"), recordText(5))

	collection, err := Load(context.Background(), NewDirBackend(fs.NewReal(), dir), nil)
	require.ErrorIs(t, err, ErrConflict)
	require.Nil(t, collection)
}

func TestDirBackendMissingDirectory(t *testing.T) {
	t.Parallel()

	backend := NewDirBackend(fs.NewReal(), filepath.Join(t.TempDir(), "missing"))

	_, err := Load(context.Background(), backend, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirBackendPutWritesCanonicalFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	backend := NewDirBackend(fs.NewReal(), dir)

	doc, err := document.Parse([]byte(recordText(7, "x")))
	require.NoError(t, err)

	require.NoError(t, Put(ctx, backend, NewRecord(doc)))

	data, err := os.ReadFile(filepath.Join(dir, "0000000007.todo.md"))
	require.NoError(t, err)

	if diff := cmp.Diff(recordText(7, "x"), string(data)); diff != "" {
		t.Fatalf("file content mismatch (-want +got):\n%s", diff)
	}

	err = Put(ctx, backend, NewRecord(doc))
	require.ErrorIs(t, err, ErrRecordExists)
}

func TestDirBackendReadMissing(t *testing.T) {
	t.Parallel()

	backend := NewDirBackend(fs.NewReal(), t.TempDir())

	_, err := backend.Read(context.Background(), "nope.md")
	require.True(t, errors.Is(err, ErrRecordNotFound), "err=%v", err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
