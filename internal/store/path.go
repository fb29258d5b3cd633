package store

import (
	"fmt"
	"path/filepath"

	"github.com/calvinalkan/agent-todo/internal/document"
)

const (
	// TasksDir holds record files, relative to the data root.
	TasksDir = "tasks"

	// RecordExt is the extension a file needs to be considered during load.
	RecordExt = ".md"

	// recordSuffix is appended to the padded id of newly created records.
	recordSuffix = ".todo.md"
)

// FileName derives the canonical file name for id. Ten digits cover every
// uint32, so distinct ids never share a name.
func FileName(id document.ID) string {
	return fmt.Sprintf("%010d%s", id, recordSuffix)
}

// RecordPath derives the canonical location of id relative to the data root.
func RecordPath(id document.ID) string {
	return filepath.Join(TasksDir, FileName(id))
}
