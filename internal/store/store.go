// Package store assembles todo records into an in-memory collection.
//
// The tasks directory is the database: every file is one record and the
// collection is rebuilt from scratch on each load. Nothing besides the record
// files is persisted.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/calvinalkan/agent-todo/internal/document"
)

// Record is a document bound to its location relative to the data root.
type Record struct {
	document.Document

	Path string
}

// NewRecord binds doc to its canonical path.
func NewRecord(doc document.Document) Record {
	return Record{Document: doc, Path: RecordPath(doc.ID)}
}

// Collection maps record ids to records.
type Collection map[document.ID]Record

// NextID returns one past the highest id in c, or 1 when c is empty. It
// wraps to 0 once the highest possible id is taken.
func (c Collection) NextID() document.ID {
	if len(c) == 0 {
		return 1
	}

	return slices.Max(slices.Collect(maps.Keys(c))) + 1
}

// Get returns the record with id.
func (c Collection) Get(id document.ID) (Record, bool) {
	rec, ok := c[id]

	return rec, ok
}

// Sorted returns all records ordered by id.
func (c Collection) Sorted() []Record {
	records := slices.Collect(maps.Values(c))
	slices.SortFunc(records, func(a, b Record) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return records
}

// Load reads every record file from backend.
//
// Files without the [RecordExt] extension are ignored. Files that cannot be
// read or parsed are logged and skipped. Two files declaring the same id
// abort the load with [ErrConflict] and no collection is returned.
func Load(ctx context.Context, backend Backend, logger *slog.Logger) (Collection, error) {
	if ctx == nil {
		return nil, errors.New("load records: context is nil")
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	names, err := backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	collection := make(Collection, len(names))
	sources := make(map[document.ID]string, len(names))

	for _, name := range names {
		err := ctx.Err()
		if err != nil {
			return nil, fmt.Errorf("load records: canceled: %w", context.Cause(ctx))
		}

		if !strings.HasSuffix(name, RecordExt) {
			continue
		}

		data, err := backend.Read(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("load records: canceled: %w", context.Cause(ctx))
			}

			logger.Warn("skipping unreadable record", "file", name, "err", err)

			continue
		}

		doc, err := document.Parse(data)
		if err != nil {
			logger.Warn("skipping unparsable record", "file", name, "err", err)

			continue
		}

		if prev, ok := sources[doc.ID]; ok {
			return nil, fmt.Errorf("load records: %w %d in %s and %s", ErrConflict, doc.ID, prev, name)
		}

		sources[doc.ID] = name
		collection[doc.ID] = Record{Document: doc, Path: filepath.Join(TasksDir, name)}
	}

	logger.Debug("loaded records", "count", len(collection), "files", len(names))

	return collection, nil
}

// Put serializes rec and creates its canonical file in backend. Existing
// files are never overwritten.
func Put(ctx context.Context, backend Backend, rec Record) error {
	data, err := document.Serialize(rec.Document)
	if err != nil {
		return fmt.Errorf("put record %d: %w", rec.ID, err)
	}

	err = backend.Create(ctx, FileName(rec.ID), data)
	if err != nil {
		return fmt.Errorf("put record %d: %w", rec.ID, err)
	}

	return nil
}
