package store

import "errors"

// ErrConflict reports two record files declaring the same id.
var ErrConflict = errors.New("duplicate record id")

// ErrRecordExists reports a create that would overwrite an existing file.
var ErrRecordExists = errors.New("record file already exists")

// ErrRecordNotFound reports a lookup for a name the backend does not hold.
var ErrRecordNotFound = errors.New("record not found")
