package document

import (
	"fmt"
	"time"
)

// Timestamp is a timezone-aware point in time stored as a quoted RFC 3339
// string in front matter.
type Timestamp struct {
	time.Time
}

// At wraps t as a [Timestamp].
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Ptr returns a pointer to a copy of t, for optional fields like DueAt.
func (t Timestamp) Ptr() *Timestamp {
	return &t
}

// Equal reports whether t and u represent the same instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Time.Equal(u.Time)
}

// MarshalText formats the timestamp as RFC 3339 with the original offset.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.Format(time.RFC3339Nano)), nil
}

// UnmarshalText parses an RFC 3339 timestamp. Native TOML date-times reach
// this method already formatted by the decoder.
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(text))
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", text, err)
	}

	t.Time = parsed

	return nil
}

// String returns the RFC 3339 form.
func (t Timestamp) String() string {
	return t.Format(time.RFC3339Nano)
}
