// Package document parses and serializes todo record files.
//
// A record file is a TOML front-matter block bounded by two "+++" lines,
// followed by a free-form body:
//
//	+++
//	id = 42
//	created_at = "2026-01-02T03:04:05Z"
//	tags = ["errand"]
//	+++
//	# Buy milk
//
// Only the first two delimiter lines are boundaries. Any further "+++" lines
// belong to the body, which is kept byte for byte.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Delimiter is the line that opens and closes the front-matter block.
const Delimiter = "+++"

var (
	// ErrFormat reports text without an opening and closing delimiter line.
	ErrFormat = errors.New("invalid document format")

	// ErrSchema reports a front-matter block that does not decode into
	// [FrontMatter].
	ErrSchema = errors.New("invalid front matter")
)

// ID identifies a record within a collection.
type ID uint32

// FrontMatter holds the structured attributes of a record.
//
// Nil and empty Tags mean the same thing: both serialize as "tags = []" and
// Parse always returns a non-nil slice.
type FrontMatter struct {
	ID        ID         `toml:"id"`
	CreatedAt Timestamp  `toml:"created_at"`
	DueAt     *Timestamp `toml:"due_at,omitempty"`
	Tags      []string   `toml:"tags"`
}

// Document is a front-matter block paired with an opaque body.
type Document struct {
	FrontMatter

	Body string
}

// requiredKeys must appear in every front-matter block.
var requiredKeys = []string{"id", "created_at", "tags"}

// Parse splits text at its first two delimiter lines and decodes the
// front matter between them. Text before the opening delimiter is ignored.
func Parse(text []byte) (Document, error) {
	frontMatter, body, err := split(text)
	if err != nil {
		return Document{}, err
	}

	var fm FrontMatter

	md, err := toml.Decode(string(frontMatter), &fm)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Document{}, fmt.Errorf("%w: unknown field %q", ErrSchema, undecoded[0].String())
	}

	for _, key := range requiredKeys {
		if !md.IsDefined(key) {
			return Document{}, fmt.Errorf("%w: missing required field %q", ErrSchema, key)
		}
	}

	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	return Document{FrontMatter: fm, Body: string(body)}, nil
}

// Serialize renders doc in the on-disk format. The body is written verbatim.
func Serialize(doc Document) ([]byte, error) {
	fm := doc.FrontMatter
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	var buf bytes.Buffer

	buf.WriteString(Delimiter + "\n")

	err := toml.NewEncoder(&buf).Encode(fm)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}

	buf.WriteString(Delimiter + "\n")
	buf.WriteString(doc.Body)

	return buf.Bytes(), nil
}

// split returns the front-matter segment and the body. It scans line by line
// and stops at the second delimiter line, so the body is never inspected.
func split(text []byte) ([]byte, []byte, error) {
	var fmStart int

	found := 0
	offset := 0

	for offset < len(text) {
		end := bytes.IndexByte(text[offset:], '\n')

		next := len(text)
		line := text[offset:]

		if end >= 0 {
			next = offset + end + 1
			line = text[offset : offset+end]
		}

		if isDelimiter(line) {
			found++

			if found == 1 {
				fmStart = next
			} else {
				return text[fmStart:offset], text[next:], nil
			}
		}

		offset = next
	}

	if found == 0 {
		return nil, nil, fmt.Errorf("%w: missing opening %q line", ErrFormat, Delimiter)
	}

	return nil, nil, fmt.Errorf("%w: missing closing %q line", ErrFormat, Delimiter)
}

func isDelimiter(line []byte) bool {
	return strings.TrimSuffix(string(line), "\r") == Delimiter
}
