// Package template turns named handlebars templates into todo records.
//
// Templates are plain files named "<name>.md.hbs" in the templates
// directory. Their rendered output must itself be a valid record document;
// it is parsed with the same codec as files on disk and never repaired.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aymerick/raymond"

	"github.com/calvinalkan/agent-todo/internal/document"
	"github.com/calvinalkan/agent-todo/internal/fs"
)

const (
	// Ext is the file extension of template files.
	Ext = ".md.hbs"

	// DefaultName is used when no template is requested.
	DefaultName = "task"
)

// DefaultSource is the template seeded into a fresh data directory.
const DefaultSource = `+++
id = {{ id }}
created_at = "{{ created_at }}"
tags = [ {{#each tags}}{{#if @index}}, {{/if}}{{toml this}}{{/each}} ]
+++

# {{#if title}}{{{title}}}{{else}}Title{{/if}}

`

var (
	// ErrTemplate reports a template that cannot be loaded or rendered.
	ErrTemplate = errors.New("template error")

	// ErrTemplateNotFound reports a render of an unregistered name.
	ErrTemplateNotFound = fmt.Errorf("%w: template not found", ErrTemplate)
)

// Vars are the values a template is rendered against.
type Vars struct {
	ID        document.ID
	CreatedAt time.Time
	Tags      []string
	Title     string
}

// context returns the handlebars context. Timestamps are preformatted as
// RFC 3339 strings.
func (v Vars) context() map[string]any {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	ctx := map[string]any{
		"id":         uint32(v.ID),
		"created_at": v.CreatedAt.Format(time.RFC3339Nano),
		"tags":       tags,
	}

	if v.Title != "" {
		ctx["title"] = v.Title
	}

	return ctx
}

// Registry holds parsed templates by name.
type Registry struct {
	templates map[string]*raymond.Template
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*raymond.Template)}
}

// LoadRegistry parses every template file in dir. A template that fails to
// parse fails the whole load.
func LoadRegistry(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	reg := NewRegistry()

	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), Ext)
		if !ok || name == "" || entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		source, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}

		err = reg.Register(name, string(source))
		if err != nil {
			return nil, fmt.Errorf("load templates: %s: %w", path, err)
		}
	}

	return reg, nil
}

// Register parses source and stores it under name, replacing any previous
// template with that name.
func (r *Registry) Register(name, source string) error {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: parse %q: %w", ErrTemplate, name, err)
	}

	tpl.RegisterHelper(tomlHelperName, tomlString)

	r.templates[name] = tpl

	return nil
}

// tomlHelperName is the helper that renders a value as a quoted TOML string,
// e.g. {{toml this}}. Its output is not HTML-escaped.
const tomlHelperName = "toml"

func tomlString(value any) raymond.SafeString {
	var buf bytes.Buffer

	err := toml.NewEncoder(&buf).Encode(struct {
		V string `toml:"v"`
	}{V: raymond.Str(value)})
	if err != nil {
		panic(fmt.Sprintf("toml helper: %v", err))
	}

	quoted := strings.TrimPrefix(strings.TrimSpace(buf.String()), "v = ")

	return raymond.SafeString(quoted)
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Render executes the named template against vars.
func (r *Registry) Render(name string, vars Vars) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	out, err := tpl.Exec(vars.context())
	if err != nil {
		return "", fmt.Errorf("%w: render %q: %w", ErrTemplate, name, err)
	}

	return out, nil
}
