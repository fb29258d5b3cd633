package cli

import (
	"context"
	"log/slog"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/todo"
)

// NewCmd returns the new command.
func NewCmd(cfg *todo.Config, fsys fs.FS, logger *slog.Logger) *Command {
	flags := flag.NewFlagSet("new", flag.ContinueOnError)
	flags.String("template", "", "Template `name` (default from config)")
	flags.String("title", "", "Title passed to the template")
	flags.StringArrayP("tag", "t", nil, "Tag for the record (repeatable)")

	return &Command{
		Flags: flags,
		Usage: "new [flags]",
		Short: "Create a record from a template",
		Long: `Render a template with the next free id and write it to the tasks directory.
Prints the record path relative to the data directory, then its file name.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execNew(ctx, io, cfg, fsys, logger, flags)
		},
	}
}

func execNew(ctx context.Context, io *IO, cfg *todo.Config, fsys fs.FS, logger *slog.Logger, flags *flag.FlagSet) error {
	name, _ := flags.GetString("template")
	title, _ := flags.GetString("title")
	tags, _ := flags.GetStringArray("tag")

	ws, err := todo.Open(fsys, *cfg, logger)
	if err != nil {
		return err
	}

	rec, err := ws.Create(ctx, todo.CreateInput{
		Template: name,
		Title:    title,
		Tags:     tags,
	})
	if err != nil {
		return err
	}

	io.Println(rec.Path, filepath.Base(rec.Path))

	return nil
}
