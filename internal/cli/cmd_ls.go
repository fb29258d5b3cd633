package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/todo"
)

// LsCmd returns the ls command.
func LsCmd(cfg *todo.Config, fsys fs.FS, logger *slog.Logger) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	flags.String("tag", "", "Only list records carrying `tag`")

	return &Command{
		Flags: flags,
		Usage: "ls [flags]",
		Short: "List records",
		Long: `List records ordered by id. Each line shows id, created_at, due_at
(or -), comma separated tags (or -) and the record path.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execLs(ctx, io, cfg, fsys, logger, flags)
		},
	}
}

func execLs(ctx context.Context, io *IO, cfg *todo.Config, fsys fs.FS, logger *slog.Logger, flags *flag.FlagSet) error {
	tag, _ := flags.GetString("tag")

	ws, err := todo.Open(fsys, *cfg, logger)
	if err != nil {
		return err
	}

	collection, err := ws.Load(ctx)
	if err != nil {
		return err
	}

	for _, rec := range collection.Sorted() {
		if tag != "" && !slices.Contains(rec.Tags, tag) {
			continue
		}

		due := "-"
		if rec.DueAt != nil {
			due = rec.DueAt.String()
		}

		tags := "-"
		if len(rec.Tags) > 0 {
			tags = strings.Join(rec.Tags, ",")
		}

		io.Printf("%d\t%s\t%s\t%s\t%s\n", rec.ID, rec.CreatedAt, due, tags, rec.Path)
	}

	return nil
}
