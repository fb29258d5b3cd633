package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agent-todo/internal/document"
	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/store"
	"github.com/calvinalkan/agent-todo/internal/todo"
)

var (
	errIDRequired = errors.New("record id is required")
	errInvalidID  = errors.New("invalid record id")
)

// ShowCmd returns the show command.
func ShowCmd(cfg *todo.Config, fsys fs.FS, logger *slog.Logger) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show a record",
		Long:  "Print a record in its canonical front matter form.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execShow(ctx, io, cfg, fsys, logger, args)
		},
	}
}

func execShow(ctx context.Context, io *IO, cfg *todo.Config, fsys fs.FS, logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		return errIDRequired
	}

	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: %s", errInvalidID, args[0])
	}

	ws, err := todo.Open(fsys, *cfg, logger)
	if err != nil {
		return err
	}

	collection, err := ws.Load(ctx)
	if err != nil {
		return err
	}

	rec, ok := collection.Get(document.ID(n))
	if !ok {
		return fmt.Errorf("%w: %d", store.ErrRecordNotFound, n)
	}

	data, err := document.Serialize(rec.Document)
	if err != nil {
		return err
	}

	io.Printf("%s", data)

	return nil
}
