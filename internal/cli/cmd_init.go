package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/todo"
)

// InitCmd returns the init command.
func InitCmd(cfg *todo.Config, fsys fs.FS) *Command {
	return &Command{
		Flags: flag.NewFlagSet("init", flag.ContinueOnError),
		Usage: "init",
		Short: "Create the tasks and templates directories",
		Long: `Create tasks/ and templates/ in the data directory and seed the default
template. Fails if either directory already exists.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			err := todo.Init(ctx, fsys, cfg.DataDirAbs)
			if err != nil {
				return err
			}

			io.Println("initialized", cfg.DataDirAbs)

			return nil
		},
	}
}
