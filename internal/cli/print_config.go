package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agent-todo/internal/todo"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *todo.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPrintConfig(io, cfg)
		},
	}
}

func execPrintConfig(io *IO, cfg *todo.Config) error {
	formatted, err := todo.FormatConfig(*cfg)
	if err != nil {
		return err
	}

	io.Println(formatted)
	io.Println("")
	io.Println("# resolved")
	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("data_dir=" + cfg.DataDirAbs)
	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
