// Package cli implements the td command line.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agent-todo/internal/fs"
	"github.com/calvinalkan/agent-todo/internal/todo"
)

var errInterrupted = errors.New("interrupted")

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A signal received on it cancels the command's context.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut)

	globals := flag.NewFlagSet("td", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	help := globals.BoolP("help", "h", false, "Show help")
	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	dataDir := globals.String("data-dir", "", "Override the data directory")

	if len(args) > 0 {
		args = args[1:]
	}

	err := globals.Parse(args)
	if err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		printUsage(o.Stderr(), globals, nil)

		return 1
	}

	if globals.Changed("data-dir") && *dataDir == "" {
		o.ErrPrintln("error:", todo.ErrDataDirEmpty)
		o.ErrPrintln()
		printUsage(o.Stderr(), globals, nil)

		return 1
	}

	cfg, err := todo.LoadConfig(todo.LoadConfigInput{
		WorkDirOverride: *workDir,
		ConfigPath:      *configPath,
		DataDirOverride: *dataDir,
		Env:             env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	logger := NewLogger(o.ErrWriter(), cfg.Log)
	fsys := fs.NewReal()

	commands := []*Command{
		NewCmd(&cfg, fsys, logger),
		InitCmd(&cfg, fsys),
		LsCmd(&cfg, fsys, logger),
		ShowCmd(&cfg, fsys, logger),
		PrintConfigCmd(&cfg),
	}

	rest := globals.Args()
	if *help || len(rest) == 0 {
		printUsage(o, globals, commands)

		return 0
	}

	var cmd *Command

	for _, c := range commands {
		if c.Name() == rest[0] {
			cmd = c

			break
		}
	}

	if cmd == nil {
		o.ErrPrintln("error: unknown command:", rest[0])
		o.ErrPrintln()
		printUsage(o.Stderr(), globals, commands)

		return 1
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel(errInterrupted)
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, o, rest[1:])
}

func printUsage(o *IO, globals *flag.FlagSet, commands []*Command) {
	o.Println("td - todo records as plain files")
	o.Println()
	o.Println("Usage: td [global flags] <command> [args]")
	o.Println()
	o.Println("Global flags:")

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	o.Printf("%s", buf.String())

	if len(commands) == 0 {
		return
	}

	o.Println()
	o.Println("Commands:")

	for _, c := range commands {
		o.Println(c.HelpLine())
	}
}
