package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one td subcommand.
type Command struct {
	// Flags holds the subcommand's own flags. Global flags are parsed by Run
	// before the subcommand is chosen.
	Flags *flag.FlagSet

	// Usage is the synopsis after "td", starting with the command name,
	// e.g. "show <id>".
	Usage string

	// Short is the line shown in the command list.
	Short string

	// Long is shown by "td <command> --help". Short is used when empty.
	Long string

	// Exec receives the positional arguments left after flag parsing.
	Exec func(ctx context.Context, io *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine formats the command for the list in "td --help".
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp writes the synopsis, description and flag defaults.
func (c *Command) PrintHelp(io *IO) {
	io.Println("Usage: td", c.Usage)
	io.Println()

	if c.Long != "" {
		io.Println(c.Long)
	} else {
		io.Println(c.Short)
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	var defaults strings.Builder

	c.Flags.SetOutput(&defaults)
	c.Flags.PrintDefaults()

	io.Println()
	io.Println("Flags:")
	io.Printf("%s", defaults.String())
}

// Run parses args against the command's flags and calls Exec. It returns the
// process exit code: 0 on success or --help, 1 on any error. Errors go to
// stderr as "error: <msg>"; flag errors are followed by the command help.
func (c *Command) Run(ctx context.Context, io *IO, args []string) int {
	// pflag prints its own usage on errors; help is printed here instead.
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		c.PrintHelp(io)

		return 0
	case err != nil:
		io.ErrPrintln("error:", err)
		io.ErrPrintln()
		c.PrintHelp(io.Stderr())

		return 1
	}

	err = c.Exec(ctx, io, c.Flags.Args())
	if err != nil {
		io.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
