// Package main provides td, a todo tracker that keeps every record in its
// own TOML front-matter file.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/agent-todo/internal/cli"
)

func main() {
	// SIGINT and SIGTERM cancel the running command's context.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, environ(), sigCh))
}

// environ returns the process environment as a map, the form config
// loading expects.
func environ() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			env[key] = value
		}
	}

	return env
}
