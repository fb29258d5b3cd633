package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/agent-todo/internal/cli"
)

func TestInitCreatesDirectories(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("init")

	cli.AssertContains(t, stdout, "initialized")

	for _, dir := range []string{c.TasksDir(), c.TemplatesDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}

		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}

	cli.AssertContains(t, c.ReadFile("templates/task.md.hbs"), "id = {{ id }}")
}

func TestInitRefusesExisting(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	stderr := c.MustFail("init")
	cli.AssertContains(t, stderr, "already exist")
}

func TestInitHonoursDataDir(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("--data-dir", "store", "init")

	_, err := os.Stat(filepath.Join(c.Dir, "store", "tasks"))
	if err != nil {
		t.Fatalf("tasks dir not created under --data-dir: %v", err)
	}

	if got, want := c.MustRun("--data-dir", "store", "new"), "tasks/0000000001.todo.md 0000000001.todo.md"; got != want {
		t.Fatalf("stdout=%q, want=%q", got, want)
	}
}
