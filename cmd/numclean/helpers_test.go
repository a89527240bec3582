package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/numclean/internal/config"
	"github.com/raphi011/numclean/internal/log"
	"github.com/raphi011/numclean/internal/output"
)

// testEnv captures what a command wrote and where its state lives.
type testEnv struct {
	ctx    context.Context
	cfg    *config.Config
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
}

// newTestEnv returns a context with buffered stdout/stderr and a config
// whose history lives in a temp dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(dir, "state", "history.json")

	env := &testEnv{
		cfg:    &cfg,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		dir:    dir,
	}

	ctx := config.WithConfig(context.Background(), env.cfg)
	ctx = log.WithLogger(ctx, log.New(env.stderr, false, false))
	ctx = output.WithPrinter(ctx, env.stdout)
	env.ctx = ctx

	return env
}

// execute runs the root command with args.
func (e *testEnv) execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetContext(e.ctx)
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.Execute()
}

// writeFile creates name inside the env dir and returns its path.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
