package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Runner executes a block of script text with its own error handling.
type Runner interface {
	Run(ctx context.Context, code string) error
}

// WriterRunner emits the script to a writer instead of executing it.
type WriterRunner struct {
	W io.Writer
}

func (r *WriterRunner) Run(_ context.Context, code string) error {
	_, err := io.WriteString(r.W, code)
	return err
}

// AsepriteRunner executes the script through an Aseprite batch invocation.
type AsepriteRunner struct {
	// Binary is the aseprite executable; "aseprite" on PATH when empty.
	Binary string
}

func (r *AsepriteRunner) Run(ctx context.Context, code string) error {
	bin := r.Binary
	if bin == "" {
		bin = "aseprite"
	}

	dir, err := os.MkdirTemp("", "autopaint-*")
	if err != nil {
		return fmt.Errorf("failed to create script dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	path := filepath.Join(dir, "generated.lua")
	if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, "-b", "--script", path)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}
