// Package toolchain hands generated C to a native compiler and runs the result.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultCC is used when CC is unset. Generated code nests functions inside
// main, which needs a GNU C compiler.
const DefaultCC = "gcc"

// ErrNoCompiler is returned when the configured C compiler is not on PATH.
var ErrNoCompiler = errors.New("C compiler not found")

// Config selects the native compiler and how it is invoked.
type Config struct {
	CC       string
	CFlags   []string
	KeepTemp bool // leave the temporary build directory in place
}

// LoadConfig reads CC, RIZZC_CFLAGS and RIZZC_KEEP_TEMP from the environment.
func LoadConfig() *Config {
	cfg := &Config{CC: DefaultCC}
	if cc := strings.TrimSpace(os.Getenv("CC")); cc != "" {
		cfg.CC = cc
	}
	cfg.CFlags = strings.Fields(os.Getenv("RIZZC_CFLAGS"))
	switch strings.ToLower(os.Getenv("RIZZC_KEEP_TEMP")) {
	case "1", "true", "yes":
		cfg.KeepTemp = true
	}
	return cfg
}

// LookPath resolves the configured compiler, wrapping ErrNoCompiler on failure.
func (c *Config) LookPath() (string, error) {
	path, err := exec.LookPath(c.CC)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoCompiler, c.CC)
	}
	return path, nil
}

// tempDir creates a scratch directory and returns it with its cleanup func.
func (c *Config) tempDir() (string, func(), error) {
	dir, err := os.MkdirTemp("", "rizzc-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if !c.KeepTemp {
			os.RemoveAll(dir)
		}
	}
	return dir, cleanup, nil
}

// Build compiles csrc into an executable at outPath.
func (c *Config) Build(ctx context.Context, csrc, outPath string) error {
	cc, err := c.LookPath()
	if err != nil {
		return err
	}

	dir, cleanup, err := c.tempDir()
	if err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}
	defer cleanup()

	srcPath := filepath.Join(dir, "main.c")
	if err := os.WriteFile(srcPath, []byte(csrc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", srcPath, err)
	}

	args := append([]string{}, c.CFlags...)
	args = append(args, "-o", outPath, srcPath)
	cmd := exec.CommandContext(ctx, cc, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w\n%s", c.CC, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Run executes the binary at path, streaming its output.
func (c *Config) Run(ctx context.Context, path string, stdout, stderr io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, abs)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	return nil
}

// BuildAndRun compiles csrc into a temporary executable, runs it, and removes it.
func (c *Config) BuildAndRun(ctx context.Context, csrc string, stdout, stderr io.Writer) error {
	dir, cleanup, err := c.tempDir()
	if err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}
	defer cleanup()

	bin := filepath.Join(dir, "prog")
	if err := c.Build(ctx, csrc, bin); err != nil {
		return err
	}
	return c.Run(ctx, bin, stdout, stderr)
}
