// Package driver implements the command surface over source files: show,
// transpile, build and run.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"rizzc/pkg/compiler"
	"rizzc/pkg/toolchain"
	"rizzc/pkg/utils"
)

var (
	ErrNoInput        = errors.New("no input files")
	ErrOutputWithMany = errors.New("-o cannot be used with more than one input")
)

// Driver runs the compiler pipeline over files and forwards the generated C
// to the toolchain. Verbose dumps tokens, AST and C as each stage finishes.
type Driver struct {
	Out       io.Writer // dumps, transpiled C, program output
	Err       io.Writer // program stderr
	Verbose   bool
	Toolchain *toolchain.Config

	mu sync.Mutex // serialises writes to Out from concurrent builds
}

// New returns a Driver writing to out and errOut.
func New(out, errOut io.Writer, tc *toolchain.Config) *Driver {
	return &Driver{Out: out, Err: errOut, Toolchain: tc}
}

// write copies buf to Out in one piece.
func (d *Driver) write(buf *bytes.Buffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := buf.WriteTo(d.Out)
	return err
}

// load reads path and runs the front end, plus code generation when
// generate is set. Errors are prefixed with the path.
func (d *Driver) load(path string, generate bool) (*compiler.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	compile := compiler.Check
	if generate {
		compile = compiler.Compile
	}
	res, err := compile(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// dump renders the stages of res in the order they were produced.
func dump(buf *bytes.Buffer, path string, res *compiler.Result) {
	fmt.Fprintf(buf, "== %s\n", path)
	fmt.Fprintf(buf, "Tokens (%d)\n", len(res.Tokens))
	for _, tok := range res.Tokens {
		fmt.Fprintln(buf, " ", tok)
	}
	buf.WriteString("\nAST\n")
	for _, s := range res.Program.Stmts {
		fmt.Fprintln(buf, " ", s)
	}
	if res.C != "" {
		buf.WriteString("\nGenerated C\n")
		buf.WriteString(res.C)
	}
	buf.WriteByte('\n')
}

// Show prints the tokens and AST of path. Code is generated and printed
// only in verbose mode.
func (d *Driver) Show(path string) error {
	res, err := d.load(path, d.Verbose)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	dump(&buf, path, res)
	return d.write(&buf)
}

// Transpile writes the C translation of path to outPath, or to Out when
// outPath is empty.
func (d *Driver) Transpile(path, outPath string) error {
	res, err := d.load(path, true)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if d.Verbose {
		dump(&buf, path, res)
	}
	if outPath == "" {
		buf.WriteString(res.C)
		return d.write(&buf)
	}
	if err := d.write(&buf); err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(res.C), 0o644)
}

// Build compiles each path into a native executable. A single input goes
// to outPath when it is set; otherwise each binary is placed next to its
// source. Inputs are built concurrently.
func (d *Driver) Build(ctx context.Context, paths []string, outPath string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}
	if outPath != "" && len(paths) > 1 {
		return ErrOutputWithMany
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path
		target := outPath
		if target == "" {
			target = utils.DefaultOutputPath(path)
		}
		g.Go(func() error {
			return d.buildOne(ctx, path, target)
		})
	}
	return g.Wait()
}

func (d *Driver) buildOne(ctx context.Context, path, target string) error {
	res, err := d.load(path, true)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if d.Verbose {
		dump(&buf, path, res)
	}
	if err := d.Toolchain.Build(ctx, res.C, target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(&buf, "built %s -> %s\n", path, target)
	return d.write(&buf)
}

// Run compiles path and executes it immediately. Program output goes to
// Out and Err.
func (d *Driver) Run(ctx context.Context, path string) error {
	res, err := d.load(path, true)
	if err != nil {
		return err
	}
	if d.Verbose {
		var buf bytes.Buffer
		dump(&buf, path, res)
		if err := d.write(&buf); err != nil {
			return err
		}
	}
	return d.Toolchain.BuildAndRun(ctx, res.C, d.Out, d.Err)
}
