package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rizzc/pkg/driver"
	"rizzc/pkg/toolchain"
)

const usage = `usage: rizzc <command> [-v] [-o out] file...

commands:
  show       print tokens and AST
  transpile  write the generated C (stdout unless -o is set)
  build      compile to native executables
  run        compile and execute one program

environment:
  CC               C compiler (default gcc)
  RIZZC_CFLAGS     extra flags passed to the C compiler
  RIZZC_KEEP_TEMP  keep the temporary build directory when set to 1
`

// errUsage marks failures that exit with status 2.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "rizzc: ", 0)

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, rest := args[0], args[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Fprint(stdout, usage)
		return 0
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "dump tokens, AST and C as each stage completes")
	outPath := fs.String("o", "", "output path")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: rizzc %s [-v] [-o out] file...\n", cmd)
		fs.PrintDefaults()
	}
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	d := driver.New(stdout, stderr, toolchain.LoadConfig())
	d.Verbose = *verbose

	if err := dispatch(ctx, d, cmd, fs.Args(), *outPath); err != nil {
		logger.Print(err)
		if errors.Is(err, errUsage) || errors.Is(err, driver.ErrNoInput) || errors.Is(err, driver.ErrOutputWithMany) {
			return 2
		}
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, d *driver.Driver, cmd string, files []string, outPath string) error {
	one := func() (string, error) {
		if len(files) != 1 {
			return "", fmt.Errorf("%w: %s takes exactly one file, got %d", errUsage, cmd, len(files))
		}
		return files[0], nil
	}

	switch cmd {
	case "show":
		if len(files) == 0 {
			return driver.ErrNoInput
		}
		for _, path := range files {
			if err := d.Show(path); err != nil {
				return err
			}
		}
		return nil

	case "transpile":
		path, err := one()
		if err != nil {
			return err
		}
		return d.Transpile(path, outPath)

	case "build":
		return d.Build(ctx, files, outPath)

	case "run":
		path, err := one()
		if err != nil {
			return err
		}
		return d.Run(ctx, path)
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}
