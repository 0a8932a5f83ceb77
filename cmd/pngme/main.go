// Command pngme hides messages in PNG files as extra chunks.
//
// Usage:
//
//	pngme [-v] encode [-o out] [-backup suffix] <file> <type> <message>
//	pngme [-v] decode <file> <type>
//	pngme [-v] remove <file> <type>
//	pngme [-v] print <file>...
//	pngme version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/simonhull/pngme"
	"github.com/simonhull/pngme/internal/commands"
)

const usage = `Usage:
  pngme [-v] encode [-o out] [-backup suffix] <file> <type> <message>
  pngme [-v] decode <file> <type>
  pngme [-v] remove <file> <type>
  pngme [-v] print <file>...
  pngme version
`

// errUsage marks command-line mistakes, which exit with status 2.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "pngme: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("pngme", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	verbose := global.Bool("v", false, "log progress to stderr")
	if err := global.Parse(args); err != nil {
		return errUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	cfg := commands.Config{
		Logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		Out:    stdout,
		Width:  terminalWidth(stdout),
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errUsage
	}

	switch cmd, rest := rest[0], rest[1:]; cmd {
	case "encode":
		return runEncode(cfg, rest, stderr)
	case "decode":
		path, typ, err := fileAndType("decode", rest, stderr)
		if err != nil {
			return err
		}
		return commands.Decode(cfg, path, typ)
	case "remove":
		path, typ, err := fileAndType("remove", rest, stderr)
		if err != nil {
			return err
		}
		return commands.Remove(cfg, path, typ)
	case "print":
		fs := newFlagSet("print", stderr)
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		if fs.NArg() == 0 {
			fs.Usage()
			return errUsage
		}
		return commands.Print(ctx, cfg, fs.Args()...)
	case "version":
		info := pngme.GetVersionInfo()
		commit := info.GitCommit
		if info.Modified {
			commit += "+dirty"
		}
		_, err := fmt.Fprintf(stdout, "pngme %s (commit %s, %s, %s)\n",
			info.Version, commit, info.BuildTime, info.GoVersion)
		return err
	default:
		fmt.Fprintf(stderr, "pngme: unknown command %q\n%s", cmd, usage)
		return errUsage
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	return fs
}

func runEncode(cfg commands.Config, args []string, stderr io.Writer) error {
	fs := newFlagSet("encode", stderr)
	output := fs.String("o", "", "write the result to this file instead of the input")
	backup := fs.String("backup", "", "keep the replaced file with this suffix")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return errUsage
	}

	typ, err := pngme.ParseChunkType(fs.Arg(1))
	if err != nil {
		return err
	}
	return commands.Encode(cfg, commands.EncodeArgs{
		Path:    fs.Arg(0),
		Type:    typ,
		Message: fs.Arg(2),
		Output:  *output,
		Backup:  *backup,
	})
}

func fileAndType(name string, args []string, stderr io.Writer) (string, pngme.ChunkType, error) {
	fs := newFlagSet(name, stderr)
	if err := fs.Parse(args); err != nil {
		return "", pngme.ChunkType{}, errUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return "", pngme.ChunkType{}, errUsage
	}
	typ, err := pngme.ParseChunkType(fs.Arg(1))
	if err != nil {
		return "", pngme.ChunkType{}, err
	}
	return fs.Arg(0), typ, nil
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
