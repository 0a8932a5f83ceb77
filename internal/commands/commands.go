// Package commands implements the pngme subcommands on top of the pngme
// package. Each command writes its user-facing output to an io.Writer so
// the CLI and tests share one code path.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/simonhull/pngme"
)

// Config carries the settings shared by every command.
type Config struct {
	Logger *slog.Logger
	Out    io.Writer
	// Width truncates print output lines; 0 disables truncation.
	Width int
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c Config) openOptions() []pngme.Option {
	return []pngme.Option{pngme.WithLogger(c.Logger)}
}

// EncodeArgs are the inputs to Encode.
type EncodeArgs struct {
	Path    string
	Type    pngme.ChunkType
	Message string
	// Output is the file to write; empty means overwrite Path.
	Output string
	// Backup is the suffix for a copy of the replaced file; empty disables it.
	Backup string
}

// Encode appends a chunk holding args.Message to the PNG at args.Path.
func Encode(cfg Config, args EncodeArgs) error {
	p, err := pngme.Open(args.Path, cfg.openOptions()...)
	if err != nil {
		return err
	}

	c, err := pngme.NewCheckedChunk(args.Type, []byte(args.Message))
	if err != nil {
		return err
	}
	p.AppendChunk(c)

	out := args.Output
	if out == "" {
		out = args.Path
	}
	var opts []pngme.SaveOption
	if args.Backup != "" {
		opts = append(opts, pngme.WithBackup(args.Backup))
	}
	if err := p.SaveAs(out, opts...); err != nil {
		return err
	}

	cfg.logger().Info("encoded message",
		slog.String("path", out),
		slog.String("type", args.Type.String()),
		slog.Int("bytes", len(args.Message)))
	return nil
}

// Decode prints the message in the first chunk of type typ.
func Decode(cfg Config, path string, typ pngme.ChunkType) error {
	p, err := pngme.Open(path, cfg.openOptions()...)
	if err != nil {
		return err
	}

	c, ok := p.ChunkByType(typ.String())
	if !ok {
		return &pngme.DecodeError{Kind: pngme.KindNotFound, Type: typ.String(), Path: path}
	}
	msg, err := c.DataString()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cfg.Out, msg)
	return err
}

// Remove deletes the first chunk of type typ from the file and prints it.
func Remove(cfg Config, path string, typ pngme.ChunkType) error {
	p, err := pngme.Open(path, cfg.openOptions()...)
	if err != nil {
		return err
	}

	removed, err := p.RemoveFirstChunk(typ.String())
	if err != nil {
		return err
	}
	if err := p.Save(); err != nil {
		return err
	}

	cfg.logger().Info("removed chunk", slog.String("path", path), slog.String("type", typ.String()))
	_, err = fmt.Fprintln(cfg.Out, removed)
	return err
}

// Print lists every chunk of each file, one line per chunk followed by
// any fields decoded from well-known chunk types.
func Print(ctx context.Context, cfg Config, paths ...string) error {
	pngs, err := pngme.OpenMany(ctx, paths, cfg.openOptions()...)
	if err != nil {
		return err
	}

	for i, p := range pngs {
		if i > 0 {
			fmt.Fprintln(cfg.Out)
		}
		if len(pngs) > 1 {
			fmt.Fprintf(cfg.Out, "%s:\n", p.Path)
		}
		if err := printPNG(cfg, p); err != nil {
			return err
		}
	}
	return nil
}

func printPNG(cfg Config, p *pngme.PNG) error {
	line := func(format string, args ...any) {
		fmt.Fprintln(cfg.Out, truncate(fmt.Sprintf(format, args...), cfg.Width))
	}

	line("%-4s %10s %10s  %s", "TYPE", "LENGTH", "CRC", "FLAGS")
	for _, c := range p.Chunks() {
		line("%-4s %10d 0x%08x  %s", c.Type(), c.Length(), c.CRC(), pngme.Flags(c.Type()))

		fields, ok, err := pngme.Describe(c)
		if !ok {
			continue
		}
		if err != nil {
			line("     ! %v", err)
			continue
		}
		for _, f := range fields {
			line("     %s: %s", f.Name, f.Value)
		}
	}
	return nil
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
