package pngme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ReadFile reads a whole file. Failures are reported as a *DecodeError of
// kind KindIO wrapping the underlying *fs.PathError.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Kind: KindIO, Path: path, Err: err}
	}
	return data, nil
}

// Open reads a PNG file and parses its chunks.
//
// The whole file is read into memory; PNG files that carry hidden
// messages are small enough that streaming would only add complexity.
//
// Options can be provided to customize parsing behavior:
//
//	png, err := pngme.Open("cat.png",
//	    pngme.WithStrictStructure(),
//	    pngme.WithMaxFileSize(10*1024*1024),
//	)
//
// Example:
//
//	png, err := pngme.Open("cat.png")
//	if err != nil {
//		return err
//	}
//	if c, ok := png.ChunkByType("ruSt"); ok {
//		msg, _ := c.DataString()
//		fmt.Println(msg)
//	}
func Open(path string, opts ...Option) (*PNG, error) {
	options := applyOptions(opts)

	if options.maxFileSize > 0 {
		stat, err := os.Stat(path)
		if err != nil {
			return nil, &DecodeError{Kind: KindIO, Path: path, Err: err}
		}
		if stat.Size() > options.maxFileSize {
			return nil, &DecodeError{
				Kind: KindIO,
				Path: path,
				Err:  fmt.Errorf("file size %d exceeds limit %d", stat.Size(), options.maxFileSize),
			}
		}
	}

	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	p, err := parse(data, options.logger.With("path", path))
	if err != nil {
		return nil, withPath(err, path)
	}
	p.Path = path

	if options.strictStructure {
		if err := p.ValidateStructure(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// withPath returns a copy of a *DecodeError annotated with path.
func withPath(err error, path string) error {
	var de *DecodeError
	if !errors.As(err, &de) {
		return fmt.Errorf("%s: %w", path, err)
	}
	annotated := *de
	annotated.Path = path
	return &annotated
}

// OpenContext opens a file with context support for cancellation.
//
// Parsing is bounded by the file size and never blocks, so the context
// is only checked before the file is read.
func OpenContext(ctx context.Context, path string, opts ...Option) (*PNG, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple PNG files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining work and is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	pngs, err := pngme.OpenMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range pngs {
//		fmt.Printf("%s: %d chunks\n", p.Path, p.Len())
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*PNG, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*PNG, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			p, err := OpenContext(ctx, path, opts...)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
