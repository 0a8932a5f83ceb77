package pngme

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ioError wraps a failed file operation as a KindIO DecodeError.
func ioError(path, op string, err error) error {
	return &DecodeError{Kind: KindIO, Path: path, Err: fmt.Errorf("%s: %w", op, err)}
}

// Save writes the PNG back to the file it was opened from.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the original path. If any step fails, the original file remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := png.Save(
//	    pngme.WithBackup(".bak"),
//	    pngme.WithValidation(),
//	)
func (p *PNG) Save(opts ...SaveOption) error {
	if p.Path == "" {
		return &DecodeError{Kind: KindIO, Err: errors.New("save: PNG has no path; use SaveAs")}
	}
	return p.SaveAs(p.Path, opts...)
}

// SaveAs writes the PNG to a new location.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the output path. If any step fails, any partially written data is cleaned up.
// An existing output file keeps its permission bits.
func (p *PNG) SaveAs(outputPath string, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	perm := cmp.Or(options.perm, 0o644)
	var origInfo fs.FileInfo
	if info, err := os.Stat(outputPath); err == nil {
		origInfo = info
		perm = info.Mode().Perm()
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(outputPath), ".pngme-*.tmp")
	if err != nil {
		return ioError(outputPath, "create temp file", err)
	}
	tempPath := tempFile.Name()

	// Ensure cleanup on any error
	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := p.WriteTo(tempFile); err != nil {
		return ioError(outputPath, "write", err)
	}

	if err := tempFile.Chmod(perm); err != nil {
		return ioError(outputPath, "chmod temp file", err)
	}

	// Sync temp file (fsync) to ensure data is on disk
	if err := tempFile.Sync(); err != nil {
		return ioError(outputPath, "sync temp file", err)
	}

	if err := tempFile.Close(); err != nil {
		return ioError(outputPath, "close temp file", err)
	}

	// Handle backup option (rename original to backup before replace)
	if options.backupSuffix != "" && origInfo != nil {
		if err := os.Rename(outputPath, outputPath+options.backupSuffix); err != nil {
			return ioError(outputPath, "create backup", err)
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return ioError(outputPath, "rename temp to output", err)
	}

	// Mark success so defer doesn't clean up
	success = true

	if options.preserveModTime && origInfo != nil {
		_ = os.Chtimes(outputPath, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := p.validateWrittenFile(outputPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// validateWrittenFile re-opens the file and compares it with the in-memory PNG.
func (p *PNG) validateWrittenFile(path string) error {
	written, err := Open(path)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}

	if written.Len() != p.Len() {
		return fmt.Errorf("chunk count mismatch: got %d, want %d", written.Len(), p.Len())
	}
	if !bytes.Equal(written.Bytes(), p.Bytes()) {
		return fmt.Errorf("content mismatch after write")
	}

	return nil
}
