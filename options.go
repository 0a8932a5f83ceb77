package pngme

import (
	"io/fs"
	"log/slog"
)

// discardLogger is used when no logger is configured.
var discardLogger = slog.New(slog.DiscardHandler)

// Option configures behavior when opening PNG files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	png, err := pngme.Open("cat.png",
//	    pngme.WithStrictStructure(),
//	    pngme.WithLogger(slog.Default()),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	logger          *slog.Logger // Receives per-chunk debug records
	maxFileSize     int64        // Maximum file size in bytes (0 = no limit)
	strictStructure bool         // Require IHDR first and IEND last
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger:          discardLogger,
		maxFileSize:     0, // No limit
		strictStructure: false,
	}
}

func applyOptions(opts []Option) *openOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithStrictStructure makes Open fail unless the file starts with a
// single IHDR chunk and ends with a single IEND chunk.
//
// By default only the chunk framing is checked, which is all that is
// needed to add or remove chunks safely.
//
// Example:
//
//	png, err := pngme.Open("cat.png", pngme.WithStrictStructure())
//	// errors.Is(err, pngme.ErrInvalidStructure) for malformed layouts
func WithStrictStructure() Option {
	return func(o *openOptions) {
		o.strictStructure = true
	}
}

// WithLogger sets the logger that receives a debug record for every
// parsed chunk. A nil logger restores the default, which discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger == nil {
			logger = discardLogger
		}
		o.logger = logger
	}
}

// WithMaxFileSize rejects files larger than the given number of bytes
// before reading them.
//
// Default is 0 (no limit).
//
// Example:
//
//	// Refuse anything over 50MB
//	png, err := pngme.Open("cat.png", pngme.WithMaxFileSize(50*1024*1024))
func WithMaxFileSize(bytes int64) Option {
	return func(o *openOptions) {
		o.maxFileSize = bytes
	}
}

// SaveOption configures Save and SaveAs.
//
//	err := png.Save(pngme.WithBackup(".bak"), pngme.WithValidation())
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix    string      // keep the replaced file as path+suffix
	perm            fs.FileMode // mode for new files (0 = 0644)
	validate        bool        // re-open and compare after writing
	preserveModTime bool        // copy the replaced file's mtime
}

func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup keeps the file being replaced as path+suffix, so
// WithBackup(".bak") leaves the previous "cat.png" at "cat.png.bak".
// An existing backup is overwritten. Nothing is backed up when the output
// does not exist yet.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithFileMode sets the permission bits of a newly created output file.
// A file that already exists keeps its own mode.
func WithFileMode(perm fs.FileMode) SaveOption {
	return func(o *saveOptions) {
		o.perm = perm.Perm()
	}
}

// WithValidation re-opens the written file and checks that it parses back
// to exactly the bytes that were saved.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the modification time of the file being
// replaced, so hiding a message does not change the file's date.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
