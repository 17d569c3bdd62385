package pdfwriter

import (
	"github.com/tsawler/pdfwriter/core"
	"github.com/tsawler/pdfwriter/internal/filters"
)

// Options holds configuration for a new Document.
type Options struct {
	// File header
	major, minor int
	binaryMarker bool

	// Object layout
	indent   int
	capacity int
	firstID  int32

	// Content stream compression
	compress bool
	level    int
}

// Option changes one setting of a new Document.
type Option func(*Options)

// defaultOptions returns the settings used when no Option is given.
func defaultOptions() Options {
	return Options{
		major:        1,
		minor:        7,
		binaryMarker: true,
		indent:       core.DefaultIndent,
		capacity:     8 * 1024,
		firstID:      1,
		compress:     false,
		level:        filters.DefaultCompression,
	}
}

// WithVersion sets the version written in the file header.
func WithVersion(major, minor int) Option {
	return func(o *Options) {
		o.major, o.minor = major, minor
	}
}

// WithBinaryMarker controls the binary comment line after the header.
func WithBinaryMarker(on bool) Option {
	return func(o *Options) {
		o.binaryMarker = on
	}
}

// WithIndent sets the number of spaces per dictionary nesting level, for the
// document and for chunks created with Document.NewChunk.
func WithIndent(n int) Option {
	return func(o *Options) {
		o.indent = n
	}
}

// WithCapacity sets the initial size of the document buffer in bytes.
func WithCapacity(n int) Option {
	return func(o *Options) {
		o.capacity = n
	}
}

// WithFirstID sets the first object number handed out by Document.Alloc.
func WithFirstID(id int32) Option {
	return func(o *Options) {
		o.firstID = id
	}
}

// WithCompression compresses content streams written with
// Document.Content using Flate at the given level, for example
// filters.BestCompression.
func WithCompression(level int) Option {
	return func(o *Options) {
		o.compress = true
		o.level = level
	}
}
