// Package pdfwriter writes PDF files.
//
// The core package does the work: it encodes primitive values, guards the
// nesting of arrays and dictionaries, and lays out indirect objects,
// the cross-reference table and the trailer. This package adds a Document
// that allocates object numbers, imports independently built chunks and
// writes content streams.
//
// Basic usage:
//
//	doc := pdfwriter.New()
//	catalog, tree, page, content := doc.Alloc(), doc.Alloc(), doc.Alloc(), doc.Alloc()
//
//	doc.Catalog(catalog).Pair("Pages", tree).End()
//	doc.Indirect(tree).Dict().
//	    Pair("Type", core.Name("Pages")).
//	    Pair("Count", core.Int(1)).
//	    Key("Kids").Array().Item(page).End()
//	...
//	err := doc.Save(catalog, "out.pdf")
//
// With options:
//
//	doc := pdfwriter.New(
//	    pdfwriter.WithVersion(1, 4),
//	    pdfwriter.WithIndent(0),
//	    pdfwriter.WithCompression(filters.BestCompression),
//	)
//
// Writers follow a scope discipline: using a parent writer closes its open
// children, and using a closed writer panics. Malformed input from the
// caller is a programming error and panics with a "pdf:" message; only I/O
// and encoding failures are returned as errors.
package pdfwriter

import (
	"fmt"
	"os"

	"github.com/tsawler/pdfwriter/contentstream"
	"github.com/tsawler/pdfwriter/core"
	"github.com/tsawler/pdfwriter/internal/filters"
)

// Document is a PDF file under construction. It embeds *core.Pdf, so
// objects are written with Indirect, Stream, Catalog and the other core
// methods directly on the document.
//
// A Document is not safe for concurrent use. Build parts of a document in
// parallel with NewChunk and merge them with Extend or Import.
type Document struct {
	*core.Pdf
	alloc   core.Ref
	options Options
}

// New creates an empty document.
func New(opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pdf := core.NewPdfWithCapacity(o.capacity)
	pdf.SetVersion(o.major, o.minor)
	pdf.SetBinaryMarker(o.binaryMarker)
	pdf.SetIndent(o.indent)

	return &Document{
		Pdf:     pdf,
		alloc:   core.NewRef(o.firstID),
		options: o,
	}
}

// Alloc returns an unused object number.
func (d *Document) Alloc() core.Ref {
	return d.alloc.Bump()
}

// AllocN returns n consecutive unused object numbers.
func (d *Document) AllocN(n int) []core.Ref {
	refs := make([]core.Ref, n)
	for i := range refs {
		refs[i] = d.alloc.Bump()
	}
	return refs
}

// NewChunk creates an empty chunk with the document's indentation. Objects
// written to it use numbers from Alloc and are merged back with Extend.
func (d *Document) NewChunk() *core.Chunk {
	c := core.NewChunk()
	c.SetIndent(d.options.indent)
	return c
}

// Import appends the objects of c to the document, giving every object and
// every reference in c a fresh number from Alloc. References listed in keep
// are left as they are, so that imported objects can point at objects the
// document already has; the objects of c must not use those numbers. The
// returned map records the numbers that were assigned.
func (d *Document) Import(c *core.Chunk, keep ...core.Ref) map[core.Ref]core.Ref {
	assigned := make(map[core.Ref]core.Ref)
	for _, r := range keep {
		assigned[r] = r
	}
	c.RenumberInto(d.Chunk, func(old core.Ref) core.Ref {
		if r, ok := assigned[old]; ok {
			return r
		}
		r := d.Alloc()
		assigned[old] = r
		return r
	})
	for _, r := range keep {
		delete(assigned, r)
	}
	return assigned
}

// Content finishes c and writes it as a stream object. With WithCompression
// the stream is Flate encoded.
func (d *Document) Content(id core.Ref, c *contentstream.Content) error {
	return d.WriteContent(d.Chunk, id, c)
}

// WriteContent is like Content but writes the stream into target, which is
// usually a chunk from NewChunk being filled on another goroutine. It only
// reads the document's options and may be called concurrently.
func (d *Document) WriteContent(target *core.Chunk, id core.Ref, c *contentstream.Content) error {
	data := c.Finish().Bytes()
	if !d.options.compress {
		target.Stream(id, data).End()
		return nil
	}

	encoded, err := filters.FlateEncode(data, d.options.level, nil)
	if err != nil {
		return fmt.Errorf("content stream %v: %w", id, err)
	}
	target.Stream(id, encoded).Filter(core.FlateDecode).End()
	return nil
}

// Save finishes the document with root as its catalog and writes it to path.
func (d *Document) Save(root core.Ref, path string) error {
	if err := os.WriteFile(path, d.Finish(root), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := pdfwriter.Must(filters.FlateEncode(pixels, filters.BestSpeed, nil))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
