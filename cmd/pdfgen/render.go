package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/pdfwriter"
	"github.com/tsawler/pdfwriter/contentstream"
	"github.com/tsawler/pdfwriter/core"
	"github.com/tsawler/pdfwriter/font"
	"github.com/tsawler/pdfwriter/internal/filters"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// renderOptions are the command-line settings that shape the output.
type renderOptions struct {
	major, minor int
	indent       int
	compress     bool
	workers      int
}

// pageRefs holds the object numbers reserved for one page. image is zero
// when the page has no picture.
type pageRefs struct {
	page    core.Ref
	content core.Ref
	image   core.Ref
}

const (
	fontResource  core.Name = "F1"
	imageResource core.Name = "Im1"
)

// render builds the whole document. Pages are written into their own chunks
// by up to opts.workers goroutines and merged in page order, so the output
// does not depend on scheduling.
func render(ctx context.Context, cfg *Config, raw []byte, opts renderOptions, logger *slog.Logger) ([]byte, error) {
	docOpts := []pdfwriter.Option{
		pdfwriter.WithVersion(opts.major, opts.minor),
		pdfwriter.WithIndent(opts.indent),
	}
	if opts.compress {
		docOpts = append(docOpts, pdfwriter.WithCompression(filters.DefaultCompression))
	}
	doc := pdfwriter.New(docOpts...)
	metrics, ok := font.Standard(cfg.Font)
	if !ok {
		return nil, fmt.Errorf("unknown font %q", cfg.Font)
	}
	catalog, tree, fontRef, info := doc.Alloc(), doc.Alloc(), doc.Alloc(), doc.Alloc()

	refs := make([]pageRefs, len(cfg.Pages))
	for i, p := range cfg.Pages {
		refs[i].page = doc.Alloc()
		refs[i].content = doc.Alloc()
		if p.Image != nil {
			refs[i].image = doc.Alloc()
		}
	}

	chunks := make([]*core.Chunk, len(cfg.Pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for i := range cfg.Pages {
		chunks[i] = doc.NewChunk()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writePage(doc, chunks[i], &cfg.Pages[i], refs[i], tree, fontRef, metrics); err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			logger.Debug("page rendered", "page", i+1, "bytes", chunks[i].Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range chunks {
		doc.Extend(c)
	}

	pages := doc.Indirect(tree).Dict()
	pages.Pair("Type", core.Name("Pages"))
	kids := pages.Key("Kids").Array()
	for _, r := range refs {
		kids.Item(r.page)
	}
	kids.End()
	pages.Pair("Count", core.Int(len(refs)))
	pages.End()

	fd := doc.Indirect(fontRef).Dict()
	metrics.WriteDict(fd)
	fd.End()

	meta := doc.DocumentInfo(info)
	for _, e := range []struct {
		key   core.Name
		value string
	}{
		{"Title", cfg.Title},
		{"Author", cfg.Author},
		{"Subject", cfg.Subject},
		{"Keywords", cfg.Keywords},
	} {
		if e.value != "" {
			meta.Pair(e.key, core.TextStr(e.value))
		}
	}
	meta.Pair("Creator", core.TextStr("pdfgen"))
	meta.End()

	doc.Catalog(catalog).Pair("Pages", tree).End()

	// The same description always yields the same identifier.
	sum := blake3.Sum256(raw)
	doc.SetFileID(sum[:16], sum[:16])

	out := doc.Finish(catalog)
	limits := doc.Limits()
	logger.Info("document rendered",
		"pages", len(cfg.Pages),
		"bytes", len(out),
		"max_int", limits.Int(),
		"max_string", limits.StrLen(),
		"max_array", limits.ArrayLen(),
	)
	return out, nil
}

// writePage writes the page dictionary, its content stream and its picture
// into c.
func writePage(doc *pdfwriter.Document, c *core.Chunk, p *Page, refs pageRefs, tree, fontRef core.Ref, metrics *font.Metrics) error {
	var pic *picture
	if p.Image != nil {
		var err error
		if pic, err = loadPicture(p.Image.Path); err != nil {
			return err
		}
	}

	d := c.Indirect(refs.page).Dict()
	d.Pair("Type", core.Name("Page"))
	d.Pair("Parent", tree)
	d.Pair("MediaBox", core.NewRect(0, 0, p.Width, p.Height))
	res := d.Key("Resources").Dict()
	res.Key("Font").Dict().Pair(fontResource, fontRef).End()
	if pic != nil {
		res.Key("XObject").Dict().Pair(imageResource, refs.image).End()
	}
	res.End()
	d.Pair("Contents", refs.content)
	d.End()

	content := contentstream.New()
	if pic != nil {
		w, h := pic.size(p.Image)
		placement := contentstream.Scale(w, h).Multiply(contentstream.Translate(p.Image.X, p.Image.Y))
		content.SaveState().
			Concat(placement).
			XObject(imageResource).
			RestoreState()
	}
	if err := writeLines(content, p, metrics); err != nil {
		return err
	}
	if err := doc.WriteContent(c, refs.content, content); err != nil {
		return err
	}

	if pic != nil {
		writePicture(c, refs.image, pic)
	}
	return nil
}

// writeLines sets the page's lines top to bottom inside the margin, 120% of
// the font size apart. Lines wider than the margin allows are wrapped. Text
// is encoded for the font's WinAnsiEncoding; characters outside it are
// replaced.
func writeLines(content *contentstream.Content, p *Page, metrics *font.Metrics) error {
	if len(p.Lines) == 0 {
		return nil
	}

	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	content.BeginText().
		SetFont(fontResource, p.FontSize).
		SetLeading(p.FontSize*6/5).
		NextLine(p.Margin, p.Height-p.Margin-p.FontSize)

	width := p.Width - 2*p.Margin
	first := true
	for i, line := range p.Lines {
		for _, wrapped := range metrics.Wrap(norm.NFC.String(line), p.FontSize, width) {
			encoded, err := enc.Bytes([]byte(wrapped))
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			if !first {
				content.NextLineUsingLeading()
			}
			first = false
			content.ShowText(core.Str(encoded))
		}
	}
	content.EndText()
	return nil
}
