package main

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/pdfwriter/contentstream"
	"github.com/tsawler/pdfwriter/core"
	"github.com/tsawler/pdfwriter/font"
	"golang.org/x/image/bmp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultRenderOptions() renderOptions {
	return renderOptions{major: 1, minor: 7, indent: 0, workers: 4}
}

func mustParse(t *testing.T, data string) *Config {
	t.Helper()
	config, err := ParseConfig([]byte(data))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	return config
}

// writeImage encodes a small test picture to a file in dir.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".jpg":
		err = jpeg.Encode(&buf, img, nil)
	case ".bmp":
		err = bmp.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func rgbaImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 200, A: 255})
		}
	}
	return img
}

// streamPayload returns the payload of the stream object whose dictionary
// contains marker.
func streamPayload(t *testing.T, out []byte, marker string) []byte {
	t.Helper()
	at := bytes.Index(out, []byte(marker))
	if at < 0 {
		t.Fatalf("no stream with %q", marker)
	}
	start := at + bytes.Index(out[at:], []byte("stream\n")) + len("stream\n")
	end := start + bytes.Index(out[start:], []byte("\nendstream"))
	return out[start:end]
}

// TestRenderStructure tests the object layout of a text-only document
func TestRenderStructure(t *testing.T) {
	config := mustParse(t, `
title: Report
pages:
  - lines: [Hello]
  - lines: [World]
`)
	out, err := render(context.Background(), config, []byte("raw"), defaultRenderOptions(), discardLogger())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	doc := string(out)

	wants := []string{
		"%PDF-1.7\n",
		"1 0 obj\n<<\n/Type /Catalog\n/Pages 2 0 R\n>>\nendobj",
		"2 0 obj\n<<\n/Type /Pages\n/Kids [5 0 R 7 0 R]\n/Count 2\n>>\nendobj",
		"3 0 obj\n<<\n/Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>\nendobj",
		"4 0 obj\n<<\n/Title (\xFE\xFF\x00R\x00e\x00p\x00o\x00r\x00t)\n/Creator (",
		"5 0 obj\n<<\n/Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 595 842]\n" +
			"/Resources <<\n/Font <<\n/F1 3 0 R\n>>\n>>\n/Contents 6 0 R\n>>\nendobj",
		"(Hello) Tj",
		"7 0 obj\n<<\n/Type /Page\n/Parent 2 0 R\n",
		"(World) Tj",
		"/Size 9\n/Root 1 0 R\n/Info 4 0 R\n/ID [",
	}
	for _, want := range wants {
		if !strings.Contains(doc, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if !strings.HasSuffix(doc, "%%EOF") {
		t.Errorf("output does not end with %%EOF")
	}
}

// TestRenderDeterministic tests that scheduling does not change the output
func TestRenderDeterministic(t *testing.T) {
	dir := t.TempDir()
	picture := writeImage(t, dir, "p.png", rgbaImage(5, 4))

	var b strings.Builder
	b.WriteString("pages:\n")
	for i := 0; i < 12; i++ {
		b.WriteString("  - lines: [a, b, c]\n")
		if i%3 == 0 {
			b.WriteString("    image: {path: " + picture + "}\n")
		}
	}
	config := mustParse(t, b.String())

	var outputs [][]byte
	for _, workers := range []int{1, 3, 16} {
		opts := defaultRenderOptions()
		opts.workers = workers
		out, err := render(context.Background(), config, []byte(b.String()), opts, discardLogger())
		if err != nil {
			t.Fatalf("render with %d workers failed: %v", workers, err)
		}
		outputs = append(outputs, out)
	}
	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Errorf("output %d differs from output 0", i)
		}
	}
}

// TestRenderFileID tests that the identifier follows the description
func TestRenderFileID(t *testing.T) {
	config := mustParse(t, "pages: [{}]")
	id := func(raw string) string {
		out, err := render(context.Background(), config, []byte(raw), defaultRenderOptions(), discardLogger())
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		s := string(out)
		return s[strings.Index(s, "/ID ["):strings.LastIndex(s, "startxref")]
	}

	if id("a") != id("a") {
		t.Error("same description produced different identifiers")
	}
	if id("a") == id("b") {
		t.Error("different descriptions produced the same identifier")
	}
}

// TestWriteLines tests the text operators of a page
func TestWriteLines(t *testing.T) {
	tests := []struct {
		name string
		font string
		page Page
		want string
	}{
		{
			name: "no lines",
			page: Page{Width: 595, Height: 842, Margin: 72, FontSize: 12},
			want: "",
		},
		{
			name: "two lines",
			page: Page{Width: 595, Height: 842, Margin: 72, FontSize: 12, Lines: []string{"A", "B"}},
			want: "BT\n/F1 12 Tf\n14.4 TL\n72 758 Td\n(A) Tj\nT*\n(B) Tj\nET",
		},
		{
			name: "win ansi",
			page: Page{Width: 200, Height: 100, Margin: 10, FontSize: 10, Lines: []string{"Cafe\u0301 €5"}},
			want: "BT\n/F1 10 Tf\n12 TL\n10 80 Td\n(Caf\xE9 \x805) Tj\nET",
		},
		{
			name: "wrapped",
			font: "Courier",
			page: Page{Width: 200, Height: 100, Margin: 40, FontSize: 10, Lines: []string{"the quick brown fox jumps over", "", "end"}},
			want: "BT\n/F1 10 Tf\n12 TL\n40 50 Td\n(the quick brown fox) Tj\nT*\n(jumps over) Tj\nT*\n() Tj\nT*\n(end) Tj\nET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := tt.font
			if name == "" {
				name = "Helvetica"
			}
			metrics, _ := font.Standard(name)
			content := contentstream.New()
			if err := writeLines(content, &tt.page, metrics); err != nil {
				t.Fatalf("writeLines failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(content.Finish().Bytes())); diff != "" {
				t.Errorf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestWriteLinesUnsupported tests characters outside WinAnsiEncoding
func TestWriteLinesUnsupported(t *testing.T) {
	content := contentstream.New()
	page := Page{Width: 595, Height: 842, Margin: 72, FontSize: 12, Lines: []string{"日本"}}
	metrics, _ := font.Standard("Helvetica")
	if err := writeLines(content, &page, metrics); err != nil {
		t.Fatalf("writeLines failed: %v", err)
	}
	if bytes.Contains(content.Bytes(), []byte("日")) {
		t.Error("UTF-8 text leaked into the content stream")
	}
}

// TestRenderImages tests embedding pictures of each kind
func TestRenderImages(t *testing.T) {
	dir := t.TempDir()
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 40)
	}

	tests := []struct {
		name  string
		file  string
		img   image.Image
		wants []string
	}{
		{
			name: "png rgb",
			file: "rgb.png",
			img:  rgbaImage(4, 3),
			wants: []string{
				"/Type /XObject\n/Subtype /Image\n/Width 4\n/Height 3\n/ColorSpace /DeviceRGB\n/BitsPerComponent 8\n" +
					"/Filter /FlateDecode\n/DecodeParms <<\n/Predictor 15\n/Colors 3\n/Columns 4\n>>",
				"q\n4 0 0 3 72 400 cm\n/Im1 Do\nQ",
			},
		},
		{
			name: "png gray",
			file: "gray.png",
			img:  gray,
			wants: []string{
				"/ColorSpace /DeviceGray\n/BitsPerComponent 8\n/Filter /FlateDecode\n/DecodeParms <<\n/Predictor 15\n/Columns 3\n>>",
			},
		},
		{
			name:  "bmp",
			file:  "pic.bmp",
			img:   rgbaImage(4, 3),
			wants: []string{"/Width 4\n/Height 3\n/ColorSpace /DeviceRGB"},
		},
		{
			name:  "jpeg",
			file:  "pic.jpg",
			img:   rgbaImage(8, 8),
			wants: []string{"/Width 8\n/Height 8\n/ColorSpace /DeviceRGB\n/BitsPerComponent 8\n/Filter /DCTDecode\n>>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.file, tt.img)
			config := mustParse(t, "pages: [{image: {path: "+path+", x: 72, y: 400}}]")

			out, err := render(context.Background(), config, nil, defaultRenderOptions(), discardLogger())
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			for _, want := range tt.wants {
				if !bytes.Contains(out, []byte(want)) {
					t.Errorf("output does not contain %q", want)
				}
			}
			if !bytes.Contains(out, []byte("/XObject <<\n/Im1 7 0 R\n>>")) {
				t.Error("page resources do not name the picture")
			}
		})
	}
}

// TestRenderJPEGPassthrough tests that JPEG data is embedded unchanged
func TestRenderJPEGPassthrough(t *testing.T) {
	path := writeImage(t, t.TempDir(), "pic.jpg", rgbaImage(8, 8))
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	pic, err := loadPicture(path)
	if err != nil {
		t.Fatalf("loadPicture failed: %v", err)
	}
	if pic.filter != core.DCTDecode || !bytes.Equal(pic.data, original) {
		t.Error("JPEG data was re-encoded")
	}
	if w, h := pic.size(&Image{Width: 16}); w != 16 || h != 16 {
		t.Errorf("size = %gx%g, want 16x16", w, h)
	}
}

// TestRenderCompress tests Flate-compressed content streams
func TestRenderCompress(t *testing.T) {
	config := mustParse(t, "pages: [{lines: [compressed]}]")
	opts := defaultRenderOptions()
	opts.compress = true

	out, err := render(context.Background(), config, nil, opts, discardLogger())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	r, err := zlib.NewReader(bytes.NewReader(streamPayload(t, out, "/Filter /FlateDecode")))
	if err != nil {
		t.Fatalf("zlib.NewReader failed: %v", err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Contains(content, []byte("(compressed) Tj")) {
		t.Errorf("content = %q", content)
	}
}

// TestRenderErrors tests failures while rendering pages
func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	config := mustParse(t, "pages: [{}, {image: {path: "+filepath.Join(dir, "missing.png")+"}}]")
	_, err := render(context.Background(), config, nil, defaultRenderOptions(), discardLogger())
	if err == nil || !strings.Contains(err.Error(), "page 2") || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want a page 2 error wrapping os.ErrNotExist", err)
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	config = mustParse(t, "pages: [{image: {path: "+garbage+"}}]")
	if _, err := render(context.Background(), config, nil, defaultRenderOptions(), discardLogger()); !errors.Is(err, image.ErrFormat) {
		t.Errorf("error = %v, want image.ErrFormat", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	config = mustParse(t, "pages: [{}, {}]")
	if _, err := render(ctx, config, nil, defaultRenderOptions(), discardLogger()); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
