package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/tsawler/pdfwriter/core"
	"github.com/tsawler/pdfwriter/internal/filters"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// picture is an image ready to be written as an image XObject.
type picture struct {
	width, height int
	colorSpace    core.Name
	data          []byte
	filter        core.Filter
	params        *filters.Params
}

// loadPicture reads an image file. Baseline JPEG files are embedded as they
// are; everything else is decoded and stored as Flate-compressed samples.
func loadPicture(path string) (*picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image %s is empty", path)
	}
	if format == "jpeg" {
		if space, ok := jpegColorSpace(cfg.ColorModel); ok {
			return &picture{
				width:      cfg.Width,
				height:     cfg.Height,
				colorSpace: space,
				data:       data,
				filter:     core.DCTDecode,
			}, nil
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return encodePicture(img)
}

// jpegColorSpace returns the color space a reader must use for JPEG data
// passed through unchanged. CMYK JPEG files are usually stored inverted and
// are decoded instead.
func jpegColorSpace(m color.Model) (core.Name, bool) {
	switch m {
	case color.GrayModel:
		return "DeviceGray", true
	case color.YCbCrModel:
		return "DeviceRGB", true
	}
	return "", false
}

// encodePicture converts img to 8-bit gray or RGB samples and compresses
// them with a per-row PNG predictor. Transparent pixels are blended onto
// white.
func encodePicture(img image.Image) (*picture, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	colors, space := 3, core.Name("DeviceRGB")
	if _, ok := img.(*image.Gray); ok {
		colors, space = 1, "DeviceGray"
	}

	samples := make([]byte, 0, w*h*colors)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			bg := 0xffff - a
			r, g, bl = r+bg, g+bg, bl+bg
			if colors == 1 {
				samples = append(samples, byte(r>>8))
			} else {
				samples = append(samples, byte(r>>8), byte(g>>8), byte(bl>>8))
			}
		}
	}

	params := &filters.Params{
		Predictor: filters.PredictorPNGOptimum,
		Colors:    colors,
		Columns:   w,
	}
	data, err := filters.FlateEncode(samples, filters.BestCompression, params)
	if err != nil {
		return nil, fmt.Errorf("failed to compress image: %w", err)
	}

	return &picture{
		width:      w,
		height:     h,
		colorSpace: space,
		data:       data,
		filter:     core.FlateDecode,
		params:     params,
	}, nil
}

// writePicture writes p as an image XObject.
func writePicture(c *core.Chunk, id core.Ref, p *picture) {
	s := c.Stream(id, p.data)
	s.Pair("Type", core.Name("XObject"))
	s.Pair("Subtype", core.Name("Image"))
	s.Pair("Width", core.Int(p.width))
	s.Pair("Height", core.Int(p.height))
	s.Pair("ColorSpace", p.colorSpace)
	s.Pair("BitsPerComponent", core.Int(8))
	s.Filter(p.filter)
	if p.params != nil {
		dp := s.DecodeParms()
		p.params.WriteTo(dp)
		dp.End()
	}
	s.End()
}

// size returns the drawn size of p, filling in what placement leaves out.
func (p *picture) size(placement *Image) (width, height float32) {
	width, height = placement.Width, placement.Height
	if width == 0 {
		width = float32(p.width)
	}
	if height == 0 {
		height = width * float32(p.height) / float32(p.width)
	}
	return width, height
}
