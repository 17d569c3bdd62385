package filters

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
	"github.com/tsawler/pdfwriter/core"
)

// Compression levels for FlateEncode.
const (
	NoCompression      = zlib.NoCompression
	BestSpeed          = zlib.BestSpeed
	BestCompression    = zlib.BestCompression
	DefaultCompression = zlib.DefaultCompression
)

// Predictor values as written to /DecodeParms.
const (
	PredictorNone       = 1
	PredictorTIFF       = 2
	PredictorPNGNone    = 10
	PredictorPNGSub     = 11
	PredictorPNGUp      = 12
	PredictorPNGAvg     = 13
	PredictorPNGPaeth   = 14
	PredictorPNGOptimum = 15
)

// Params describes the predictor applied to image data before Flate
// compression. The same values must be written to the stream's /DecodeParms
// so that readers can undo the prediction; see WriteTo.
type Params struct {
	Predictor        int // 1 (none), 2 (TIFF) or 10-15 (PNG)
	Colors           int // Components per pixel, default 1
	BitsPerComponent int // Only 8 is supported, default 8
	Columns          int // Pixels per row, default 1
}

func (p Params) colors() int {
	if p.Colors <= 0 {
		return 1
	}
	return p.Colors
}

func (p Params) bpc() int {
	if p.BitsPerComponent <= 0 {
		return 8
	}
	return p.BitsPerComponent
}

func (p Params) columns() int {
	if p.Columns <= 0 {
		return 1
	}
	return p.Columns
}

// WriteTo writes the parameters that differ from the defaults into a
// /DecodeParms dictionary.
func (p Params) WriteTo(d *core.Dict) {
	if p.Predictor > PredictorNone {
		d.Pair("Predictor", core.Int(p.Predictor))
	}
	if p.colors() != 1 {
		d.Pair("Colors", core.Int(p.colors()))
	}
	if p.bpc() != 8 {
		d.Pair("BitsPerComponent", core.Int(p.bpc()))
	}
	if p.columns() != 1 {
		d.Pair("Columns", core.Int(p.columns()))
	}
}

// FlateEncode compresses data with zlib at the given level. If params is not
// nil, its predictor is applied to the data first.
func FlateEncode(data []byte, level int, params *Params) ([]byte, error) {
	if params != nil && params.Predictor > PredictorNone {
		predicted, err := applyPredictor(data, *params)
		if err != nil {
			return nil, fmt.Errorf("predictor failed: %w", err)
		}
		data = predicted
	}

	compressed, err := zlibCompress(data, level)
	if err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	return compressed, nil
}

// zlibCompress compresses data into a zlib container.
func zlibCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush: %w", err)
	}
	return buf.Bytes(), nil
}

// applyPredictor transforms image rows so that they compress better.
func applyPredictor(data []byte, params Params) ([]byte, error) {
	if params.bpc() != 8 {
		return nil, fmt.Errorf("predictors only support 8 bits per component, got %d", params.bpc())
	}

	switch {
	case params.Predictor == PredictorTIFF:
		return applyTIFFPredictor2(data, params)
	case params.Predictor >= PredictorPNGNone && params.Predictor <= PredictorPNGOptimum:
		return applyPNGPredictor(data, params)
	}
	return nil, fmt.Errorf("unsupported predictor: %d", params.Predictor)
}

// applyTIFFPredictor2 replaces each sample by its difference from the sample
// of the same component in the pixel to its left.
func applyTIFFPredictor2(data []byte, params Params) ([]byte, error) {
	colors := params.colors()
	rowSize := params.columns() * colors
	if len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	result := make([]byte, len(data))
	for rowStart := 0; rowStart < len(data); rowStart += rowSize {
		for col := 0; col < rowSize; col++ {
			idx := rowStart + col
			if col < colors {
				result[idx] = data[idx]
			} else {
				result[idx] = data[idx] - data[idx-colors]
			}
		}
	}
	return result, nil
}

// applyPNGPredictor prefixes each row with a PNG filter type byte followed by
// the filtered row. Predictors 10-14 use one filter type for every row;
// predictor 15 picks the filter per row that minimizes the sum of absolute
// differences.
func applyPNGPredictor(data []byte, params Params) ([]byte, error) {
	bpp := params.colors()
	rowSize := params.columns() * bpp
	if len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	numRows := len(data) / rowSize
	result := make([]byte, 0, numRows*(rowSize+1))
	scratch := make([]byte, rowSize)

	var prev []byte
	for row := 0; row < numRows; row++ {
		cur := data[row*rowSize : (row+1)*rowSize]

		filter := byte(params.Predictor - PredictorPNGNone)
		if params.Predictor == PredictorPNGOptimum {
			filter = bestPNGFilter(cur, prev, bpp, scratch)
		}

		result = append(result, filter)
		result = append(result, make([]byte, rowSize)...)
		encodePNGRow(result[len(result)-rowSize:], cur, prev, filter, bpp)
		prev = cur
	}
	return result, nil
}

func bestPNGFilter(cur, prev []byte, bpp int, scratch []byte) byte {
	best, bestSum := byte(0), -1
	for filter := byte(0); filter <= 4; filter++ {
		encodePNGRow(scratch, cur, prev, filter, bpp)
		sum := 0
		for _, b := range scratch {
			sum += abs(int(int8(b)))
		}
		if bestSum < 0 || sum < bestSum {
			best, bestSum = filter, sum
		}
	}
	return best
}

// encodePNGRow filters one row. Filter types: 0=None, 1=Sub (left), 2=Up
// (above), 3=Average, 4=Paeth. prev is nil for the first row.
func encodePNGRow(dst, cur, prev []byte, filter byte, bpp int) {
	for i := range cur {
		var left, up, upLeft byte
		if i >= bpp {
			left = cur[i-bpp]
		}
		if prev != nil {
			up = prev[i]
			if i >= bpp {
				upLeft = prev[i-bpp]
			}
		}

		var predicted byte
		switch filter {
		case 1:
			predicted = left
		case 2:
			predicted = up
		case 3:
			predicted = byte((int(left) + int(up)) / 2)
		case 4:
			predicted = paethPredictor(left, up, upLeft)
		}
		dst[i] = cur[i] - predicted
	}
}

// paethPredictor implements the Paeth predictor algorithm from the PNG specification.
// It selects the neighbor (left, above, or upper-left) closest to a linear prediction.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
