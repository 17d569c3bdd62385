package filters

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tsawler/pdfwriter/core"
)

// zlibDecompress decompresses with the standard library for cross-checking.
func zlibDecompress(t *testing.T, data []byte) []byte {
	t.Helper()
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("zlib.NewReader failed: %v", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("zlib read failed: %v", err)
	}
	return out
}

// runLengthDecode reverses RunLengthEncode.
func runLengthDecode(t *testing.T, data []byte) []byte {
	t.Helper()
	var out []byte
	for i := 0; i < len(data); {
		n := int(data[i])
		switch {
		case n == 128:
			if i != len(data)-1 {
				t.Fatalf("data after EOD marker at %d", i)
			}
			return out
		case n < 128:
			out = append(out, data[i+1:i+2+n]...)
			i += 2 + n
		default:
			out = append(out, bytes.Repeat(data[i+1:i+2], 257-n)...)
			i += 2
		}
	}
	t.Fatal("missing EOD marker")
	return nil
}

// unpredictPNG reverses applyPNGPredictor.
func unpredictPNG(data []byte, columns, bpp int) []byte {
	rowSize := columns * bpp
	var out, prev []byte
	for start := 0; start < len(data); start += rowSize + 1 {
		filter := data[start]
		row := data[start+1 : start+1+rowSize]
		cur := make([]byte, rowSize)
		for i := range row {
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
			cur[i] = row[i] + predicted
		}
		out = append(out, cur...)
		prev = cur
	}
	return out
}

func gradient(columns, rows, colors int) []byte {
	out := make([]byte, 0, columns*rows*colors)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			for c := 0; c < colors; c++ {
				out = append(out, byte(x*3+y*5+c*40))
			}
		}
	}
	return out
}

// TestFlateEncodeBasic tests basic zlib compression
func TestFlateEncodeBasic(t *testing.T) {
	original := []byte(strings.Repeat("Hello, World! This is test data for FlateDecode. ", 20))

	for _, level := range []int{NoCompression, BestSpeed, DefaultCompression, BestCompression} {
		encoded, err := FlateEncode(original, level, nil)
		if err != nil {
			t.Fatalf("FlateEncode(level %d) failed: %v", level, err)
		}
		if got := zlibDecompress(t, encoded); !bytes.Equal(got, original) {
			t.Errorf("level %d: decoded data doesn't match original", level)
		}
		if level != NoCompression && len(encoded) >= len(original) {
			t.Errorf("level %d: %d bytes compressed to %d", level, len(original), len(encoded))
		}
	}
}

// TestFlateEncodeInvalidLevel tests that an out of range level is reported
func TestFlateEncodeInvalidLevel(t *testing.T) {
	if _, err := FlateEncode([]byte("x"), 42, nil); err == nil {
		t.Error("expected an error for compression level 42")
	}
}

// TestPNGPredictors tests every PNG predictor against a reference decoder
func TestPNGPredictors(t *testing.T) {
	const columns, rows, colors = 7, 5, 3
	original := gradient(columns, rows, colors)

	for predictor := PredictorPNGNone; predictor <= PredictorPNGOptimum; predictor++ {
		params := Params{Predictor: predictor, Columns: columns, Colors: colors}
		predicted, err := applyPredictor(original, params)
		if err != nil {
			t.Fatalf("predictor %d failed: %v", predictor, err)
		}
		if len(predicted) != rows*(columns*colors+1) {
			t.Fatalf("predictor %d: got %d bytes, want %d", predictor, len(predicted), rows*(columns*colors+1))
		}
		if predictor != PredictorPNGOptimum && predicted[0] != byte(predictor-PredictorPNGNone) {
			t.Errorf("predictor %d: row filter byte = %d", predictor, predicted[0])
		}
		if got := unpredictPNG(predicted, columns, colors); !bytes.Equal(got, original) {
			t.Errorf("predictor %d does not round trip", predictor)
		}

		encoded, err := FlateEncode(original, BestCompression, &params)
		if err != nil {
			t.Fatalf("FlateEncode with predictor %d failed: %v", predictor, err)
		}
		if !bytes.Equal(zlibDecompress(t, encoded), predicted) {
			t.Errorf("FlateEncode with predictor %d did not compress the predicted rows", predictor)
		}
	}
}

// TestPNGPredictorOptimum tests that a horizontal gradient row is filtered with Sub
func TestPNGPredictorOptimum(t *testing.T) {
	row := gradient(64, 1, 1)
	predicted, err := applyPredictor(row, Params{Predictor: PredictorPNGOptimum, Columns: 64})
	if err != nil {
		t.Fatalf("applyPredictor failed: %v", err)
	}
	if predicted[0] != 1 {
		t.Errorf("first row filter = %d, want 1 (Sub)", predicted[0])
	}
}

// TestTIFFPredictor tests TIFF Predictor 2
func TestTIFFPredictor(t *testing.T) {
	data := []byte{
		10, 20, 15, 25, 20, 30,
		1, 2, 3, 4, 5, 6,
	}
	params := Params{Predictor: PredictorTIFF, Columns: 3, Colors: 2}

	got, err := applyPredictor(data, params)
	if err != nil {
		t.Fatalf("applyPredictor failed: %v", err)
	}
	want := []byte{
		10, 20, 5, 5, 5, 5,
		1, 2, 2, 2, 2, 2,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestPredictorErrors tests invalid predictor settings
func TestPredictorErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		params Params
	}{
		{"bad row size", []byte{1, 2, 3}, Params{Predictor: PredictorPNGUp, Columns: 2}},
		{"bad TIFF row size", []byte{1, 2, 3}, Params{Predictor: PredictorTIFF, Columns: 2}},
		{"16 bit", []byte{1, 2}, Params{Predictor: PredictorPNGUp, BitsPerComponent: 16}},
		{"unknown predictor", []byte{1}, Params{Predictor: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlateEncode(tt.data, DefaultCompression, &tt.params); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// TestParamsWriteTo tests the /DecodeParms entries
func TestParamsWriteTo(t *testing.T) {
	c := core.NewChunk()
	d := c.Indirect(core.NewRef(1)).Dict()
	Params{Predictor: PredictorPNGOptimum, Colors: 3, Columns: 100}.WriteTo(d)
	d.End()

	want := "1 0 obj\n<<\n  /Predictor 15\n  /Colors 3\n  /Columns 100\n>>\nendobj\n\n"
	if got := string(c.Bytes()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestASCIIHexEncode tests hexadecimal encoding
func TestASCIIHexEncode(t *testing.T) {
	if got := string(ASCIIHexEncode([]byte("Hello"))); got != "48656C6C6F>" {
		t.Errorf("ASCIIHexEncode(Hello) = %q", got)
	}
	if got := string(ASCIIHexEncode(nil)); got != ">" {
		t.Errorf("ASCIIHexEncode(nil) = %q", got)
	}

	long := bytes.Repeat([]byte{0xAB}, 100)
	encoded := ASCIIHexEncode(long)
	for _, line := range strings.Split(string(encoded), "\n") {
		if len(line) > 65 {
			t.Errorf("line of %d characters", len(line))
		}
	}
	decoded, err := hex.DecodeString(strings.TrimSuffix(strings.ReplaceAll(string(encoded), "\n", ""), ">"))
	if err != nil || !bytes.Equal(decoded, long) {
		t.Errorf("long input does not round trip: %v", err)
	}
}

// TestASCII85Encode tests base-85 encoding
func TestASCII85Encode(t *testing.T) {
	tests := [][]byte{
		nil,
		[]byte("Hello"),
		{0, 0, 0, 0, 1},
		bytes.Repeat([]byte{0xFF}, 9),
	}

	for _, in := range tests {
		encoded := ASCII85Encode(in)
		if !bytes.HasSuffix(encoded, []byte("~>")) {
			t.Errorf("ASCII85Encode(%v) = %q, missing ~>", in, encoded)
			continue
		}
		body := encoded[:len(encoded)-2]
		decoded := make([]byte, len(in)+4)
		n, _, err := ascii85.Decode(decoded, body, true)
		if err != nil || !bytes.Equal(decoded[:n], in) {
			t.Errorf("ASCII85Encode(%v) = %q does not round trip: %v", in, encoded, err)
		}
	}

	if got := string(ASCII85Encode([]byte{0, 0, 0, 0})); got != "z~>" {
		t.Errorf("zero group = %q, want %q", got, "z~>")
	}
}

// TestRunLengthEncode tests PackBits encoding
func TestRunLengthEncode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"empty", nil, []byte{128}},
		{"single", []byte{'a'}, []byte{0, 'a', 128}},
		{"run", []byte("aaaa"), []byte{253, 'a', 128}},
		{"literal then run", []byte("abccc"), []byte{1, 'a', 'b', 254, 'c', 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunLengthEncode(tt.in); !bytes.Equal(got, tt.want) {
				t.Errorf("RunLengthEncode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	long := append(bytes.Repeat([]byte{7}, 300), gradient(200, 1, 1)...)
	if got := runLengthDecode(t, RunLengthEncode(long)); !bytes.Equal(got, long) {
		t.Error("long input does not round trip")
	}
}

// TestEncodeChain tests applying a filter chain in declaration order
func TestEncodeChain(t *testing.T) {
	original := []byte(strings.Repeat("q 1 0 0 1 0 0 cm Q\n", 10))

	encoded, err := Encode(original, core.ASCIIHexDecode, core.FlateDecode)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	compressed, err := hex.DecodeString(strings.TrimSuffix(strings.ReplaceAll(string(encoded), "\n", ""), ">"))
	if err != nil {
		t.Fatalf("outer layer is not hex: %v", err)
	}
	if got := zlibDecompress(t, compressed); !bytes.Equal(got, original) {
		t.Error("chain does not round trip")
	}

	same, err := Encode(original)
	if err != nil || !bytes.Equal(same, original) {
		t.Error("empty chain must return the data unchanged")
	}

	_, err = Encode(original, core.DCTDecode)
	if !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("Encode(DCTDecode) error = %v, want ErrUnsupportedFilter", err)
	}
}
