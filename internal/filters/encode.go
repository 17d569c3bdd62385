package filters

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfwriter/core"
)

// ErrUnsupportedFilter is returned by Encode for filters that have no encoder
// here, such as image codecs whose payload is produced elsewhere.
var ErrUnsupportedFilter = errors.New("unsupported filter")

// Encode applies a filter chain to data. The chain is given in the order it
// is written to /Filter, which is the order of decoding, so the last filter
// is applied first. Flate uses the default compression level without a
// predictor.
func Encode(data []byte, chain ...core.Filter) ([]byte, error) {
	for i := len(chain) - 1; i >= 0; i-- {
		var err error
		switch chain[i] {
		case core.FlateDecode:
			data, err = FlateEncode(data, DefaultCompression, nil)
		case core.ASCIIHexDecode:
			data = ASCIIHexEncode(data)
		case core.ASCII85Decode:
			data = ASCII85Encode(data)
		case core.RunLengthDecode:
			data = RunLengthEncode(data)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, chain[i])
		}
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", chain[i], err)
		}
	}
	return data, nil
}
