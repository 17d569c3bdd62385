// Package filters provides PDF stream compression and encoding filters.
//
// Stream payloads are passed to core.Chunk.Stream already encoded; this
// package produces them. The filter names are then declared on the stream
// with core.Stream.Filter or core.Stream.Filters.
//
// # Supported Filters
//
// FlateDecode (zlib/deflate):
//
//	encoded, err := filters.FlateEncode(data, filters.DefaultCompression, nil)
//
// FlateEncode supports predictors for better compression of image data.
// The Predictor parameter specifies the algorithm:
//   - 1: No prediction (default)
//   - 2: TIFF Predictor 2
//   - 10-14: PNG predictors (None, Sub, Up, Average, Paeth)
//   - 15: PNG predictor chosen per row
//
// ASCIIHexDecode, ASCII85Decode and RunLengthDecode:
//
//	encoded := filters.ASCIIHexEncode(data)
//	encoded := filters.ASCII85Encode(data)
//	encoded := filters.RunLengthEncode(data)
//
// Encode applies a whole chain in the order it is declared:
//
//	encoded, err := filters.Encode(data, core.ASCII85Decode, core.FlateDecode)
//	chunk.Stream(id, encoded).Filters(core.ASCII85Decode, core.FlateDecode).End()
//
// # Decode Parameters
//
// Predictor settings must be repeated in the stream's /DecodeParms:
//
//	params := &filters.Params{Predictor: 15, Columns: 100, Colors: 3}
//	encoded, err := filters.FlateEncode(pixels, filters.BestCompression, params)
//	s := chunk.Stream(id, encoded).Filter(core.FlateDecode)
//	dp := s.DecodeParms()
//	params.WriteTo(dp)
//	dp.End()
package filters
