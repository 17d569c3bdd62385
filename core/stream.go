package core

import (
	"fmt"
	"math"
)

// Stream writes the dictionary of a stream object. The /Length entry is
// written up front; the payload follows the dictionary when the stream is
// finished.
//
// Stream embeds Dict, so extra entries are added with Pair and Key.
type Stream struct {
	*Dict
}

// startStream turns the indirect object slot o into a stream with the given
// payload.
func startStream(o *Obj, data []byte) *Stream {
	if int64(len(data)) > math.MaxInt32 {
		panic(fmt.Sprintf("pdf: stream data length (is %d) must be <= %d", len(data), math.MaxInt32))
	}

	c := o.c
	indirect := o.s.guard
	o.s.guard = func() {
		c.buf.PushString("\nstream\n")
		c.buf.PushBytes(data)
		c.buf.PushString("\nendstream")
		if indirect != nil {
			indirect()
		}
	}

	d := o.Dict()
	d.Pair("Length", Int(int32(len(data))))
	return &Stream{Dict: d}
}

// Filter writes the /Filter entry. The payload passed to Chunk.Stream must
// already be encoded with this filter.
func (s *Stream) Filter(f Filter) *Stream {
	s.Pair("Filter", f.Name())
	return s
}

// Filters writes a /Filter array for a chain of filters, applied in order
// when decoding.
func (s *Stream) Filters(fs ...Filter) *Stream {
	a := s.Key("Filter").Array()
	for _, f := range fs {
		a.Item(f.Name())
	}
	a.End()
	return s
}

// DecodeParms starts the /DecodeParms dictionary.
func (s *Stream) DecodeParms() *Dict {
	return s.Key("DecodeParms").Dict()
}

// Filter is a stream compression or encoding filter.
type Filter int

const (
	ASCIIHexDecode Filter = iota
	ASCII85Decode
	LZWDecode
	FlateDecode
	RunLengthDecode
	CCITTFaxDecode
	JBIG2Decode
	DCTDecode
	JPXDecode
	Crypt
)

var filterNames = [...]Name{
	ASCIIHexDecode:  "ASCIIHexDecode",
	ASCII85Decode:   "ASCII85Decode",
	LZWDecode:       "LZWDecode",
	FlateDecode:     "FlateDecode",
	RunLengthDecode: "RunLengthDecode",
	CCITTFaxDecode:  "CCITTFaxDecode",
	JBIG2Decode:     "JBIG2Decode",
	DCTDecode:       "DCTDecode",
	JPXDecode:       "JPXDecode",
	Crypt:           "Crypt",
}

// Name returns the PDF name of the filter. It panics for values outside the
// defined constants.
func (f Filter) Name() Name {
	if f < 0 || int(f) >= len(filterNames) {
		panic(fmt.Sprintf("pdf: unknown filter %d", int(f)))
	}
	return filterNames[f]
}

// String returns the PDF name of the filter without the leading slash.
func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return string(filterNames[f])
}
