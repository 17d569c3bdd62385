package filters

import (
	"encoding/ascii85"
)

const hexDigits = "0123456789ABCDEF"

// ASCIIHexEncode encodes data as uppercase hexadecimal digits followed by
// the > end-of-data marker. A newline is inserted after every 64 digits.
func ASCIIHexEncode(data []byte) []byte {
	out := make([]byte, 0, 2*len(data)+len(data)/32+1)
	for i, c := range data {
		if i > 0 && i%32 == 0 {
			out = append(out, '\n')
		}
		out = append(out, hexDigits[c>>4], hexDigits[c&0xF])
	}
	return append(out, '>')
}

// ASCII85Encode encodes data in base-85, using z for groups of four zero
// bytes, followed by the ~> end-of-data marker.
func ASCII85Encode(data []byte) []byte {
	out := make([]byte, ascii85.MaxEncodedLen(len(data)), ascii85.MaxEncodedLen(len(data))+2)
	n := ascii85.Encode(out, data)
	return append(out[:n], '~', '>')
}

// RunLengthEncode compresses data with the PackBits scheme: a length byte
// 0-127 is followed by that many plus one literal bytes, a length byte
// 129-255 is followed by one byte repeated 257 minus length times, and 128
// ends the data.
func RunLengthEncode(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/128+2)

	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && run < 128 && data[i+run] == data[i] {
			run++
		}
		if run > 1 {
			out = append(out, byte(257-run), data[i])
			i += run
			continue
		}

		// Collect literals until a run of at least two begins.
		start := i
		for i < len(data) && i-start < 128 {
			if i+1 < len(data) && data[i+1] == data[i] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, data[start:i]...)
	}
	return append(out, 128)
}
