package core

import (
	"math"
	"strconv"
)

// Buf is a growable byte buffer that keeps track of the Limits of all
// primitive values appended to it.
type Buf struct {
	inner  []byte
	limits Limits
}

// NewBuf creates an empty buffer with the given initial capacity.
func NewBuf(capacity int) *Buf {
	return &Buf{inner: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (b *Buf) Len() int {
	return len(b.inner)
}

// Bytes returns the written bytes. The slice aliases the buffer and is only
// valid until the next write.
func (b *Buf) Bytes() []byte {
	return b.inner
}

// Limits returns the limits of everything written so far.
func (b *Buf) Limits() Limits {
	return b.limits
}

// Reserve grows the capacity so that n more bytes fit without reallocation.
func (b *Buf) Reserve(n int) {
	if cap(b.inner)-len(b.inner) >= n {
		return
	}
	grown := make([]byte, len(b.inner), len(b.inner)+n)
	copy(grown, b.inner)
	b.inner = grown
}

// PushVal appends the encoding of a primitive value.
func (b *Buf) PushVal(v Primitive) {
	encode(b, v)
}

// PushArray appends vs as an inline array, items separated by single spaces,
// and registers its length.
func (b *Buf) PushArray(vs ...Primitive) {
	b.PushByte('[')
	for i, v := range vs {
		if i > 0 {
			b.PushByte(' ')
		}
		encode(b, v)
	}
	b.PushByte(']')
	b.limits.registerArrayLen(len(vs))
}

// PushByte appends a single raw byte.
func (b *Buf) PushByte(c byte) {
	b.inner = append(b.inner, c)
}

// PushBytes appends raw bytes.
func (b *Buf) PushBytes(p []byte) {
	b.inner = append(b.inner, p...)
}

// PushString appends the bytes of s verbatim.
func (b *Buf) PushString(s string) {
	b.inner = append(b.inner, s...)
}

// PushInt appends the shortest decimal representation of v.
func (b *Buf) PushInt(v int32) {
	b.limits.registerInt(int64(v))
	b.inner = strconv.AppendInt(b.inner, int64(v), 10)
}

// PushIntAligned appends v in decimal, left-padded with zeros to width digits.
// It does not register limits; it is used for fixed-width structural fields
// such as cross-reference offsets.
func (b *Buf) PushIntAligned(v int, width int) {
	var digits [20]byte
	s := strconv.AppendInt(digits[:0], int64(v), 10)
	for i := len(s); i < width; i++ {
		b.inner = append(b.inner, '0')
	}
	b.inner = append(b.inner, s...)
}

// PushFloat appends v. Values that survive a round trip through int32 are
// written as integers (and count towards the integer limit); everything else
// is written as the shortest decimal that parses back to the same float32.
//
// NaN is written as 0 and infinities are clamped to the largest finite float32
// since the format has no representation for them.
func (b *Buf) PushFloat(v float32) {
	if math.IsNaN(float64(v)) {
		v = 0
	} else if math.IsInf(float64(v), 0) {
		v = float32(math.Copysign(math.MaxFloat32, float64(v)))
	}

	if isIntegral(v) {
		b.PushInt(int32(v))
		return
	}

	b.limits.registerReal(v)
	b.pushDecimal(v)
}

func isIntegral(v float32) bool {
	f := float64(v)
	return f >= math.MinInt32 && f <= math.MaxInt32 && float32(int32(v)) == v
}

// pushDecimal writes the shortest decimal that round-trips v. The 'f' format
// never switches to exponent notation, which PDF readers do not accept, so
// tiny (<= 1e-6) and huge (>= 1e12) magnitudes are spelled out digit by digit.
func (b *Buf) pushDecimal(v float32) {
	b.inner = strconv.AppendFloat(b.inner, float64(v), 'f', -1, 32)
}

const hexDigits = "0123456789ABCDEF"

// PushHex appends c as two uppercase hexadecimal digits.
func (b *Buf) PushHex(c byte) {
	b.inner = append(b.inner, hexDigits[c>>4], hexDigits[c&0xF])
}

// PushHexU16 appends v as four uppercase hexadecimal digits, high byte first.
func (b *Buf) PushHexU16(v uint16) {
	b.PushHex(byte(v >> 8))
	b.PushHex(byte(v))
}

// PushOctal appends c as three octal digits, as used by \ddd escapes in
// literal strings.
func (b *Buf) PushOctal(c byte) {
	b.inner = append(b.inner, '0'+(c>>6), '0'+((c>>3)&7), '0'+(c&7))
}

// Extend appends the contents of other and merges its limits.
func (b *Buf) Extend(other *Buf) {
	b.inner = append(b.inner, other.inner...)
	b.limits.Merge(other.limits)
}

// pushIndent writes n spaces.
func (b *Buf) pushIndent(n int) {
	for i := 0; i < n; i++ {
		b.inner = append(b.inner, ' ')
	}
}

// TrimTrailing removes a single trailing c, if present.
func (b *Buf) TrimTrailing(c byte) {
	if n := len(b.inner); n > 0 && b.inner[n-1] == c {
		b.inner = b.inner[:n-1]
	}
}
