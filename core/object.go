package core

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/unicode"
)

// Primitive is a PDF value that is written in one piece, without nested
// writers. The set of primitives is closed: only the types in this package
// implement it.
type Primitive interface {
	Kind() Kind
	primitive()
}

// Kind identifies the variant of a Primitive.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindReal
	KindStr
	KindTextStr
	KindName
	KindNull
	KindRef
	KindRect
	KindDate
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindStr:
		return "Str"
	case KindTextStr:
		return "TextStr"
	case KindName:
		return "Name"
	case KindNull:
		return "Null"
	case KindRef:
		return "Ref"
	case KindRect:
		return "Rect"
	case KindDate:
		return "Date"
	default:
		return "Unknown"
	}
}

// Bool is a PDF boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) primitive() {}

// Int is a PDF integer.
type Int int32

func (Int) Kind() Kind { return KindInt }
func (Int) primitive() {}

// Real is a PDF real number.
type Real float32

func (Real) Kind() Kind { return KindReal }
func (Real) primitive() {}

// Str is a byte string.
//
// It is written in literal form, (Thing), unless it contains a backslash or a
// parenthesis, in which case it falls back to hexadecimal form: the string
// "()" becomes <2829>.
type Str []byte

func (Str) Kind() Kind { return KindStr }
func (Str) primitive() {}

// TextStr is a Unicode text string. It is written as a Str holding a byte
// order mark followed by the UTF-16BE encoding of the text.
type TextStr string

func (TextStr) Kind() Kind { return KindTextStr }
func (TextStr) primitive() {}

// Name is a PDF name, written as /Thing. Bytes outside the printable ASCII
// range and the # sign are escaped as #XX.
type Name string

func (Name) Kind() Kind { return KindName }
func (Name) primitive() {}

// Null is the PDF null object.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) primitive() {}

// Ref is a reference to an indirect object. The generation number is always
// zero. The zero Ref is not a valid reference; use NewRef.
type Ref struct {
	id int32
}

// NewRef creates a reference to the object with the given number.
// It panics if id is not positive.
func NewRef(id int32) Ref {
	if id <= 0 {
		panic(fmt.Sprintf("pdf: indirect reference %d out of valid range", id))
	}
	return Ref{id: id}
}

// Get returns the object number.
func (r Ref) Get() int32 { return r.id }

// IsZero reports whether r is the (invalid) zero reference.
func (r Ref) IsZero() bool { return r.id == 0 }

// Next returns the reference with the following object number.
func (r Ref) Next() Ref { return NewRef(r.id + 1) }

// Bump returns the current reference and advances r to the next one. This
// makes a Ref usable as a simple ID allocator:
//
//	alloc := core.NewRef(1)
//	catalog := alloc.Bump() // 1
//	pages := alloc.Bump()   // 2
func (r *Ref) Bump() Ref {
	cur := *r
	*r = cur.Next()
	return cur
}

// String returns the reference in PDF syntax.
func (r Ref) String() string {
	return strconv.Itoa(int(r.id)) + " 0 R"
}

func (Ref) Kind() Kind { return KindRef }
func (Ref) primitive() {}

// Rect is a rectangle, given by two opposite corners.
type Rect struct {
	X1, Y1 float32 // typically lower-left
	X2, Y2 float32 // typically upper-right
}

// NewRect creates a rectangle from four coordinates.
func NewRect(x1, y1, x2, y2 float32) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// QuadPoints returns the four corners in counterclockwise order, starting at
// (X1, Y1).
func (r Rect) QuadPoints() [8]float32 {
	return [8]float32{r.X1, r.Y1, r.X2, r.Y1, r.X2, r.Y2, r.X1, r.Y2}
}

func (Rect) Kind() Kind { return KindRect }
func (Rect) primitive() {}

// Date is a date written as a text string of the form (D:YYYYMMDDHHmmSSOHH'mm).
//
// A field is only written if all more significant fields are set: to write
// the minute, the month, day and hour must be set too. The UTC offset is only
// written if the time is complete down to the second.
type Date struct {
	year   int
	fields [5]int // month, day, hour, minute, second
	set    uint8  // bit i is set when fields[i] was given
	hasTZ  bool
	tzHour int
	tzMin  int
}

// NewDate creates a date with only the year set, clamped to 0-9999.
func NewDate(year int) Date {
	return Date{year: clamp(year, 0, 9999)}
}

func (d Date) with(i, v int) Date {
	d.fields[i] = v
	d.set |= 1 << i
	return d
}

// Month sets the month, clamped to 1-12.
func (d Date) Month(m int) Date { return d.with(0, clamp(m, 1, 12)) }

// Day sets the day, clamped to 1-31.
func (d Date) Day(day int) Date { return d.with(1, clamp(day, 1, 31)) }

// Hour sets the hour, clamped to 0-23.
func (d Date) Hour(h int) Date { return d.with(2, clamp(h, 0, 23)) }

// Minute sets the minute, clamped to 0-59.
func (d Date) Minute(m int) Date { return d.with(3, clamp(m, 0, 59)) }

// Second sets the second, clamped to 0-59.
func (d Date) Second(s int) Date { return d.with(4, clamp(s, 0, 59)) }

// UTCOffsetHour sets the offset from UTC in hours, clamped to -23..23.
// Without an offset the time is local to the viewer.
func (d Date) UTCOffsetHour(h int) Date {
	d.hasTZ = true
	d.tzHour = clamp(h, -23, 23)
	return d
}

// UTCOffsetMinute sets the minutes of the UTC offset, clamped to 0-59. They
// carry the sign of the hour offset.
func (d Date) UTCOffsetMinute(m int) Date {
	d.tzMin = clamp(m, 0, 59)
	return d
}

func (Date) Kind() Kind { return KindDate }
func (Date) primitive() {}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// encode writes the PDF representation of v into b.
func encode(b *Buf, v Primitive) {
	switch v := v.(type) {
	case Bool:
		if v {
			b.PushString("true")
		} else {
			b.PushString("false")
		}
	case Int:
		b.PushInt(int32(v))
	case Real:
		b.PushFloat(float32(v))
	case Str:
		encodeStr(b, v)
	case TextStr:
		encodeStr(b, encodeUTF16(string(v)))
	case Name:
		encodeName(b, v)
	case Null:
		b.PushString("null")
	case Ref:
		if v.IsZero() {
			panic("pdf: write of zero Ref")
		}
		b.PushInt(v.id)
		b.PushString(" 0 R")
	case Rect:
		b.PushByte('[')
		b.PushFloat(v.X1)
		b.PushByte(' ')
		b.PushFloat(v.Y1)
		b.PushByte(' ')
		b.PushFloat(v.X2)
		b.PushByte(' ')
		b.PushFloat(v.Y2)
		b.PushByte(']')
	case Date:
		encodeDate(b, v)
	case nil:
		panic("pdf: write of nil primitive")
	default:
		panic(fmt.Sprintf("pdf: unsupported primitive %T", v))
	}
}

func encodeStr(b *Buf, s []byte) {
	b.limits.registerStrLen(len(s))

	needsHex := false
	for _, c := range s {
		if c == '\\' || c == '(' || c == ')' {
			needsHex = true
			break
		}
	}

	if needsHex {
		b.Reserve(2 + 2*len(s))
		b.PushByte('<')
		for _, c := range s {
			b.PushHex(c)
		}
		b.PushByte('>')
		return
	}

	b.Reserve(2 + len(s))
	b.PushByte('(')
	b.PushBytes(s)
	b.PushByte(')')
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

// encodeUTF16 returns the byte order mark followed by the UTF-16BE code units
// of s. Invalid UTF-8 is replaced by U+FFFD.
func encodeUTF16(s string) []byte {
	out, err := utf16BE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("pdf: encoding text string: %v", err))
	}
	if len(out) < 2 {
		// The encoder writes the byte order mark with the first code unit.
		out = append([]byte{0xFE, 0xFF}, out...)
	}
	return out
}

func encodeName(b *Buf, n Name) {
	b.limits.registerNameLen(len(n))
	b.PushByte('/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c >= '!' && c <= '~' && c != '#' {
			b.PushByte(c)
		} else {
			b.PushByte('#')
			b.PushHex(c)
		}
	}
}

func encodeDate(b *Buf, d Date) {
	start := len(b.inner) + 1
	b.inner = fmt.Appendf(b.inner, "(D:%04d", d.year)
	n := 0
	for n < len(d.fields) && d.set&(1<<n) != 0 {
		b.inner = fmt.Appendf(b.inner, "%02d", d.fields[n])
		n++
	}
	if n == len(d.fields) && d.hasTZ {
		if d.tzHour == 0 && d.tzMin == 0 {
			b.PushByte('Z')
		} else {
			b.inner = fmt.Appendf(b.inner, "%+03d'%02d", d.tzHour, d.tzMin)
		}
	}
	b.limits.registerStrLen(len(b.inner) - start)
	b.PushByte(')')
}
