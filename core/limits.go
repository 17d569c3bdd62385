package core

// Limits tracks the largest primitive values written into a buffer.
//
// Some PDF consumers impose implementation limits (PDF/A for example caps
// integers at 2^31-1, reals at about 3.4e38, names at 127 bytes and strings at
// 32767 bytes). A Limits value lets callers check a finished document against
// such ceilings without parsing it again. Negative numbers count with their
// absolute value.
//
// The zero value is ready to use. Limits values from different buffers or
// chunks can be combined with Merge.
type Limits struct {
	intMax      int64
	realMax     float32
	nameLen     int
	strLen      int
	arrayLen    int
	dictEntries int
}

// NewLimits returns empty limits.
func NewLimits() Limits {
	return Limits{}
}

// Int returns the largest absolute integer value written.
func (l Limits) Int() int64 { return l.intMax }

// Real returns the largest absolute real value written.
func (l Limits) Real() float32 { return l.realMax }

// NameLen returns the length of the longest name written, counted in raw bytes
// before #-escaping.
func (l Limits) NameLen() int { return l.nameLen }

// StrLen returns the length of the longest string written, counted in raw
// bytes before hex or literal encoding.
func (l Limits) StrLen() int { return l.strLen }

// ArrayLen returns the number of items in the longest array written.
func (l Limits) ArrayLen() int { return l.arrayLen }

// DictEntries returns the number of entries in the largest dictionary written.
func (l Limits) DictEntries() int { return l.dictEntries }

// Merge folds other into l, keeping the maximum of every field.
func (l *Limits) Merge(other Limits) {
	l.registerInt(other.intMax)
	l.registerReal(other.realMax)
	l.registerNameLen(other.nameLen)
	l.registerStrLen(other.strLen)
	l.registerArrayLen(other.arrayLen)
	l.registerDictEntries(other.dictEntries)
}

func (l *Limits) registerInt(v int64) {
	if v < 0 {
		v = -v
	}
	if v > l.intMax {
		l.intMax = v
	}
}

func (l *Limits) registerReal(v float32) {
	if v < 0 {
		v = -v
	}
	if v > l.realMax {
		l.realMax = v
	}
}

func (l *Limits) registerNameLen(n int) {
	if n > l.nameLen {
		l.nameLen = n
	}
}

func (l *Limits) registerStrLen(n int) {
	if n > l.strLen {
		l.strLen = n
	}
}

func (l *Limits) registerArrayLen(n int) {
	if n > l.arrayLen {
		l.arrayLen = n
	}
}

func (l *Limits) registerDictEntries(n int) {
	if n > l.dictEntries {
		l.dictEntries = n
	}
}
