package core

import "fmt"

// Writers for compound values.
//
// Every writer handed out by a Chunk is a scope on the chunk's scope stack.
// Only the innermost scope may be written to. Using an outer writer (or the
// chunk itself) releases every scope nested inside it first, writing their
// closing delimiters, so output is well formed even when a writer is
// abandoned. Writing to a writer after it has been released is a programming
// error and panics.

type scopeKind uint8

const (
	scopeObj scopeKind = iota
	scopeArray
	scopeDict
)

func (k scopeKind) String() string {
	switch k {
	case scopeObj:
		return "object"
	case scopeArray:
		return "array"
	case scopeDict:
		return "dictionary"
	default:
		return "unknown"
	}
}

// guard is run exactly once, after a scope's closing delimiter is written.
// Guards compose: a stream guard writes the payload and then runs the guard
// of the indirect object that encloses it.
type guard func()

type scope struct {
	kind   scopeKind
	len    int
	filled bool
	closed bool
	guard  guard
}

// open pushes a new scope.
func (c *Chunk) open(kind scopeKind, g guard) *scope {
	s := &scope{kind: kind, guard: g}
	c.stack = append(c.stack, s)
	return s
}

// activate makes s the innermost scope by releasing everything nested in
// it. It panics if s was already released.
func (c *Chunk) activate(s *scope) {
	if s.closed {
		panic(fmt.Sprintf("pdf: use of %s writer after it was finished", s.kind))
	}
	for c.stack[len(c.stack)-1] != s {
		c.closeTop()
	}
}

// release releases all open scopes.
func (c *Chunk) release() {
	for len(c.stack) > 0 {
		c.closeTop()
	}
}

// closeTop writes the closing syntax of the innermost scope and runs its
// guard.
func (c *Chunk) closeTop() {
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	s.closed = true

	switch s.kind {
	case scopeObj:
		// A value slot that never received a value.
		if !s.filled {
			c.buf.PushString("null")
		}
	case scopeArray:
		c.buf.PushByte(']')
		c.buf.limits.registerArrayLen(s.len)
	case scopeDict:
		c.dictDepth--
		if s.len != 0 {
			c.buf.PushByte('\n')
		}
		c.buf.pushIndent(c.indent * c.dictDepth)
		c.buf.PushString(">>")
		c.buf.limits.registerDictEntries(s.len)
	}

	if s.guard != nil {
		s.guard()
	}
}

// Obj is a slot for exactly one value: a primitive, an array or a
// dictionary.
type Obj struct {
	c *Chunk
	s *scope
}

func (o *Obj) take() {
	o.c.activate(o.s)
	if o.s.kind != scopeObj {
		panic("pdf: object slot already holds a value")
	}
}

// Primitive writes a primitive value into the slot.
func (o *Obj) Primitive(v Primitive) {
	o.take()
	o.c.buf.PushVal(v)
	o.s.filled = true
	o.c.closeTop()
}

// Array starts an array in the slot.
func (o *Obj) Array() *Array {
	o.take()
	o.s.kind = scopeArray
	o.c.buf.PushByte('[')
	return &Array{c: o.c, s: o.s}
}

// Dict starts a dictionary in the slot.
func (o *Obj) Dict() *Dict {
	o.take()
	o.s.kind = scopeDict
	o.c.dictDepth++
	o.c.buf.PushString("<<\n")
	return &Dict{c: o.c, s: o.s}
}

// Array writes an array. Items are separated by single spaces.
type Array struct {
	c *Chunk
	s *scope
}

// Obj starts an item with an arbitrary value.
func (a *Array) Obj() *Obj {
	a.c.activate(a.s)
	if a.s.len != 0 {
		a.c.buf.PushByte(' ')
	}
	a.s.len++
	return &Obj{c: a.c, s: a.c.open(scopeObj, nil)}
}

// Item writes a primitive item.
func (a *Array) Item(v Primitive) *Array {
	a.Obj().Primitive(v)
	return a
}

// Items writes a sequence of primitive items.
func (a *Array) Items(vs ...Primitive) *Array {
	for _, v := range vs {
		a.Item(v)
	}
	return a
}

// Len returns the number of items written so far.
func (a *Array) Len() int {
	return a.s.len
}

// End writes the closing bracket. It panics if the array was already
// finished.
func (a *Array) End() {
	a.c.activate(a.s)
	a.c.closeTop()
}

// Dict writes a dictionary. Each entry goes on its own line, indented
// according to the chunk's indent width and the dictionary nesting depth.
//
// Keys are not deduplicated; if a key is written twice, readers use the
// last value.
type Dict struct {
	c *Chunk
	s *scope
}

// Key starts an entry with an arbitrary value.
func (d *Dict) Key(key Name) *Obj {
	d.c.activate(d.s)
	if d.s.len != 0 {
		d.c.buf.PushByte('\n')
	}
	d.s.len++
	d.c.buf.pushIndent(d.c.indent * d.c.dictDepth)
	d.c.buf.PushVal(key)
	d.c.buf.PushByte(' ')
	return &Obj{c: d.c, s: d.c.open(scopeObj, nil)}
}

// Pair writes an entry with a primitive value.
func (d *Dict) Pair(key Name, v Primitive) *Dict {
	d.Key(key).Primitive(v)
	return d
}

// Entry is a key-value pair for Dict.Pairs.
type Entry struct {
	Key   Name
	Value Primitive
}

// Pairs writes several entries with primitive values, in order.
func (d *Dict) Pairs(entries ...Entry) *Dict {
	for _, e := range entries {
		d.Pair(e.Key, e.Value)
	}
	return d
}

// Len returns the number of entries written so far.
func (d *Dict) Len() int {
	return d.s.len
}

// End writes the closing delimiter. It panics if the dictionary was already
// finished.
func (d *Dict) End() {
	d.c.activate(d.s)
	d.c.closeTop()
}

// TypedArray is an array whose items all share one primitive type.
type TypedArray[T Primitive] struct {
	a *Array
}

// NewTypedArray wraps a.
func NewTypedArray[T Primitive](a *Array) *TypedArray[T] {
	return &TypedArray[T]{a: a}
}

// Item writes an item.
func (t *TypedArray[T]) Item(v T) *TypedArray[T] {
	t.a.Item(v)
	return t
}

// Items writes a sequence of items.
func (t *TypedArray[T]) Items(vs ...T) *TypedArray[T] {
	for _, v := range vs {
		t.a.Item(v)
	}
	return t
}

// Len returns the number of items written so far.
func (t *TypedArray[T]) Len() int { return t.a.Len() }

// End finishes the array.
func (t *TypedArray[T]) End() { t.a.End() }

// TypedDict is a dictionary whose values all share one primitive type.
type TypedDict[T Primitive] struct {
	d *Dict
}

// NewTypedDict wraps d.
func NewTypedDict[T Primitive](d *Dict) *TypedDict[T] {
	return &TypedDict[T]{d: d}
}

// Pair writes an entry.
func (t *TypedDict[T]) Pair(key Name, v T) *TypedDict[T] {
	t.d.Pair(key, v)
	return t
}

// Len returns the number of entries written so far.
func (t *TypedDict[T]) Len() int { return t.d.Len() }

// End finishes the dictionary.
func (t *TypedDict[T]) End() { t.d.End() }
