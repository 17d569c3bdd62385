package core

import "fmt"

// DefaultIndent is the number of spaces per dictionary nesting level used by
// new chunks.
const DefaultIndent = 2

// offset records where an indirect object starts in a chunk's buffer.
type offset struct {
	ref Ref
	pos int
}

// Chunk is a collection of indirect objects sharing one buffer.
//
// Only one writer chain can write into a chunk at a time. To build two
// object graphs side by side (for example, resources collected while a page
// dictionary is still open), write the second one into a separate chunk and
// merge it with Extend afterwards.
//
// Any Chunk method other than Len and Depth releases writers that are still
// open, so the chunk's bytes are always well formed when observed.
type Chunk struct {
	buf       *Buf
	offsets   []offset
	stack     []*scope
	dictDepth int
	indent    int
}

// NewChunk creates an empty chunk with the default capacity of 1 KB.
func NewChunk() *Chunk {
	return NewChunkWithCapacity(1024)
}

// NewChunkWithCapacity creates an empty chunk with the given initial buffer
// capacity.
func NewChunkWithCapacity(capacity int) *Chunk {
	return &Chunk{
		buf:    NewBuf(capacity),
		indent: DefaultIndent,
	}
}

// SetIndent sets the number of spaces per dictionary nesting level. Zero
// disables indentation.
func (c *Chunk) SetIndent(n int) {
	if n < 0 {
		panic(fmt.Sprintf("pdf: negative indent %d", n))
	}
	c.indent = n
}

// Indent returns the number of spaces per dictionary nesting level.
func (c *Chunk) Indent() int {
	return c.indent
}

// Len returns the number of bytes written so far.
func (c *Chunk) Len() int {
	return c.buf.Len()
}

// Depth returns the number of writers that are currently open.
func (c *Chunk) Depth() int {
	return len(c.stack)
}

// Bytes returns the bytes written so far. The slice aliases the chunk's
// buffer and is only valid until the next write.
func (c *Chunk) Bytes() []byte {
	c.release()
	return c.buf.Bytes()
}

// Limits returns the limits of everything written into the chunk.
func (c *Chunk) Limits() Limits {
	c.release()
	return c.buf.Limits()
}

// Refs returns the references of the chunk's top-level objects in the order
// they were written.
func (c *Chunk) Refs() []Ref {
	refs := make([]Ref, len(c.offsets))
	for i, o := range c.offsets {
		refs[i] = o.ref
	}
	return refs
}

// Extend appends all objects of other to c. Offsets are rebased onto c's
// buffer and limits are merged. other is left unchanged.
func (c *Chunk) Extend(other *Chunk) {
	if other == c {
		panic("pdf: chunk cannot extend itself")
	}
	c.release()
	other.release()

	base := c.buf.Len()
	c.buf.Extend(other.buf)
	for _, o := range other.offsets {
		c.offsets = append(c.offsets, offset{ref: o.ref, pos: base + o.pos})
	}
}

// Indirect starts an indirect object with the given ID and returns the slot
// for its value. The object header is written immediately and the footer
// when the value is finished.
func (c *Chunk) Indirect(id Ref) *Obj {
	if id.IsZero() {
		panic("pdf: indirect object with zero Ref")
	}
	c.release()

	c.offsets = append(c.offsets, offset{ref: id, pos: c.buf.Len()})
	c.buf.PushInt(id.Get())
	c.buf.PushString(" 0 obj\n")

	s := c.open(scopeObj, func() {
		c.buf.PushString("\nendobj\n\n")
	})
	return &Obj{c: c, s: s}
}

// Stream starts an indirect stream object. The /Length entry and the payload
// are written automatically; more entries can be added through the returned
// writer.
//
// No compression is applied. To compress, pass already encoded data and
// declare the filter with Stream.Filter.
//
// It panics if len(data) exceeds math.MaxInt32.
func (c *Chunk) Stream(id Ref, data []byte) *Stream {
	return startStream(c.Indirect(id), data)
}

// Renumber returns a copy of the chunk in which every object ID and every
// indirect reference has been replaced by mapping(old).
//
// mapping is called once per occurrence: for each object definition and for
// each reference, including references to objects outside the chunk. Callers
// that allocate new IDs should memoize so that an old ID always maps to the
// same new ID:
//
//	alloc := core.NewRef(1)
//	seen := map[core.Ref]core.Ref{}
//	renumbered := chunk.Renumber(func(old core.Ref) core.Ref {
//		if id, ok := seen[old]; ok {
//			return id
//		}
//		seen[old] = alloc.Bump()
//		return seen[old]
//	})
//
// Objects whose framing is not recognized are dropped; use RenumberStrict to
// detect this.
func (c *Chunk) Renumber(mapping func(Ref) Ref) *Chunk {
	out := NewChunkWithCapacity(c.Len())
	out.indent = c.indent
	c.RenumberInto(out, mapping)
	return out
}

// RenumberInto is like Renumber but appends the result to target.
func (c *Chunk) RenumberInto(target *Chunk, mapping func(Ref) Ref) {
	if target == c {
		panic("pdf: chunk cannot be renumbered into itself")
	}
	c.release()
	target.release()
	target.buf.Reserve(c.Len())
	renumber(c, target, mapping)
}

// RenumberStrict is like Renumber but fails with ErrMalformedObject if any
// object could not be recognized, instead of dropping it.
func (c *Chunk) RenumberStrict(mapping func(Ref) Ref) (*Chunk, error) {
	c.release()
	out := NewChunkWithCapacity(c.Len())
	out.indent = c.indent
	if skipped := renumber(c, out, mapping); len(skipped) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMalformedObject, skipped)
	}
	return out, nil
}
