package contentstream

import (
	"github.com/tsawler/pdfwriter/core"
)

// Content builds a content stream: a sequence of operations, one per line.
// The finished bytes are written into a document with core.Chunk.Stream.
//
// At most one operation is open at a time. Starting another operation, or
// finishing the stream, ends the open one first.
type Content struct {
	buf   *core.Buf
	depth int
	open  *Operation
}

// New creates an empty content stream with a 1 KB initial buffer.
func New() *Content {
	return NewWithCapacity(1024)
}

// NewWithCapacity creates an empty content stream with the given initial
// buffer capacity.
func NewWithCapacity(capacity int) *Content {
	return &Content{buf: core.NewBuf(capacity)}
}

// Op writes an operation: the operands separated by spaces, followed by the
// operator.
func (c *Content) Op(operator string, operands ...core.Primitive) *Content {
	c.Start(operator).Operands(operands...).End()
	return c
}

// Start begins an operation whose operands are added one by one. The
// operation is written once End is called.
func (c *Content) Start(operator string) *Operation {
	c.endOpen()
	c.open = &Operation{c: c, operator: operator, first: true}
	return c.open
}

func (c *Content) endOpen() {
	if c.open != nil {
		c.open.End()
	}
}

// Depth returns the nesting depth of graphics state saves (q) that have not
// been restored (Q) yet.
func (c *Content) Depth() int {
	return c.depth
}

// Len returns the number of bytes written so far.
func (c *Content) Len() int {
	c.endOpen()
	return c.buf.Len()
}

// Limits returns the limits of all operands written so far.
func (c *Content) Limits() core.Limits {
	c.endOpen()
	return c.buf.Limits()
}

// Finish returns the buffer holding the content stream, without the newline
// after the last operation. The Content must not be used afterwards.
func (c *Content) Finish() *core.Buf {
	c.endOpen()
	out := c.buf
	c.buf = nil
	out.TrimTrailing('\n')
	return out
}

// Bytes is a shorthand for Finish().Bytes().
func (c *Content) Bytes() []byte {
	return c.Finish().Bytes()
}

// Operation is an operation being written. Operands are written as they are
// added; the operator follows in End.
type Operation struct {
	c        *Content
	operator string
	first    bool
}

func (o *Operation) check() {
	if o.c.open != o {
		panic("contentstream: use of operation " + o.operator + " after it was ended")
	}
}

func (o *Operation) separate() {
	o.check()
	if !o.first {
		o.c.buf.PushByte(' ')
	}
	o.first = false
}

// Operand writes a primitive operand.
func (o *Operation) Operand(v core.Primitive) *Operation {
	o.separate()
	o.c.buf.PushVal(v)
	return o
}

// Operands writes a sequence of primitive operands.
func (o *Operation) Operands(vs ...core.Primitive) *Operation {
	for _, v := range vs {
		o.Operand(v)
	}
	return o
}

// Array writes an array operand.
func (o *Operation) Array(vs ...core.Primitive) *Operation {
	o.separate()
	o.c.buf.PushArray(vs...)
	return o
}

// End writes the operator and terminates the line. It panics if the
// operation was already ended, either explicitly or by starting another.
func (o *Operation) End() {
	o.check()
	if !o.first {
		o.c.buf.PushByte(' ')
	}
	o.c.open = nil
	o.c.buf.PushString(o.operator)
	o.c.buf.PushByte('\n')
}
