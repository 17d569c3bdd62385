package contentstream

import (
	"fmt"

	"github.com/tsawler/pdfwriter/core"
)

// LineCap is the shape at the ends of open stroked paths.
type LineCap int

const (
	ButtCap LineCap = iota
	RoundCap
	ProjectingSquareCap
)

// LineJoin is the shape at the corners of stroked paths.
type LineJoin int

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

func reals(vs ...float32) []core.Primitive {
	out := make([]core.Primitive, len(vs))
	for i, v := range vs {
		out[i] = core.Real(v)
	}
	return out
}

// Graphics state

// SaveState writes q.
func (c *Content) SaveState() *Content {
	c.depth++
	return c.Op("q")
}

// RestoreState writes Q. Restoring without a matching save is written as is
// and leaves Depth at zero.
func (c *Content) RestoreState() *Content {
	if c.depth > 0 {
		c.depth--
	}
	return c.Op("Q")
}

// Transform writes cm, concatenating the matrix [a b c d e f] with the
// current transformation matrix.
func (c *Content) Transform(a, b, cc, d, e, f float32) *Content {
	return c.Op("cm", reals(a, b, cc, d, e, f)...)
}

// SetLineWidth writes w. It panics if width is negative.
func (c *Content) SetLineWidth(width float32) *Content {
	if width < 0 {
		panic(fmt.Sprintf("contentstream: negative line width %v", width))
	}
	return c.Op("w", core.Real(width))
}

// SetLineCap writes J.
func (c *Content) SetLineCap(style LineCap) *Content {
	return c.Op("J", core.Int(style))
}

// SetLineJoin writes j.
func (c *Content) SetLineJoin(style LineJoin) *Content {
	return c.Op("j", core.Int(style))
}

// SetMiterLimit writes M.
func (c *Content) SetMiterLimit(limit float32) *Content {
	return c.Op("M", core.Real(limit))
}

// SetDashPattern writes d. An empty pattern draws solid lines.
func (c *Content) SetDashPattern(pattern []float32, phase float32) *Content {
	c.Start("d").Array(reals(pattern...)...).Operand(core.Real(phase)).End()
	return c
}

// SetParameters writes gs, applying the named ExtGState resource.
func (c *Content) SetParameters(dict core.Name) *Content {
	return c.Op("gs", dict)
}

// Paths

// MoveTo writes m.
func (c *Content) MoveTo(x, y float32) *Content {
	return c.Op("m", core.Real(x), core.Real(y))
}

// LineTo writes l.
func (c *Content) LineTo(x, y float32) *Content {
	return c.Op("l", core.Real(x), core.Real(y))
}

// CubicTo writes c.
func (c *Content) CubicTo(x1, y1, x2, y2, x3, y3 float32) *Content {
	return c.Op("c", reals(x1, y1, x2, y2, x3, y3)...)
}

// Rect writes re.
func (c *Content) Rect(x, y, width, height float32) *Content {
	return c.Op("re", reals(x, y, width, height)...)
}

// ClosePath writes h.
func (c *Content) ClosePath() *Content {
	return c.Op("h")
}

// Stroke writes S.
func (c *Content) Stroke() *Content {
	return c.Op("S")
}

// FillNonZero writes f.
func (c *Content) FillNonZero() *Content {
	return c.Op("f")
}

// FillEvenOdd writes f*.
func (c *Content) FillEvenOdd() *Content {
	return c.Op("f*")
}

// EndPath writes n, ending the path without painting it.
func (c *Content) EndPath() *Content {
	return c.Op("n")
}

// Color

// SetFillGray writes g.
func (c *Content) SetFillGray(gray float32) *Content {
	return c.Op("g", core.Real(gray))
}

// SetStrokeGray writes G.
func (c *Content) SetStrokeGray(gray float32) *Content {
	return c.Op("G", core.Real(gray))
}

// SetFillRGB writes rg.
func (c *Content) SetFillRGB(r, g, b float32) *Content {
	return c.Op("rg", reals(r, g, b)...)
}

// SetStrokeRGB writes RG.
func (c *Content) SetStrokeRGB(r, g, b float32) *Content {
	return c.Op("RG", reals(r, g, b)...)
}

// Text

// BeginText writes BT.
func (c *Content) BeginText() *Content {
	return c.Op("BT")
}

// EndText writes ET.
func (c *Content) EndText() *Content {
	return c.Op("ET")
}

// SetFont writes Tf, selecting the named font resource at the given size.
func (c *Content) SetFont(font core.Name, size float32) *Content {
	return c.Op("Tf", font, core.Real(size))
}

// SetCharSpacing writes Tc.
func (c *Content) SetCharSpacing(spacing float32) *Content {
	return c.Op("Tc", core.Real(spacing))
}

// SetWordSpacing writes Tw.
func (c *Content) SetWordSpacing(spacing float32) *Content {
	return c.Op("Tw", core.Real(spacing))
}

// SetLeading writes TL.
func (c *Content) SetLeading(leading float32) *Content {
	return c.Op("TL", core.Real(leading))
}

// NextLine writes Td, moving to the start of the next line offset by (x, y).
func (c *Content) NextLine(x, y float32) *Content {
	return c.Op("Td", core.Real(x), core.Real(y))
}

// NextLineUsingLeading writes T*.
func (c *Content) NextLineUsingLeading() *Content {
	return c.Op("T*")
}

// SetTextMatrix writes Tm.
func (c *Content) SetTextMatrix(a, b, cc, d, e, f float32) *Content {
	return c.Op("Tm", reals(a, b, cc, d, e, f)...)
}

// ShowText writes Tj. The string holds encoded character codes for the
// current font.
func (c *Content) ShowText(text core.Str) *Content {
	return c.Op("Tj", text)
}

// ShowPositioned writes TJ. Items are strings to show or numbers that adjust
// the position, in thousandths of text space units.
func (c *Content) ShowPositioned(items ...core.Primitive) *Content {
	for _, item := range items {
		switch item.(type) {
		case core.Str, core.Int, core.Real:
		default:
			panic(fmt.Sprintf("contentstream: TJ item must be a string or number, got %T", item))
		}
	}
	c.Start("TJ").Array(items...).End()
	return c
}

// XObjects

// XObject writes Do, painting the named XObject resource.
func (c *Content) XObject(name core.Name) *Content {
	return c.Op("Do", name)
}
