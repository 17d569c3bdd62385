// Package contentstream builds PDF content streams.
//
// Content streams contain the instructions for rendering page content,
// including text display, graphics operations, and image placement. Each
// operation is written on its own line as its operands followed by the
// operator:
//
//	c := contentstream.New()
//	c.BeginText().SetFont("F1", 12).NextLine(72, 720)
//	c.ShowText(core.Str("Hello")).EndText()
//	data := c.Bytes()
//
// Operations without a helper are written with Op, or with Start when the
// operands include an array:
//
//	c.Op("Tz", core.Int(100))
//	c.Start("d").Array(core.Int(3)).Operand(core.Int(0)).End()
//
// # Common Operators
//
// Text operators:
//   - BT, ET - Begin/end text object
//   - Tf - Set font and size
//   - Tm - Set text matrix
//   - Tj, TJ - Show text
//   - Td, T* - Move text position
//
// Graphics state operators:
//   - q, Q - Save/restore graphics state
//   - cm - Modify CTM (current transformation matrix)
//   - w - Set line width
//   - J, j - Set line cap/join style
//
// Path operators:
//   - m, l, c - Move to, line to, curve to
//   - re - Rectangle
//   - S, f, f*, n - Stroke, fill or discard paths
//
// Operands are core primitives and count towards the stream's core.Limits.
package contentstream
