// Package font provides metrics for the standard 14 PDF fonts.
//
// Every PDF reader has the standard 14 fonts built in, so a document can
// use them without embedding a font program. Laying out text still needs
// their character widths:
//
//	m, _ := font.Standard("Helvetica")
//	width := m.StringWidth("Hello", 12)     // in points
//	lines := m.Wrap(paragraph, 12, 451)     // broken at spaces
//
// The font dictionary itself is written with WriteDict:
//
//	d := chunk.Indirect(id).Dict()
//	m.WriteDict(d)
//	d.End()
//
// # Character Widths
//
// Widths are given in 1000ths of an em for the printable ASCII range.
// Accented letters are measured by their base letter, and characters without
// a known width count as half an em.
package font
