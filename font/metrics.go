package font

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pdfwriter/core"
	"golang.org/x/text/unicode/norm"
)

// defaultWidth is used for characters a font has no width for.
const defaultWidth = 500

// Metrics describes one of the standard 14 fonts.
type Metrics struct {
	name     string
	widths   *[95]uint16 // printable ASCII; zero entries fall back to Helvetica
	fixed    uint16      // width of every character when widths is nil
	symbolic bool
}

var standardFonts = map[string]*Metrics{
	"Helvetica":             {name: "Helvetica", widths: &helveticaWidths},
	"Helvetica-Bold":        {name: "Helvetica-Bold", widths: &helveticaBoldWidths},
	"Helvetica-Oblique":     {name: "Helvetica-Oblique", widths: &helveticaWidths},
	"Helvetica-BoldOblique": {name: "Helvetica-BoldOblique", widths: &helveticaBoldWidths},
	"Times-Roman":           {name: "Times-Roman", widths: &timesWidths},
	"Times-Bold":            {name: "Times-Bold", widths: &timesBoldWidths},
	"Times-Italic":          {name: "Times-Italic", widths: &timesWidths},
	"Times-BoldItalic":      {name: "Times-BoldItalic", widths: &timesBoldWidths},
	"Courier":               {name: "Courier", fixed: 600},
	"Courier-Bold":          {name: "Courier-Bold", fixed: 600},
	"Courier-Oblique":       {name: "Courier-Oblique", fixed: 600},
	"Courier-BoldOblique":   {name: "Courier-BoldOblique", fixed: 600},
	"Symbol":                {name: "Symbol", fixed: defaultWidth, symbolic: true},
	"ZapfDingbats":          {name: "ZapfDingbats", fixed: defaultWidth, symbolic: true},
}

// Standard returns the metrics of a standard 14 font by its PostScript name.
func Standard(name string) (*Metrics, bool) {
	m, ok := standardFonts[name]
	return m, ok
}

// Names returns the names of the standard 14 fonts in sorted order.
func Names() []string {
	names := make([]string, 0, len(standardFonts))
	for name := range standardFonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the PostScript name of the font.
func (m *Metrics) Name() string {
	return m.name
}

// Symbolic reports whether the font uses its own built-in encoding instead
// of WinAnsiEncoding.
func (m *Metrics) Symbolic() bool {
	return m.symbolic
}

// Width returns the advance width of r in 1000ths of an em. Accented
// letters are measured by their base letter.
func (m *Metrics) Width(r rune) float32 {
	if m.widths == nil {
		return float32(m.fixed)
	}
	if r < 32 || r > 126 {
		base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
		if base < 32 || base > 126 {
			return defaultWidth
		}
		r = base
	}
	if w := m.widths[r-32]; w != 0 {
		return float32(w)
	}
	return float32(helveticaWidths[r-32])
}

// StringWidth returns the width of s in points when set at size.
func (m *Metrics) StringWidth(s string, size float32) float32 {
	var total float32
	for _, r := range s {
		total += m.Width(r)
	}
	return total * size / 1000
}

// Wrap breaks s into lines no wider than width at the given size, breaking
// at spaces. A word that is wider than width on its own gets a line to
// itself.
func (m *Metrics) Wrap(s string, size, width float32) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	space := m.Width(' ') * size / 1000
	var lines []string
	line := words[0]
	lineWidth := m.StringWidth(line, size)
	for _, word := range words[1:] {
		w := m.StringWidth(word, size)
		if lineWidth+space+w > width {
			lines = append(lines, line)
			line, lineWidth = word, w
			continue
		}
		line += " " + word
		lineWidth += space + w
	}
	return append(lines, line)
}

// WriteDict writes the entries of a simple font dictionary for the font.
// Standard 14 fonts need no widths or font descriptor.
func (m *Metrics) WriteDict(d *core.Dict) {
	d.Pair("Type", core.Name("Font"))
	d.Pair("Subtype", core.Name("Type1"))
	d.Pair("BaseFont", core.Name(m.name))
	if !m.symbolic {
		d.Pair("Encoding", core.Name("WinAnsiEncoding"))
	}
}

// Widths of the printable ASCII characters, space to tilde, in 1000ths of
// an em.
var helveticaWidths = [95]uint16{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]uint16{
	278, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 0, 0, 0, 0, 0,
	0, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 0, 0, 0, 0,
}

var timesWidths = [95]uint16{
	250, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
	556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 0, 0, 0, 0, 0,
	0, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
	500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 0, 0, 0, 0,
}

var timesBoldWidths = [95]uint16{
	250, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
	611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 0, 0, 0, 0, 0,
	0, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
	556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 0, 0, 0, 0,
}
