package core

import "fmt"

// Pdf is a whole document: a chunk of indirect objects plus the header,
// cross-reference table and trailer that Finish wraps around it.
//
// Pdf embeds *Chunk, so objects are written with Indirect, Stream and
// Extend directly on the document.
type Pdf struct {
	*Chunk
	major, minor int
	binaryMarker bool
	info         Ref
	fileID       *[2][]byte
}

// NewPdf creates a PDF 1.7 document with an 8 KB initial buffer.
func NewPdf() *Pdf {
	return NewPdfWithCapacity(8 * 1024)
}

// NewPdfWithCapacity creates a PDF 1.7 document with the given initial
// buffer capacity.
func NewPdfWithCapacity(capacity int) *Pdf {
	return &Pdf{
		Chunk:        NewChunkWithCapacity(capacity),
		major:        1,
		minor:        7,
		binaryMarker: true,
	}
}

// SetVersion sets the version written in the file header.
func (p *Pdf) SetVersion(major, minor int) {
	if major < 0 || minor < 0 {
		panic(fmt.Sprintf("pdf: invalid version %d.%d", major, minor))
	}
	p.major, p.minor = major, minor
}

// Version returns the version written in the file header.
func (p *Pdf) Version() (major, minor int) {
	return p.major, p.minor
}

// SetBinaryMarker controls whether the header carries a comment with four
// bytes above 127, which tells transport tools that the file is binary.
// Enabled by default.
func (p *Pdf) SetBinaryMarker(on bool) {
	p.binaryMarker = on
}

// SetInfo sets the /Info entry of the trailer.
func (p *Pdf) SetInfo(id Ref) {
	p.info = id
}

// SetFileID sets the /ID entry of the trailer: a permanent identifier that
// stays the same across revisions and one that changes with every revision.
func (p *Pdf) SetFileID(permanent, changing []byte) {
	p.fileID = &[2][]byte{permanent, changing}
}

// Catalog starts the document catalog dictionary with its /Type entry.
func (p *Pdf) Catalog(id Ref) *Dict {
	d := p.Indirect(id).Dict()
	d.Pair("Type", Name("Catalog"))
	return d
}

// DocumentInfo starts the document information dictionary and registers it
// as the trailer's /Info entry.
func (p *Pdf) DocumentInfo(id Ref) *Dict {
	p.SetInfo(id)
	return p.Indirect(id).Dict()
}

// header returns the file header.
func (p *Pdf) header() *Buf {
	b := NewBuf(32)
	b.PushString("%PDF-")
	b.PushIntAligned(p.major, 0)
	b.PushByte('.')
	b.PushIntAligned(p.minor, 0)
	b.PushByte('\n')
	if p.binaryMarker {
		b.PushString("%\x80\x80\x80\x80\n")
	}
	b.PushByte('\n')
	return b
}

// Finish releases open writers and returns the complete file: header, all
// objects, the cross-reference table and the trailer naming root as the
// document catalog.
func (p *Pdf) Finish(root Ref) []byte {
	if root.IsZero() {
		panic("pdf: document root is the zero Ref")
	}
	p.release()

	out := p.header()
	base := out.Len()
	out.Reserve(p.buf.Len() + 20*(len(p.offsets)+1) + 128)
	out.PushBytes(p.buf.Bytes())

	table := newXRefTable(p.offsets, base)
	xrefOffset := out.Len()
	table.writeTo(out)

	out.PushString("trailer\n<<\n/Size ")
	out.PushIntAligned(table.Size(), 0)
	out.PushString("\n/Root ")
	out.PushVal(root)
	if !p.info.IsZero() {
		out.PushString("\n/Info ")
		out.PushVal(p.info)
	}
	if p.fileID != nil {
		out.PushString("\n/ID [")
		out.PushVal(Str(p.fileID[0]))
		out.PushByte(' ')
		out.PushVal(Str(p.fileID[1]))
		out.PushByte(']')
	}
	out.PushString("\n>>\nstartxref\n")
	out.PushIntAligned(xrefOffset, 0)
	out.PushString("\n%%EOF")
	return out.Bytes()
}
