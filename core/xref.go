package core

import "sort"

// XRefEntry is a single cross-reference table entry.
type XRefEntry struct {
	Offset     int64 // Byte offset of an in-use object, or the next free object number
	Generation int   // Generation number
	InUse      bool  // true if object is in use, false if free
}

// XRefTable is a cross-reference table indexed by object number. Entry 0 is
// always free and heads the linked list of free entries.
type XRefTable struct {
	Entries []XRefEntry
}

// newXRefTable builds the table for the given object offsets, shifted by
// base bytes. When an object number was written more than once, the last
// occurrence wins. Gaps in the numbering become free entries.
func newXRefTable(offsets []offset, base int) *XRefTable {
	sorted := make([]offset, len(offsets))
	copy(sorted, offsets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ref.Get() < sorted[j].ref.Get()
	})

	size := 1
	if n := len(sorted); n > 0 {
		size = int(sorted[n-1].ref.Get()) + 1
	}

	table := &XRefTable{Entries: make([]XRefEntry, size)}
	for _, o := range sorted {
		table.Set(int(o.ref.Get()), XRefEntry{Offset: int64(base + o.pos), InUse: true})
	}
	table.linkFree()
	return table
}

// Size returns the number of entries, which is one more than the highest
// object number.
func (x *XRefTable) Size() int {
	return len(x.Entries)
}

// Get retrieves the entry for an object number.
func (x *XRefTable) Get(objNum int) (XRefEntry, bool) {
	if objNum < 0 || objNum >= len(x.Entries) {
		return XRefEntry{}, false
	}
	return x.Entries[objNum], true
}

// Set adds or replaces the entry for an object number, growing the table as
// needed.
func (x *XRefTable) Set(objNum int, entry XRefEntry) {
	for objNum >= len(x.Entries) {
		x.Entries = append(x.Entries, XRefEntry{})
	}
	x.Entries[objNum] = entry
}

// linkFree chains the free entries into a list: every free entry points to
// the next free object number and the last one points back to 0. Entry 0
// carries generation 65535 so that it is never reused.
func (x *XRefTable) linkFree() {
	prev := 0
	for i := 1; i < len(x.Entries); i++ {
		if x.Entries[i].InUse {
			continue
		}
		x.Entries[prev].Offset = int64(i)
		x.Entries[i] = XRefEntry{}
		prev = i
	}
	x.Entries[prev].Offset = 0
	x.Entries[0].InUse = false
	x.Entries[0].Generation = 65535
}

// writeTo writes the table in its classic form: the xref keyword, a single
// subsection starting at 0 and one 20-byte line per entry.
func (x *XRefTable) writeTo(b *Buf) {
	b.PushString("xref\n0 ")
	b.PushIntAligned(len(x.Entries), 0)
	b.PushByte('\n')
	for _, e := range x.Entries {
		b.PushIntAligned(int(e.Offset), 10)
		b.PushByte(' ')
		b.PushIntAligned(e.Generation, 5)
		if e.InUse {
			b.PushString(" n\r\n")
		} else {
			b.PushString(" f\r\n")
		}
	}
}
