// Package core provides the low-level PDF serialization engine.
//
// It writes indirect objects, dictionaries, arrays and streams straight into
// an in-memory byte buffer, tracks where each object starts, and finishes a
// document with a cross-reference table and trailer.
//
// # Primitives
//
// The closed set of primitive values implements the [Primitive] interface:
//
//   - [Bool], [Int], [Real] and [Null]
//   - [Str] - a byte string, written literally or in hex form
//   - [TextStr] - a Unicode text string, written as UTF-16BE with a byte order mark
//   - [Name] - written as /Name with #XX escapes
//   - [Ref] - an indirect reference, written as "N 0 R"
//   - [Rect] and [Date]
//
// Every primitive write also updates the buffer's [Limits], which record the
// largest numbers, longest names and strings, and largest arrays and
// dictionaries written so far.
//
// # Writers
//
// Compound values are written through scoped writers: [Obj] is a slot for one
// value, [Array] and [Dict] write compound values and [Stream] writes a stream
// dictionary followed by its payload. Each writer must be finished with End.
// Writers nest: using an outer writer finishes everything nested in it, so
// the output stays well formed even if an inner writer is abandoned.
//
//	pdf := core.NewPdf()
//	catalog, pages := core.NewRef(1), core.NewRef(2)
//	pdf.Catalog(catalog).Pair("Pages", pages).End()
//	kids := pdf.Indirect(pages).Dict()
//	kids.Pair("Type", core.Name("Pages"))
//	kids.Key("Kids").Array().End()
//	kids.Pair("Count", core.Int(0))
//	kids.End()
//	data := pdf.Finish(catalog)
//
// # Chunks
//
// A [Chunk] holds a sequence of indirect objects. Chunks can be built
// independently and merged with [Chunk.Extend], and a finished chunk can be
// renumbered with [Chunk.Renumber], which rewrites object IDs and references
// directly in the serialized bytes.
//
// Misusing the writer API (writing to a finished writer, zero references,
// oversized streams) is a programming error and panics.
package core
