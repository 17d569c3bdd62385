package core

import (
	"bytes"
	"errors"
	"strconv"
)

// ErrMalformedObject is reported by Chunk.RenumberStrict when an object's
// "N G obj ... endobj" framing cannot be recognized.
var ErrMalformedObject = errors.New("pdf: malformed indirect object")

// renumber copies every object of source into target under new IDs. It works
// on the serialized bytes: the object interior is scanned lexically and each
// "N G R" reference is rewritten. The IDs of objects that were dropped
// because their framing was not recognized are returned.
func renumber(source, target *Chunk, mapping func(Ref) Ref) []Ref {
	target.buf.limits.Merge(source.buf.limits)

	var skipped []Ref
	data := source.buf.Bytes()
	for i, rec := range source.offsets {
		end := len(data)
		if i+1 < len(source.offsets) {
			end = source.offsets[i+1].pos
		}

		// The mapping sees every record, including ones that are dropped.
		id := mapRef(mapping, rec.ref)
		gen, inner, ok := extractObject(data[rec.pos:end])
		if !ok {
			skipped = append(skipped, rec.ref)
			continue
		}

		target.offsets = append(target.offsets, offset{ref: id, pos: target.buf.Len()})
		target.buf.PushInt(id.Get())
		target.buf.PushByte(' ')
		target.buf.PushInt(gen)
		target.buf.PushString(" obj\n")
		patchObject(inner, target.buf, mapping)
		target.buf.PushString("\nendobj\n\n")
	}
	return skipped
}

func mapRef(mapping func(Ref) Ref, old Ref) Ref {
	id := mapping(old)
	if id.IsZero() {
		panic("pdf: renumber mapping returned the zero Ref for " + old.String())
	}
	return id
}

// extractObject returns the generation number and the interior of an
// indirect object, with surrounding whitespace trimmed.
func extractObject(slice []byte) (int32, []byte, bool) {
	at := bytes.Index(slice, []byte("obj"))
	if at < 0 {
		return 0, nil, false
	}

	prefix, ok := requireWhitespaceRev(slice[:at])
	if !ok {
		return 0, nil, false
	}
	gen, _, ok := eatNumberRev(prefix)
	if !ok {
		return 0, nil, false
	}

	head := at + len("obj")
	tail := bytes.LastIndex(slice, []byte("endobj"))
	if tail < head {
		return 0, nil, false
	}
	for head < tail && isWhitespace(slice[head]) {
		head++
	}
	for tail > head && isWhitespace(slice[tail-1]) {
		tail--
	}
	return gen, slice[head:tail], true
}

// patchObject copies the interior of an object into buf, rewriting indirect
// references on the way.
//
// The scanner only stops at bytes that matter:
//   - 'R' may end an indirect reference.
//   - '%' starts a comment and '(' a literal string; both may contain text
//     that looks like a reference and are skipped.
//   - 's' may start the keyword stream, after which the rest is an opaque
//     payload and is copied verbatim.
//
// Names and hex strings cannot contain whitespace or R-after-digits, so they
// need no special handling.
func patchObject(slice []byte, buf *Buf, mapping func(Ref) Ref) {
	written := 0
	seen := 0
	for seen < len(slice) {
		switch slice[seen] {
		case 'R':
			if head, id, gen, ok := validateRef(slice[:seen]); ok && head >= written {
				next := mapRef(mapping, id)
				buf.PushBytes(slice[written:head])
				buf.PushInt(next.Get())
				buf.PushByte(' ')
				buf.PushInt(gen)
				buf.PushString(" R")
				written = seen + 1
			}

		case '%':
			for seen < len(slice) && slice[seen] != '\n' && slice[seen] != '\r' {
				seen++
			}

		case '(':
			depth := 0
		str:
			for seen < len(slice) {
				switch slice[seen] {
				case '(':
					depth++
				case ')':
					if depth == 1 {
						break str
					}
					depth--
				case '\\':
					seen++
				}
				seen++
			}

		case 's':
			if bytes.HasPrefix(slice[seen:], []byte("stream")) && validateStream(slice[:seen]) {
				buf.PushBytes(slice[written:])
				return
			}
		}
		seen++
	}

	buf.PushBytes(slice[written:])
}

// validateRef checks whether prefix ends with "<id> <gen> " and returns the
// position where the id starts.
func validateRef(prefix []byte) (int, Ref, int32, bool) {
	prefix, ok := requireWhitespaceRev(prefix)
	if !ok {
		return 0, Ref{}, 0, false
	}
	gen, prefix, ok := eatNumberRev(prefix)
	if !ok {
		return 0, Ref{}, 0, false
	}
	prefix, ok = requireWhitespaceRev(prefix)
	if !ok {
		return 0, Ref{}, 0, false
	}
	id, prefix, ok := eatNumberRev(prefix)
	if !ok || id <= 0 {
		return 0, Ref{}, 0, false
	}
	return len(prefix), NewRef(id), gen, true
}

// validateStream reports whether the stream keyword at the end of prefix
// follows a dictionary.
func validateStream(prefix []byte) bool {
	trimmed, _ := requireWhitespaceRev(prefix)
	return bytes.HasSuffix(trimmed, []byte(">>"))
}

// requireWhitespaceRev strips trailing whitespace, failing if there is none.
func requireWhitespaceRev(slice []byte) ([]byte, bool) {
	i := len(slice)
	for i > 0 && isWhitespace(slice[i-1]) {
		i--
	}
	return slice[:i], i < len(slice)
}

// eatNumberRev strips a trailing run of decimal digits and parses it.
func eatNumberRev(slice []byte) (int32, []byte, bool) {
	i := len(slice)
	for i > 0 && isDigit(slice[i-1]) {
		i--
	}
	n, err := strconv.ParseInt(string(slice[i:]), 10, 32)
	if err != nil {
		return 0, slice, false
	}
	return int32(n), slice[:i], true
}

// isWhitespace reports whether b is whitespace in PDF syntax: space, tab,
// LF, CR, FF or NUL.
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
