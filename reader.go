package esregex

import (
	"unicode/utf16"
	"unicode/utf8"
)

// eof is returned by peek at the end of the input.
const eof rune = -1

// unit is one logical character of the input together with the byte range
// of the text it was decoded from.
type unit struct {
	value rune
	start int
	end   int
}

// reader is a cursor over the decoded units of a pattern or flags text.
//
// The reader is a small value: copying it takes a checkpoint, assigning the
// copy back rewinds.
type reader struct {
	units []unit
	// endPos is the byte offset reported once all units are consumed.
	endPos      int
	pos         int
	unicodeMode bool
}

// newReader decodes text. Malformed input is reported as invalid_input
// spanning the whole text, shifted by spanOffset.
func newReader(text string, unicodeMode, parseStringLiteral bool, spanOffset uint32) (reader, error) {
	var units []unit
	var endPos int
	if parseStringLiteral {
		var ok bool
		units, endPos, ok = decodeStringLiteral(text, unicodeMode)
		if !ok {
			return reader{}, errInvalidInput(Span{Start: spanOffset, End: spanOffset + uint32(len(text))})
		}
	} else {
		if !utf8.ValidString(text) {
			return reader{}, errInvalidInput(Span{Start: spanOffset, End: spanOffset + uint32(len(text))})
		}
		units = make([]unit, 0, len(text))
		for i, r := range text {
			units = appendRune(units, r, i, i+utf8.RuneLen(r), unicodeMode)
		}
		endPos = len(text)
	}
	return reader{
		units:       units,
		endPos:      endPos,
		unicodeMode: unicodeMode,
	}, nil
}

// appendRune appends r, splitting astral code points into a surrogate pair
// outside of Unicode mode. The low surrogate gets an empty span at end.
func appendRune(units []unit, r rune, start, end int, unicodeMode bool) []unit {
	if unicodeMode || r < 0x10000 {
		return append(units, unit{value: r, start: start, end: end})
	}
	hi, lo := utf16.EncodeRune(r)
	return append(units,
		unit{value: hi, start: start, end: end},
		unit{value: lo, start: end, end: end},
	)
}

func (r *reader) atEnd() bool {
	return r.pos >= len(r.units)
}

func (r *reader) peek() rune {
	return r.peekAt(0)
}

func (r *reader) peekAt(n int) rune {
	if r.pos+n >= len(r.units) {
		return eof
	}
	return r.units[r.pos+n].value
}

// advance consumes the next unit. It returns false at the end of the input.
func (r *reader) advance() (rune, bool) {
	if r.pos >= len(r.units) {
		return 0, false
	}
	c := r.units[r.pos].value
	r.pos++
	return c, true
}

func (r *reader) eat(c rune) bool {
	if r.peek() != c {
		return false
	}
	r.pos++
	return true
}

func (r *reader) eat2(c1, c2 rune) bool {
	if r.peek() != c1 || r.peekAt(1) != c2 {
		return false
	}
	r.pos += 2
	return true
}

func (r *reader) eat3(c1, c2, c3 rune) bool {
	if r.peek() != c1 || r.peekAt(1) != c2 || r.peekAt(2) != c3 {
		return false
	}
	r.pos += 3
	return true
}

// position returns the byte offset of the next unit.
func (r *reader) position() int {
	if r.pos >= len(r.units) {
		return r.endPos
	}
	return r.units[r.pos].start
}

// stringInRange returns the decoded text of units [start, end).
func (r *reader) stringInRange(start, end int) string {
	runes := make([]rune, 0, end-start)
	for _, u := range r.units[start:end] {
		runes = append(runes, u.value)
	}
	return string(runes)
}
