package esregex

import (
	"unicode/utf16"
	"unicode/utf8"
)

// decodeStringLiteral decodes a quoted JavaScript string literal into units
// whose spans point into text. The returned end position is the offset of the
// closing quote.
func decodeStringLiteral(text string, unicodeMode bool) ([]unit, int, bool) {
	if len(text) < 2 {
		return nil, 0, false
	}
	quote := text[0]
	if (quote != '"' && quote != '\'') || text[len(text)-1] != quote {
		return nil, 0, false
	}
	if !utf8.ValidString(text) {
		return nil, 0, false
	}
	end := len(text) - 1

	var units []unit
	for i := 1; i < end; {
		r, size := utf8.DecodeRuneInString(text[i:])
		start := i
		switch r {
		case rune(quote), '\n', '\r':
			return nil, 0, false
		case '\\':
			i += size
			if i >= end {
				return nil, 0, false
			}
			var (
				v  rune
				ok bool
			)
			v, i, ok = decodeStringEscape(text, i, end)
			if !ok {
				return nil, 0, false
			}
			if v == eof {
				// line continuation
				continue
			}
			units = appendRune(units, v, start, i, unicodeMode)
		default:
			i += size
			units = appendRune(units, r, start, i, unicodeMode)
		}
	}

	if unicodeMode {
		units = combineSurrogates(units)
	}
	return units, end, true
}

// decodeStringEscape decodes the escape whose body starts at text[i] (just
// after the backslash). It returns eof for a line continuation.
func decodeStringEscape(text string, i, end int) (rune, int, bool) {
	r, size := utf8.DecodeRuneInString(text[i:])
	switch r {
	case 'n':
		return '\n', i + 1, true
	case 't':
		return '\t', i + 1, true
	case 'b':
		return '\b', i + 1, true
	case 'f':
		return '\f', i + 1, true
	case 'v':
		return '\v', i + 1, true
	case 'r':
		return '\r', i + 1, true
	case '\r':
		if i+1 < end && text[i+1] == '\n' {
			return eof, i + 2, true
		}
		return eof, i + 1, true
	case '\n', '\u2028', '\u2029':
		return eof, i + size, true
	case 'x':
		if i+2 >= end || !isHexDigit(rune(text[i+1])) || !isHexDigit(rune(text[i+2])) {
			return 0, i, false
		}
		return parseHexDigit(rune(text[i+1]))<<4 | parseHexDigit(rune(text[i+2])), i + 3, true
	case 'u':
		return decodeStringUnicodeEscape(text, i+1, end)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		// Legacy octal escape: up to three digits, at most 0o377.
		v := r - '0'
		i++
		maxDigits := 3
		if r >= '4' {
			maxDigits = 2
		}
		for n := 1; n < maxDigits && i < end && text[i] >= '0' && text[i] <= '7'; n++ {
			v = v*8 + rune(text[i]-'0')
			i++
		}
		return v, i, true
	default:
		// "\8", "\9" and identity escapes
		return r, i + size, true
	}
}

func decodeStringUnicodeEscape(text string, i, end int) (rune, int, bool) {
	if i < end && text[i] == '{' {
		i++
		var v rune
		digits := 0
		for ; i < end && text[i] != '}'; i++ {
			if !isHexDigit(rune(text[i])) {
				return 0, i, false
			}
			v = v<<4 | parseHexDigit(rune(text[i]))
			if v > utf8.MaxRune {
				return 0, i, false
			}
			digits++
		}
		if i >= end || digits == 0 {
			return 0, i, false
		}
		return v, i + 1, true
	}
	if i+4 > end {
		return 0, i, false
	}
	var v rune
	for j := i; j < i+4; j++ {
		if !isHexDigit(rune(text[j])) {
			return 0, i, false
		}
		v = v<<4 | parseHexDigit(rune(text[j]))
	}
	return v, i + 4, true
}

// combineSurrogates merges adjacent high and low surrogate units, as produced
// by \u escape pairs, into one code point.
func combineSurrogates(units []unit) []unit {
	out := units[:0]
	for i := 0; i < len(units); i++ {
		u := units[i]
		if isHighSurrogate(u.value) && i+1 < len(units) && isLowSurrogate(units[i+1].value) {
			u = unit{
				value: utf16.DecodeRune(u.value, units[i+1].value),
				start: u.start,
				end:   units[i+1].end,
			}
			i++
		}
		out = append(out, u)
	}
	return out
}
