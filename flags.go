package esregex

import "strings"

// Flags is a bitmask of RegExp flags.
// The zero value corresponds to /pattern/ with no flags.
type Flags uint16

const (
	// Match indices ("d" flag).
	FlagHasIndices Flags = 1 << iota

	// Global search ("g" flag).
	FlagGlobal

	// Case-insensitive matching ("i" flag).
	FlagIgnoreCase

	// "^" and "$" match line boundaries ("m" flag).
	FlagMultiline

	// "." matches line terminators ("s" flag).
	FlagDotAll

	// Unicode-aware mode ("u" flag).
	FlagUnicode

	// Unicode set notation and string properties ("v" flag).
	// Implies Unicode mode.
	FlagUnicodeSets

	// Sticky match from current position ("y" flag).
	FlagSticky

	flagEitherUnicode = FlagUnicode | FlagUnicodeSets
)

var flagLetters = [...]struct {
	letter rune
	flag   Flags
}{
	{'d', FlagHasIndices},
	{'g', FlagGlobal},
	{'i', FlagIgnoreCase},
	{'m', FlagMultiline},
	{'s', FlagDotAll},
	{'u', FlagUnicode},
	{'v', FlagUnicodeSets},
	{'y', FlagSticky},
}

func flagForLetter(c rune) (Flags, bool) {
	for _, f := range flagLetters {
		if f.letter == c {
			return f.flag, true
		}
	}
	return 0, false
}

// UnicodeMode reports whether either "u" or "v" is set.
func (f Flags) UnicodeMode() bool {
	return f&flagEitherUnicode != 0
}

// UnicodeSetsMode reports whether "v" is set.
func (f Flags) UnicodeSetsMode() bool {
	return f&FlagUnicodeSets != 0
}

// String returns the flags in canonical "dgimsuvy" order.
func (f Flags) String() string {
	var sb strings.Builder
	for _, l := range flagLetters {
		if f&l.flag != 0 {
			sb.WriteRune(l.letter)
		}
	}
	return sb.String()
}

// parseFlags validates the flags read by r. Reported spans are shifted by
// spanOffset.
func parseFlags(r reader, spanOffset uint32) (Flags, error) {
	var flags Flags
	for !r.atEnd() {
		start := r.position()
		c, _ := r.advance()
		span := Span{Start: spanOffset + uint32(start), End: spanOffset + uint32(r.position())}

		f, ok := flagForLetter(c)
		if !ok {
			return 0, errUnknownFlag(span)
		}
		if flags&f != 0 {
			return 0, errDuplicatedFlags(span)
		}
		if f&flagEitherUnicode != 0 && flags&flagEitherUnicode != 0 {
			return 0, errInvalidUnicodeFlags(span)
		}
		flags |= f
	}
	return flags, nil
}

// ParseFlags validates the flags of a regular expression literal, e.g. "gu".
func ParseFlags(text string) (Flags, error) {
	r, err := newReader(text, true, false, 0)
	if err != nil {
		return 0, err
	}
	return parseFlags(r, 0)
}
