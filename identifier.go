package esregex

import (
	"unicode"
	"unicode/utf8"
)

const (
	zwnj rune = 0x200C
	zwj  rune = 0x200D
)

// isIDStart reports whether r has the Unicode ID_Start property.
//
// ID_Start = L + Nl + Other_ID_Start - Pattern_Syntax - Pattern_White_Space
func isIDStart(r rune) bool {
	if r < utf8.RuneSelf {
		return isASCIILetterChar(r)
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// isIDContinue reports whether r has the Unicode ID_Continue property.
//
// ID_Continue = ID_Start + Mn + Mc + Nd + Pc + Other_ID_Continue
// - Pattern_Syntax - Pattern_White_Space
func isIDContinue(r rune) bool {
	if r < utf8.RuneSelf {
		return isASCIIWordChar(r)
	}
	if isIDStart(r) {
		return true
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// RegExpIdentifierStart
func isGroupNameStart(r rune) bool {
	return r == '$' || r == '_' || isIDStart(r)
}

// RegExpIdentifierPart
func isGroupNameContinue(r rune) bool {
	return r == '$' || r == zwnj || r == zwj || isIDContinue(r)
}
