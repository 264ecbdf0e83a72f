package esregex

func isASCIIWordChar(c rune) bool {
	return isDigit(c) || isASCIILetterChar(c) || c == '_'
}

func lowerASCII(c rune) rune {
	return c | ('a' - 'A')
}

func isHexDigit(c rune) bool {
	return uint32(c)-'0' <= 9 || uint32(lowerASCII(c))-'a' <= 'f'-'a'
}

func isDigit(c rune) bool {
	return uint32(c)-'0' <= 9
}

func isOctalDigit(c rune) bool {
	return uint32(c)-'0' <= 7
}

func isASCIILetterChar(c rune) bool {
	return uint32(lowerASCII(c))-'a' <= 'z'-'a'
}

// parseHexDigit expects c to satisfy isHexDigit.
func parseHexDigit(c rune) rune {
	return (c & 0b1111) + (c>>6)*9
}

func isHighSurrogate(r rune) bool {
	return (r >> 10) == (0xd800 >> 10)
}

func isLowSurrogate(r rune) bool {
	return (r >> 10) == (0xdc00 >> 10)
}

func isSurrogate(r rune) bool {
	return uint32(r)-0xd800 < 0xe000-0xd800
}

// ^ $ \ . * + ? ( ) [ ] { } |
func isSyntaxCharacter(c rune) bool {
	switch c {
	case '^', '$', '\\', '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|':
		return true
	}
	return false
}
