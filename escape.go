package esregex

import (
	"unicode"
	"unicode/utf16"
)

// parseAtomEscape parses the escape starting at the backslash.
func (p *parser) parseAtomEscape() (Term, error) {
	start := p.src.position()
	p.src.advance()
	char := p.src.peek()

	// DecimalEscape
	if char >= '1' && char <= '9' {
		patternCopy := p.src
		n, overflow, _ := p.parseDecimalDigits()
		if overflow {
			return nil, errTooLargeNumberDigits(p.span(start), "decimal")
		}
		if n <= uint64(p.getTotalCapturesCount()) {
			return &IndexedReference{Span: p.span(start), Index: uint32(n)}, nil
		}
		if p.unicodeMode {
			return nil, errInvalidIndexedReference(p.span(start))
		}
		p.src = patternCopy
	}

	// k GroupName, only with [+NamedCaptureGroups]
	if char == 'k' && (p.unicodeMode || p.hasNamedGroups()) {
		p.src.advance()
		if !p.src.eat('<') {
			return nil, errInvalidNamedReference(p.span(start))
		}
		name, ok, err := p.parseGroupName()
		if err != nil {
			return nil, err
		}
		if !ok || !p.src.eat('>') {
			return nil, errInvalidNamedReference(p.span(start))
		}
		if !p.hasNamedGroup(name) {
			return nil, errInvalidNamedReference(p.span(start))
		}
		return &NamedReference{Span: p.span(start), Name: name}, nil
	}

	if esc := p.parseCharacterClassEscape(start); esc != nil {
		return esc, nil
	}
	if p.unicodeMode {
		prop, err := p.parseUnicodePropertyEscape(start)
		if err != nil {
			return nil, err
		}
		if prop != nil {
			return prop, nil
		}
	}

	ch, err := p.parseCharacterEscape(start)
	if err != nil {
		return nil, err
	}
	if ch != nil {
		return ch, nil
	}

	// ExtendedAtom :: \ [lookahead = c]
	if !p.unicodeMode && char == 'c' {
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: '\\'}, nil
	}
	return nil, errInvalidExtendedAtomEscape(p.span(start))
}

func (p *parser) hasNamedGroups() bool {
	p.getTotalCapturesCount()
	return len(p.allNamedCaptures) > 0
}

// hasNamedGroup reports whether name is declared anywhere in the pattern.
func (p *parser) hasNamedGroup(name string) bool {
	p.getTotalCapturesCount()
	_, ok := p.allNamedCaptures[name]
	return ok
}

// parseCharacterClassEscape parses one of \d \D \s \S \w \W after the
// backslash.
func (p *parser) parseCharacterClassEscape(start int) *CharacterClassEscape {
	var kind CharacterClassEscapeKind
	switch p.src.peek() {
	case 'd':
		kind = EscapeDigit
	case 'D':
		kind = EscapeNonDigit
	case 's':
		kind = EscapeSpace
	case 'S':
		kind = EscapeNonSpace
	case 'w':
		kind = EscapeWord
	case 'W':
		kind = EscapeNonWord
	default:
		return nil
	}
	p.src.advance()
	return &CharacterClassEscape{Span: p.span(start), Kind: kind}
}

// parseUnicodePropertyEscape parses \p{...} or \P{...} after the backslash.
// It must only be called in Unicode mode.
func (p *parser) parseUnicodePropertyEscape(start int) (*UnicodePropertyEscape, error) {
	char := p.src.peek()
	if char != 'p' && char != 'P' {
		return nil, nil
	}
	p.src.advance()
	negate := char == 'P'

	if !p.src.eat('{') {
		return nil, errInvalidUnicodeProperty(p.span(start), "syntax")
	}
	nameStart := p.src.pos
	for isASCIIWordChar(p.src.peek()) {
		p.src.advance()
	}
	nameOrValue := p.src.stringInRange(nameStart, p.src.pos)

	var value string
	hasValue := false
	if p.src.eat('=') {
		valueStart := p.src.pos
		for isASCIIWordChar(p.src.peek()) {
			p.src.advance()
		}
		value = p.src.stringInRange(valueStart, p.src.pos)
		hasValue = true
	}
	if !p.src.eat('}') || nameOrValue == "" || (hasValue && value == "") {
		return nil, errInvalidUnicodeProperty(p.span(start), "syntax")
	}
	span := p.span(start)

	prop := &UnicodePropertyEscape{Span: span, Negate: negate}
	switch {
	case hasValue:
		if !isValidUnicodeProperty(nameOrValue, value) {
			return nil, errInvalidUnicodeProperty(span, "name")
		}
		prop.Name, prop.Value, prop.HasValue = nameOrValue, value, true
	case gcPropertyValues.has(nameOrValue):
		prop.Name, prop.Value, prop.HasValue = "General_Category", nameOrValue, true
	case isValidLoneUnicodeProperty(nameOrValue):
		prop.Name = nameOrValue
	case isValidLoneUnicodePropertyOfStrings(nameOrValue):
		if !p.unicodeSetsMode {
			return nil, errInvalidUnicodePropertyOfStrings(span, nameOrValue)
		}
		if negate {
			return nil, errInvalidUnicodePropertyNameNegativeStrings(span, nameOrValue)
		}
		prop.Name, prop.Strings = nameOrValue, true
	default:
		return nil, errInvalidUnicodeProperty(span, "name and/or value")
	}
	return prop, nil
}

var controlEscapes = [...]rune{
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// parseCharacterEscape parses a CharacterEscape after the backslash. It
// returns nil without consuming anything when there is none.
func (p *parser) parseCharacterEscape(start int) (*Character, error) {
	char := p.src.peek()
	newChar := func(kind CharacterKind, value rune) *Character {
		return &Character{Span: p.span(start), Kind: kind, Value: value}
	}

	switch char {
	case 'f', 'n', 'r', 't', 'v':
		p.src.advance()
		return newChar(CharacterSingleEscape, controlEscapes[char]), nil
	case 'c':
		if letter := p.src.peekAt(1); isASCIILetterChar(letter) {
			p.src.pos += 2
			return newChar(CharacterControlLetter, letter%32), nil
		}
		return nil, nil
	case '0':
		if !isDigit(p.src.peekAt(1)) {
			p.src.advance()
			return newChar(CharacterNull, 0), nil
		}
		if p.unicodeMode {
			return nil, nil
		}
	case 'x':
		if first, second := p.src.peekAt(1), p.src.peekAt(2); isHexDigit(first) && isHexDigit(second) {
			p.src.pos += 3
			return newChar(CharacterHexadecimalEscape, parseHexDigit(first)<<4|parseHexDigit(second)), nil
		}
		if p.unicodeMode {
			return nil, nil
		}
	case 'u':
		patternCopy := p.src
		p.src.advance()
		r, ok, err := p.parseUnicodeEscapeSequence(start, p.unicodeMode)
		if err != nil {
			return nil, err
		}
		if ok {
			return newChar(CharacterUnicodeEscape, r), nil
		}
		p.src = patternCopy
	}

	if !p.unicodeMode && isOctalDigit(char) {
		return p.parseLegacyOctalEscape(start), nil
	}

	// IdentityEscape
	if p.unicodeMode {
		if isSyntaxCharacter(char) || char == '/' {
			p.src.advance()
			return newChar(CharacterIdentifier, char), nil
		}
		return nil, nil
	}
	if char == eof || char == 'c' || (char == 'k' && p.hasNamedGroups()) {
		return nil, nil
	}
	p.src.advance()
	return newChar(CharacterIdentifier, char), nil
}

// LegacyOctalEscapeSequence
func (p *parser) parseLegacyOctalEscape(start int) *Character {
	first, _ := p.src.advance()
	value := first - '0'
	kind := CharacterOctal1

	if second := p.src.peek(); isOctalDigit(second) {
		p.src.advance()
		value = value*8 + second - '0'
		kind = CharacterOctal2
		if third := p.src.peek(); first <= '3' && isOctalDigit(third) {
			p.src.advance()
			value = value*8 + third - '0'
			kind = CharacterOctal3
		}
	}
	return &Character{Span: p.span(start), Kind: kind, Value: value}
}

func (p *parser) peek4HexDigits() (rune, bool) {
	var r rune
	for i := 0; i < 4; i++ {
		c := p.src.peekAt(i)
		if !isHexDigit(c) {
			return 0, false
		}
		r = r<<4 | parseHexDigit(c)
	}
	return r, true
}

// parseUnicodeEscapeSequence parses RegExpUnicodeEscapeSequence after "\u".
// Malformed sequences are errors in Unicode mode; otherwise it returns false
// and the caller rewinds.
func (p *parser) parseUnicodeEscapeSequence(start int, unicodeMode bool) (rune, bool, error) {
	if unicodeMode && p.src.eat('{') {
		var r rune
		digits := 0
		for isHexDigit(p.src.peek()) {
			c, _ := p.src.advance()
			r = r<<4 | parseHexDigit(c)
			if r > unicode.MaxRune {
				return 0, false, errInvalidUnicodeEscapeSequence(p.span(start))
			}
			digits++
		}
		if digits == 0 || !p.src.eat('}') {
			return 0, false, errInvalidUnicodeEscapeSequence(p.span(start))
		}
		return r, true, nil
	}

	r, ok := p.peek4HexDigits()
	if !ok {
		if unicodeMode {
			return 0, false, errInvalidUnicodeEscapeSequence(p.span(start))
		}
		return 0, false, nil
	}
	p.src.pos += 4

	if unicodeMode && isHighSurrogate(r) {
		patternCopy := p.src
		if p.src.eat2('\\', 'u') {
			if lo, ok := p.peek4HexDigits(); ok && isLowSurrogate(lo) {
				p.src.pos += 4
				return utf16.DecodeRune(r, lo), true, nil
			}
		}
		p.src = patternCopy
	}
	return r, true, nil
}
