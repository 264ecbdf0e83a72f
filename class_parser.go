package esregex

func (p *parser) parseCharacterClass() (*CharacterClass, error) {
	start := p.src.position()
	p.src.advance()
	negate := p.src.eat('^')

	if p.unicodeSetsMode {
		return p.parseClassSetExpression(start, negate)
	}

	mode := ClassModeLegacy
	if p.unicodeMode {
		mode = ClassModeUnicode
	}
	body, err := p.parseClassRanges()
	if err != nil {
		return nil, err
	}
	if !p.src.eat(']') {
		return nil, errUnterminatedPattern(p.span(start), "character class")
	}
	return &CharacterClass{
		Span:   p.span(start),
		Negate: negate,
		Mode:   mode,
		Body:   body,
	}, nil
}

// parseClassRanges parses ClassContents outside of Unicode-Sets mode.
func (p *parser) parseClassRanges() ([]ClassContent, error) {
	var body []ClassContent
	for {
		if char := p.src.peek(); char == ']' || char == eof {
			return body, nil
		}

		start := p.src.position()
		left, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}

		dashStart := p.src.position()
		if !p.src.eat('-') {
			body = append(body, left)
			continue
		}
		dash := &Character{Span: p.span(dashStart), Kind: CharacterSymbol, Value: '-'}
		if char := p.src.peek(); char == ']' || char == eof {
			body = append(body, left, dash)
			continue
		}

		right, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		min, minOk := left.(*Character)
		max, maxOk := right.(*Character)
		if !minOk || !maxOk {
			if p.unicodeMode {
				return nil, errCharacterClassRangeInvalidAtom(p.span(start))
			}
			body = append(body, left, dash, right)
			continue
		}
		if min.Value > max.Value {
			return nil, errCharacterClassRangeOutOfOrder(p.span(start), "class")
		}
		body = append(body, &ClassRange{Span: p.span(start), Min: min, Max: max})
	}
}

// parseClassAtom expects the reader not to be at the end of the class.
func (p *parser) parseClassAtom() (ClassContent, error) {
	start := p.src.position()
	char, _ := p.src.advance()
	if char != '\\' {
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: char}, nil
	}

	switch p.src.peek() {
	case 'b':
		p.src.advance()
		// backspace
		return &Character{Span: p.span(start), Kind: CharacterSingleEscape, Value: 0x08}, nil
	case '-':
		if p.unicodeMode {
			p.src.advance()
			return &Character{Span: p.span(start), Kind: CharacterIdentifier, Value: '-'}, nil
		}
	case 'c':
		// ClassControlLetter
		if next := p.src.peekAt(1); !p.unicodeMode && (isDigit(next) || next == '_') {
			p.src.pos += 2
			return &Character{Span: p.span(start), Kind: CharacterControlLetter, Value: next % 32}, nil
		}
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
	// ClassAtomNoDash :: \ [lookahead = c]
	if !p.unicodeMode && p.src.peek() == 'c' {
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: '\\'}, nil
	}
	return nil, errInvalidClassAtom(p.span(start))
}

// parseClassSetExpression parses the body of a Unicode-Sets mode class
// after "[" or "[^", up to and including the closing "]".
func (p *parser) parseClassSetExpression(start int, negate bool) (*CharacterClass, error) {
	class := &CharacterClass{Negate: negate, Mode: ClassModeUnicodeSets}

	switch {
	case p.src.eat(']'):
		class.Span = p.span(start)
		return class, nil
	case p.src.atEnd():
		return nil, errUnterminatedPattern(p.span(start), "character class")
	case p.atClassSetOperator('&'), p.atClassSetOperator('-'):
		return nil, errEmptyClassSetExpression(p.span(start))
	}

	first, err := p.parseClassSetOperand("class union")
	if err != nil {
		return nil, err
	}

	switch {
	case p.atClassSetOperator('&'):
		class.Operator = ClassIntersection
		err = p.parseClassIntersection(start, class, first)
	case p.atClassSetOperator('-'):
		class.Operator = ClassSubtraction
		err = p.parseClassSubtraction(start, class, first)
	default:
		class.Operator = ClassUnion
		err = p.parseClassUnion(start, class, first)
	}
	if err != nil {
		return nil, err
	}

	class.Span = p.span(start)
	if class.Negate && class.Strings {
		return nil, errInvalidCharacterClass(class.Span)
	}
	return class, nil
}

// atClassSetOperator reports whether the reader is at "&&" or "--".
func (p *parser) atClassSetOperator(c rune) bool {
	return p.src.peek() == c && p.src.peekAt(1) == c
}

func (p *parser) parseClassUnion(start int, class *CharacterClass, operand ClassContent) error {
	for {
		if min, ok := operand.(*Character); ok && p.src.peek() == '-' && !p.atClassSetOperator('-') {
			// ClassSetRange
			p.src.advance()
			maxStart := p.src.position()
			max, err := p.parseClassSetCharacter("class union")
			if err != nil {
				return err
			}
			if max == nil {
				p.src.advance()
				return errClassSetExpressionInvalidCharacter(p.span(maxStart), "class union")
			}
			rangeSpan := Span{Start: min.Span.Start, End: max.Span.End}
			if min.Value > max.Value {
				return errCharacterClassRangeOutOfOrder(rangeSpan, "class set")
			}
			operand = &ClassRange{Span: rangeSpan, Min: min, Max: max}
		}
		class.Body = append(class.Body, operand)
		class.Strings = class.Strings || mayContainStrings(operand)

		switch {
		case p.src.eat(']'):
			return nil
		case p.src.atEnd():
			return errUnterminatedPattern(p.span(start), "character class")
		case p.atClassSetOperator('&'), p.atClassSetOperator('-'):
			return errCharacterClassContentsInvalidOperands(p.span(start))
		}

		var err error
		operand, err = p.parseClassSetOperand("class union")
		if err != nil {
			return err
		}
	}
}

func (p *parser) parseClassIntersection(start int, class *CharacterClass, operand ClassContent) error {
	class.Body = append(class.Body, operand)
	class.Strings = mayContainStrings(operand)

	for {
		p.src.pos += 2
		if ampStart := p.src.position(); p.src.eat('&') {
			return errClassIntersectionUnexpectedAmpersand(p.span(ampStart))
		}
		if char := p.src.peek(); char == ']' || char == eof {
			return errEmptyClassSetExpression(p.span(start))
		}

		operand, err := p.parseClassSetOperand("class intersection")
		if err != nil {
			return err
		}
		class.Body = append(class.Body, operand)
		class.Strings = class.Strings && mayContainStrings(operand)

		switch {
		case p.src.eat(']'):
			return nil
		case p.atClassSetOperator('&'):
			continue
		case p.src.atEnd():
			return errUnterminatedPattern(p.span(start), "character class")
		case p.atClassSetOperator('-'):
			return errCharacterClassContentsInvalidOperands(p.span(start))
		}
		at := p.src.position()
		p.src.advance()
		return errClassSetExpressionInvalidCharacter(p.span(at), "class intersection")
	}
}

func (p *parser) parseClassSubtraction(start int, class *CharacterClass, operand ClassContent) error {
	class.Body = append(class.Body, operand)
	class.Strings = mayContainStrings(operand)

	for {
		p.src.pos += 2
		if char := p.src.peek(); char == ']' || char == eof {
			return errEmptyClassSetExpression(p.span(start))
		}

		operand, err := p.parseClassSetOperand("class subtraction")
		if err != nil {
			return err
		}
		class.Body = append(class.Body, operand)

		switch {
		case p.src.eat(']'):
			return nil
		case p.atClassSetOperator('-'):
			continue
		case p.src.atEnd():
			return errUnterminatedPattern(p.span(start), "character class")
		case p.atClassSetOperator('&'):
			return errCharacterClassContentsInvalidOperands(p.span(start))
		}
		at := p.src.position()
		p.src.advance()
		return errClassSetExpressionInvalidCharacter(p.span(at), "class subtraction")
	}
}

// parseClassSetOperand parses a nested class, a class string disjunction,
// a class escape or a ClassSetCharacter. context names the enclosing
// expression in diagnostics.
func (p *parser) parseClassSetOperand(context string) (ClassContent, error) {
	start := p.src.position()
	switch p.src.peek() {
	case '[':
		p.src.advance()
		negate := p.src.eat('^')
		return p.parseClassSetExpression(start, negate)
	case '\\':
		if p.src.peekAt(1) == 'q' {
			return p.parseClassStringDisjunction(context)
		}
		patternCopy := p.src
		p.src.advance()
		if esc := p.parseCharacterClassEscape(start); esc != nil {
			return esc, nil
		}
		prop, err := p.parseUnicodePropertyEscape(start)
		if err != nil {
			return nil, err
		}
		if prop != nil {
			return prop, nil
		}
		p.src = patternCopy
	}

	ch, err := p.parseClassSetCharacter(context)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		p.src.advance()
		return nil, errClassSetExpressionInvalidCharacter(p.span(start), context)
	}
	return ch, nil
}

// parseClassStringDisjunction parses \q{...}.
func (p *parser) parseClassStringDisjunction(context string) (*ClassStringDisjunction, error) {
	start := p.src.position()
	p.src.pos += 2
	if !p.src.eat('{') {
		return nil, errClassSetExpressionInvalidCharacter(p.span(start), context)
	}

	disjunction := &ClassStringDisjunction{}
	stringStart := p.src.position()
	var chars []*Character
	for {
		if p.src.atEnd() {
			return nil, errUnterminatedPattern(p.span(start), "class string disjunction")
		}
		if char := p.src.peek(); char == '|' || char == '}' {
			s := &ClassString{
				Span:    p.span(stringStart),
				Strings: len(chars) != 1,
				Body:    chars,
			}
			disjunction.Body = append(disjunction.Body, s)
			disjunction.Strings = disjunction.Strings || s.Strings
			p.src.advance()
			if char == '}' {
				break
			}
			stringStart = p.src.position()
			chars = nil
			continue
		}

		charStart := p.src.position()
		ch, err := p.parseClassSetCharacter(context)
		if err != nil {
			return nil, err
		}
		if ch == nil {
			p.src.advance()
			return nil, errClassSetExpressionInvalidCharacter(p.span(charStart), context)
		}
		chars = append(chars, ch)
	}
	disjunction.Span = p.span(start)
	return disjunction, nil
}

// parseClassSetCharacter returns nil without consuming anything when the
// next character cannot start a ClassSetCharacter.
func (p *parser) parseClassSetCharacter(context string) (*Character, error) {
	start := p.src.position()
	char := p.src.peek()
	switch {
	case char == eof:
		return nil, nil
	case char == '\\':
		next := p.src.peekAt(1)
		if isClassSetReservedPunctuator(next) {
			p.src.pos += 2
			return &Character{Span: p.span(start), Kind: CharacterIdentifier, Value: next}, nil
		}
		if next == 'b' {
			p.src.pos += 2
			// backspace
			return &Character{Span: p.span(start), Kind: CharacterSingleEscape, Value: 0x08}, nil
		}
		patternCopy := p.src
		p.src.advance()
		ch, err := p.parseCharacterEscape(start)
		if err != nil || ch != nil {
			return ch, err
		}
		p.src = patternCopy
		return nil, nil
	case isClassSetSyntaxCharacter(char):
		return nil, nil
	case isClassSetReservedDoublePunctuatorCharacter(char) && p.src.peekAt(1) == char:
		return nil, nil
	}
	p.src.advance()
	return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: char}, nil
}

// ( ) [ ] { } / - \ |
func isClassSetSyntaxCharacter(c rune) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', '/', '-', '\\', '|':
		return true
	}
	return false
}

// & ! # $ % * + , . : ; < = > ? @ ^ ` ~
func isClassSetReservedDoublePunctuatorCharacter(c rune) bool {
	switch c {
	case '&', '!', '#', '$', '%', '*', '+', ',', '.', ':', ';', '<', '=', '>', '?', '@', '^', '`', '~':
		return true
	}
	return false
}

// & - ! # % , : ; < = > @ ` ~
func isClassSetReservedPunctuator(c rune) bool {
	switch c {
	case '&', '-', '!', '#', '%', ',', ':', ';', '<', '=', '>', '@', '`', '~':
		return true
	}
	return false
}

// mayContainStrings implements MayContainStrings for a class set operand.
func mayContainStrings(c ClassContent) bool {
	switch c := c.(type) {
	case *UnicodePropertyEscape:
		return c.Strings
	case *CharacterClass:
		return c.Strings
	case *ClassStringDisjunction:
		return c.Strings
	}
	return false
}
