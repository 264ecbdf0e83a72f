package esregex

import (
	"maps"
	"math"
	"slices"
)

// maxCapturingGroups is the number of capturing groups a pattern may hold.
const maxCapturingGroups = math.MaxUint32 - 1

type parser struct {
	src             reader
	unicodeMode     bool
	unicodeSetsMode bool
	spanOffset      uint32

	allowDuplicateNamedGroups bool

	capturesCount      uint32
	capturesLimit      uint32
	totalCapturesCount int
	allNamedCaptures   map[string]struct{}
	// declarations of each name on the paths leading to the current
	// alternative
	namedCaptures map[string][]Span
	groupNames    groupNameTracker
	namedGroups   NamedGroupTable
}

func newPatternParser(r reader, unicodeMode, unicodeSetsMode bool, spanOffset uint32, opts Options) *parser {
	return &parser{
		src:                       r,
		unicodeMode:               unicodeMode || unicodeSetsMode,
		unicodeSetsMode:           unicodeSetsMode,
		spanOffset:                spanOffset,
		allowDuplicateNamedGroups: opts.AllowDuplicateNamedGroups,
		capturesLimit:             maxCapturingGroups,
		totalCapturesCount:        -1,
		namedCaptures:             map[string][]Span{},
		groupNames:                newGroupNameTracker(),
		namedGroups:               NamedGroupTable{},
	}
}

// span returns the span from the byte offset start to the current position.
func (p *parser) span(start int) Span {
	return p.spanRange(start, p.src.position())
}

func (p *parser) spanRange(start, end int) Span {
	return Span{Start: p.spanOffset + uint32(start), End: p.spanOffset + uint32(end)}
}

func (p *parser) parse() (*Pattern, error) {
	start := p.src.position()
	body, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if !p.src.atEnd() {
		return nil, errParsePatternIncomplete(p.spanRange(p.src.position(), p.src.endPos))
	}
	if err := p.groupNames.err(); err != nil {
		return nil, err
	}
	return &Pattern{
		Span:                p.span(start),
		Body:                body,
		CapturingGroupCount: p.capturesCount,
		NamedGroups:         p.namedGroups,
	}, nil
}

func (p *parser) parseDisjunction() (*Disjunction, error) {
	start := p.src.position()
	initialNamedCaptures := maps.Clone(p.namedCaptures)
	namedCaptures := p.namedCaptures

	alt, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	alternatives := []*Alternative{alt}

	for p.src.eat('|') {
		p.namedCaptures = maps.Clone(initialNamedCaptures)
		alt, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
		for name, spans := range p.namedCaptures {
			for _, span := range spans {
				if !slices.Contains(namedCaptures[name], span) {
					namedCaptures[name] = append(slices.Clip(namedCaptures[name]), span)
				}
			}
		}
	}
	p.namedCaptures = namedCaptures

	return &Disjunction{Span: p.span(start), Alternatives: alternatives}, nil
}

func (p *parser) parseAlternative() (*Alternative, error) {
	start := p.src.position()
	var terms []Term
	for {
		char := p.src.peek()
		if char == eof || char == '|' || char == ')' {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if term == nil {
			break
		}
		terms = append(terms, term)
	}
	return &Alternative{Span: p.span(start), Terms: terms}, nil
}

// parseTerm returns a nil Term when nothing at the current position starts
// a term.
func (p *parser) parseTerm() (Term, error) {
	start := p.src.position()
	assertion, lookahead, err := p.parseAssertion()
	if err != nil {
		return nil, err
	}
	if assertion != nil {
		// QuantifiableAssertion
		if !p.unicodeMode && lookahead {
			return p.parseQuantified(start, assertion)
		}
		return assertion, nil
	}

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if atom == nil {
		q, found, err := p.parseQuantifier()
		if err != nil {
			return nil, err
		}
		if found {
			return nil, errLoneQuantifier(p.span(start), q.kind)
		}
		return nil, nil
	}
	return p.parseQuantified(start, atom)
}

func (p *parser) parseQuantified(start int, atom Term) (Term, error) {
	q, found, err := p.parseQuantifier()
	if err != nil {
		return nil, err
	}
	if !found {
		return atom, nil
	}
	return &Quantifier{
		Span:      p.span(start),
		Min:       q.min,
		Max:       q.max,
		Unbounded: q.unbounded,
		Greedy:    q.greedy,
		Body:      atom,
	}, nil
}

// Returns the assertion, if any, and whether it is a lookahead.
func (p *parser) parseAssertion() (Term, bool, error) {
	start := p.src.position()

	var kind AssertionKind
	switch {
	case p.src.eat('^'):
		kind = AssertionStart
	case p.src.eat('$'):
		kind = AssertionEnd
	case p.src.eat2('\\', 'b'):
		kind = AssertionWordBoundary
	case p.src.eat2('\\', 'B'):
		kind = AssertionNonWordBoundary
	default:
		return p.parseLookaround()
	}
	return &Assertion{Span: p.span(start), Kind: kind}, false, nil
}

func (p *parser) parseLookaround() (Term, bool, error) {
	start := p.src.position()
	patternCopy := p.src
	if !p.src.eat2('(', '?') {
		return nil, false, nil
	}

	kind := GroupLookahead
	if p.src.eat('<') {
		kind = GroupLookbehind
	}
	var negate bool
	switch {
	case p.src.eat('='):
	case p.src.eat('!'):
		negate = true
	default:
		p.src = patternCopy
		return nil, false, nil
	}

	body, err := p.parseDisjunction()
	if err != nil {
		return nil, false, err
	}
	if !p.src.eat(')') {
		return nil, false, errUnterminatedPattern(p.span(start), "lookaround assertion")
	}
	return &Group{
		Span:   p.span(start),
		Kind:   kind,
		Negate: negate,
		Body:   body,
	}, kind == GroupLookahead, nil
}

type quantifierBounds struct {
	min       uint64
	max       uint64
	unbounded bool
	greedy    bool
	// kind names the quantifier form in diagnostics.
	kind string
}

func (p *parser) parseQuantifier() (quantifierBounds, bool, error) {
	var q quantifierBounds
	switch p.src.peek() {
	case '*':
		p.src.advance()
		q = quantifierBounds{min: 0, unbounded: true, kind: "*"}
	case '+':
		p.src.advance()
		q = quantifierBounds{min: 1, unbounded: true, kind: "+"}
	case '?':
		p.src.advance()
		q = quantifierBounds{min: 0, max: 1, kind: "?"}
	case '{':
		var found bool
		var err error
		q, found, err = p.parseBracedQuantifier()
		if err != nil || !found {
			return q, false, err
		}
	default:
		return q, false, nil
	}
	q.greedy = !p.src.eat('?')
	return q, true, nil
}

// parseBracedQuantifier parses "{n}", "{n,}" or "{n,m}". Outside of Unicode
// mode a malformed brace is not a quantifier and the reader is rewound.
func (p *parser) parseBracedQuantifier() (quantifierBounds, bool, error) {
	start := p.src.position()
	patternCopy := p.src
	p.src.advance()

	var q quantifierBounds
	if min, overflow, ok := p.parseDecimalDigits(); ok {
		q.min, q.max, q.kind = min, min, "{n}"
		if p.src.eat(',') {
			if max, maxOverflow, ok := p.parseDecimalDigits(); ok {
				q.max, q.kind = max, "{n,m}"
				overflow = overflow || maxOverflow
			} else {
				q.max, q.unbounded, q.kind = 0, true, "{n,}"
			}
		}
		if p.src.eat('}') {
			if overflow {
				return q, false, errTooLargeNumberInBracedQuantifier(p.span(start))
			}
			if !q.unbounded && q.min > q.max {
				return q, false, errBracedQuantifierOutOfOrder(p.span(start))
			}
			return q, true, nil
		}
	}

	if !p.unicodeMode {
		p.src = patternCopy
		return quantifierBounds{}, false, nil
	}
	if p.src.atEnd() {
		return q, false, errUnterminatedPattern(p.span(start), "braced quantifier")
	}
	return q, false, errInvalidBracedQuantifier(p.span(start))
}

// parseDecimalDigits reads DecimalDigits, reporting whether the value
// overflowed uint64.
func (p *parser) parseDecimalDigits() (uint64, bool, bool) {
	if !isDigit(p.src.peek()) {
		return 0, false, false
	}
	var n uint64
	overflow := false
	for isDigit(p.src.peek()) {
		char, _ := p.src.advance()
		d := uint64(char - '0')
		if n > (math.MaxUint64-d)/10 {
			overflow = true
		}
		n = n*10 + d
	}
	return n, overflow, true
}

// parseAtom parses an Atom, or an ExtendedAtom outside of Unicode mode.
func (p *parser) parseAtom() (Term, error) {
	start := p.src.position()
	char := p.src.peek()

	switch char {
	case '.':
		p.src.advance()
		return &Dot{Span: p.span(start)}, nil
	case '\\':
		return p.parseAtomEscape()
	case '[':
		return p.parseCharacterClass()
	case '(':
		return p.parseGroup()
	case eof, '^', '$', '*', '+', '?', ')', '|':
		return nil, nil
	case '{':
		if p.unicodeMode {
			return nil, nil
		}
		// InvalidBracedQuantifier
		if _, found, err := p.parseBracedQuantifier(); found || err != nil {
			return nil, errInvalidBracedQuantifier(p.span(start))
		}
	case ']', '}':
		if p.unicodeMode {
			return nil, nil
		}
	}

	p.src.advance()
	return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: char}, nil
}

func (p *parser) parseGroup() (Term, error) {
	start := p.src.position()
	p.src.advance()

	if p.src.eat('?') {
		if p.src.eat(':') {
			return p.parseGroupBody(start, &Group{Kind: GroupNonCapturing}, "ignore group")
		}
		switch p.src.peek() {
		case 'i', 'm', 's', '-':
			modifiers, err := p.parseModifiers(start)
			if err != nil {
				return nil, err
			}
			return p.parseGroupBody(start, &Group{Kind: GroupNonCapturing, Modifiers: modifiers}, "ignore group")
		case '<':
			p.src.advance()
		default:
			return nil, errEmptyGroupSpecifier(p.span(start))
		}

		nameStart := p.src.position()
		name, ok, err := p.parseGroupName()
		if err != nil {
			return nil, err
		}
		nameSpan := p.span(nameStart)
		if !ok || !p.src.eat('>') {
			return nil, errMissingCapturingGroupName(p.span(start))
		}

		group, err := p.newCapturingGroup(start)
		if err != nil {
			return nil, err
		}
		group.Name = name
		group.NameSpan = nameSpan
		p.declareGroupName(name, nameSpan, group.Index)
		return p.parseGroupBody(start, group, "capturing group")
	}

	group, err := p.newCapturingGroup(start)
	if err != nil {
		return nil, err
	}
	return p.parseGroupBody(start, group, "capturing group")
}

func (p *parser) newCapturingGroup(start int) (*Group, error) {
	if p.capturesCount >= p.capturesLimit {
		return nil, errTooManyCapturingGroups(p.span(start))
	}
	p.capturesCount++
	return &Group{Kind: GroupCapturing, Index: p.capturesCount}, nil
}

func (p *parser) parseGroupBody(start int, group *Group, kind string) (Term, error) {
	body, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if !p.src.eat(')') {
		return nil, errUnterminatedPattern(p.span(start), kind)
	}
	group.Span = p.span(start)
	group.Body = body
	return group, nil
}

// parseModifiers parses the "ims-ims:" part of a modifier group.
func (p *parser) parseModifiers(groupStart int) (*Modifiers, error) {
	start := p.src.position()
	var enabling, disabling, seen ModifierFlags
	foundDash := false

	for {
		char := p.src.peek()
		var f ModifierFlags
		switch char {
		case 'i':
			f = ModifierIgnoreCase
		case 'm':
			f = ModifierMultiline
		case 's':
			f = ModifierDotAll
		case '-':
			if foundDash {
				p.src.advance()
				return nil, errInvalidModifiers(p.span(start), "multiple dashes")
			}
			foundDash = true
			p.src.advance()
			continue
		case ':':
			span := p.span(start)
			p.src.advance()
			if enabling == 0 && disabling == 0 {
				return nil, errInvalidModifiers(span, "no flags to add or remove")
			}
			return &Modifiers{Span: span, Enabling: enabling, Disabling: disabling}, nil
		case eof:
			return nil, errUnterminatedPattern(p.span(groupStart), "ignore group")
		default:
			p.src.advance()
			return nil, errInvalidModifiers(p.span(start), "expected one of `i`, `m`, `s` or `:`")
		}

		p.src.advance()
		if seen&f != 0 {
			return nil, errInvalidModifiers(p.span(start), "repeated flag")
		}
		seen |= f
		if foundDash {
			disabling |= f
		} else {
			enabling |= f
		}
	}
}
