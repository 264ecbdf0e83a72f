package esregex

import (
	"cmp"
	"maps"
	"slices"
	"unicode/utf16"
)

// getTotalCapturesCount scans the whole pattern once for capturing groups
// and their names, so that backreferences may refer forward.
func (p *parser) getTotalCapturesCount() int {
	if p.totalCapturesCount != -1 {
		return p.totalCapturesCount
	}
	p.totalCapturesCount = 0
	p.allNamedCaptures = map[string]struct{}{}
	patternCopy := p.src
	p.src.pos = 0

	for !p.src.atEnd() {
		char, _ := p.src.advance()
		switch char {
		case '(':
			if p.src.atEnd() {
				break
			}
			if !p.src.eat('?') {
				p.totalCapturesCount++
				break
			}
			if next := p.src.peekAt(1); p.src.peek() == '<' && next != '=' && next != '!' {
				p.totalCapturesCount++
				p.src.advance()
				// invalid group names are reported by the parser proper
				if name, ok, err := p.parseGroupName(); err == nil && ok && p.src.peek() == '>' {
					p.allNamedCaptures[name] = struct{}{}
				}
			}
		case '\\':
			p.src.advance()
		case '[':
			p.skipCharacterClass()
		}
	}

	p.src = patternCopy
	return p.totalCapturesCount
}

// skipCharacterClass skips to the end of a class whose "[" was consumed.
// Only Unicode-Sets mode classes nest.
func (p *parser) skipCharacterClass() {
	depth := 1
	for depth > 0 {
		char, ok := p.src.advance()
		if !ok {
			return
		}
		switch char {
		case '\\':
			p.src.advance()
		case '[':
			if p.unicodeSetsMode {
				depth++
			}
		case ']':
			depth--
		}
	}
}

// parseGroupName parses a RegExpIdentifierName, stopping before the first
// character that cannot continue it. It reports false when the name is
// empty.
func (p *parser) parseGroupName() (string, bool, error) {
	var name []rune
	for {
		start := p.src.position()
		patternCopy := p.src
		r, moved := p.src.advance()
		if !moved {
			break
		}

		escaped := false
		if r == '\\' {
			if !p.src.eat('u') {
				return "", false, errInvalidUnicodeEscapeSequence(p.span(start))
			}
			var err error
			r, _, err = p.parseUnicodeEscapeSequence(start, true)
			if err != nil {
				return "", false, err
			}
			escaped = true
		} else if isHighSurrogate(r) && isLowSurrogate(p.src.peek()) {
			lo, _ := p.src.advance()
			r = utf16.DecodeRune(r, lo)
		}

		if isSurrogate(r) {
			return "", false, errInvalidSurrogatePair(p.span(start))
		}
		valid := isGroupNameContinue(r)
		if len(name) == 0 {
			valid = isGroupNameStart(r)
		}
		if !valid {
			if escaped {
				return "", false, errInvalidUnicodeEscapeSequence(p.span(start))
			}
			p.src = patternCopy
			break
		}
		name = append(name, r)
	}
	return string(name), len(name) > 0, nil
}

func (p *parser) declareGroupName(name string, span Span, index uint32) {
	// with duplicates allowed, only declarations on one path collide
	colliding := p.namedCaptures[name]
	if !p.allowDuplicateNamedGroups {
		colliding = p.groupNames.spans[name]
	}
	p.groupNames.declare(name, span, colliding)
	p.namedCaptures[name] = append(slices.Clip(p.namedCaptures[name]), span)
	p.namedGroups[name] = append(p.namedGroups[name], index)
}

// groupNameTracker collects every group name declaration and the ones that
// collide, so that all collisions are reported together once parsing is
// done.
type groupNameTracker struct {
	spans       map[string][]Span
	conflicting map[Span]struct{}
}

func newGroupNameTracker() groupNameTracker {
	return groupNameTracker{
		spans:       map[string][]Span{},
		conflicting: map[Span]struct{}{},
	}
}

// declare records span, which collides with each of colliding.
func (t *groupNameTracker) declare(name string, span Span, colliding []Span) {
	t.spans[name] = append(t.spans[name], span)
	if len(colliding) == 0 {
		return
	}
	t.conflicting[span] = struct{}{}
	for _, s := range colliding {
		t.conflicting[s] = struct{}{}
	}
}

func (t *groupNameTracker) err() error {
	if len(t.conflicting) == 0 {
		return nil
	}
	spans := slices.SortedFunc(maps.Keys(t.conflicting), func(a, b Span) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return errDuplicatedCapturingGroupNames(spans)
}
