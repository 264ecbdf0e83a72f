package esregex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gotest.tools/v3/assert"
)

func TestCharacterClass(t *testing.T) {
	r := newRunner(t)
	u := r.f("u")

	r.ok(`[]`)
	r.ok(`[^]`)
	r.ok(`[a-z]`)
	r.ok(`[a-]`)
	r.ok(`[-a]`)
	r.ok(`[a-z-]`)
	r.ok(`[\b]`)
	r.ok(`[\w-a]`)
	r.ok(`[a-\w]`)
	r.ok(`[\c0]`)
	r.ok(`[\c_]`)
	r.ok(`[\c]`)
	r.ok(`[\e]`)
	r.ok(`[[a]`)
	r.ok(`[\1]`)
	r.ok(`[\p{Letter}]`)
	r.ok(`[&&]`)
	r.ok(`[--b]`)
	u.ok(`[\-]`)
	u.ok(`[\p{L}-]`)
	u.ok(`[\u{1F431}-\u{1F43F}]`)
	u.ok(`[\b\-\/]`)

	r.se(`[b-a]`, KindCharacterClassRangeOutOfOrder)
	r.se(`[\37-\05]`, KindCharacterClassRangeOutOfOrder)
	r.se(`[\c-a]`, KindCharacterClassRangeOutOfOrder)
	r.se(`[e-\c]`, KindCharacterClassRangeOutOfOrder)
	r.se(`[`, KindUnterminatedPattern)
	r.se(`[^`, KindUnterminatedPattern)
	r.se(`[a`, KindUnterminatedPattern)
	r.se(`[a-`, KindUnterminatedPattern)
	r.se(`[\`, KindInvalidClassAtom)
	u.se(`[\`, KindInvalidClassAtom)
	u.se(`[b-a]`, KindCharacterClassRangeOutOfOrder)
	u.se(`[\w-a]`, KindCharacterClassRangeInvalidAtom)
	u.se(`[a-\w]`, KindCharacterClassRangeInvalidAtom)
	u.se(`[\w--]`, KindCharacterClassRangeInvalidAtom)
	u.se(`[--\w]`, KindCharacterClassRangeInvalidAtom)
	u.se(`[\c0]`, KindInvalidClassAtom)
	u.se(`[\e]`, KindInvalidClassAtom)
	u.se(`[\1]`, KindInvalidClassAtom)
	u.se(`[\9]`, KindInvalidClassAtom)
	u.se(`[\p{Basic_Emoji}]`, KindInvalidUnicodePropertyOfStrings)
	u.se(`[\p{Foo}]`, KindInvalidUnicodeProperty)
}

func TestCharacterClassNodes(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		flags   string
		want    *CharacterClass
	}{
		{`[^a-c\d]`, "", &CharacterClass{
			Span:   Span{0, 8},
			Negate: true,
			Body: []ClassContent{
				&ClassRange{
					Span: Span{2, 5},
					Min:  &Character{Span: Span{2, 3}, Kind: CharacterSymbol, Value: 'a'},
					Max:  &Character{Span: Span{4, 5}, Kind: CharacterSymbol, Value: 'c'},
				},
				&CharacterClassEscape{Span: Span{5, 7}, Kind: EscapeDigit},
			},
		}},
		{`[\w-a]`, "", &CharacterClass{
			Span: Span{0, 6},
			Body: []ClassContent{
				&CharacterClassEscape{Span: Span{1, 3}, Kind: EscapeWord},
				&Character{Span: Span{3, 4}, Kind: CharacterSymbol, Value: '-'},
				&Character{Span: Span{4, 5}, Kind: CharacterSymbol, Value: 'a'},
			},
		}},
		{`[\b\c1]`, "", &CharacterClass{
			Span: Span{0, 7},
			Body: []ClassContent{
				&Character{Span: Span{1, 3}, Kind: CharacterSingleEscape, Value: 8},
				&Character{Span: Span{3, 6}, Kind: CharacterControlLetter, Value: 17},
			},
		}},
		{`[\-]`, "u", &CharacterClass{
			Span: Span{0, 4},
			Mode: ClassModeUnicode,
			Body: []ClassContent{
				&Character{Span: Span{1, 3}, Kind: CharacterIdentifier, Value: '-'},
			},
		}},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			got := terms(t, mustParse(t, tc.pattern, tc.flags))[0]
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("class mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassSetExpression(t *testing.T) {
	r := newRunner(t)
	v := r.f("v")

	v.ok(`[]`)
	v.ok(`[^]`)
	v.ok(`[a-z]`)
	v.ok(`[a-z0-9_]`)
	v.ok(`[&]`)
	v.ok(`[\&\-\!]`)
	v.ok(`[\b]`)
	v.ok(`[\w&&\d]`)
	v.ok(`[\w--\d]`)
	v.ok(`[a&&b&&c]`)
	v.ok(`[a--b--c]`)
	v.ok(`[[a-z]--[aeiou]]`)
	v.ok(`[^[a-z]&&[^aeiou]]`)
	v.ok(`[[[a]]]`)
	v.ok(`[\q{abc|d}]`)
	v.ok(`[\q{}]`)
	v.ok(`[\q{a\|b}]`)
	v.ok(`[^\q{a}]`)
	v.ok(`[^\q{a|b}]`)
	v.ok(`[\p{RGI_Emoji}]`)
	v.ok(`[\p{RGI_Emoji}--\q{x}]`)
	v.ok(`[^\p{Lu}&&\p{ASCII}]`)
	v.ok(`[^\P{Lu}]`)

	v.se(`[`, KindUnterminatedPattern)
	v.se(`[a`, KindUnterminatedPattern)
	v.se(`[[]`, KindUnterminatedPattern)
	v.se(`[\]`, KindUnterminatedPattern)
	v.se(`[a&&b`, KindUnterminatedPattern)
	v.se(`[]]`, KindParsePatternIncomplete)

	for _, pattern := range []string{
		`[(]`, `[)]`, `[{]`, `[}]`, `[/]`, `[-]`, `[|]`,
		`[!!]`, `[##]`, `[$$]`, `[%%]`, `[**]`, `[++]`, `[,,]`, `[..]`, `[::]`,
		`[;;]`, `[<<]`, `[==]`, `[>>]`, `[??]`, `[@@]`, `[^^^]`, "[``]", `[~~]`,
		`[\q]`, `[\q`, `[\q{]`, `[\q{a]`, `[\q}]`, `[\qa]`,
		`[a-]`, `[a-`, `[a-&&]`, `[a&&--]`, `[a--&&]`, `[a--ab]`, `[a\`, `[\a]`,
	} {
		v.se(pattern, KindClassSetExpressionInvalidCharacter)
	}

	v.se(`[&&]`, KindEmptyClassSetExpression)
	v.se(`[&&a]`, KindEmptyClassSetExpression)
	v.se(`[&&&a]`, KindEmptyClassSetExpression)
	v.se(`[--]`, KindEmptyClassSetExpression)
	v.se(`[--a]`, KindEmptyClassSetExpression)
	v.se(`[a&&]`, KindEmptyClassSetExpression)
	v.se(`[a&&`, KindEmptyClassSetExpression)
	v.se(`[a--]`, KindEmptyClassSetExpression)
	v.se(`[a--`, KindEmptyClassSetExpression)

	v.se(`[a&&&]`, KindClassIntersectionUnexpectedAmpersand)
	v.se(`[a&&&b]`, KindClassIntersectionUnexpectedAmpersand)

	v.se(`[ab&&c]`, KindCharacterClassContentsInvalidOperands)
	v.se(`[ab--c]`, KindCharacterClassContentsInvalidOperands)
	v.se(`[a&&b--c]`, KindCharacterClassContentsInvalidOperands)
	v.se(`[a--a&&b]`, KindCharacterClassContentsInvalidOperands)
	v.se(`[a-z&&b]`, KindCharacterClassContentsInvalidOperands)

	v.se(`[b-a]`, KindCharacterClassRangeOutOfOrder)
	v.se(`[ab-a]`, KindCharacterClassRangeOutOfOrder)

	v.se(`[^\q{}]`, KindInvalidCharacterClass)
	v.se(`[^\q{a|}]`, KindInvalidCharacterClass)
	v.se(`[^\q{a|aa}]`, KindInvalidCharacterClass)
	v.se(`[^\q{a||aa}]`, KindInvalidCharacterClass)
	v.se(`[^\p{RGI_Emoji}]`, KindInvalidCharacterClass)
	v.se(`[^a[\p{RGI_Emoji}]]`, KindInvalidCharacterClass)
	v.se(`[^\q{aa}&&\q{aa}]`, KindInvalidCharacterClass)
	v.se(`[^[[\q{aa}]]&&\q{aa}]`, KindInvalidCharacterClass)
	v.se(`[^\q{aa}--b]`, KindInvalidCharacterClass)
	v.se(`[[^\q{aa}]]`, KindInvalidCharacterClass)

	v.se(`[^\q{\`, KindClassSetExpressionInvalidCharacter)
	v.se(`[\q{a`, KindUnterminatedPattern)
	v.se(`[\p{aaa}]`, KindInvalidUnicodeProperty)
	v.se(`[\P{RGI_Emoji}]`, KindInvalidUnicodePropertyNameNegativeStrings)
}

func TestClassSetStrings(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		strings bool
	}{
		{`[a]`, false},
		{`[\q{a}]`, false},
		{`[\q{a|b}]`, false},
		{`[\q{}]`, true},
		{`[\q{ab}]`, true},
		{`[a\q{ab}]`, true},
		{`[\p{RGI_Emoji}]`, true},
		{`[\p{RGI_Emoji}a]`, true},
		{`[[\q{ab}]]`, true},
		// intersection: every operand
		{`[\w&&\q{ab}]`, false},
		{`[\q{ab}&&\w]`, false},
		{`[\q{ab}&&\q{cd}]`, true},
		{`[\p{RGI_Emoji}&&\q{ab}&&[\q{cd}]]`, true},
		// subtraction: the first operand
		{`[\q{ab}--a]`, true},
		{`[a--\q{ab}]`, false},
		{`[\p{RGI_Emoji}--\p{Basic_Emoji}]`, true},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			class := terms(t, mustParse(t, tc.pattern, "v"))[0].(*CharacterClass)
			assert.Equal(t, class.Mode, ClassModeUnicodeSets)
			assert.Equal(t, class.Strings, tc.strings)
		})
	}
}

func TestClassSetNodes(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		want    *CharacterClass
	}{
		{`[\q{ab|c}]`, &CharacterClass{
			Mode:     ClassModeUnicodeSets,
			Operator: ClassUnion,
			Strings:  true,
			Body: []ClassContent{
				&ClassStringDisjunction{
					Strings: true,
					Body: []*ClassString{
						{Strings: true, Body: []*Character{
							{Kind: CharacterSymbol, Value: 'a'},
							{Kind: CharacterSymbol, Value: 'b'},
						}},
						{Strings: false, Body: []*Character{
							{Kind: CharacterSymbol, Value: 'c'},
						}},
					},
				},
			},
		}},
		{`[[a-z]--\q{x}]`, &CharacterClass{
			Mode:     ClassModeUnicodeSets,
			Operator: ClassSubtraction,
			Body: []ClassContent{
				&CharacterClass{
					Mode:     ClassModeUnicodeSets,
					Operator: ClassUnion,
					Body: []ClassContent{
						&ClassRange{
							Min: &Character{Kind: CharacterSymbol, Value: 'a'},
							Max: &Character{Kind: CharacterSymbol, Value: 'z'},
						},
					},
				},
				&ClassStringDisjunction{
					Body: []*ClassString{
						{Body: []*Character{{Kind: CharacterSymbol, Value: 'x'}}},
					},
				},
			},
		}},
		{`[\d&&\&]`, &CharacterClass{
			Mode:     ClassModeUnicodeSets,
			Operator: ClassIntersection,
			Body: []ClassContent{
				&CharacterClassEscape{Kind: EscapeDigit},
				&Character{Kind: CharacterIdentifier, Value: '&'},
			},
		}},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			got := terms(t, mustParse(t, tc.pattern, "v"))[0]
			if diff := cmp.Diff(tc.want, got, cmpopts.IgnoreTypes(Span{})); diff != "" {
				t.Errorf("class mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("spans", func(t *testing.T) {
		class := terms(t, mustParse(t, `[\q{ab|}x-y]`, "v"))[0].(*CharacterClass)
		assert.Equal(t, class.Span, Span{Start: 0, End: 12})

		disjunction := class.Body[0].(*ClassStringDisjunction)
		assert.Equal(t, disjunction.Span, Span{Start: 1, End: 8})
		assert.Equal(t, disjunction.Body[0].Span, Span{Start: 4, End: 6})
		assert.Equal(t, disjunction.Body[1].Span, Span{Start: 7, End: 7})

		rng := class.Body[1].(*ClassRange)
		assert.Equal(t, rng.Span, Span{Start: 8, End: 11})
	})
}
