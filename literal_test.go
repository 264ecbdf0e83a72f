package esregex

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSplitLiteral(t *testing.T) {
	for _, tc := range []struct {
		source string
		want   Literal
	}{
		{"/a/", Literal{Pattern: "a", PatternStart: 1, FlagsStart: 3}},
		{"/a[/]b/gi", Literal{Pattern: "a[/]b", Flags: "gi", PatternStart: 1, FlagsStart: 7}},
		{`/a\/b/u`, Literal{Pattern: `a\/b`, Flags: "u", PatternStart: 1, FlagsStart: 6}},
		{`/[\]/]/`, Literal{Pattern: `[\]/]`, PatternStart: 1, FlagsStart: 7}},
		{"//", Literal{PatternStart: 1, FlagsStart: 2}},
	} {
		t.Run(tc.source, func(t *testing.T) {
			lit, err := SplitLiteral(tc.source)
			assert.NilError(t, err)
			assert.DeepEqual(t, lit, tc.want)
		})
	}

	for _, tc := range []struct {
		source string
		span   Span
	}{
		{"", Span{0, 0}},
		{"abc/", Span{0, 4}},
		{"/abc", Span{0, 4}},
		{"/[/", Span{0, 3}},
		{"/a\\/", Span{0, 4}},
		{"/a\nb/", Span{0, 2}},
	} {
		t.Run(tc.source, func(t *testing.T) {
			_, err := SplitLiteral(tc.source)
			d := diagnosticOf(t, err)
			assert.Equal(t, d.Kind, KindInvalidInput)
			assert.DeepEqual(t, d.Labels, []Span{tc.span})
		})
	}
}

func TestShiftDiagnostic(t *testing.T) {
	err := errDuplicatedCapturingGroupNames([]Span{{1, 2}, {5, 6}})

	shifted := shiftDiagnostic(err, 10)
	d := diagnosticOf(t, shifted)
	assert.DeepEqual(t, d.Labels, []Span{{11, 12}, {15, 16}})
	// err itself is unchanged
	assert.DeepEqual(t, diagnosticOf(t, err).Labels, []Span{{1, 2}, {5, 6}})

	assert.Equal(t, shiftDiagnostic(err, 0), err)

	plain := errors.New("boom")
	assert.Equal(t, shiftDiagnostic(plain, 3), plain)
}
