package esregex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

var unitCmp = cmp.AllowUnexported(unit{})

func TestReaderUnits(t *testing.T) {
	r, err := newReader("a\U0001F600", false, false, 0)
	assert.NilError(t, err)
	assert.DeepEqual(t, r.units, []unit{
		{value: 'a', start: 0, end: 1},
		{value: 0xD83D, start: 1, end: 5},
		{value: 0xDE00, start: 5, end: 5},
	}, unitCmp)

	r, err = newReader("a\U0001F600", true, false, 0)
	assert.NilError(t, err)
	assert.DeepEqual(t, r.units, []unit{
		{value: 'a', start: 0, end: 1},
		{value: 0x1F600, start: 1, end: 5},
	}, unitCmp)
	assert.Equal(t, r.endPos, 5)
}

func TestReaderCursor(t *testing.T) {
	r, err := newReader("abcd", false, false, 0)
	assert.NilError(t, err)

	checkpoint := r
	assert.Assert(t, r.eat('a'))
	assert.Assert(t, !r.eat('c'))
	assert.Assert(t, r.eat2('b', 'c'))
	assert.Equal(t, r.position(), 3)
	assert.Equal(t, r.peek(), 'd')
	assert.Equal(t, r.peekAt(1), eof)

	r = checkpoint
	assert.Equal(t, r.position(), 0)
	assert.Assert(t, r.eat3('a', 'b', 'c'))
	c, ok := r.advance()
	assert.Assert(t, ok)
	assert.Equal(t, c, 'd')
	assert.Assert(t, r.atEnd())
	assert.Equal(t, r.position(), 4)
	_, ok = r.advance()
	assert.Assert(t, !ok)

	assert.Equal(t, r.stringInRange(1, 3), "bc")
}

func TestReaderInvalidUTF8(t *testing.T) {
	_, err := newReader("a\xff", false, false, 10)
	d := diagnosticOf(t, err)
	assert.Equal(t, d.Kind, KindInvalidInput)
	assert.DeepEqual(t, d.Labels, []Span{{Start: 10, End: 12}})
}

func TestDecodeStringLiteral(t *testing.T) {
	for _, tc := range []struct {
		name    string
		text    string
		unicode bool
		units   []unit
		end     int
	}{
		{
			name:  "hex",
			text:  `"\x41b"`,
			units: []unit{{'A', 1, 5}, {'b', 5, 6}},
			end:   6,
		},
		{
			name:  "single quotes",
			text:  `'a"'`,
			units: []unit{{'a', 1, 2}, {'"', 2, 3}},
			end:   3,
		},
		{
			name:  "line continuation",
			text:  "'a\\\nb'",
			units: []unit{{'a', 1, 2}, {'b', 4, 5}},
			end:   5,
		},
		{
			name:  "crlf continuation",
			text:  "'a\\\r\nb'",
			units: []unit{{'a', 1, 2}, {'b', 5, 6}},
			end:   6,
		},
		{
			name:  "octal",
			text:  `"\101\8"`,
			units: []unit{{'A', 1, 5}, {'8', 5, 7}},
			end:   7,
		},
		{
			name:  "control escapes",
			text:  `"\n\t"`,
			units: []unit{{'\n', 1, 3}, {'\t', 3, 5}},
			end:   5,
		},
		{
			name:  "identity escape",
			text:  `"\\d"`,
			units: []unit{{'\\', 1, 3}, {'d', 3, 4}},
			end:   4,
		},
		{
			name:  "surrogate escapes",
			text:  `"\ud83d\udc31"`,
			units: []unit{{0xD83D, 1, 7}, {0xDC31, 7, 13}},
			end:   13,
		},
		{
			name:    "surrogate escapes unicode",
			text:    `"\ud83d\udc31"`,
			unicode: true,
			units:   []unit{{0x1F431, 1, 13}},
			end:     13,
		},
		{
			name:  "braced escape",
			text:  `"\u{1F431}"`,
			units: []unit{{0xD83D, 1, 10}, {0xDC31, 10, 10}},
			end:   10,
		},
		{
			name:    "braced escape unicode",
			text:    `"\u{1F431}"`,
			unicode: true,
			units:   []unit{{0x1F431, 1, 10}},
			end:     10,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			units, end, ok := decodeStringLiteral(tc.text, tc.unicode)
			assert.Assert(t, ok)
			assert.DeepEqual(t, units, tc.units, unitCmp)
			assert.Equal(t, end, tc.end)
		})
	}

	for _, text := range []string{
		``,
		`"`,
		`"a`,
		`a"`,
		`"a'`,
		`"a"b"`,
		"\"a\nb\"",
		`"\"`,
		`"\x4"`,
		`"\xg1"`,
		`"\u12"`,
		`"\u{}"`,
		`"\u{110000}"`,
		`"\u{41"`,
		"\"\xff\"",
	} {
		_, _, ok := decodeStringLiteral(text, false)
		assert.Assert(t, !ok, "%q", text)
	}
}

func TestConstructorReaderSpans(t *testing.T) {
	r, err := newReader(`"\x61b"`, false, true, 0)
	assert.NilError(t, err)
	assert.Equal(t, r.stringInRange(0, len(r.units)), "ab")
	assert.Equal(t, r.endPos, 6)

	_, err = newReader(`"ab`, false, true, 3)
	d := diagnosticOf(t, err)
	assert.Equal(t, d.Kind, KindInvalidInput)
	assert.DeepEqual(t, d.Labels, []Span{{Start: 3, End: 6}})
}
