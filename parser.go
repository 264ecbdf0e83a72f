// Package esregex parses ECMAScript regular expressions into an immutable
// syntax tree.
//
// Patterns are parsed in one of three modes selected by the flags: legacy
// (with the web-compatibility grammar), Unicode ("u") and Unicode-Sets ("v").
// Invalid patterns are reported as a *Diagnostic.
package esregex

// Options configures a parse.
type Options struct {
	// PatternSpanOffset is added to every span reported for the pattern text.
	PatternSpanOffset uint32
	// FlagsSpanOffset is added to every span reported for the flags text.
	FlagsSpanOffset uint32
	// AllowDuplicateNamedGroups permits a group name to repeat when the
	// groups sit in different alternatives, e.g. /(?<y>\d{4})-\d\d|\d\d-(?<y>\d{4})/.
	AllowDuplicateNamedGroups bool
}

// LiteralParser parses the pattern and flags of a /pattern/flags literal.
type LiteralParser struct {
	pattern string
	flags   *string
	opts    Options
}

// NewLiteralParser returns a parser for the text between the slashes of a
// regular expression literal. flags may be nil when the literal has none.
func NewLiteralParser(pattern string, flags *string, opts Options) *LiteralParser {
	return &LiteralParser{pattern: pattern, flags: flags, opts: opts}
}

func (lp *LiteralParser) Parse() (*Pattern, error) {
	pattern, _, err := lp.parse()
	return pattern, err
}

// parse also returns the validated flags.
func (lp *LiteralParser) parse() (*Pattern, Flags, error) {
	flags, err := readFlags(lp.flags, false, lp.opts.FlagsSpanOffset)
	if err != nil {
		return nil, 0, err
	}

	pattern := lp.pattern
	if pattern == "" {
		pattern = "(?:)"
	}
	r, err := newReader(pattern, flags.UnicodeMode(), false, lp.opts.PatternSpanOffset)
	if err != nil {
		return nil, 0, err
	}
	p, err := newPatternParser(r, flags.UnicodeMode(), flags.UnicodeSetsMode(), lp.opts.PatternSpanOffset, lp.opts).parse()
	if err != nil {
		return nil, 0, err
	}
	return p, flags, nil
}

// ConstructorParser parses the string literal arguments of a RegExp
// constructor call, e.g. the `"a+"` and `'g'` of new RegExp("a+", 'g').
type ConstructorParser struct {
	pattern string
	flags   *string
	opts    Options
}

// NewConstructorParser returns a parser for quoted string literals, escapes
// included. flags may be nil when the call has no second argument.
func NewConstructorParser(pattern string, flags *string, opts Options) *ConstructorParser {
	return &ConstructorParser{pattern: pattern, flags: flags, opts: opts}
}

func (cp *ConstructorParser) Parse() (*Pattern, error) {
	flags, err := readFlags(cp.flags, true, cp.opts.FlagsSpanOffset)
	if err != nil {
		return nil, err
	}

	pattern := cp.pattern
	if pattern == `""` || pattern == `''` {
		pattern = `"(?:)"`
	}
	r, err := newReader(pattern, flags.UnicodeMode(), true, cp.opts.PatternSpanOffset)
	if err != nil {
		return nil, err
	}
	return newPatternParser(r, flags.UnicodeMode(), flags.UnicodeSetsMode(), cp.opts.PatternSpanOffset, cp.opts).parse()
}

func readFlags(text *string, parseStringLiteral bool, spanOffset uint32) (Flags, error) {
	if text == nil {
		return 0, nil
	}
	r, err := newReader(*text, true, parseStringLiteral, spanOffset)
	if err != nil {
		return 0, err
	}
	return parseFlags(r, spanOffset)
}

// ParseLiteral splits a whole /pattern/flags literal and parses it.
// opts.PatternSpanOffset is the offset of the opening slash; FlagsSpanOffset
// is ignored.
func ParseLiteral(source string, opts Options) (*Pattern, Flags, error) {
	lit, err := SplitLiteral(source)
	if err != nil {
		return nil, 0, shiftDiagnostic(err, opts.PatternSpanOffset)
	}
	base := opts.PatternSpanOffset
	opts.PatternSpanOffset = base + lit.PatternStart
	opts.FlagsSpanOffset = base + lit.FlagsStart

	flags := &lit.Flags
	if lit.Flags == "" {
		flags = nil
	}
	return NewLiteralParser(lit.Pattern, flags, opts).parse()
}
