package esregex

import "errors"

// Literal is a /pattern/flags regular expression literal split into its
// parts. Offsets are byte offsets into the literal source.
type Literal struct {
	Pattern      string
	Flags        string
	PatternStart uint32
	FlagsStart   uint32
}

// SplitLiteral splits source, which must start with "/", at the closing
// slash. A slash inside a class or after a backslash does not close the
// pattern. The flags are not validated.
func SplitLiteral(source string) (Literal, error) {
	if len(source) == 0 || source[0] != '/' {
		return Literal{}, errInvalidLiteral(Span{End: uint32(len(source))}, "Expected `/` at the start of a regular expression literal")
	}

	var (
		inEscape    bool
		inCharClass bool
	)
	for i, chr := range source[1:] {
		offset := i + 1
		if isLineTerminator(chr) {
			return Literal{}, errInvalidLiteral(Span{End: uint32(offset)}, "Unterminated regular expression literal")
		}

		if inEscape {
			inEscape = false
		} else if chr == '/' && !inCharClass {
			return Literal{
				Pattern:      source[1:offset],
				Flags:        source[offset+1:],
				PatternStart: 1,
				FlagsStart:   uint32(offset + 1),
			}, nil
		} else if chr == '[' {
			inCharClass = true
		} else if chr == '\\' {
			inEscape = true
		} else if chr == ']' {
			inCharClass = false
		}
	}
	return Literal{}, errInvalidLiteral(Span{End: uint32(len(source))}, "Unterminated regular expression literal")
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == 0x2028 || r == 0x2029
}

// shiftDiagnostic moves the labels of a *Diagnostic by offset.
func shiftDiagnostic(err error, offset uint32) error {
	var d *Diagnostic
	if offset == 0 || !errors.As(err, &d) {
		return err
	}
	shifted := *d
	shifted.Labels = make([]Span, len(d.Labels))
	for i, l := range d.Labels {
		shifted.Labels[i] = Span{Start: l.Start + offset, End: l.End + offset}
	}
	return &shifted
}
