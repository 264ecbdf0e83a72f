package esregex

const diagnosticPrefix = "Invalid regular expression:"

// DiagnosticKind identifies the grammar rule a [Diagnostic] reports.
type DiagnosticKind uint8

const (
	KindInvalidInput DiagnosticKind = iota + 1
	KindUnknownFlag
	KindDuplicatedFlags
	KindInvalidUnicodeFlags
	KindDuplicatedCapturingGroupNames
	KindTooManyCapturingGroups
	KindParsePatternIncomplete
	KindLoneQuantifier
	KindUnterminatedPattern
	KindInvalidExtendedAtomEscape
	KindInvalidBracedQuantifier
	KindInvalidIndexedReference
	KindEmptyGroupSpecifier
	KindInvalidNamedReference
	KindInvalidUnicodePropertyNameNegativeStrings
	KindInvalidCharacterClass
	KindCharacterClassRangeOutOfOrder
	KindCharacterClassRangeInvalidAtom
	KindInvalidClassAtom
	KindEmptyClassSetExpression
	KindClassIntersectionUnexpectedAmpersand
	KindClassSetExpressionInvalidCharacter
	KindCharacterClassContentsInvalidOperands
	KindMissingCapturingGroupName
	KindTooLargeNumberInBracedQuantifier
	KindBracedQuantifierOutOfOrder
	KindTooLargeNumberDigits
	KindInvalidUnicodeProperty
	KindInvalidUnicodePropertyOfStrings
	KindInvalidUnicodeEscapeSequence
	KindInvalidSurrogatePair
	KindInvalidModifiers
)

var diagnosticKindNames = [...]string{
	KindInvalidInput:                              "invalid_input",
	KindUnknownFlag:                               "unknown_flag",
	KindDuplicatedFlags:                           "duplicated_flags",
	KindInvalidUnicodeFlags:                       "invalid_unicode_flags",
	KindDuplicatedCapturingGroupNames:             "duplicated_capturing_group_names",
	KindTooManyCapturingGroups:                    "too_may_capturing_groups",
	KindParsePatternIncomplete:                    "parse_pattern_incomplete",
	KindLoneQuantifier:                            "lone_quantifier",
	KindUnterminatedPattern:                       "unterminated_pattern",
	KindInvalidExtendedAtomEscape:                 "invalid_extended_atom_escape",
	KindInvalidBracedQuantifier:                   "invalid_braced_quantifier",
	KindInvalidIndexedReference:                   "invalid_indexed_reference",
	KindEmptyGroupSpecifier:                       "empty_group_specifier",
	KindInvalidNamedReference:                     "invalid_named_reference",
	KindInvalidUnicodePropertyNameNegativeStrings: "invalid_unicode_property_name_negative_strings",
	KindInvalidCharacterClass:                     "invalid_character_class",
	KindCharacterClassRangeOutOfOrder:             "character_class_range_out_of_order",
	KindCharacterClassRangeInvalidAtom:            "character_class_range_invalid_atom",
	KindInvalidClassAtom:                          "invalid_class_atom",
	KindEmptyClassSetExpression:                   "empty_class_set_expression",
	KindClassIntersectionUnexpectedAmpersand:      "class_intersection_unexpected_ampersand",
	KindClassSetExpressionInvalidCharacter:        "class_set_expression_invalid_character",
	KindCharacterClassContentsInvalidOperands:     "character_class_contents_invalid_operands",
	KindMissingCapturingGroupName:                 "missing_capturing_group_name",
	KindTooLargeNumberInBracedQuantifier:          "too_large_number_in_braced_quantifier",
	KindBracedQuantifierOutOfOrder:                "braced_quantifier_out_of_order",
	KindTooLargeNumberDigits:                      "too_large_number_digits",
	KindInvalidUnicodeProperty:                    "invalid_unicode_property",
	KindInvalidUnicodePropertyOfStrings:           "invalid_unicode_property_of_strings",
	KindInvalidUnicodeEscapeSequence:              "invalid_unicode_escape_sequence",
	KindInvalidSurrogatePair:                      "invalid_surrogate_pair",
	KindInvalidModifiers:                          "invalid_modifiers",
}

func (k DiagnosticKind) String() string {
	if int(k) < len(diagnosticKindNames) && diagnosticKindNames[k] != "" {
		return diagnosticKindNames[k]
	}
	return "unknown"
}

// Diagnostic describes why a pattern or its flags were rejected.
//
// Labels are expressed in the coordinate space selected by [Options], i.e.
// already shifted by PatternSpanOffset or FlagsSpanOffset.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Labels  []Span
	// Help is an optional hint on how to fix the pattern.
	Help string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

var _ error = (*Diagnostic)(nil)

func newDiagnostic(kind DiagnosticKind, detail string, labels ...Span) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: diagnosticPrefix + " " + detail,
		Labels:  labels,
	}
}

func errInvalidInput(span Span) error {
	return newDiagnostic(KindInvalidInput, "Invalid input string literal", span)
}

func errUnknownFlag(span Span) error {
	return newDiagnostic(KindUnknownFlag, "Unknown flag", span)
}

func errDuplicatedFlags(span Span) error {
	return newDiagnostic(KindDuplicatedFlags, "Duplicated flag", span)
}

func errInvalidUnicodeFlags(span Span) error {
	return newDiagnostic(KindInvalidUnicodeFlags, "Invalid unicode flags combination `u` and `v`", span)
}

func errDuplicatedCapturingGroupNames(spans []Span) error {
	return newDiagnostic(KindDuplicatedCapturingGroupNames, "Duplicated capturing group names", spans...)
}

func errTooManyCapturingGroups(span Span) error {
	return newDiagnostic(KindTooManyCapturingGroups, "Too many capturing groups", span)
}

func errParsePatternIncomplete(span Span) error {
	return newDiagnostic(KindParsePatternIncomplete, "Could not parse the entire pattern", span)
}

func errLoneQuantifier(span Span, kind string) error {
	return newDiagnostic(KindLoneQuantifier, "Lone quantifier found, expected with `"+kind+"`", span)
}

func errUnterminatedPattern(span Span, kind string) error {
	return newDiagnostic(KindUnterminatedPattern, "Unterminated "+kind, span)
}

func errInvalidExtendedAtomEscape(span Span) error {
	return newDiagnostic(KindInvalidExtendedAtomEscape, "Invalid extended atom escape", span)
}

func errInvalidBracedQuantifier(span Span) error {
	return newDiagnostic(KindInvalidBracedQuantifier, "Invalid braced quantifier", span)
}

func errInvalidIndexedReference(span Span) error {
	return newDiagnostic(KindInvalidIndexedReference, "Invalid indexed reference", span)
}

func errEmptyGroupSpecifier(span Span) error {
	return newDiagnostic(KindEmptyGroupSpecifier, "Group specifier is empty", span)
}

func errInvalidNamedReference(span Span) error {
	return newDiagnostic(KindInvalidNamedReference, "Invalid named reference", span)
}

func errInvalidUnicodePropertyNameNegativeStrings(span Span, name string) error {
	return newDiagnostic(KindInvalidUnicodePropertyNameNegativeStrings,
		"Invalid property name `"+name+"`(negative + property of strings)", span)
}

func errInvalidCharacterClass(span Span) error {
	return newDiagnostic(KindInvalidCharacterClass, "Invalid character class with strings unicode property", span)
}

func errCharacterClassRangeOutOfOrder(span Span, kind string) error {
	return newDiagnostic(KindCharacterClassRangeOutOfOrder, "Character "+kind+" range out of order", span)
}

func errCharacterClassRangeInvalidAtom(span Span) error {
	return newDiagnostic(KindCharacterClassRangeInvalidAtom, "Character class range with invalid atom", span)
}

func errInvalidClassAtom(span Span) error {
	return newDiagnostic(KindInvalidClassAtom, "Invalid class atom", span)
}

func errEmptyClassSetExpression(span Span) error {
	return newDiagnostic(KindEmptyClassSetExpression, "Expected nonempty class set expression", span)
}

func errClassIntersectionUnexpectedAmpersand(span Span) error {
	return newDiagnostic(KindClassIntersectionUnexpectedAmpersand, "Unexpected `&` inside of class intersection", span)
}

func errClassSetExpressionInvalidCharacter(span Span, kind string) error {
	return newDiagnostic(KindClassSetExpressionInvalidCharacter, "Unexpected character inside of "+kind, span)
}

func errCharacterClassContentsInvalidOperands(span Span) error {
	return newDiagnostic(KindCharacterClassContentsInvalidOperands,
		"Invalid class operands inside of character class contents", span)
}

func errMissingCapturingGroupName(span Span) error {
	return newDiagnostic(KindMissingCapturingGroupName, "Missing capturing group name", span)
}

func errTooLargeNumberInBracedQuantifier(span Span) error {
	return newDiagnostic(KindTooLargeNumberInBracedQuantifier, "Number is too large in braced quantifier", span)
}

func errBracedQuantifierOutOfOrder(span Span) error {
	return newDiagnostic(KindBracedQuantifierOutOfOrder, "Numbers out of order in braced quantifier", span)
}

func errTooLargeNumberDigits(span Span, kind string) error {
	return newDiagnostic(KindTooLargeNumberDigits, "Number is too large in "+kind+" digits", span)
}

func errInvalidUnicodeProperty(span Span, kind string) error {
	return newDiagnostic(KindInvalidUnicodeProperty, "Invalid unicode property "+kind, span)
}

func errInvalidUnicodePropertyOfStrings(span Span, name string) error {
	d := newDiagnostic(KindInvalidUnicodePropertyOfStrings, "Invalid unicode property `"+name+"`", span)
	d.Help = "Enable `UnicodeSetsMode` to use this property"
	return d
}

func errInvalidUnicodeEscapeSequence(span Span) error {
	return newDiagnostic(KindInvalidUnicodeEscapeSequence, "Invalid unicode escape sequence", span)
}

func errInvalidSurrogatePair(span Span) error {
	return newDiagnostic(KindInvalidSurrogatePair, "Invalid surrogate pair", span)
}

func errInvalidModifiers(span Span, reason string) error {
	return newDiagnostic(KindInvalidModifiers, "Invalid modifiers, "+reason, span)
}

func errInvalidLiteral(span Span, detail string) error {
	return newDiagnostic(KindInvalidInput, detail, span)
}
