package esregex

// Span is a half-open range of byte offsets [Start, End).
type Span struct {
	Start uint32
	End   uint32
}

// Node is implemented by every AST node.
type Node interface {
	NodeSpan() Span
}

// Term is one element of an [Alternative].
//
// It is one of *Assertion, *Group, *Quantifier, *Character, *Dot,
// *CharacterClassEscape, *UnicodePropertyEscape, *IndexedReference,
// *NamedReference or *CharacterClass.
type Term interface {
	Node
	term()
}

// ClassContent is one element of a [CharacterClass] body.
//
// It is one of *Character, *ClassRange, *CharacterClassEscape,
// *UnicodePropertyEscape, and in Unicode-Sets mode also *CharacterClass
// (a nested class) or *ClassStringDisjunction.
type ClassContent interface {
	Node
	classContent()
}

// NamedGroupTable maps a capturing group name to the indices of the
// capturing groups declaring it, in source order.
type NamedGroupTable map[string][]uint32

// Pattern is the root of a parsed regular expression.
type Pattern struct {
	Span Span
	Body *Disjunction
	// CapturingGroupCount is the number of capturing groups in the pattern.
	CapturingGroupCount uint32
	NamedGroups         NamedGroupTable
}

// Disjunction is a list of alternatives separated by "|".
type Disjunction struct {
	Span         Span
	Alternatives []*Alternative
}

// Alternative is a (possibly empty) sequence of terms.
type Alternative struct {
	Span  Span
	Terms []Term
}

type AssertionKind uint8

const (
	// "^"
	AssertionStart AssertionKind = iota
	// "$"
	AssertionEnd
	// "\b"
	AssertionWordBoundary
	// "\B"
	AssertionNonWordBoundary
)

// Assertion is a zero-width anchor or word boundary.
type Assertion struct {
	Span Span
	Kind AssertionKind
}

type GroupKind uint8

const (
	GroupCapturing GroupKind = iota
	GroupNonCapturing
	GroupLookahead
	GroupLookbehind
)

// ModifierFlags is a set of the flags allowed inside "(?ims-ims:...)".
type ModifierFlags uint8

const (
	ModifierIgnoreCase ModifierFlags = 1 << iota
	ModifierMultiline
	ModifierDotAll
)

// Modifiers are the flags enabled and disabled by a modifier group.
type Modifiers struct {
	Span      Span
	Enabling  ModifierFlags
	Disabling ModifierFlags
}

// Group is a parenthesized subpattern: a capturing group, a non-capturing
// group (optionally with modifiers) or a lookaround assertion.
type Group struct {
	Span Span
	Kind GroupKind
	// Negate is set for "(?!...)" and "(?<!...)".
	Negate bool
	// Name and NameSpan are set for named capturing groups.
	Name     string
	NameSpan Span
	// Index is the 1-based number of a capturing group, 0 otherwise.
	Index uint32
	// Modifiers is non-nil for "(?ims-ims:...)" groups.
	Modifiers *Modifiers
	Body      *Disjunction
}

// Quantifier repeats its Body.
type Quantifier struct {
	Span Span
	Min  uint64
	// Max is meaningful only when Unbounded is false.
	Max       uint64
	Unbounded bool
	Greedy    bool
	Body      Term
}

// CharacterKind records the source form a character was written in.
type CharacterKind uint8

const (
	CharacterSymbol CharacterKind = iota
	CharacterSingleEscape
	CharacterControlLetter
	CharacterNull
	CharacterHexadecimalEscape
	CharacterUnicodeEscape
	CharacterOctal1
	CharacterOctal2
	CharacterOctal3
	CharacterIdentifier
)

// Character is a single code point (or, in legacy mode, a UTF-16 code unit).
type Character struct {
	Span  Span
	Kind  CharacterKind
	Value rune
}

// Dot is ".".
type Dot struct {
	Span Span
}

type CharacterClassEscapeKind uint8

const (
	// "\d"
	EscapeDigit CharacterClassEscapeKind = iota
	// "\D"
	EscapeNonDigit
	// "\s"
	EscapeSpace
	// "\S"
	EscapeNonSpace
	// "\w"
	EscapeWord
	// "\W"
	EscapeNonWord
)

// CharacterClassEscape is one of "\d", "\D", "\s", "\S", "\w", "\W".
type CharacterClassEscape struct {
	Span Span
	Kind CharacterClassEscapeKind
}

// UnicodePropertyEscape is "\p{...}" or "\P{...}".
//
// A lone General_Category value such as "\p{Lu}" is stored with Name
// "General_Category" and Value "Lu".
type UnicodePropertyEscape struct {
	Span     Span
	Negate   bool
	Name     string
	Value    string
	HasValue bool
	// Strings is set for binary properties of strings (e.g. "RGI_Emoji").
	Strings bool
}

// IndexedReference is a numeric backreference such as "\1".
type IndexedReference struct {
	Span  Span
	Index uint32
}

// NamedReference is a backreference such as "\k<name>".
type NamedReference struct {
	Span Span
	Name string
}

type ClassMode uint8

const (
	ClassModeLegacy ClassMode = iota
	ClassModeUnicode
	ClassModeUnicodeSets
)

type ClassSetOperator uint8

const (
	ClassUnion ClassSetOperator = iota
	// "&&", Unicode-Sets mode only
	ClassIntersection
	// "--", Unicode-Sets mode only
	ClassSubtraction
)

// CharacterClass is "[...]" or "[^...]".
type CharacterClass struct {
	Span     Span
	Negate   bool
	Mode     ClassMode
	Operator ClassSetOperator
	// Strings reports whether the class may match strings longer or shorter
	// than one code point (MayContainStrings).
	Strings bool
	Body    []ClassContent
}

// ClassRange is "a-z" inside a character class.
type ClassRange struct {
	Span Span
	Min  *Character
	Max  *Character
}

// ClassStringDisjunction is "\q{abc|d}" inside a Unicode-Sets class.
type ClassStringDisjunction struct {
	Span    Span
	Strings bool
	Body    []*ClassString
}

// ClassString is one alternative of a [ClassStringDisjunction].
type ClassString struct {
	Span Span
	// Strings is set unless the string has exactly one character.
	Strings bool
	Body    []*Character
}

func (n *Pattern) NodeSpan() Span                { return n.Span }
func (n *Disjunction) NodeSpan() Span            { return n.Span }
func (n *Alternative) NodeSpan() Span            { return n.Span }
func (n *Assertion) NodeSpan() Span              { return n.Span }
func (n *Group) NodeSpan() Span                  { return n.Span }
func (n *Quantifier) NodeSpan() Span             { return n.Span }
func (n *Character) NodeSpan() Span              { return n.Span }
func (n *Dot) NodeSpan() Span                    { return n.Span }
func (n *CharacterClassEscape) NodeSpan() Span   { return n.Span }
func (n *UnicodePropertyEscape) NodeSpan() Span  { return n.Span }
func (n *IndexedReference) NodeSpan() Span       { return n.Span }
func (n *NamedReference) NodeSpan() Span         { return n.Span }
func (n *CharacterClass) NodeSpan() Span         { return n.Span }
func (n *ClassRange) NodeSpan() Span             { return n.Span }
func (n *ClassStringDisjunction) NodeSpan() Span { return n.Span }
func (n *ClassString) NodeSpan() Span            { return n.Span }

func (*Assertion) term()             {}
func (*Group) term()                 {}
func (*Quantifier) term()            {}
func (*Character) term()             {}
func (*Dot) term()                   {}
func (*CharacterClassEscape) term()  {}
func (*UnicodePropertyEscape) term() {}
func (*IndexedReference) term()      {}
func (*NamedReference) term()        {}
func (*CharacterClass) term()        {}

func (*Character) classContent()              {}
func (*ClassRange) classContent()             {}
func (*CharacterClassEscape) classContent()   {}
func (*UnicodePropertyEscape) classContent()  {}
func (*CharacterClass) classContent()         {}
func (*ClassStringDisjunction) classContent() {}

// Walk traverses the tree rooted at n in depth-first pre-order. If fn
// returns false, the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Pattern:
		Walk(n.Body, fn)
	case *Disjunction:
		for _, alt := range n.Alternatives {
			Walk(alt, fn)
		}
	case *Alternative:
		for _, t := range n.Terms {
			Walk(t, fn)
		}
	case *Group:
		Walk(n.Body, fn)
	case *Quantifier:
		Walk(n.Body, fn)
	case *CharacterClass:
		for _, c := range n.Body {
			Walk(c, fn)
		}
	case *ClassRange:
		Walk(n.Min, fn)
		Walk(n.Max, fn)
	case *ClassStringDisjunction:
		for _, s := range n.Body {
			Walk(s, fn)
		}
	case *ClassString:
		for _, c := range n.Body {
			Walk(c, fn)
		}
	}
}
