package ast

import "github.com/filterspirit/filterspirit/sourcemap"

// Every node below carries its Origin so later phases can point
// diagnostics at exact source text.

// PrimitiveValue is one element of a sequence: a name reference, a
// literal, or (when the parser can't classify the token) an
// unknown_expression node deferred to semantic diagnostics.
type PrimitiveValue struct {
	Origin sourcemap.Range

	IsNameRef bool
	Name      string // valid when IsNameRef

	IsLiteral bool
	Literal   Literal // valid when IsLiteral

	IsUnknown bool
	Raw       string // valid when IsUnknown
}

// LiteralKind distinguishes the concrete shape of a Literal node before
// the evaluator assigns it a lang.Kind.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFrac
	LitString
	LitEnumKeyword // Boolean/Rarity/Shape/Suit/Influence/ShaperVoiceLine/GemQualityType keyword
	LitSocketSpec
)

// Literal is a single literal value token, not yet bound to a lang.Kind
// (that happens in the evaluator, which knows the target type the
// keyword table assigns each enum keyword).
type Literal struct {
	Kind   LiteralKind
	Origin sourcemap.Range
	Int    int32
	Frac   float64
	Str    string
	Socket SocketLiteral
}

// SocketLiteral is the parsed form of a `5RGB`-style socket literal
// before semantic validation.
type SocketLiteral struct {
	Count   *int
	Letters string // raw run of RGBWAD letters, e.g. "RGB"
}

// Sequence is an ordered, non-empty list of primitives.
// An empty sequence can never be constructed by the parser; zero-length Values here always indicates a parse error
// was already recorded and the caller should not use the node.
type Sequence struct {
	Origin sourcemap.Range
	Values []PrimitiveValue
}

// CompoundActionExpr is a `{ statement* }` value bound to a `const`,
// later re-run by the compiler as if its statements occurred inline
// via `Set $name`.
type CompoundActionExpr struct {
	Origin     sourcemap.Range
	Statements []Statement
}

// ValueExpression is either a Sequence or a CompoundActionExpr.
type ValueExpression struct {
	Origin   sourcemap.Range
	Sequence *Sequence
	Compound *CompoundActionExpr
}

// Definition is a top-level `$NAME = value_expression`.
type Definition struct {
	Origin     sourcemap.Range
	Name       string
	NameOrigin sourcemap.Range
	Value      ValueExpression
}

// StatementKind discriminates Statement's variant.
type StatementKind int

const (
	StmtAction StatementKind = iota
	StmtVisibility
	StmtRuleBlock
	StmtAutogen
	StmtPrice
	StmtSetAction
)

// Statement is one statement inside a rule block or compound action.
// Exactly one of the Kind-specific fields is populated.
type Statement struct {
	Kind   StatementKind
	Origin sourcemap.Range

	// StmtAction
	ActionKeyword string
	ActionArgs    Sequence

	// StmtSetAction ("Set $name")
	SetName       string
	SetNameOrigin sourcemap.Range

	// StmtVisibility
	Visibility string

	// StmtRuleBlock
	Conditions []Condition
	Body       []Statement

	// StmtAutogen
	AutogenCategory string

	// StmtPrice
	PriceOp    string
	PriceValue Sequence
}

// Condition is one `CONDITION_KW OP? sequence` clause guarding a rule
// block.
type Condition struct {
	Origin   sourcemap.Range
	Keyword  string
	HasOp    bool
	Op       string
	OpOrigin sourcemap.Range
	Args     Sequence
}

// FilterStructure is the whole parsed spirit-filter:
// zero or more definitions followed by zero or more top-level
// statements.
type FilterStructure struct {
	Definitions []Definition
	Statements  []Statement
}
