// Package diagnostics implements the append-only error/warning/note
// store shared by every compiler phase.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/filterspirit/filterspirit/sourcemap"
)

// Severity is the level of a diagnostic.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Kind is the closed enum of diagnostic ids, used for programmatic
// suppression and for tests asserting on exact failures.
type Kind string

const (
	NameAlreadyExists             Kind = "name_already_exists"
	NoSuchName                    Kind = "no_such_name"
	InvalidAmountOfArguments       Kind = "invalid_amount_of_arguments"
	InvalidIntegerValue            Kind = "invalid_integer_value"
	TypeMismatch                   Kind = "type_mismatch"
	InvalidRangedStringsCondition  Kind = "invalid_ranged_strings_condition"
	IllegalCharacterInSocketSpec   Kind = "illegal_character_in_socket_spec"
	InvalidSocketSpec              Kind = "invalid_socket_spec"
	DuplicateInfluence              Kind = "duplicate_influence"
	ConditionRedefinition           Kind = "condition_redefinition"
	ActionRedefinition              Kind = "action_redefinition"
	LowerBoundRedefinition          Kind = "lower_bound_redefinition"
	UpperBoundRedefinition          Kind = "upper_bound_redefinition"
	InvalidAction                   Kind = "invalid_action"
	InvalidSetAlertSound            Kind = "invalid_set_alert_sound"
	PriceWithoutAutogen              Kind = "price_without_autogen"
	AutogenError                     Kind = "autogen_error"
	InternalCompilerError            Kind = "internal_compiler_error"
	FontSizeOutsideRange             Kind = "font_size_outside_range"
	UnknownExpression                Kind = "unknown_expression"
	ParseError                       Kind = "parse_error"
)

// MessagePart is one fragment of a diagnostic's human-readable message.
// The Store methods build each message from a single fmt-style format
// string and its arguments.
type MessagePart = string

// Diagnostic is one structured record: a severity, a programmatic id, an
// optional source range, and the human message.
type Diagnostic struct {
	Severity Severity
	ID       Kind
	Origin   *sourcemap.Range // nil when there is no associated source text
	Message  string
	// Related holds extra (severity, origin, message) notes attached to
	// this diagnostic, e.g. a `note:` pointing at the original
	// definition of a name being redefined.
	Related []Diagnostic
}

// Store is the append-only diagnostics buffer owned by the current pass.
// It is write-only from the perspective of the pass producing
// diagnostics; callers read it back only after the pass returns.
type Store struct {
	diags []Diagnostic
}

// NewStore returns an empty diagnostics store.
func NewStore() *Store { return &Store{} }

func (s *Store) add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Error appends an error-severity diagnostic.
func (s *Store) Error(id Kind, origin *sourcemap.Range, format string, args ...interface{}) {
	s.add(Diagnostic{Severity: Error, ID: id, Origin: origin, Message: fmt.Sprintf(format, args...)})
}

// Warning appends a warning-severity diagnostic.
func (s *Store) Warning(id Kind, origin *sourcemap.Range, format string, args ...interface{}) {
	s.add(Diagnostic{Severity: Warning, ID: id, Origin: origin, Message: fmt.Sprintf(format, args...)})
}

// Note appends a note-severity diagnostic, typically attached as
// context for the diagnostic appended immediately before it.
func (s *Store) Note(id Kind, origin *sourcemap.Range, format string, args ...interface{}) {
	s.add(Diagnostic{Severity: Note, ID: id, Origin: origin, Message: fmt.Sprintf(format, args...)})
}

// ErrorWithNote appends an error and attaches a single related note to
// it in one call, the common shape for "redefinition" diagnostics that
// point both at the new and the original occurrence.
func (s *Store) ErrorWithNote(id Kind, origin *sourcemap.Range, msg string, noteOrigin *sourcemap.Range, noteMsg string) {
	s.add(Diagnostic{
		Severity: Error,
		ID:       id,
		Origin:   origin,
		Message:  msg,
		Related: []Diagnostic{
			{Severity: Note, Origin: noteOrigin, Message: noteMsg},
		},
	})
}

// All returns every diagnostic appended so far, in append order.
func (s *Store) All() []Diagnostic { return s.diags }

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Store) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Failed reports the overall pass/fail outcome given the
// treat-warnings-as-errors setting.
func (s *Store) Failed(treatWarningsAsErrors bool) bool {
	if s.HasErrors() {
		return true
	}
	if !treatWarningsAsErrors {
		return false
	}
	for _, d := range s.diags {
		if d.Severity == Warning {
			return true
		}
	}
	return false
}

// Merge appends another store's diagnostics onto this one, preserving
// order, used by phases that compose sub-evaluations.
func (s *Store) Merge(other *Store) {
	if other == nil {
		return
	}
	s.diags = append(s.diags, other.diags...)
}

// Print writes every diagnostic in order to w, in a stable,
// machine-readable format:
//
//	error: <message>
//	   12 | <source line>
//	      |     ~~~~
func Print(w io.Writer, sm *sourcemap.Map, diags []Diagnostic) {
	for _, d := range diags {
		printOne(w, sm, d, 0)
	}
}

func printOne(w io.Writer, sm *sourcemap.Map, d Diagnostic, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(w, "%s%s: %s\n", prefix, d.Severity, d.Message)
	if d.Origin != nil && sm != nil {
		for _, u := range sm.CodeUnderliner(*d.Origin) {
			fmt.Fprintf(w, "%s%5d | %s\n", prefix, u.Line, u.LineText)
			underline := strings.Repeat(" ", u.UnderlineFrom) + strings.Repeat("~", maxInt(u.UnderlineLen, 1))
			fmt.Fprintf(w, "%s      | %s\n", prefix, underline)
		}
	}
	for _, rel := range d.Related {
		printOne(w, sm, rel, indent+1)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
