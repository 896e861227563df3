// Package settings holds the small set of cross-phase compiler knobs
//: whether to short-circuit a subtree on its first
// error, and whether warnings count as failures.
package settings

// Settings configures error-handling behavior shared by the evaluator
// and block compiler.
type Settings struct {
	// StopOnError causes the block compiler to short-circuit on the
	// first error: the statements after the failing one, in its own
	// statement list and in every enclosing list, are skipped. The
	// failing statement itself, including a rule block's body, is still
	// compiled.
	StopOnError bool
	// TreatWarningsAsErrors lifts warnings' severity in the final
	// outcome.
	TreatWarningsAsErrors bool
}

// Default returns the conservative default: best-effort recovery,
// warnings non-fatal.
func Default() Settings {
	return Settings{}
}
