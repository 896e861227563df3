// Package compiler implements the block compiler: it walks a filter's statement tree, threading condition and
// action scope state by value so nested rule blocks inherit but never
// mutate an ancestor's state,
// and materializes one lang.SpiritBlock per reachable visibility leaf.
package compiler

import (
	"github.com/filterspirit/filterspirit/lang"
)

// scope is the condition/action/autogen state accumulated on the path
// from the filter root down to the current statement. It holds only
// value fields and has no methods: compileSpiritBody copies the parent
// scope for each nested rule block, so sibling blocks fanned out from
// one parent never observe each other's updates.
type scope struct {
	conditions lang.ConditionSet
	actions    lang.ActionSet
	autogen    lang.AutogenExtension
}
