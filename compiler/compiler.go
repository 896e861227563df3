package compiler

import (
	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/settings"
	"github.com/filterspirit/filterspirit/symtab"
)

// CompileSpirit walks a resolved spirit filter's top-level statements
// and returns the SpiritBlocks reachable along every visibility leaf.
// Compound-action subtrees are inlined wherever a `Set $name` statement
// invokes them, as if their statements appeared inline.
func CompileSpirit(fs ast.FilterStructure, st *symtab.Table, set settings.Settings, diags *diagnostics.Store) []lang.SpiritBlock {
	c := &compilerState{st: st, settings: set, diags: diags}
	return c.compileSpiritBody(fs.Statements, &scope{})
}

// CompileReal walks a parsed native/flat item filter
// and returns its Blocks. Unlike the spirit filter, action statements
// here may not silently redefine an action slot within the same block.
func CompileReal(fs ast.RealFilterStructure, diags *diagnostics.Store) []lang.Block {
	// The native grammar has no `$name` definitions, so no condition or
	// action argument can ever be a name reference; st only needs to
	// exist so the evaluator never dereferences a nil table.
	st := symtab.New()
	blocks := make([]lang.Block, 0, len(fs.Blocks))
	for _, rb := range fs.Blocks {
		vis, ok := lang.ParseVisibility(rb.Visibility)
		if !ok {
			continue
		}
		var cs lang.ConditionSet
		var ag lang.AutogenExtension
		for _, cond := range rb.Conditions {
			applyCondition(cond, &cs, &ag, st, diags)
		}
		var as lang.ActionSet
		for _, stmt := range rb.Actions {
			applyAction(stmt, &as, st, diags, true)
		}
		blocks = append(blocks, lang.Block{Visibility: vis, Conditions: cs, Actions: as})
	}
	return blocks
}

type compilerState struct {
	st       *symtab.Table
	settings settings.Settings
	diags    *diagnostics.Store
}

// compileSpiritBody walks stmts under sc, returning every SpiritBlock
// reached by a visibility leaf anywhere under it. Action statements and
// inlined `Set $name` subtrees update *sc itself, so they apply to the
// statements after them in the same list; a rule block works on its own
// copy of sc. With StopOnError, a statement that records a new error
// ends this statement list, and because the enclosing call sees the same
// new error, every enclosing list ends with it; blocks already produced
// are kept.
func (c *compilerState) compileSpiritBody(stmts []ast.Statement, sc *scope) []lang.SpiritBlock {
	var blocks []lang.SpiritBlock
	for _, stmt := range stmts {
		before := len(c.diags.All())
		switch stmt.Kind {
		case ast.StmtVisibility:
			vis, ok := lang.ParseVisibility(stmt.Visibility)
			if !ok {
				continue
			}
			if !sc.conditions.IsValid() {
				continue
			}
			blocks = append(blocks, lang.SpiritBlock{
				Block: lang.Block{
					Visibility: vis,
					Conditions: sc.conditions,
					Actions:    sc.actions,
					Origin:     stmt.Origin,
				},
				Autogen: sc.autogen,
			})

		case ast.StmtAction:
			applyAction(stmt, &sc.actions, c.st, c.diags, false)

		case ast.StmtSetAction:
			entry, ok := c.st.LookupSubtree(stmt.SetName)
			if !ok {
				origin := stmt.SetNameOrigin
				c.diags.Error(diagnostics.NoSuchName, &origin, "no such compound action: %q", stmt.SetName)
				continue
			}
			blocks = append(blocks, c.compileSpiritBody(entry.Statements, sc)...)

		case ast.StmtRuleBlock:
			child := *sc
			for _, cond := range stmt.Conditions {
				applyCondition(cond, &child.conditions, &child.autogen, c.st, c.diags)
			}
			blocks = append(blocks, c.compileSpiritBody(stmt.Body, &child)...)

		default:
			origin := stmt.Origin
			c.diags.Error(diagnostics.InternalCompilerError, &origin, "unhandled statement kind in compiler")
		}
		if c.settings.StopOnError && hasNewError(c.diags, before) {
			break
		}
	}
	return blocks
}

func hasNewError(diags *diagnostics.Store, from int) bool {
	for _, d := range diags.All()[from:] {
		if d.Severity == diagnostics.Error {
			return true
		}
	}
	return false
}
