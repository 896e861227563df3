// Package resolver implements the symbol resolver: it walks the top-level `$name = ...` definitions of a parsed
// spirit filter in source order and builds the symbol table the
// evaluator and block compiler run against. Forward references are
// rejected, mirroring the original's single-pass, no-recursion name
// binding (original_source/src/lib/fs/compiler/detail/resolve_symbols.cpp).
package resolver

import (
	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/evaluator"
	"github.com/filterspirit/filterspirit/symtab"
)

// Resolve builds a symbol table from defs, in source order. A name
// reused by a later definition is rejected with name_already_exists
// and the later definition is skipped — the first
// binding wins and resolution continues so later, independent
// definitions still get a chance to bind.
func Resolve(defs []ast.Definition, diags *diagnostics.Store) *symtab.Table {
	st := symtab.New()
	for _, def := range defs {
		if origin, exists := st.FirstOrigin(def.Name); exists {
			nameOrigin := def.NameOrigin
			noteOrigin := origin
			diags.ErrorWithNote(diagnostics.NameAlreadyExists, &nameOrigin,
				"name \"$"+def.Name+"\" is already in use", &noteOrigin, "first defined here")
			continue
		}
		resolveOne(def, st, diags)
	}
	return st
}

func resolveOne(def ast.Definition, st *symtab.Table, diags *diagnostics.Store) {
	if def.Value.Compound != nil {
		st.DefineSubtree(def.Name, symtab.SubtreeEntry{
			Statements:  def.Value.Compound.Statements,
			NameOrigin:  def.NameOrigin,
			ValueOrigin: def.Value.Origin,
		})
		return
	}
	seq, _ := evaluator.Evaluate(*def.Value.Sequence, st, diags)
	st.DefineObject(def.Name, symtab.ObjectEntry{
		Value:       seq,
		NameOrigin:  def.NameOrigin,
		ValueOrigin: def.Value.Origin,
	})
}
