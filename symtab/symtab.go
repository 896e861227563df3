// Package symtab implements the symbol table produced by the resolver:
// a flat map from interned name to either a value object or a
// compound-action subtree. No cyclic or shared ownership is needed, so
// two plain maps suffice.
package symtab

import (
	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/sourcemap"
)

// ObjectEntry is a name bound to a value sequence.
type ObjectEntry struct {
	Value      lang.Sequence
	NameOrigin sourcemap.Range
	ValueOrigin sourcemap.Range
}

// SubtreeEntry is a name bound to a compound-action statement subtree.
type SubtreeEntry struct {
	Statements  []ast.Statement
	NameOrigin  sourcemap.Range
	ValueOrigin sourcemap.Range
}

// Table is the symbol table: two flat maps, objects and subtrees,
// keyed by name. Names are globally unique within a file across both
// maps.
type Table struct {
	objects  map[string]ObjectEntry
	subtrees map[string]SubtreeEntry
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{objects: map[string]ObjectEntry{}, subtrees: map[string]SubtreeEntry{}}
}

// Exists reports whether name is already bound, in either map.
func (t *Table) Exists(name string) bool {
	_, inObjs := t.objects[name]
	_, inSub := t.subtrees[name]
	return inObjs || inSub
}

// DefineObject binds name to a value sequence. Caller must have checked
// Exists first (the resolver is the sole writer and enforces
// uniqueness itself so it can report name_already_exists with both
// origins).
func (t *Table) DefineObject(name string, e ObjectEntry) {
	t.objects[name] = e
}

// DefineSubtree binds name to a compound-action subtree.
func (t *Table) DefineSubtree(name string, e SubtreeEntry) {
	t.subtrees[name] = e
}

// LookupObject returns the value bound to name, if any.
func (t *Table) LookupObject(name string) (ObjectEntry, bool) {
	e, ok := t.objects[name]
	return e, ok
}

// LookupSubtree returns the compound-action subtree bound to name, if any.
func (t *Table) LookupSubtree(name string) (SubtreeEntry, bool) {
	e, ok := t.subtrees[name]
	return e, ok
}

// FirstOrigin returns whichever origin (object's or subtree's) is bound
// to name, used when reporting name_already_exists against an existing
// binding of either kind.
func (t *Table) FirstOrigin(name string) (sourcemap.Range, bool) {
	if e, ok := t.objects[name]; ok {
		return e.NameOrigin, true
	}
	if e, ok := t.subtrees[name]; ok {
		return e.NameOrigin, true
	}
	return sourcemap.Range{}, false
}
