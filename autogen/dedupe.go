package autogen

import "github.com/filterspirit/filterspirit/internal/dedupe"

// MaxInMemoryDedupeNames bounds how many synthesized names the
// expander will hold in a plain in-memory set before falling back to
// the leveldb-backed spillover.
var MaxInMemoryDedupeNames = 200_000

// DedupeNames removes duplicate item names from a category's result
// list before it becomes a BaseType/Prophecy condition — ambiguous
// unique categories in particular can list the same base type once
// per associated unique.
func DedupeNames(names []string) []string {
	var backend dedupeBackend
	if len(names) <= MaxInMemoryDedupeNames {
		backend = dedupe.NewMapBackend()
	} else {
		backend = dedupe.NewLevelDBBackend()
	}
	for _, n := range names {
		backend.Upsert(n)
	}
	out := make([]string, 0, len(names))
	backend.IterCallback(func(elem string) { out = append(out, elem) })
	backend.Cleanup()
	return out
}

// dedupeBackend is the storage interface used to collect a category's
// synthesized base-type names before they are deduplicated.
type dedupeBackend interface {
	Upsert(elem string)
	IterCallback(callback func(elem string))
	Cleanup()
}
