package metadata

import (
	"fmt"
)

// Resolver answers type-definition lookups against the analyzed assembly
// and the reader-supplied reference definitions. A failed lookup is an
// ordinary error, never a reason to abort analysis.
type Resolver struct {
	defs map[string]*TypeDef
}

// NewResolver indexes the assembly's own types and its reference
// definitions by full name. Own types shadow same-named references.
func NewResolver(asm *Assembly) *Resolver {
	defs := make(map[string]*TypeDef, len(asm.Types)+len(asm.TypeRefs))
	for _, t := range asm.TypeRefs {
		defs[t.FullName()] = t
	}
	for _, t := range asm.Types {
		defs[t.FullName()] = t
	}
	return &Resolver{defs: defs}
}

// Resolve returns the definition of the named type, or an error when the
// reader supplied no definition for it (e.g. a missing reference assembly).
func (r *Resolver) Resolve(fullName string) (*TypeDef, error) {
	def, ok := r.defs[fullName]
	if !ok {
		return nil, fmt.Errorf("type %s: no definition available", fullName)
	}
	return def, nil
}

// WalkBaseChain calls visit with each type name on the base-type chain of
// fullName, starting at fullName itself. The name is visited before any
// resolution, so the terminal link of a chain still gets seen even when
// its definition is unavailable. The walk ends when visit returns false,
// the chain runs out, a base cannot be resolved, or a cycle is detected.
// An unresolvable base terminates the walk without error.
func (r *Resolver) WalkBaseChain(fullName string, visit func(name string) bool) {
	seen := make(map[string]bool)
	for fullName != "" && !seen[fullName] {
		seen[fullName] = true
		if !visit(fullName) {
			return
		}
		def, err := r.Resolve(fullName)
		if err != nil {
			return
		}
		fullName = def.BaseType
	}
}
