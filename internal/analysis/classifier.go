// Package analysis is the engine that walks a parsed assembly object
// model and derives the type taxonomy, the member reference graph, the
// UI-form text heuristics, and the external-call classification.
package analysis

import (
	"strings"

	"asmlens/internal/metadata"
	"asmlens/internal/report"
)

// DefaultFormBaseType is the well-known UI-form ancestor that marks a
// class as a form.
const DefaultFormBaseType = "System.Windows.Forms.Form"

// IsCompilerGenerated reports whether a type's simple name marks it as
// compiler-generated. Such types are excluded from the report before
// classification runs.
func IsCompilerGenerated(name string) bool {
	return strings.Contains(name, "<") || strings.HasPrefix(name, "__")
}

// Classify assigns exactly one category to a type. Interfaces and enums
// classify from their declared kind, non-enum value types become structs,
// and classes walk the base-type chain for form ancestry before falling
// back to the abstract/sealed decision. An unresolvable base terminates
// the walk without error.
func Classify(t *metadata.TypeDef, res *metadata.Resolver, formBaseType string) report.TypeCategory {
	switch {
	case t.IsInterface:
		return report.CategoryInterface
	case t.IsEnum:
		return report.CategoryEnum
	case t.IsValueType:
		return report.CategoryStruct
	case !t.IsClass:
		return report.CategoryType
	}

	if t.BaseType != "" {
		isForm := false
		res.WalkBaseChain(t.BaseType, func(name string) bool {
			if name == formBaseType {
				isForm = true
				return false
			}
			return true
		})
		if isForm {
			return report.CategoryForm
		}
	}

	if t.IsAbstract && t.IsSealed {
		return report.CategoryStaticClass
	}
	return report.CategoryClass
}
