package analysis

import (
	"strings"

	"asmlens/internal/metadata"
	"asmlens/internal/report"
)

// accessorPrefixes are the member-name conventions of property and event
// accessors. Calls to such targets never become call edges; they surface
// only through the property edge path.
var accessorPrefixes = []string{"get_", "set_", "add_", "remove_"}

func hasAccessorPrefix(name string) bool {
	for _, p := range accessorPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// buildReferences populates the reference edges of every member of rec by
// scanning the instruction streams of the declaring type's own methods.
// Methods of other types are never scanned; cross-type discovery is out
// of scope for this engine.
//
// Field and property records accumulate inbound edges (who reads/writes
// them), deduplicated per (caller, kind). Method and constructor records
// accumulate outbound edges: call edges deduplicated by target id alone,
// and field touches deduplicated by (target id, kind). Object creation
// counts as a call edge to the constructor it invokes.
func buildReferences(t *metadata.TypeDef, rec *report.TypeRecord) {
	typeFullName := t.FullName()

	fields := make(map[string]*report.Member, len(rec.Fields))
	for _, f := range rec.Fields {
		fields[f.Name] = f
	}
	props := make(map[string]*report.Member, len(rec.Properties))
	for _, p := range rec.Properties {
		props[p.Name] = p
	}

	scan := func(def *metadata.MethodDef, owner *report.Member) {
		if !def.HasBody() {
			return
		}
		callerID := metadata.QualifiedID(typeFullName, def.Name, def.Signature())

		inbound := make(map[string]bool)  // caller|kind dedup on the touched member
		outCalls := make(map[string]bool) // target id dedup
		outTouch := make(map[string]bool) // target id|kind dedup

		for _, ins := range def.Body {
			if ins.Member == nil {
				continue
			}
			targetID := ins.Member.QualifiedID()

			switch {
			case ins.Op.IsFieldAccess():
				kind := report.RefRead
				if ins.Op.IsFieldStore() {
					kind = report.RefWrite
				}

				// Inbound edge on the field's own record, same type only.
				if ins.Member.DeclaringType == typeFullName {
					if f, ok := fields[ins.Member.Name]; ok {
						key := ins.Member.Name + "|" + string(kind)
						if !inbound[key] {
							inbound[key] = true
							f.Refs = append(f.Refs, report.ReferenceEdge{Kind: kind, Member: callerID})
						}
					}
				}

				// Outbound touch on the scanning method's record.
				key := targetID + "|" + string(kind)
				if !outTouch[key] {
					outTouch[key] = true
					owner.Refs = append(owner.Refs, report.ReferenceEdge{Kind: kind, Member: targetID})
				}

			case ins.Op.IsCall() || ins.Op == metadata.OpNewobj:
				name := ins.Member.Name

				// Accessor calls on this type's own properties become
				// property read/write edges.
				if ins.Member.DeclaringType == typeFullName {
					if propName, kind, ok := accessorTarget(name); ok {
						if p, exists := props[propName]; exists {
							key := "prop:" + propName + "|" + string(kind)
							if !inbound[key] {
								inbound[key] = true
								p.Refs = append(p.Refs, report.ReferenceEdge{Kind: kind, Member: callerID})
							}
						}
					}
				}

				if hasAccessorPrefix(name) {
					continue
				}
				if !outCalls[targetID] {
					outCalls[targetID] = true
					owner.Refs = append(owner.Refs, report.ReferenceEdge{Kind: report.RefCall, Member: targetID})
				}
			}
		}
	}

	for i, def := range t.Methods {
		if i < len(rec.Methods) {
			scan(def, rec.Methods[i])
		}
	}
	for i, def := range t.Constructors {
		if i < len(rec.Constructors) {
			scan(def, rec.Constructors[i])
		}
	}
}

// accessorTarget decodes a getter/setter method name into the property
// name and the reference kind it represents.
func accessorTarget(name string) (string, report.RefKind, bool) {
	if strings.HasPrefix(name, "get_") {
		return strings.TrimPrefix(name, "get_"), report.RefRead, true
	}
	if strings.HasPrefix(name, "set_") {
		return strings.TrimPrefix(name, "set_"), report.RefWrite, true
	}
	return "", "", false
}
