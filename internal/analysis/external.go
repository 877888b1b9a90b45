package analysis

import (
	"sort"
	"strings"

	"asmlens/internal/report"
)

// buildExternalCalls post-processes the reference graph into the
// deduplicated list of references whose target lies outside the analyzed
// assembly and outside the noise namespaces. Surviving entries are
// annotated with the UI trigger inferred from the calling method's name.
// assemblyName is the run-scoped constant driving the internal/external
// decision; it is passed in rather than stored so two runs in one
// process can never bleed into each other.
func buildExternalCalls(r *report.AssemblyReport, assemblyName string, noisePrefixes []string) ([]report.ExternalCallInfo, []string) {
	var calls []report.ExternalCallInfo
	seen := make(map[string]bool)
	targets := make(map[string]bool)
	internalPrefix := assemblyName + "."

	for _, t := range r.Types {
		for _, group := range [][]*report.Member{t.Methods, t.Constructors} {
			for _, m := range group {
				for _, edge := range m.Refs {
					targetType, targetMember, ok := splitQualifiedID(edge.Member)
					if !ok {
						continue
					}
					if strings.HasPrefix(targetType, internalPrefix) {
						continue
					}
					if hasAnyPrefix(targetType, noisePrefixes) {
						continue
					}

					key := targetType + "|" + targetMember + "|" + m.FullName
					if seen[key] {
						continue
					}
					seen[key] = true
					targets[stripSignature(edge.Member)] = true

					calls = append(calls, report.ExternalCallInfo{
						TargetType:    targetType,
						TargetMember:  targetMember,
						Target:        edge.Member,
						Kind:          edge.Kind,
						CallingType:   t.FullName,
						CallingMethod: m.FullName,
						Trigger:       inferTrigger(t, m.Name),
					})
				}
			}
		}
	}

	sorted := make([]string, 0, len(targets))
	for id := range targets {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	return calls, sorted
}

// inferTrigger derives the UI trigger from the event-handler naming
// convention <control>_<event>. When the control part names a field of
// the calling type with recovered control properties, the field's Text
// value becomes the trigger's control text. A name that does not split
// yields no trigger.
func inferTrigger(t *report.TypeRecord, methodName string) *report.TriggerInfo {
	parts := strings.SplitN(methodName, "_", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	trigger := &report.TriggerInfo{ControlName: parts[0], EventName: parts[1]}
	if f := t.FieldByName(parts[0]); f != nil && f.Field != nil && f.Field.ControlProperties != nil {
		trigger.ControlText = f.Field.ControlProperties["Text"]
	}
	return trigger
}

// splitQualifiedID separates a member id into its declaring-type prefix
// and member segment (with any signature kept on the member side).
func splitQualifiedID(id string) (targetType, member string, ok bool) {
	i := strings.Index(id, "::")
	if i < 0 {
		return "", "", false
	}
	return id[:i], id[i+2:], true
}

// stripSignature drops the argument list from a member id.
func stripSignature(id string) string {
	if i := strings.Index(id, "("); i >= 0 {
		return id[:i]
	}
	return id
}
