package report

// SummaryView lists, per headline category, each type's qualified member
// ids plus recovered form text. Reference edges and low-level modifiers
// are deliberately omitted.
type SummaryView struct {
	Assembly string         `json:"assembly"`
	Forms    []SummaryEntry `json:"forms,omitempty"`
	Classes  []SummaryEntry `json:"classes,omitempty"`
	Statics  []SummaryEntry `json:"static_classes,omitempty"`
}

// SummaryEntry is one type in the summary view.
type SummaryEntry struct {
	Type     string   `json:"type"`
	FormText string   `json:"form_text,omitempty"`
	Members  []string `json:"members,omitempty"`
}

// ExternalView is the external-reference report: the enriched call list
// plus the sorted distinct target ids.
type ExternalView struct {
	Assembly string             `json:"assembly"`
	Calls    []ExternalCallInfo `json:"calls,omitempty"`
	Targets  []string           `json:"targets,omitempty"`
}

// BuildSummary derives the summary view from the canonical model.
func BuildSummary(r *AssemblyReport) *SummaryView {
	v := &SummaryView{Assembly: r.Name}
	for _, t := range r.Types {
		entry := SummaryEntry{
			Type:     t.FullName,
			FormText: t.FormText,
			Members:  memberIDs(t),
		}
		switch t.Category {
		case CategoryForm:
			v.Forms = append(v.Forms, entry)
		case CategoryClass:
			v.Classes = append(v.Classes, entry)
		case CategoryStaticClass:
			v.Statics = append(v.Statics, entry)
		}
	}
	return v
}

// BuildExternal derives the external-reference view from the canonical model.
func BuildExternal(r *AssemblyReport) *ExternalView {
	return &ExternalView{
		Assembly: r.Name,
		Calls:    r.ExternalCalls,
		Targets:  r.ExternalTargets,
	}
}

func memberIDs(t *TypeRecord) []string {
	var ids []string
	for _, group := range [][]*Member{t.Fields, t.Properties, t.Methods, t.Constructors, t.Events} {
		for _, m := range group {
			ids = append(ids, m.FullName)
		}
	}
	return ids
}
