package report

import (
	"fmt"
	"strings"
)

// MermaidGenerator renders diagrams from an assembly report.
type MermaidGenerator struct{}

// GenerateClassDiagram renders the analyzed types and their inheritance
// and interface relationships as a mermaid classDiagram block.
func (m *MermaidGenerator) GenerateClassDiagram(r *AssemblyReport) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("classDiagram\n")

	known := make(map[string]bool, len(r.Types))
	for _, t := range r.Types {
		known[t.FullName] = true
	}

	for _, t := range r.Types {
		sb.WriteString(fmt.Sprintf("    class %s {\n", sanitizeMermaidID(t.Name)))
		switch t.Category {
		case CategoryInterface:
			sb.WriteString("        <<interface>>\n")
		case CategoryEnum:
			sb.WriteString("        <<enumeration>>\n")
		case CategoryForm:
			sb.WriteString("        <<form>>\n")
		}
		sb.WriteString("    }\n")
	}

	for _, t := range r.Types {
		// Only draw edges between types of this assembly to keep the
		// diagram free of framework clutter.
		if known[t.BaseType] {
			sb.WriteString(fmt.Sprintf("    %s <|-- %s\n",
				sanitizeMermaidID(simpleName(t.BaseType)), sanitizeMermaidID(t.Name)))
		}
		for _, iface := range t.Interfaces {
			if known[iface] {
				sb.WriteString(fmt.Sprintf("    %s <|.. %s\n",
					sanitizeMermaidID(simpleName(iface)), sanitizeMermaidID(t.Name)))
			}
		}
	}

	sb.WriteString("```\n")
	return sb.String()
}

// GenerateExternalFlow renders calling methods and their external targets
// as a mermaid graph.
func (m *MermaidGenerator) GenerateExternalFlow(r *AssemblyReport) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\ngraph TD\n")
	seen := make(map[string]bool)
	for _, c := range r.ExternalCalls {
		line := fmt.Sprintf("    %s --> %s\n",
			sanitizeMermaidID(c.CallingMethod), sanitizeMermaidID(c.TargetType+"."+c.TargetMember))
		if seen[line] {
			continue
		}
		seen[line] = true
		sb.WriteString(line)
	}
	sb.WriteString("```\n")
	return sb.String()
}

func simpleName(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

var mermaidReplacer = strings.NewReplacer(
	"::", "_", ".", "_", "(", "_", ")", "_", ",", "_", " ", "_", "<", "_", ">", "_", "`", "_",
)

func sanitizeMermaidID(s string) string {
	return mermaidReplacer.Replace(s)
}
