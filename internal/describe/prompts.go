package describe

import (
	"fmt"
	"strings"

	"asmlens/internal/report"
)

// PromptBuilder constructs standardized prompts from report views.
type PromptBuilder struct{}

// maxPromptEntries caps how many types and calls go into a prompt so a
// large binary does not blow the context window.
const maxPromptEntries = 60

func (pb *PromptBuilder) BuildAssemblyPrompt(summary *report.SummaryView, external *report.ExternalView) string {
	var sb strings.Builder
	sb.WriteString("Role: Reverse Engineer & Technical Writer. Task: Document a legacy compiled binary whose source is unavailable.\n")
	sb.WriteString("\nYou are given metadata recovered by static analysis. Write a '# Assembly Overview' markdown document:\n")
	sb.WriteString("1. **Purpose**: Infer what the application does from its forms and external calls.\n")
	sb.WriteString("2. **UI Surface**: Describe each form using its recovered display text.\n")
	sb.WriteString("3. **External Dependencies**: Explain which outside systems the binary talks to and from which UI actions.\n")
	sb.WriteString("Base every claim on the data below; say 'unknown' rather than guessing.\n")

	fmt.Fprintf(&sb, "\nAssembly: %s\n", summary.Assembly)

	sb.WriteString("\nForms:\n")
	for i, f := range summary.Forms {
		if i >= maxPromptEntries {
			fmt.Fprintf(&sb, "- ... %d more\n", len(summary.Forms)-i)
			break
		}
		fmt.Fprintf(&sb, "- %s (text: %q), %d members\n", f.Type, f.FormText, len(f.Members))
	}

	sb.WriteString("\nClasses:\n")
	for i, c := range summary.Classes {
		if i >= maxPromptEntries {
			fmt.Fprintf(&sb, "- ... %d more\n", len(summary.Classes)-i)
			break
		}
		fmt.Fprintf(&sb, "- %s, %d members\n", c.Type, len(c.Members))
	}

	sb.WriteString("\nExternal calls:\n")
	for i, c := range external.Calls {
		if i >= maxPromptEntries {
			fmt.Fprintf(&sb, "- ... %d more\n", len(external.Calls)-i)
			break
		}
		if c.Trigger != nil {
			fmt.Fprintf(&sb, "- %s -> %s.%s (trigger: %s %s %q)\n",
				c.CallingMethod, c.TargetType, c.TargetMember,
				c.Trigger.ControlName, c.Trigger.EventName, c.Trigger.ControlText)
		} else {
			fmt.Fprintf(&sb, "- %s -> %s.%s\n", c.CallingMethod, c.TargetType, c.TargetMember)
		}
	}

	return sb.String()
}
