package analysis

import (
	"sort"

	"asmlens/internal/report"
)

// ImpactReport summarizes the members affected by a change to one target.
// Direct members reference the target themselves; indirect members reach
// it only through other affected members.
type ImpactReport struct {
	Target             string   `json:"target"`
	DirectlyAffected   []string `json:"directly_affected"`
	IndirectlyAffected []string `json:"indirectly_affected"`
}

// ImpactAnalyzer answers reverse-dependency queries over a finished
// analysis run.
type ImpactAnalyzer struct {
	r *report.AssemblyReport

	// dependents maps a member id to the ids of members referencing it.
	dependents map[string][]string
}

// NewImpactAnalyzer indexes the report's reference edges by target.
func NewImpactAnalyzer(r *report.AssemblyReport) *ImpactAnalyzer {
	a := &ImpactAnalyzer{r: r, dependents: make(map[string][]string)}
	seen := make(map[string]bool)

	add := func(target, caller string) {
		key := target + "|" + caller
		if seen[key] {
			return
		}
		seen[key] = true
		a.dependents[target] = append(a.dependents[target], caller)
	}

	for _, t := range r.Types {
		// Method and constructor edges point outward at their targets.
		for _, group := range [][]*report.Member{t.Methods, t.Constructors} {
			for _, m := range group {
				for _, e := range m.Refs {
					add(e.Member, m.FullName)
				}
			}
		}
		// Field and property edges point inward from their callers.
		for _, group := range [][]*report.Member{t.Fields, t.Properties} {
			for _, m := range group {
				for _, e := range m.Refs {
					add(m.FullName, e.Member)
				}
			}
		}
	}
	return a
}

// AnalyzeImpact reports which members are affected by a change to target.
// The target may be a qualified member id or a type full name; a type
// seeds the walk with all of its members. Directly affected members
// reference a seed; indirectly affected members reference an affected
// member transitively.
func (a *ImpactAnalyzer) AnalyzeImpact(target string) *ImpactReport {
	rep := &ImpactReport{
		Target:             target,
		DirectlyAffected:   []string{},
		IndirectlyAffected: []string{},
	}

	seeds := []string{target}
	if t := a.r.TypeByFullName(target); t != nil {
		seeds = memberIDsOf(t)
	}

	affected := make(map[string]bool)
	for _, s := range seeds {
		affected[s] = true
	}

	var frontier []string
	direct := make(map[string]bool)
	for _, s := range seeds {
		for _, dep := range a.dependents[s] {
			if !affected[dep] {
				affected[dep] = true
				direct[dep] = true
				frontier = append(frontier, dep)
			}
		}
	}

	indirect := make(map[string]bool)
	for len(frontier) > 0 {
		next := frontier[:0:0]
		for _, id := range frontier {
			for _, dep := range a.dependents[id] {
				if !affected[dep] {
					affected[dep] = true
					indirect[dep] = true
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}

	rep.DirectlyAffected = sortedKeys(direct)
	rep.IndirectlyAffected = sortedKeys(indirect)
	return rep
}

func memberIDsOf(t *report.TypeRecord) []string {
	var ids []string
	for _, group := range [][]*report.Member{t.Fields, t.Properties, t.Methods, t.Constructors, t.Events} {
		for _, m := range group {
			ids = append(ids, m.FullName)
		}
	}
	return ids
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
