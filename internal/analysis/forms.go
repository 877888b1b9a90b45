package analysis

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"asmlens/internal/metadata"
	"asmlens/internal/report"
)

const (
	// initMethodName is the well-known constructor-side initialization
	// method of designer-generated forms.
	initMethodName = "InitializeComponent"

	// defaultSetterLookahead bounds the instruction window scanned after
	// a control-field load. The window usually closes earlier, at a call
	// to a non-setter target or at the next field access.
	defaultSetterLookahead = 20

	setterPrefix = "set_"

	// controlCacheSize bounds the memoized control-type decisions. Forms
	// repeat the same handful of control types across hundreds of fields.
	controlCacheSize = 512
)

// defaultControlPrefixes are the namespace families whose types count as
// UI controls when found anywhere on a field type's base chain.
var defaultControlPrefixes = []string{
	"System.Windows.Forms",
	"System.Web.UI",
}

// extractFormText recovers the form's display text from the
// initialization method: a virtual call to set_Text whose receiver is
// the form instance itself. The first non-empty decoded literal, in
// instruction order, wins.
func extractFormText(t *metadata.TypeDef) string {
	init := findInitMethod(t)
	if init == nil {
		return ""
	}
	body := init.Body
	for i, ins := range body {
		if ins.Op != metadata.OpCallvirt || ins.Member == nil || ins.Member.Name != "set_Text" {
			continue
		}
		// The receiver must be the form itself: two instructions back
		// loads the current instance.
		if i < 2 || body[i-2].Op != metadata.OpLdarg0 {
			continue
		}
		if v, ok := decodeLiteral(body[i-1]); ok && v != "" {
			return v
		}
	}
	return ""
}

// extractControlProperties mines literal property assignments for every
// UI-control field of the form from the initialization method. For each
// load of a control-typed field, a bounded window of following
// instructions is scanned for set_-convention calls; the literal feeding
// each call is recorded under the de-prefixed property name, first
// occurrence winning. The window closes early at a call to a non-setter
// target or at the next field access.
func extractControlProperties(t *metadata.TypeDef, rec *report.TypeRecord, controls *controlMatcher, lookahead int) {
	init := findInitMethod(t)
	if init == nil {
		return
	}

	fieldTypes := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		fieldTypes[f.Name] = f.Type
	}
	typeFullName := t.FullName()
	body := init.Body

	for i, ins := range body {
		if ins.Op != metadata.OpLdfld || ins.Member == nil || ins.Member.DeclaringType != typeFullName {
			continue
		}
		fieldType, ok := fieldTypes[ins.Member.Name]
		if !ok || !controls.isControl(fieldType) {
			continue
		}
		member := rec.FieldByName(ins.Member.Name)
		if member == nil || member.Field == nil {
			continue
		}

	window:
		for j := i + 1; j < len(body) && j <= i+lookahead; j++ {
			cur := body[j]
			switch {
			case cur.Op == metadata.OpLdfld || cur.Op == metadata.OpLdflda || cur.Op == metadata.OpStfld:
				// Another instance-field access starts the next control's
				// initialization run. Static-field loads stay inside the
				// window; they are literal material for the setter.
				break window
			case cur.Op.IsCall():
				if cur.Op != metadata.OpCallvirt || cur.Member == nil || !strings.HasPrefix(cur.Member.Name, setterPrefix) {
					break window
				}
				value, ok := decodeLiteral(body[j-1])
				if !ok && j >= 2 {
					// A box or conversion may sit between the constant
					// load and the setter call.
					value, ok = decodeLiteral(body[j-2])
				}
				if !ok {
					continue
				}
				prop := strings.TrimPrefix(cur.Member.Name, setterPrefix)
				if member.Field.ControlProperties == nil {
					member.Field.ControlProperties = make(map[string]string)
				}
				if _, exists := member.Field.ControlProperties[prop]; !exists {
					member.Field.ControlProperties[prop] = value
				}
			}
		}
	}
}

// controlMatcher decides whether a type is a UI control by walking its
// base chain against the control-library namespace prefixes. The walk
// repeats for every field of every form, so decisions are memoized in an
// LRU keyed by full type name.
type controlMatcher struct {
	res      *metadata.Resolver
	prefixes []string
	cache    *lru.Cache[string, bool]
}

func newControlMatcher(res *metadata.Resolver, prefixes []string) *controlMatcher {
	cache, _ := lru.New[string, bool](controlCacheSize)
	return &controlMatcher{res: res, prefixes: prefixes, cache: cache}
}

// isControl reports whether typeName transitively derives from a
// control-library namespace. Resolution failures simply end the walk.
func (c *controlMatcher) isControl(typeName string) bool {
	if found, ok := c.cache.Get(typeName); ok {
		return found
	}
	found := false
	c.res.WalkBaseChain(typeName, func(name string) bool {
		if hasAnyPrefix(name, c.prefixes) {
			found = true
			return false
		}
		return true
	})
	c.cache.Add(typeName, found)
	return found
}

// decodeLiteral turns a constant-load instruction into its textual value.
// String loads yield the raw string, the integer-constant family yields
// the decimal value, float and wide-integer loads yield the operand's
// textual form, and static-field loads yield a symbolic
// "DeclaringType.FieldName" reference. Everything else decodes to nothing.
func decodeLiteral(ins metadata.Instruction) (string, bool) {
	if v, ok := ins.Op.SmallIntValue(); ok {
		return strconv.FormatInt(v, 10), true
	}

	switch ins.Op {
	case metadata.OpLdstr:
		if ins.Str != nil {
			return *ins.Str, true
		}
	case metadata.OpLdcI4, metadata.OpLdcI4S, metadata.OpLdcI8:
		if ins.Int != nil {
			return strconv.FormatInt(*ins.Int, 10), true
		}
	case metadata.OpLdcR4, metadata.OpLdcR8:
		if ins.Float != nil {
			return strconv.FormatFloat(*ins.Float, 'g', -1, 64), true
		}
	case metadata.OpLdsfld:
		if ins.Member != nil {
			return metadata.SimpleTypeName(ins.Member.DeclaringType) + "." + ins.Member.Name, true
		}
	}
	return "", false
}

func findInitMethod(t *metadata.TypeDef) *metadata.MethodDef {
	for _, m := range t.Methods {
		if m.Name == initMethodName && m.HasBody() {
			return m
		}
	}
	return nil
}

// hasAnyPrefix matches namespace prefixes on dot boundaries, so the
// System entry covers System.Text but never Systems.Acme.
func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if s == p || strings.HasPrefix(s, p+".") {
			return true
		}
	}
	return false
}
