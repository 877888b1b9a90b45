package analysis

import (
	"asmlens/internal/metadata"
	"asmlens/internal/report"
)

// Options tune the analysis heuristics. The zero value selects the
// defaults used for WinForms-era binaries.
type Options struct {
	// FormBaseType overrides the well-known UI-form ancestor.
	FormBaseType string

	// ControlPrefixes overrides the namespace families treated as UI
	// control libraries.
	ControlPrefixes []string

	// ExtraNoisePrefixes extends the fixed noise taxonomy for the
	// external-reference report.
	ExtraNoisePrefixes []string

	// SetterLookahead overrides the instruction-window bound of the
	// control-property extractor.
	SetterLookahead int
}

func (o Options) formBaseType() string {
	if o.FormBaseType != "" {
		return o.FormBaseType
	}
	return DefaultFormBaseType
}

func (o Options) controlPrefixes() []string {
	if len(o.ControlPrefixes) > 0 {
		return o.ControlPrefixes
	}
	return defaultControlPrefixes
}

func (o Options) setterLookahead() int {
	if o.SetterLookahead > 0 {
		return o.SetterLookahead
	}
	return defaultSetterLookahead
}

func (o Options) noisePrefixes() []string {
	if len(o.ExtraNoisePrefixes) == 0 {
		return defaultNoisePrefixes
	}
	merged := make([]string, 0, len(defaultNoisePrefixes)+len(o.ExtraNoisePrefixes))
	merged = append(merged, defaultNoisePrefixes...)
	merged = append(merged, o.ExtraNoisePrefixes...)
	return merged
}

// Analyzer runs the whole pipeline over one assembly object model:
// classification, reference-graph construction, form-text extraction,
// and external-call classification, strictly in that order. All state is
// owned by the single run; a fresh Analyzer is created per input.
type Analyzer struct {
	asm      *metadata.Assembly
	res      *metadata.Resolver
	controls *controlMatcher
	opts     Options
}

// New prepares an analyzer for one assembly.
func New(asm *metadata.Assembly, opts Options) *Analyzer {
	res := metadata.NewResolver(asm)
	return &Analyzer{
		asm:      asm,
		res:      res,
		controls: newControlMatcher(res, opts.controlPrefixes()),
		opts:     opts,
	}
}

// Run executes the pipeline and returns the canonical report. Per-type
// and per-member degradation is absorbed; Run itself never fails.
func (a *Analyzer) Run() *report.AssemblyReport {
	r := &report.AssemblyReport{
		Name:           a.asm.Name,
		FullName:       a.asm.FullName,
		Version:        a.asm.Version,
		Culture:        a.asm.Culture,
		PublicKeyToken: a.asm.PublicKeyToken,
		Runtime:        a.asm.Runtime,
		Architecture:   a.asm.Architecture,
		Kind:           a.asm.Kind,
		Location:       a.asm.Location,
	}

	for _, t := range a.asm.Types {
		if IsCompilerGenerated(t.Name) {
			continue
		}

		rec := a.buildTypeRecord(t)
		buildReferences(t, rec)

		if rec.Category == report.CategoryForm {
			rec.FormText = extractFormText(t)
			extractControlProperties(t, rec, a.controls, a.opts.setterLookahead())
		}

		r.Types = append(r.Types, rec)
	}

	r.ExternalCalls, r.ExternalTargets = buildExternalCalls(r, a.asm.Name, a.opts.noisePrefixes())
	return r
}

// buildTypeRecord classifies the type and materializes its member
// records in declaration order.
func (a *Analyzer) buildTypeRecord(t *metadata.TypeDef) *report.TypeRecord {
	fullName := t.FullName()
	rec := &report.TypeRecord{
		Name:        t.Name,
		Namespace:   t.Namespace,
		FullName:    fullName,
		Category:    Classify(t, a.res, a.opts.formBaseType()),
		Visibility:  t.Visibility,
		Abstract:    t.IsAbstract,
		Sealed:      t.IsSealed,
		Interface:   t.IsInterface,
		Enum:        t.IsEnum,
		ValueType:   t.IsValueType,
		BaseType:    t.BaseType,
		Interfaces:  t.Interfaces,
		NestedTypes: t.NestedTypes,
	}

	for _, f := range t.Fields {
		rec.Fields = append(rec.Fields, &report.Member{
			Kind:     report.KindField,
			Name:     f.Name,
			FullName: metadata.QualifiedID(fullName, f.Name, ""),
			Field: &report.FieldInfo{
				Type:       f.Type,
				Visibility: f.Visibility,
				Static:     f.IsStatic,
				InitOnly:   f.IsInitOnly,
				Literal:    f.IsLiteral,
				Constant:   f.Constant,
			},
		})
	}

	for _, p := range t.Properties {
		rec.Properties = append(rec.Properties, &report.Member{
			Kind:     report.KindProperty,
			Name:     p.Name,
			FullName: metadata.QualifiedID(fullName, p.Name, ""),
			Property: &report.PropertyInfo{
				Type:             p.Type,
				HasGetter:        p.HasGetter,
				HasSetter:        p.HasSetter,
				GetterVisibility: p.GetterVisibility,
				SetterVisibility: p.SetterVisibility,
			},
		})
	}

	for _, m := range t.Methods {
		rec.Methods = append(rec.Methods, &report.Member{
			Kind:     report.KindMethod,
			Name:     m.Name,
			FullName: metadata.QualifiedID(fullName, m.Name, m.Signature()),
			Method: &report.MethodInfo{
				ReturnType: m.ReturnType,
				Parameters: convertParams(m.Parameters),
				Visibility: m.Visibility,
				Static:     m.IsStatic,
				Virtual:    m.IsVirtual,
				Abstract:   m.IsAbstract,
				Final:      m.IsFinal,
				Async:      m.IsAsync,
				HasBody:    m.HasBody(),
			},
		})
	}

	for _, c := range t.Constructors {
		rec.Constructors = append(rec.Constructors, &report.Member{
			Kind:     report.KindConstructor,
			Name:     c.Name,
			FullName: metadata.QualifiedID(fullName, c.Name, c.Signature()),
			Constructor: &report.CtorInfo{
				Parameters: convertParams(c.Parameters),
				Visibility: c.Visibility,
				Static:     c.IsStatic,
			},
		})
	}

	for _, e := range t.Events {
		rec.Events = append(rec.Events, &report.Member{
			Kind:     report.KindEvent,
			Name:     e.Name,
			FullName: metadata.QualifiedID(fullName, e.Name, ""),
			Event:    &report.EventInfo{DelegateType: e.DelegateType},
		})
	}

	return rec
}

func convertParams(params []metadata.Param) []report.Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]report.Param, len(params))
	for i, p := range params {
		out[i] = report.Param{Name: p.Name, Type: p.Type}
	}
	return out
}
