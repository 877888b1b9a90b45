package metadata

import "strings"

// Assembly is the parsed object model of a managed binary, as produced by
// the external metadata reader. The analysis engine never touches raw
// bytes; this model is its only view of the input.
type Assembly struct {
	Name           string `json:"name"`                       // simple name, e.g. "LegacyApp"
	FullName       string `json:"full_name,omitempty"`        // display name with version/culture/token
	Version        string `json:"version,omitempty"`
	Culture        string `json:"culture,omitempty"`
	PublicKeyToken string `json:"public_key_token,omitempty"`
	Runtime        string `json:"runtime,omitempty"`          // target runtime/framework moniker
	Architecture   string `json:"architecture,omitempty"`
	Kind           string `json:"kind,omitempty"`             // exe, dll, winexe
	Location       string `json:"location,omitempty"`         // source path of the binary

	Types []*TypeDef `json:"types"`

	// TypeRefs are definitions the reader recovered from reference
	// assemblies (base-type chains of framework and library types).
	// They participate in resolution only, never in the report.
	TypeRefs []*TypeDef `json:"type_refs,omitempty"`
}

// TypeDef is one declared type with its members and, for methods and
// constructors, decoded instruction sequences.
type TypeDef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`

	Visibility  string `json:"visibility,omitempty"`
	IsClass     bool   `json:"is_class,omitempty"`
	IsInterface bool   `json:"is_interface,omitempty"`
	IsEnum      bool   `json:"is_enum,omitempty"`
	IsValueType bool   `json:"is_value_type,omitempty"`
	IsAbstract  bool   `json:"is_abstract,omitempty"`
	IsSealed    bool   `json:"is_sealed,omitempty"`

	BaseType   string   `json:"base_type,omitempty"` // full name, "" when none
	Interfaces []string `json:"interfaces,omitempty"`

	Fields       []*FieldDef    `json:"fields,omitempty"`
	Properties   []*PropertyDef `json:"properties,omitempty"`
	Methods      []*MethodDef   `json:"methods,omitempty"`
	Constructors []*MethodDef   `json:"constructors,omitempty"`
	Events       []*EventDef    `json:"events,omitempty"`

	NestedTypes []string `json:"nested_types,omitempty"`
}

// FullName returns the namespace-qualified type name.
func (t *TypeDef) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// FieldDef describes a declared field.
type FieldDef struct {
	Name       string `json:"name"`
	Type       string `json:"type"` // declared type, full name
	Visibility string `json:"visibility,omitempty"`
	IsStatic   bool   `json:"is_static,omitempty"`
	IsInitOnly bool   `json:"is_init_only,omitempty"`
	IsLiteral  bool   `json:"is_literal,omitempty"`
	Constant   string `json:"constant,omitempty"` // literal value for const fields
}

// PropertyDef describes a declared property and its accessor surface.
type PropertyDef struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	HasGetter        bool   `json:"has_getter,omitempty"`
	HasSetter        bool   `json:"has_setter,omitempty"`
	GetterVisibility string `json:"getter_visibility,omitempty"`
	SetterVisibility string `json:"setter_visibility,omitempty"`
}

// MethodDef describes a method or constructor. Constructors carry the
// conventional ".ctor"/".cctor" name and no return type.
type MethodDef struct {
	Name       string  `json:"name"`
	ReturnType string  `json:"return_type,omitempty"`
	Parameters []Param `json:"parameters,omitempty"`

	Visibility string `json:"visibility,omitempty"`
	IsStatic   bool   `json:"is_static,omitempty"`
	IsVirtual  bool   `json:"is_virtual,omitempty"`
	IsAbstract bool   `json:"is_abstract,omitempty"`
	IsFinal    bool   `json:"is_final,omitempty"`
	IsAsync    bool   `json:"is_async,omitempty"`

	// Body is the ordered instruction sequence, nil for abstract and
	// extern methods.
	Body []Instruction `json:"body,omitempty"`
}

// HasBody reports whether the method carries an instruction sequence.
func (m *MethodDef) HasBody() bool {
	return len(m.Body) > 0
}

// Signature renders the parenthesized parameter-type list.
func (m *MethodDef) Signature() string {
	if len(m.Parameters) == 0 {
		return "()"
	}
	types := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type
	}
	return "(" + strings.Join(types, ",") + ")"
}

// Param is a single method parameter.
type Param struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// EventDef describes a declared event.
type EventDef struct {
	Name         string `json:"name"`
	DelegateType string `json:"delegate_type,omitempty"`
}

// Instruction is one decoded instruction: an operation code plus at most
// one operand. Exactly one operand field is set, matching the opcode's
// operand class; all fields are nil for operand-less opcodes.
type Instruction struct {
	Op     OpCode     `json:"op"`
	Str    *string    `json:"str,omitempty"`
	Int    *int64     `json:"int,omitempty"`
	Float  *float64   `json:"float,omitempty"`
	Member *MemberRef `json:"member,omitempty"`
}

// MemberRef is a resolved reference to a member of some type, possibly
// outside the analyzed assembly.
type MemberRef struct {
	Name          string `json:"name"`
	DeclaringType string `json:"declaring_type"`       // full type name
	Signature     string `json:"signature,omitempty"`  // "(T1,T2)" for methods
}

// QualifiedID renders the canonical member id: DeclaringType::Name with
// the argument signature appended for methods.
func (m *MemberRef) QualifiedID() string {
	return m.DeclaringType + "::" + m.Name + m.Signature
}

// QualifiedID builds a member id from its parts, in the same format
// MemberRef.QualifiedID emits.
func QualifiedID(declaringType, name, signature string) string {
	return declaringType + "::" + name + signature
}

// SimpleTypeName returns the last dot-separated segment of a full type name.
func SimpleTypeName(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
