// Package report holds the canonical in-memory model one analysis run
// produces, plus the derived full/summary/external views. The model is
// built once and never mutated afterwards; every view is computed from
// it without re-reading the input.
package report

// TypeCategory is the single classification tag assigned to every type.
type TypeCategory string

const (
	CategoryType        TypeCategory = "Type" // fallback for unrecognized declared kinds
	CategoryInterface   TypeCategory = "Interface"
	CategoryEnum        TypeCategory = "Enum"
	CategoryStruct      TypeCategory = "Struct"
	CategoryForm        TypeCategory = "Form"
	CategoryStaticClass TypeCategory = "StaticClass"
	CategoryClass       TypeCategory = "Class"
)

// RefKind tags a reference edge.
type RefKind string

const (
	RefRead  RefKind = "read"
	RefWrite RefKind = "write"
	RefCall  RefKind = "call"
)

// ReferenceEdge records one deduplicated reference. Member is the
// qualified id of the counterpart: the accessing method on field and
// property records (inbound), the referenced target on method and
// constructor records (outbound).
type ReferenceEdge struct {
	Kind   RefKind `json:"kind"`
	Member string  `json:"member"`
}

// MemberKind discriminates the closed member variant set.
type MemberKind string

const (
	KindField       MemberKind = "field"
	KindProperty    MemberKind = "property"
	KindMethod      MemberKind = "method"
	KindConstructor MemberKind = "constructor"
	KindEvent       MemberKind = "event"
)

// Member is one member record. Exactly one of the detail payloads is
// non-nil, matching Kind.
type Member struct {
	Kind     MemberKind `json:"kind"`
	Name     string     `json:"name"`
	FullName string     `json:"full_name"` // qualified id, DeclaringType::Name(sig)

	Field       *FieldInfo    `json:"field,omitempty"`
	Property    *PropertyInfo `json:"property,omitempty"`
	Method      *MethodInfo   `json:"method,omitempty"`
	Constructor *CtorInfo     `json:"constructor,omitempty"`
	Event       *EventInfo    `json:"event,omitempty"`

	Refs []ReferenceEdge `json:"refs,omitempty"`
}

// FieldInfo carries field-specific data. ControlProperties is populated
// only for UI-control fields of Form types, mapping property name to the
// literal recovered from the initialization method.
type FieldInfo struct {
	Type              string            `json:"type"`
	Visibility        string            `json:"visibility,omitempty"`
	Static            bool              `json:"static,omitempty"`
	InitOnly          bool              `json:"init_only,omitempty"`
	Literal           bool              `json:"literal,omitempty"`
	Constant          string            `json:"constant,omitempty"`
	ControlProperties map[string]string `json:"control_properties,omitempty"`
}

// PropertyInfo carries accessor presence and visibility.
type PropertyInfo struct {
	Type             string `json:"type"`
	HasGetter        bool   `json:"has_getter,omitempty"`
	HasSetter        bool   `json:"has_setter,omitempty"`
	GetterVisibility string `json:"getter_visibility,omitempty"`
	SetterVisibility string `json:"setter_visibility,omitempty"`
}

// MethodInfo carries a method's signature and modifiers.
type MethodInfo struct {
	ReturnType string  `json:"return_type,omitempty"`
	Parameters []Param `json:"parameters,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	Static     bool    `json:"static,omitempty"`
	Virtual    bool    `json:"virtual,omitempty"`
	Abstract   bool    `json:"abstract,omitempty"`
	Final      bool    `json:"final,omitempty"`
	Async      bool    `json:"async,omitempty"`
	HasBody    bool    `json:"has_body,omitempty"`
}

// CtorInfo mirrors MethodInfo without name or return type.
type CtorInfo struct {
	Parameters []Param `json:"parameters,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	Static     bool    `json:"static,omitempty"`
}

// EventInfo carries the event's delegate type.
type EventInfo struct {
	DelegateType string `json:"delegate_type,omitempty"`
}

// Param is a parameter in a recorded signature.
type Param struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// TypeRecord is the report entry for one analyzed type.
type TypeRecord struct {
	Name      string       `json:"name"`
	Namespace string       `json:"namespace,omitempty"`
	FullName  string       `json:"full_name"`
	Category  TypeCategory `json:"category"`

	Visibility string `json:"visibility,omitempty"`
	Abstract   bool   `json:"abstract,omitempty"`
	Sealed     bool   `json:"sealed,omitempty"`
	Interface  bool   `json:"interface,omitempty"`
	Enum       bool   `json:"enum,omitempty"`
	ValueType  bool   `json:"value_type,omitempty"`

	BaseType   string   `json:"base_type,omitempty"`
	Interfaces []string `json:"interfaces,omitempty"`

	Fields       []*Member `json:"fields,omitempty"`
	Properties   []*Member `json:"properties,omitempty"`
	Methods      []*Member `json:"methods,omitempty"`
	Constructors []*Member `json:"constructors,omitempty"`
	Events       []*Member `json:"events,omitempty"`

	NestedTypes []string `json:"nested_types,omitempty"`

	// FormText is the display text recovered from the initialization
	// method; meaningful only for CategoryForm.
	FormText string `json:"form_text,omitempty"`
}

// FieldByName returns the field member with the given name, or nil.
func (t *TypeRecord) FieldByName(name string) *Member {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// TriggerInfo is the UI control and event inferred from a handler
// method's naming convention. Derived at emission time only.
type TriggerInfo struct {
	ControlName string `json:"control_name"`
	ControlText string `json:"control_text,omitempty"`
	EventName   string `json:"event_name"`
}

// ExternalCallInfo is one reference whose target lies outside the
// analyzed assembly and outside the noise list.
type ExternalCallInfo struct {
	TargetType    string       `json:"target_type"`
	TargetMember  string       `json:"target_member"`
	Target        string       `json:"target"` // full qualified id of the target
	Kind          RefKind      `json:"kind"`
	CallingType   string       `json:"calling_type"`
	CallingMethod string       `json:"calling_method"` // qualified id
	Trigger       *TriggerInfo `json:"trigger,omitempty"`
}

// AssemblyReport is the root of the canonical model: assembly identity,
// every surviving type, and the external-call classification.
type AssemblyReport struct {
	Name           string `json:"name"`
	FullName       string `json:"full_name,omitempty"`
	Version        string `json:"version,omitempty"`
	Culture        string `json:"culture,omitempty"`
	PublicKeyToken string `json:"public_key_token,omitempty"`
	Runtime        string `json:"runtime,omitempty"`
	Architecture   string `json:"architecture,omitempty"`
	Kind           string `json:"kind,omitempty"`
	Location       string `json:"location,omitempty"`

	Types []*TypeRecord `json:"types"`

	ExternalCalls []ExternalCallInfo `json:"external_calls,omitempty"`

	// ExternalTargets is the sorted distinct list of external target ids
	// with argument signatures stripped.
	ExternalTargets []string `json:"external_targets,omitempty"`
}

// TypeByFullName returns the type record with the given full name, or nil.
func (r *AssemblyReport) TypeByFullName(fullName string) *TypeRecord {
	for _, t := range r.Types {
		if t.FullName == fullName {
			return t
		}
	}
	return nil
}
