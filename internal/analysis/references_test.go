package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asmlens/internal/metadata"
	"asmlens/internal/report"
)

func runAnalysis(t *testing.T, asm *metadata.Assembly) *report.AssemblyReport {
	t.Helper()
	return New(asm, Options{}).Run()
}

func refEdges(m *report.Member, kind report.RefKind) []string {
	var out []string
	for _, e := range m.Refs {
		if e.Kind == kind {
			out = append(out, e.Member)
		}
	}
	return out
}

func TestBuildReferences_FieldDedup(t *testing.T) {
	// Two loads and two stores of the same field inside one method must
	// collapse to one read and one write edge.
	counter := &metadata.TypeDef{
		Name: "Counter", Namespace: "TestApp", IsClass: true, BaseType: "System.Object",
		Fields: []*metadata.FieldDef{{Name: "total", Type: "System.Int32", Visibility: "private"}},
		Methods: []*metadata.MethodDef{{
			Name: "Bump", ReturnType: "System.Void",
			Body: []metadata.Instruction{
				ins(metadata.OpLdarg0),
				insMember(metadata.OpLdfld, "TestApp.Counter", "total", ""),
				insInt(metadata.OpLdcI4, 1),
				insMember(metadata.OpStfld, "TestApp.Counter", "total", ""),
				ins(metadata.OpLdarg0),
				insMember(metadata.OpLdfld, "TestApp.Counter", "total", ""),
				insMember(metadata.OpStfld, "TestApp.Counter", "total", ""),
				ins(metadata.OpRet),
			},
		}},
	}

	r := runAnalysis(t, &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{counter}})
	rec := r.TypeByFullName("TestApp.Counter")
	require.NotNil(t, rec)

	field := rec.FieldByName("total")
	require.NotNil(t, field)

	t.Run("One read and one write per caller", func(t *testing.T) {
		assert.Equal(t, []string{"TestApp.Counter::Bump()"}, refEdges(field, report.RefRead))
		assert.Equal(t, []string{"TestApp.Counter::Bump()"}, refEdges(field, report.RefWrite))
	})

	t.Run("Outbound touches deduplicated by target and kind", func(t *testing.T) {
		method := rec.Methods[0]
		assert.Equal(t, []string{"TestApp.Counter::total"}, refEdges(method, report.RefRead))
		assert.Equal(t, []string{"TestApp.Counter::total"}, refEdges(method, report.RefWrite))
	})
}

func TestBuildReferences_PropertyAccessors(t *testing.T) {
	svc := &metadata.TypeDef{
		Name: "Cart", Namespace: "TestApp", IsClass: true, BaseType: "System.Object",
		Properties: []*metadata.PropertyDef{{Name: "Total", Type: "System.Decimal", HasGetter: true, HasSetter: true}},
		Methods: []*metadata.MethodDef{{
			Name: "Recalculate", ReturnType: "System.Void",
			Body: []metadata.Instruction{
				ins(metadata.OpLdarg0),
				insMember(metadata.OpCall, "TestApp.Cart", "get_Total", "()"),
				insMember(metadata.OpCallvirt, "TestApp.Cart", "get_Total", "()"),
				insMember(metadata.OpCallvirt, "TestApp.Cart", "set_Total", "(System.Decimal)"),
				ins(metadata.OpRet),
			},
		}},
	}

	r := runAnalysis(t, &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{svc}})
	rec := r.TypeByFullName("TestApp.Cart")
	require.NotNil(t, rec)
	require.Len(t, rec.Properties, 1)

	prop := rec.Properties[0]

	t.Run("Accessor calls become property edges", func(t *testing.T) {
		assert.Equal(t, []string{"TestApp.Cart::Recalculate()"}, refEdges(prop, report.RefRead),
			"two getter calls from one caller must collapse to one read edge")
		assert.Equal(t, []string{"TestApp.Cart::Recalculate()"}, refEdges(prop, report.RefWrite))
	})

	t.Run("Accessor calls never become call edges", func(t *testing.T) {
		method := rec.Methods[0]
		assert.Empty(t, refEdges(method, report.RefCall))
	})
}

func TestBuildReferences_CallDedup(t *testing.T) {
	svc := &metadata.TypeDef{
		Name: "Sender", Namespace: "TestApp", IsClass: true, BaseType: "System.Object",
		Methods: []*metadata.MethodDef{{
			Name: "SendAll", ReturnType: "System.Void",
			Body: []metadata.Instruction{
				insMember(metadata.OpCall, "Vendor.Api.Client", "Send", "(System.String)"),
				insMember(metadata.OpCall, "Vendor.Api.Client", "Send", "(System.String)"),
				insMember(metadata.OpCallvirt, "Vendor.Api.Client", "Close", "()"),
				ins(metadata.OpRet),
			},
		}},
		Constructors: []*metadata.MethodDef{{
			Name: ".ctor",
			Body: []metadata.Instruction{
				insMember(metadata.OpCall, "System.Object", ".ctor", "()"),
				ins(metadata.OpRet),
			},
		}},
	}

	r := runAnalysis(t, &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{svc}})
	rec := r.TypeByFullName("TestApp.Sender")
	require.NotNil(t, rec)

	t.Run("One call edge per distinct target", func(t *testing.T) {
		method := rec.Methods[0]
		assert.Equal(t, []string{
			"Vendor.Api.Client::Send(System.String)",
			"Vendor.Api.Client::Close()",
		}, refEdges(method, report.RefCall))
	})

	t.Run("Constructors record call edges too", func(t *testing.T) {
		ctor := rec.Constructors[0]
		assert.Equal(t, []string{"System.Object::.ctor()"}, refEdges(ctor, report.RefCall))
	})
}

func TestBuildReferences_ObjectCreation(t *testing.T) {
	svc := &metadata.TypeDef{
		Name: "Factory", Namespace: "TestApp", IsClass: true, BaseType: "System.Object",
		Methods: []*metadata.MethodDef{{
			Name: "Open", ReturnType: "Vendor.Db.Connection",
			Body: []metadata.Instruction{
				insStr(metadata.OpLdstr, "server=legacy"),
				insMember(metadata.OpNewobj, "Vendor.Db.Connection", ".ctor", "(System.String)"),
				ins(metadata.OpRet),
			},
		}},
	}

	r := runAnalysis(t, &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{svc}})
	rec := r.TypeByFullName("TestApp.Factory")
	require.NotNil(t, rec)
	assert.Equal(t, []string{"Vendor.Db.Connection::.ctor(System.String)"},
		refEdges(rec.Methods[0], report.RefCall))
}

func TestBuildReferences_OtherTypesNotScanned(t *testing.T) {
	// Only the declaring type's own methods contribute edges; a method
	// of another type touching the field is out of scope.
	owner := &metadata.TypeDef{
		Name: "Owner", Namespace: "TestApp", IsClass: true, BaseType: "System.Object",
		Fields: []*metadata.FieldDef{{Name: "shared", Type: "System.Int32"}},
	}
	intruder := &metadata.TypeDef{
		Name: "Intruder", Namespace: "TestApp", IsClass: true, BaseType: "System.Object",
		Methods: []*metadata.MethodDef{{
			Name: "Poke", ReturnType: "System.Void",
			Body: []metadata.Instruction{
				insMember(metadata.OpLdfld, "TestApp.Owner", "shared", ""),
				ins(metadata.OpRet),
			},
		}},
	}

	r := runAnalysis(t, &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{owner, intruder}})
	rec := r.TypeByFullName("TestApp.Owner")
	require.NotNil(t, rec)
	assert.Empty(t, rec.FieldByName("shared").Refs)
}
