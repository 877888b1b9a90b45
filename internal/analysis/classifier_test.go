package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"asmlens/internal/metadata"
	"asmlens/internal/report"
)

// --- shared instruction helpers ---

func ins(op metadata.OpCode) metadata.Instruction {
	return metadata.Instruction{Op: op}
}

func insStr(op metadata.OpCode, s string) metadata.Instruction {
	return metadata.Instruction{Op: op, Str: &s}
}

func insInt(op metadata.OpCode, v int64) metadata.Instruction {
	return metadata.Instruction{Op: op, Int: &v}
}

func insMember(op metadata.OpCode, declaring, name, sig string) metadata.Instruction {
	return metadata.Instruction{Op: op, Member: &metadata.MemberRef{
		Name:          name,
		DeclaringType: declaring,
		Signature:     sig,
	}}
}

func classify(t *metadata.TypeDef, refs ...*metadata.TypeDef) report.TypeCategory {
	asm := &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{t}, TypeRefs: refs}
	return Classify(t, metadata.NewResolver(asm), DefaultFormBaseType)
}

func TestClassify(t *testing.T) {
	t.Run("Interface", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{Name: "IRepo", Namespace: "TestApp", IsInterface: true})
		assert.Equal(t, report.CategoryInterface, cat)
	})

	t.Run("Enum", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{Name: "Color", Namespace: "TestApp", IsEnum: true, IsValueType: true})
		assert.Equal(t, report.CategoryEnum, cat)
	})

	t.Run("Struct", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{Name: "Point", Namespace: "TestApp", IsValueType: true})
		assert.Equal(t, report.CategoryStruct, cat)
	})

	t.Run("Plain class", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{Name: "Service", Namespace: "TestApp", IsClass: true, BaseType: "System.Object"})
		assert.Equal(t, report.CategoryClass, cat)
	})

	t.Run("Static class", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{
			Name: "Helpers", Namespace: "TestApp",
			IsClass: true, IsAbstract: true, IsSealed: true,
			BaseType: "System.Object",
		})
		assert.Equal(t, report.CategoryStaticClass, cat)
	})

	t.Run("Unrecognized declared kind", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{Name: "Module1", Namespace: "TestApp"})
		assert.Equal(t, report.CategoryType, cat)
	})

	t.Run("Direct form base", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{
			Name: "MainForm", Namespace: "TestApp",
			IsClass: true, BaseType: "System.Windows.Forms.Form",
		})
		assert.Equal(t, report.CategoryForm, cat)
	})

	t.Run("Form through intermediate class", func(t *testing.T) {
		base := &metadata.TypeDef{
			Name: "BaseForm", Namespace: "TestApp",
			IsClass: true, BaseType: "System.Windows.Forms.Form",
		}
		foo := &metadata.TypeDef{
			Name: "Foo", Namespace: "TestApp",
			IsClass: true, BaseType: "TestApp.BaseForm",
		}
		asm := &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{base, foo}}
		res := metadata.NewResolver(asm)

		assert.Equal(t, report.CategoryForm, Classify(foo, res, DefaultFormBaseType))
		assert.Equal(t, report.CategoryForm, Classify(base, res, DefaultFormBaseType))
	})

	t.Run("Unresolvable base falls through to class", func(t *testing.T) {
		cat := classify(&metadata.TypeDef{
			Name: "Orphan", Namespace: "TestApp",
			IsClass: true, BaseType: "Missing.Reference.Widget",
		})
		assert.Equal(t, report.CategoryClass, cat)
	})

	t.Run("Base chain cycle terminates", func(t *testing.T) {
		a := &metadata.TypeDef{Name: "A", Namespace: "TestApp", IsClass: true, BaseType: "TestApp.B"}
		b := &metadata.TypeDef{Name: "B", Namespace: "TestApp", IsClass: true, BaseType: "TestApp.A"}
		asm := &metadata.Assembly{Name: "TestApp", Types: []*metadata.TypeDef{a, b}}
		res := metadata.NewResolver(asm)

		assert.Equal(t, report.CategoryClass, Classify(a, res, DefaultFormBaseType))
	})
}

func TestIsCompilerGenerated(t *testing.T) {
	assert.True(t, IsCompilerGenerated("<>c__DisplayClass1_0"))
	assert.True(t, IsCompilerGenerated("<Main>d__0"))
	assert.True(t, IsCompilerGenerated("__StaticArrayInitTypeSize"))
	assert.False(t, IsCompilerGenerated("MainForm"))
	assert.False(t, IsCompilerGenerated("_internalHelper"))
}
