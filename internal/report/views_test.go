package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *AssemblyReport {
	return &AssemblyReport{
		Name: "LegacyApp",
		Types: []*TypeRecord{
			{
				Name: "MainForm", Namespace: "LegacyApp", FullName: "LegacyApp.MainForm",
				Category: CategoryForm, BaseType: "System.Windows.Forms.Form",
				FormText: "Order Entry",
				Fields: []*Member{
					{Kind: KindField, Name: "btnSave", FullName: "LegacyApp.MainForm::btnSave",
						Field: &FieldInfo{Type: "System.Windows.Forms.Button"}},
				},
				Methods: []*Member{
					{Kind: KindMethod, Name: "btnSave_Click",
						FullName: "LegacyApp.MainForm::btnSave_Click(System.Object,System.EventArgs)",
						Method:   &MethodInfo{ReturnType: "System.Void", HasBody: true}},
				},
			},
			{
				Name: "Repo", Namespace: "LegacyApp", FullName: "LegacyApp.Repo",
				Category: CategoryClass, BaseType: "LegacyApp.RepoBase",
			},
			{
				Name: "RepoBase", Namespace: "LegacyApp", FullName: "LegacyApp.RepoBase",
				Category: CategoryClass, BaseType: "System.Object",
				Interfaces: []string{"LegacyApp.IRepo"},
			},
			{
				Name: "IRepo", Namespace: "LegacyApp", FullName: "LegacyApp.IRepo",
				Category: CategoryInterface, Interface: true,
			},
			{
				Name: "Util", Namespace: "LegacyApp", FullName: "LegacyApp.Util",
				Category: CategoryStaticClass, Abstract: true, Sealed: true,
			},
			{
				Name: "OrderStatus", Namespace: "LegacyApp", FullName: "LegacyApp.OrderStatus",
				Category: CategoryEnum, Enum: true,
			},
		},
		ExternalCalls: []ExternalCallInfo{
			{
				TargetType: "Vendor.Billing.Api", TargetMember: "Submit(System.String)",
				Target: "Vendor.Billing.Api::Submit(System.String)", Kind: RefCall,
				CallingType:   "LegacyApp.MainForm",
				CallingMethod: "LegacyApp.MainForm::btnSave_Click(System.Object,System.EventArgs)",
				Trigger:       &TriggerInfo{ControlName: "btnSave", EventName: "Click", ControlText: "Save"},
			},
		},
		ExternalTargets: []string{"Vendor.Billing.Api::Submit"},
	}
}

func TestBuildSummary(t *testing.T) {
	v := BuildSummary(sampleReport())

	assert.Equal(t, "LegacyApp", v.Assembly)

	t.Run("Forms bucket carries form text and member ids", func(t *testing.T) {
		require.Len(t, v.Forms, 1)
		assert.Equal(t, "LegacyApp.MainForm", v.Forms[0].Type)
		assert.Equal(t, "Order Entry", v.Forms[0].FormText)
		assert.Equal(t, []string{
			"LegacyApp.MainForm::btnSave",
			"LegacyApp.MainForm::btnSave_Click(System.Object,System.EventArgs)",
		}, v.Forms[0].Members)
	})

	t.Run("Classes and statics bucket by category", func(t *testing.T) {
		require.Len(t, v.Classes, 2)
		assert.Equal(t, "LegacyApp.Repo", v.Classes[0].Type)
		require.Len(t, v.Statics, 1)
		assert.Equal(t, "LegacyApp.Util", v.Statics[0].Type)
	})

	t.Run("Interfaces and enums stay out of the summary", func(t *testing.T) {
		for _, bucket := range [][]SummaryEntry{v.Forms, v.Classes, v.Statics} {
			for _, e := range bucket {
				assert.NotEqual(t, "LegacyApp.IRepo", e.Type)
				assert.NotEqual(t, "LegacyApp.OrderStatus", e.Type)
			}
		}
	})
}

func TestBuildExternal(t *testing.T) {
	v := BuildExternal(sampleReport())
	assert.Equal(t, "LegacyApp", v.Assembly)
	require.Len(t, v.Calls, 1)
	assert.Equal(t, "Vendor.Billing.Api", v.Calls[0].TargetType)
	assert.Equal(t, []string{"Vendor.Billing.Api::Submit"}, v.Targets)
}

func TestMermaidClassDiagram(t *testing.T) {
	var g MermaidGenerator
	out := g.GenerateClassDiagram(sampleReport())

	assert.Contains(t, out, "classDiagram")
	assert.Contains(t, out, "<<form>>")
	assert.Contains(t, out, "<<interface>>")
	assert.Contains(t, out, "<<enumeration>>")

	t.Run("Edges drawn only between analyzed types", func(t *testing.T) {
		assert.Contains(t, out, "RepoBase <|-- Repo")
		assert.Contains(t, out, "IRepo <|.. RepoBase")
		assert.NotContains(t, out, "Form <|-- MainForm",
			"framework base types are not part of the diagram")
	})
}

func TestMermaidExternalFlow(t *testing.T) {
	var g MermaidGenerator
	out := g.GenerateExternalFlow(sampleReport())
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "-->")
	assert.NotContains(t, out, "::", "ids must be sanitized for mermaid")
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir, sampleReport()))

	for _, name := range []string{"full.json", "summary.json", "external.json"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, name))
			require.NoError(t, err)
			var doc map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &doc))
			assert.NotEmpty(t, doc)
		})
	}

	t.Run("Summary omits reference detail", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "refs")
	})
}
