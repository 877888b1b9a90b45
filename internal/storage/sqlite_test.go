package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asmlens/internal/report"
)

func testReport(name string) *report.AssemblyReport {
	return &report.AssemblyReport{
		Name:     name,
		FullName: name + ", Version=1.0.0.0",
		Version:  "1.0.0.0",
		Runtime:  "v4.0.30319",
		Types: []*report.TypeRecord{
			{
				Name: "MainForm", Namespace: name, FullName: name + ".MainForm",
				Category: report.CategoryForm, BaseType: "System.Windows.Forms.Form",
				FormText: "Order Entry",
				Fields: []*report.Member{
					{Kind: report.KindField, Name: "btnSave", FullName: name + ".MainForm::btnSave",
						Field: &report.FieldInfo{
							Type:              "System.Windows.Forms.Button",
							ControlProperties: map[string]string{"Text": "Save"},
						}},
				},
			},
			{
				Name: "Repo", Namespace: name, FullName: name + ".Repo",
				Category: report.CategoryClass, BaseType: "System.Object",
				Methods: []*report.Member{
					{Kind: report.KindMethod, Name: "Save", FullName: name + ".Repo::Save()",
						Method: &report.MethodInfo{ReturnType: "System.Void", HasBody: true},
						Refs: []report.ReferenceEdge{
							{Kind: report.RefCall, Member: "Vendor.Db.Connection::Open()"},
						}},
				},
			},
		},
		ExternalCalls: []report.ExternalCallInfo{
			{
				TargetType: "Vendor.Db.Connection", TargetMember: "Open()",
				Target: "Vendor.Db.Connection::Open()", Kind: report.RefCall,
				CallingType: name + ".Repo", CallingMethod: name + ".Repo::Save()",
			},
		},
		ExternalTargets: []string{"Vendor.Db.Connection::Open"},
	}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testReport("LegacyApp")
	require.NoError(t, store.SaveReport(ctx, want))

	got, err := store.LoadReport(ctx, "LegacyApp")
	require.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Version, got.Version)
	require.Len(t, got.Types, 2)
	assert.Equal(t, want.Types[0], got.Types[0])
	assert.Equal(t, want.Types[1], got.Types[1])
	assert.Equal(t, want.ExternalCalls, got.ExternalCalls)
	assert.Equal(t, want.ExternalTargets, got.ExternalTargets)
}

func TestSQLiteStore_ReplacesPreviousRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveReport(ctx, testReport("LegacyApp")))

	// Second run with fewer types must fully replace the first.
	second := testReport("LegacyApp")
	second.Types = second.Types[:1]
	second.ExternalCalls = nil
	second.ExternalTargets = nil
	require.NoError(t, store.SaveReport(ctx, second))

	got, err := store.LoadReport(ctx, "LegacyApp")
	require.NoError(t, err)
	assert.Len(t, got.Types, 1)
	assert.Empty(t, got.ExternalCalls)
	assert.Empty(t, got.ExternalTargets)
}

func TestSQLiteStore_LoadUnknown(t *testing.T) {
	store := newTestStore(t)
	_, err := store.LoadReport(context.Background(), "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestSQLiteStore_ListAssemblies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveReport(ctx, testReport("Beta")))
	require.NoError(t, store.SaveReport(ctx, testReport("Alpha")))

	names, err := store.ListAssemblies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, names)
}
