package storage

import (
	"context"

	"asmlens/internal/report"
)

// Store defines operations for persisting analysis runs.
type Store interface {
	// SaveReport persists a whole analysis run, replacing any previous
	// run for the same assembly.
	SaveReport(ctx context.Context, r *report.AssemblyReport) error

	// LoadReport reconstructs a persisted run by assembly name.
	LoadReport(ctx context.Context, name string) (*report.AssemblyReport, error)

	// ListAssemblies returns the names of all stored runs.
	ListAssemblies(ctx context.Context) ([]string, error)

	Close() error
}
