// Package state persists records of expanded schemas in SQLite. Each
// model gets one table with a column per concrete field, so translated
// values live in ordinary typed columns and remain queryable per
// language.
package state

import (
	"context"

	"github.com/glossa-labs/transfield/pkg/core"
)

// Store is the persistence interface for records.
type Store interface {
	// Open opens the backing database. Use ":memory:" for an in-memory store.
	Open(path string) error
	// Close closes the backing database.
	Close() error
	// InitSchema creates the table for a built schema if it is missing.
	InitSchema(ctx context.Context, schema *core.Schema) error
	// SaveRecord inserts a record, assigning it an ID when it has none.
	SaveRecord(ctx context.Context, rec *core.Record) (string, error)
	// UpdateRecord rewrites an existing record's attributes in place.
	UpdateRecord(ctx context.Context, rec *core.Record) error
	// GetRecord loads one record by ID.
	GetRecord(ctx context.Context, schema *core.Schema, id string) (*core.Record, error)
	// ListRecords loads all records of a schema.
	ListRecords(ctx context.Context, schema *core.Schema) ([]*core.Record, error)
	// DeleteRecord removes one record by ID.
	DeleteRecord(ctx context.Context, schema *core.Schema, id string) error
}
