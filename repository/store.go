// Package repository holds the append-only stores that persist case notes.
package repository

import (
	"context"
	"errors"
	"fmt"

	"jurisnote/models"
)

// ErrHeaderMismatch is returned when a store's header row differs from the
// layout being written. Writing anyway would put values under the wrong names.
var ErrHeaderMismatch = errors.New("stored header does not match layout")

// Store appends notebook rows and reads them back by column name.
type Store interface {
	// Append adds one record to the end of the store. No uniqueness check is made.
	Append(ctx context.Context, rec models.Record) error

	// FetchAll returns every row in insertion order.
	FetchAll(ctx context.Context) (*models.Table, error)

	// Close releases connections held by the store.
	Close() error
}

// SchemaInitializer is implemented by stores that can prepare their table or
// header row ahead of the first write.
type SchemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}

// Backend names accepted by configuration.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// checkRecord guards the write path against a record of another revision.
func checkRecord(layout models.Layout, rec models.Record) ([]string, error) {
	if rec.Revision() != layout.Revision {
		return nil, fmt.Errorf("record revision %s does not match store layout %s", rec.Revision(), layout.Revision)
	}
	values := rec.Values()
	if len(values) != len(layout.Columns) {
		return nil, fmt.Errorf("record has %d values for %d columns", len(values), len(layout.Columns))
	}
	return values, nil
}
