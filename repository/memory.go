package repository

import (
	"context"
	"sync"

	"jurisnote/models"
)

// MemoryStore keeps rows in process memory. Used for tests and local runs.
type MemoryStore struct {
	layout models.Layout
	mu     sync.RWMutex
	rows   [][]string
}

// NewMemoryStore creates an empty in-memory store for the given layout.
func NewMemoryStore(layout models.Layout) *MemoryStore {
	return &MemoryStore{layout: layout}
}

// Append adds one record.
func (s *MemoryStore) Append(ctx context.Context, rec models.Record) error {
	values, err := checkRecord(s.layout, rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, values)
	return nil
}

// FetchAll returns all rows under the layout's header.
func (s *MemoryStore) FetchAll(ctx context.Context) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cells := make([][]string, len(s.rows))
	for i, r := range s.rows {
		cells[i] = append([]string(nil), r...)
	}
	return models.NewTable(s.layout.Columns, cells), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
