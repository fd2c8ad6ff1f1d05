package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"jurisnote/models"
)

// SQLiteStore persists case notes in a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	table  string
	layout models.Layout
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures the table exists.
func NewSQLiteStore(ctx context.Context, path, table string, layout models.Layout) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if table == "" {
		table = DefaultTable
	}
	s := &SQLiteStore{db: db, table: table, layout: layout}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the notes table if it does not exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteDialect.createTable(s.table, s.layout)); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Append inserts one record.
func (s *SQLiteStore) Append(ctx context.Context, rec models.Record) error {
	values, err := checkRecord(s.layout, rec)
	if err != nil {
		return err
	}
	query, args, err := sqliteDialect.insert(s.table, s.layout, values)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// FetchAll reads every row ordered by insertion.
func (s *SQLiteStore) FetchAll(ctx context.Context) (*models.Table, error) {
	query, args, err := sqliteDialect.selectAll(s.table, s.layout)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var cells [][]string
	for rows.Next() {
		row := make([]string, len(header))
		dest := make([]any, len(header))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		cells = append(cells, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models.NewTable(header, cells), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
