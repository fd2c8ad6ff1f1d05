package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"jurisnote/models"
)

// PostgresStore persists case notes in a Postgres table with one TEXT column per layout column.
type PostgresStore struct {
	db     *pgxpool.Pool
	table  string
	layout models.Layout
}

// NewPostgresStore connects and pings the database.
func NewPostgresStore(ctx context.Context, connString, table string, layout models.Layout) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{db: pool, table: table, layout: layout}, nil
}

// EnsureSchema creates the notes table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, postgresDialect.createTable(s.table, s.layout)); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Append inserts one record.
func (s *PostgresStore) Append(ctx context.Context, rec models.Record) error {
	values, err := checkRecord(s.layout, rec)
	if err != nil {
		return err
	}
	query, args, err := postgresDialect.insert(s.table, s.layout, values)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	_, err = s.db.Exec(ctx, query, args...)
	return err
}

// FetchAll reads every row ordered by insertion.
func (s *PostgresStore) FetchAll(ctx context.Context) (*models.Table, error) {
	query, args, err := postgresDialect.selectAll(s.table, s.layout)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var header []string
	for _, fd := range rows.FieldDescriptions() {
		header = append(header, fd.Name)
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

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
