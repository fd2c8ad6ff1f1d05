package repository

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"jurisnote/models"
)

// DefaultTable is the SQL table holding case notes.
const DefaultTable = "case_notes"

const rowKeyColumn = "row_no"

type sqlDialect struct {
	name        string
	placeholder sq.PlaceholderFormat
	rowKeyDDL   string
}

var (
	postgresDialect = sqlDialect{name: BackendPostgres, placeholder: sq.Dollar, rowKeyDDL: rowKeyColumn + " BIGSERIAL PRIMARY KEY"}
	sqliteDialect   = sqlDialect{name: BackendSQLite, placeholder: sq.Question, rowKeyDDL: rowKeyColumn + " INTEGER PRIMARY KEY AUTOINCREMENT"}
)

// quoteIdent double-quotes an identifier so Korean column names survive as-is.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quotedColumns(layout models.Layout) []string {
	cols := make([]string, len(layout.Columns))
	for i, c := range layout.Columns {
		cols[i] = quoteIdent(c)
	}
	return cols
}

func (d sqlDialect) createTable(table string, layout models.Layout) string {
	defs := []string{d.rowKeyDDL}
	for _, c := range quotedColumns(layout) {
		defs = append(defs, c+" TEXT NOT NULL DEFAULT ''")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quoteIdent(table), strings.Join(defs, ",\n\t"))
}

func (d sqlDialect) insert(table string, layout models.Layout, values []string) (string, []any, error) {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return sq.Insert(quoteIdent(table)).
		Columns(quotedColumns(layout)...).
		Values(args...).
		PlaceholderFormat(d.placeholder).
		ToSql()
}

func (d sqlDialect) selectAll(table string, layout models.Layout) (string, []any, error) {
	return sq.Select(quotedColumns(layout)...).
		From(quoteIdent(table)).
		OrderBy(rowKeyColumn).
		PlaceholderFormat(d.placeholder).
		ToSql()
}
