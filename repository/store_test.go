package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"jurisnote/models"
)

func sampleRecord(t *testing.T, rev models.Revision, title string) models.Record {
	t.Helper()
	rec, err := models.Assemble(rev, models.Draft{
		CaseNo:     "2023다12345",
		Title:      title,
		Date:       "2024-01-10",
		Categories: "민사법>채권법>손해배상 | 민사법>민법총칙>소멸시효",
		Facts:      "원고는 피고에게 금원을 대여하였다.",
		Issues:     "1. 소멸시효 기산점",
		Laws:       "민법 제166조",
		Holdings:   "권리를 행사할 수 있는 때부터 진행한다.",
		Summary:    "소멸시효 기산점에 관한 판례",
		Insight:    "실무상 기산점 판단에 유의",
		URL:        "https://example.com/case",
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return rec
}

// exerciseStore appends two rows and checks they read back in order under the layout's column names.
func exerciseStore(t *testing.T, store Store, layout models.Layout) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll on empty store: %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("expected empty store, got %d rows", empty.Len())
	}

	first := sampleRecord(t, layout.Revision, "대여금 청구")
	second := sampleRecord(t, layout.Revision, "손해배상 청구")
	for _, rec := range []models.Record{first, second} {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	table, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	for i, want := range []models.Record{first, second} {
		got, err := models.DecodeRecord(layout.Revision, table.Rows[i])
		if err != nil {
			t.Fatalf("decode row %d: %v", i, err)
		}
		if got != want {
			t.Errorf("row %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	for _, rev := range models.Revisions() {
		t.Run(string(rev), func(t *testing.T) {
			layout := models.MustLayout(rev)
			exerciseStore(t, NewMemoryStore(layout), layout)
		})
	}
}

func TestMemoryStoreRejectsOtherRevision(t *testing.T) {
	store := NewMemoryStore(models.MustLayout(models.RevisionSummary))
	err := store.Append(context.Background(), sampleRecord(t, models.RevisionDetailed, "x"))
	if err == nil {
		t.Fatal("expected revision mismatch error")
	}
}

func TestSQLiteStore(t *testing.T) {
	for _, rev := range models.Revisions() {
		t.Run(string(rev), func(t *testing.T) {
			layout := models.MustLayout(rev)
			store, err := NewSQLiteStore(context.Background(), ":memory:", "", layout)
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			defer store.Close()
			exerciseStore(t, store, layout)
		})
	}
}

func TestSQLiteStoreEnsureSchemaIsIdempotent(t *testing.T) {
	layout := models.MustLayout(models.RevisionCaseNumber)
	store, err := NewSQLiteStore(context.Background(), ":memory:", "notes", layout)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("JURISNOTE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("JURISNOTE_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	layout := models.MustLayout(models.RevisionCaseNumber)
	table := "case_notes_test"

	store, err := NewPostgresStore(ctx, dsn, table, layout)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer store.Close()
	if _, err := store.db.Exec(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	exerciseStore(t, store, layout)
}

func TestSQLDialectStatements(t *testing.T) {
	layout := models.MustLayout(models.RevisionSummary)

	ddl := postgresDialect.createTable("case_notes", layout)
	for _, want := range []string{`"case_notes"`, "row_no BIGSERIAL PRIMARY KEY", `"AI요약" TEXT NOT NULL DEFAULT ''`} {
		if !strings.Contains(ddl, want) {
			t.Errorf("postgres DDL missing %q:\n%s", want, ddl)
		}
	}

	query, args, err := postgresDialect.insert("case_notes", layout, make([]string, len(layout.Columns)))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !strings.Contains(query, "$8") || len(args) != 8 {
		t.Errorf("postgres insert = %q with %d args", query, len(args))
	}

	query, _, err = sqliteDialect.insert("case_notes", layout, make([]string, len(layout.Columns)))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if strings.Contains(query, "$1") || !strings.Contains(query, "?") {
		t.Errorf("sqlite insert should use ? placeholders: %q", query)
	}

	query, _, err = sqliteDialect.selectAll("case_notes", layout)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !strings.Contains(query, "ORDER BY row_no") {
		t.Errorf("select must keep insertion order: %q", query)
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := quoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("quoteIdent = %s", got)
	}
}

func TestCheckRecordWrongWidth(t *testing.T) {
	layout := models.MustLayout(models.RevisionSummary)
	layout.Columns = layout.Columns[:3]
	_, err := checkRecord(layout, sampleRecord(t, models.RevisionSummary, "x"))
	if err == nil || errors.Is(err, ErrHeaderMismatch) {
		t.Fatalf("expected width error, got %v", err)
	}
}
