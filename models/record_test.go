package models

import (
	"reflect"
	"testing"
)

func sampleDraft() Draft {
	return Draft{
		CaseNo:     "2023도12345",
		Title:      "사기",
		Date:       "2024-01-10",
		Categories: "형사법>형법각칙>사기",
		Facts:      "피고인은 피해자를 기망하여...",
		Issues:     "1. 기망행위 여부 2. 편취의 범의",
		Laws:       "형법 제347조",
		Holdings:   "상고를 기각한다.",
		Summary:    "기망행위에 관한 판단",
		Insight:    "실무상 주의",
		Memo:       "",
		URL:        "",
	}
}

func TestLayouts_ValuesMatchColumns(t *testing.T) {
	for _, rev := range Revisions() {
		layout, err := LayoutFor(rev)
		if err != nil {
			t.Fatalf("LayoutFor(%s): %v", rev, err)
		}
		rec, err := Assemble(rev, sampleDraft())
		if err != nil {
			t.Fatalf("Assemble(%s): %v", rev, err)
		}
		if got, want := len(rec.Values()), len(layout.Columns); got != want {
			t.Errorf("%s: %d values for %d columns", rev, got, want)
		}
		if rec.Revision() != rev {
			t.Errorf("%s: record reports revision %s", rev, rec.Revision())
		}
		for _, col := range layout.SearchColumns {
			if !layout.HasColumn(col) {
				t.Errorf("%s: search column %s is not persisted", rev, col)
			}
		}
	}
}

func TestLayouts_ColumnCounts(t *testing.T) {
	if n := len(MustLayout(RevisionSummary).Columns); n != 8 {
		t.Errorf("summary layout has %d columns, want 8", n)
	}
	if n := len(MustLayout(RevisionDetailed).Columns); n != 11 {
		t.Errorf("detailed layout has %d columns, want 11", n)
	}
	if n := len(MustLayout(RevisionCaseNumber).Columns); n != 11 {
		t.Errorf("case-number layout has %d columns, want 11", n)
	}
}

func TestAssemble_RoundTripThroughNamedColumns(t *testing.T) {
	for _, rev := range Revisions() {
		t.Run(string(rev), func(t *testing.T) {
			layout := MustLayout(rev)
			rec, err := Assemble(rev, sampleDraft())
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			table := NewTable(layout.Columns, [][]string{rec.Values()})
			if table.Len() != 1 {
				t.Fatalf("expected 1 row, got %d", table.Len())
			}
			back, err := DecodeRecord(rev, table.Rows[0])
			if err != nil {
				t.Fatalf("DecodeRecord: %v", err)
			}
			if !reflect.DeepEqual(back, rec) {
				t.Errorf("round trip mismatch\n got  %#v\n want %#v", back, rec)
			}
			for i, col := range layout.Columns {
				if table.Rows[0].Get(col) != rec.Values()[i] {
					t.Errorf("column %s = %q, want %q", col, table.Rows[0].Get(col), rec.Values()[i])
				}
			}
		})
	}
}

func TestAssemble_Identifiers(t *testing.T) {
	d := sampleDraft()

	rec, _ := Assemble(RevisionDetailed, d)
	if rec.Key() != "2024-01-10_사기" {
		t.Errorf("detailed key = %q", rec.Key())
	}
	rec, _ = Assemble(RevisionSummary, d)
	if rec.Key() != "2024-01-10_사기" {
		t.Errorf("summary key = %q", rec.Key())
	}
	rec, _ = Assemble(RevisionCaseNumber, d)
	if rec.Key() != "2023도12345" {
		t.Errorf("case-number key = %q", rec.Key())
	}
}

func TestAssemble_UnknownRevision(t *testing.T) {
	if _, err := Assemble(Revision("v9"), Draft{}); err == nil {
		t.Fatal("expected error for unknown revision")
	}
	if _, err := ParseRevision("v9"); err == nil {
		t.Fatal("expected ParseRevision error")
	}
}

func TestLayout_CheckHeader(t *testing.T) {
	layout := MustLayout(RevisionDetailed)
	if err := layout.CheckHeader(layout.Columns); err != nil {
		t.Errorf("expected matching header, got %v", err)
	}
	if err := layout.CheckHeader(MustLayout(RevisionSummary).Columns); err == nil {
		t.Error("expected mismatch between detailed and summary headers")
	}
}

func TestLayoutFor_ReturnsCopies(t *testing.T) {
	l := MustLayout(RevisionDetailed)
	l.Columns[0] = "mutated"
	if MustLayout(RevisionDetailed).Columns[0] != ColumnID {
		t.Fatal("layout columns were mutated through a returned copy")
	}
}
