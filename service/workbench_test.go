package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"jurisnote/models"
	"jurisnote/repository"
)

func newTestWorkbench(gen *fakeGenerator, store repository.Store, rev models.Revision) *Workbench {
	layout := models.MustLayout(rev)
	nb := NewNotebook(NotebookWithStore(store), NotebookWithLayout(layout), NotebookWithLogger(discardLogger))
	wb := NewWorkbench(newTestAnalysis(gen, rev), nb)
	wb.now = func() time.Time { return fixedNow }
	return wb
}

func TestWorkbench_AnalyzeSubmit(t *testing.T) {
	layout := models.MustLayout(models.RevisionCaseNumber)
	store := repository.NewMemoryStore(layout)
	wb := newTestWorkbench(&fakeGenerator{response: caseNumberResponse}, store, models.RevisionCaseNumber)

	p, err := wb.Analyze(context.Background(), "판결문")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Form.CaseNo != "2022다1234" || !p.Form.EditableID {
		t.Errorf("unexpected form %+v", p.Form)
	}

	draft := p.Form.Draft()
	draft.CaseNo = "2022다5678"
	draft.Memo = "다시 볼 것"
	rec, err := wb.Submit(context.Background(), EditsFromDraft(draft))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Key() != "2022다5678" {
		t.Errorf("key = %q, want edited case number", rec.Key())
	}
	if _, ok := wb.Pending(); ok {
		t.Error("submit should clear the pending review")
	}

	if _, err := wb.Submit(context.Background(), EditsFromDraft(draft)); !errors.Is(err, ErrNoPendingResult) {
		t.Errorf("second submit = %v, want ErrNoPendingResult", err)
	}

	table, _ := store.FetchAll(context.Background())
	if table.Len() != 1 || table.Rows[0].Get(models.ColumnMemo) != "다시 볼 것" {
		t.Errorf("stored rows = %+v", table.Rows)
	}
}

func TestWorkbench_FailedAnalysisLeavesNothingPending(t *testing.T) {
	gen := &fakeGenerator{response: caseNumberResponse}
	wb := newTestWorkbench(gen, repository.NewMemoryStore(models.MustLayout(models.RevisionCaseNumber)), models.RevisionCaseNumber)

	if _, err := wb.Analyze(context.Background(), "첫 판결"); err != nil {
		t.Fatal(err)
	}
	gen.response = "not json"
	if _, err := wb.Analyze(context.Background(), "둘째 판결"); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if _, ok := wb.Pending(); ok {
		t.Error("a failed analysis must discard the previous pending review")
	}
}

func TestWorkbench_Cancel(t *testing.T) {
	wb := newTestWorkbench(&fakeGenerator{response: caseNumberResponse}, repository.NewMemoryStore(models.MustLayout(models.RevisionCaseNumber)), models.RevisionCaseNumber)
	if _, err := wb.Analyze(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}
	wb.Cancel()
	if _, ok := wb.Pending(); ok {
		t.Error("cancel should clear the pending review")
	}
}

func TestWorkbench_WriteFailureKeepsPending(t *testing.T) {
	layout := models.MustLayout(models.RevisionDetailed)
	store := &flakyStore{MemoryStore: repository.NewMemoryStore(layout), failing: true}
	wb := newTestWorkbench(&fakeGenerator{response: detailedResponse}, store, models.RevisionDetailed)

	_, err := wb.Analyze(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wb.Submit(context.Background(), ReviewEdits{}); !errors.Is(err, ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	if _, ok := wb.Pending(); !ok {
		t.Fatal("pending review should survive a failed write")
	}

	store.failing = false
	if _, err := wb.Submit(context.Background(), ReviewEdits{}); err != nil {
		t.Fatalf("retry: %v", err)
	}
}
