package service

import (
	"context"
	"errors"
	"testing"

	"jurisnote/events"
	"jurisnote/models"
	"jurisnote/repository"
)

type recordingPublisher struct {
	events []events.NoteSaved
	err    error
}

func (p *recordingPublisher) PublishNoteSaved(_ context.Context, ev events.NoteSaved) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() {}

func TestNotebook_SaveAndBrowse_EmptyMemoAndURL(t *testing.T) {
	layout := models.MustLayout(models.RevisionDetailed)
	pub := &recordingPublisher{}
	nb := NewNotebook(
		NotebookWithStore(repository.NewMemoryStore(layout)),
		NotebookWithLayout(layout),
		NotebookWithPublisher(pub),
		NotebookWithLogger(discardLogger),
	)

	rec, err := nb.Save(context.Background(), models.Draft{
		Title: "사기", Date: "2024-01-10", Categories: "형사법>형법각칙>사기", Facts: "f",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	values := rec.Values()
	if values[9] != "" || values[10] != "" {
		t.Errorf("memo and URL should persist as empty strings: %v", values)
	}

	res, err := nb.Browse(context.Background(), BrowseRequest{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if !res.Available || res.Total != 1 || len(res.Cards) != 1 {
		t.Fatalf("unexpected browse result %+v", res)
	}
	if c := res.Cards[0]; c.Memo != "" || c.URL != "" {
		t.Errorf("card should carry no memo or link: %+v", c)
	}

	if len(pub.events) != 1 || pub.events[0].ID != "2024-01-10_사기" {
		t.Errorf("saved-note event = %+v", pub.events)
	}
}

func TestNotebook_PublishFailureDoesNotFailSave(t *testing.T) {
	layout := models.MustLayout(models.RevisionSummary)
	nb := NewNotebook(
		NotebookWithStore(repository.NewMemoryStore(layout)),
		NotebookWithLayout(layout),
		NotebookWithPublisher(&recordingPublisher{err: errors.New("nats down")}),
		NotebookWithLogger(discardLogger),
	)
	if _, err := nb.Save(context.Background(), models.Draft{Title: "t", Date: "2024-01-10"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestNotebook_NoStore(t *testing.T) {
	nb := NewNotebook(NotebookWithLogger(discardLogger))
	if nb.Available() {
		t.Fatal("notebook without store should be unavailable")
	}

	res, err := nb.Browse(context.Background(), BrowseRequest{Category: "형사법"})
	if err != nil {
		t.Fatalf("Browse without store must not fail: %v", err)
	}
	if res.Available || len(res.Cards) != 0 {
		t.Errorf("expected empty unavailable result, got %+v", res)
	}

	if _, err := nb.Save(context.Background(), models.Draft{}); !errors.Is(err, ErrStoreConnect) {
		t.Errorf("Save without store = %v, want ErrStoreConnect", err)
	}
}

func TestNotebook_StoreErrors(t *testing.T) {
	layout := models.MustLayout(models.RevisionCaseNumber)
	store := &flakyStore{MemoryStore: repository.NewMemoryStore(layout), failing: true, fetchErr: errors.New("timeout")}
	nb := NewNotebook(NotebookWithStore(store), NotebookWithLayout(layout), NotebookWithLogger(discardLogger))

	if _, err := nb.Save(context.Background(), models.Draft{CaseNo: "1"}); !errors.Is(err, ErrStoreWrite) {
		t.Errorf("Save = %v, want ErrStoreWrite", err)
	}
	if _, err := nb.Browse(context.Background(), BrowseRequest{}); !errors.Is(err, ErrStoreConnect) {
		t.Errorf("Browse = %v, want ErrStoreConnect", err)
	}
}
