package service

import (
	"context"
	"sync"
	"time"

	"jurisnote/models"
)

// PendingReview is an extraction awaiting the user's review.
type PendingReview struct {
	Form       ReviewForm `json:"form"`
	Raw        string     `json:"-"`
	AnalyzedAt time.Time  `json:"analyzed_at"`
}

// Workbench owns the single pending review of one user. Analyze replaces
// it, Submit consumes it and Cancel discards it.
type Workbench struct {
	analysis *AnalysisService
	notebook *Notebook
	now      func() time.Time

	mu      sync.Mutex
	pending *PendingReview
}

// NewWorkbench creates a workbench with nothing pending.
func NewWorkbench(analysis *AnalysisService, notebook *Notebook) *Workbench {
	return &Workbench{analysis: analysis, notebook: notebook, now: time.Now}
}

// Analyze discards any pending review, runs a new analysis and holds its
// result for review. On failure nothing is pending.
func (w *Workbench) Analyze(ctx context.Context, caseText string) (*PendingReview, error) {
	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()

	res, err := w.analysis.Analyze(ctx, AnalyzeRequest{CaseText: caseText})
	if err != nil {
		return nil, err
	}

	now := w.now()
	p := &PendingReview{
		Form:       NewReviewForm(w.analysis.Layout(), *res.Result, now),
		Raw:        res.Raw,
		AnalyzedAt: now,
	}
	w.mu.Lock()
	w.pending = p
	w.mu.Unlock()

	out := *p
	return &out, nil
}

// Pending returns a copy of the pending review, if any.
func (w *Workbench) Pending() (*PendingReview, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return nil, false
	}
	out := *w.pending
	return &out, true
}

// Submit applies the user's edits to the pending review and saves it. The
// review is cleared once the note is stored; when the store is unreachable
// or the write fails it stays pending so the user can retry.
func (w *Workbench) Submit(ctx context.Context, edits ReviewEdits) (models.Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return nil, ErrNoPendingResult
	}

	rec, err := w.notebook.Save(ctx, w.pending.Form.Apply(edits))
	if err != nil {
		return nil, err
	}
	w.pending = nil
	return rec, nil
}

// Cancel discards the pending review.
func (w *Workbench) Cancel() {
	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()
}
