package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jurisnote/events"
	"jurisnote/models"
	"jurisnote/repository"
)

// Notebook saves reviewed drafts and lists saved notes.
type Notebook struct {
	store     repository.Store
	layout    models.Layout
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NotebookOption is a functional option for Notebook
type NotebookOption func(*Notebook)

// NotebookWithStore sets the backing store. A nil store means the store could
// not be opened; saves then fail and browsing shows an empty notebook.
func NotebookWithStore(s repository.Store) NotebookOption {
	return func(n *Notebook) {
		n.store = s
	}
}

// NotebookWithLayout sets the record revision
func NotebookWithLayout(l models.Layout) NotebookOption {
	return func(n *Notebook) {
		n.layout = l
	}
}

// NotebookWithPublisher sets the saved-note event publisher
func NotebookWithPublisher(p events.Publisher) NotebookOption {
	return func(n *Notebook) {
		n.publisher = p
	}
}

// NotebookWithLogger sets the logger
func NotebookWithLogger(l *slog.Logger) NotebookOption {
	return func(n *Notebook) {
		n.logger = l
	}
}

// NewNotebook creates a new notebook
func NewNotebook(opts ...NotebookOption) *Notebook {
	n := &Notebook{
		layout:    models.MustLayout(models.RevisionCaseNumber),
		publisher: events.Noop{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	return n
}

// Available reports whether a store is connected.
func (n *Notebook) Available() bool {
	return n.store != nil
}

// Layout returns the record layout.
func (n *Notebook) Layout() models.Layout {
	return n.layout
}

// Save assembles a draft into a record and appends it.
func (n *Notebook) Save(ctx context.Context, draft models.Draft) (models.Record, error) {
	if n.store == nil {
		return nil, ErrStoreConnect
	}
	rec, err := models.Assemble(n.layout.Revision, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	if err := n.store.Append(ctx, rec); err != nil {
		n.logger.Error("append failed", "id", rec.Key(), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	n.logger.Info("note saved", "id", rec.Key(), "revision", n.layout.Revision)

	ev := events.NoteSaved{
		Revision:   string(n.layout.Revision),
		ID:         rec.Key(),
		Title:      draft.Title,
		Date:       draft.Date,
		Categories: draft.Categories,
		URL:        draft.URL,
		SavedAt:    n.now(),
	}
	if err := n.publisher.PublishNoteSaved(ctx, ev); err != nil {
		n.logger.Warn("saved-note event not published", "id", rec.Key(), "error", err)
	}
	return rec, nil
}

// BrowseRequest selects which saved notes to show
type BrowseRequest struct {
	Category string
	Query    string
}

// BrowseResult holds the cards that survived filtering
type BrowseResult struct {
	Available bool   `json:"available"`
	Total     int    `json:"total"`
	Cards     []Card `json:"cards"`
}

// Browse fetches every row and filters it in memory. Without a store it
// returns an empty, unavailable result rather than an error.
func (n *Notebook) Browse(ctx context.Context, req BrowseRequest) (*BrowseResult, error) {
	if n.store == nil {
		return &BrowseResult{Cards: []Card{}}, nil
	}
	table, err := n.store.FetchAll(ctx)
	if err != nil {
		n.logger.Error("fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreConnect, err)
	}

	rows := FilterRows(n.layout, table.Rows, req.Category, req.Query)
	cards := make([]Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, BuildCard(n.layout, row))
	}
	return &BrowseResult{Available: true, Total: table.Len(), Cards: cards}, nil
}

// Table returns the raw stored table, for exports.
func (n *Notebook) Table(ctx context.Context) (*models.Table, error) {
	if n.store == nil {
		return nil, ErrStoreConnect
	}
	table, err := n.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreConnect, err)
	}
	return table, nil
}
