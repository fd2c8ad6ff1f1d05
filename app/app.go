// Package app wires configuration into the services shared by the server and
// the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"jurisnote/config"
	"jurisnote/events"
	"jurisnote/generation"
	"jurisnote/models"
	"jurisnote/repository"
	"jurisnote/service"
	"jurisnote/sources"
	"jurisnote/storage"
)

// App holds the wired services. Optional collaborators that failed to start
// are nil (Store, Archive) or a no-op (Publisher).
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Layout    models.Layout
	Taxonomy  models.Taxonomy
	Generator generation.Generator
	Store     repository.Store
	Archive   storage.Storage
	Publisher events.Publisher

	Analysis *service.AnalysisService
	Notebook *service.Notebook
	Exports  *service.ExportService
	Sessions *service.Sessions
	Fetcher  *sources.Fetcher
}

// Build wires every service. Only configuration errors are fatal; an
// unreachable store, archive or broker is logged and left disabled.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	layout, err := models.LayoutFor(cfg.Revision)
	if err != nil {
		return nil, err
	}

	gen, err := generation.New(cfg.Generation())
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Layout:    layout,
		Taxonomy:  models.DefaultTaxonomy(),
		Generator: gen,
		Publisher: events.Noop{},
		Fetcher:   sources.NewFetcher(nil),
	}

	if store, err := OpenStore(ctx, cfg, layout); err != nil {
		logger.Warn("store unavailable, saving and browsing disabled", "backend", cfg.StoreBackend, "error", err)
	} else {
		a.Store = store
		logger.Info("store connected", "backend", cfg.StoreBackend, "revision", layout.Revision)
	}

	if archive, err := storage.NewStorage(ctx, cfg.Storage); err != nil {
		logger.Warn("export archive unavailable", "type", cfg.Storage.Type, "error", err)
	} else {
		a.Archive = archive
	}

	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			logger.Warn("event publisher unavailable", "error", err)
		} else {
			a.Publisher = pub
			logger.Info("publishing saved-note events", "subject", pub.Subject())
		}
	}

	a.Analysis = service.NewAnalysisService(
		service.WithGenerator(gen),
		service.WithTaxonomy(a.Taxonomy),
		service.WithLayout(layout),
		service.WithLogger(logger),
	)

	notebookOpts := []service.NotebookOption{
		service.NotebookWithLayout(layout),
		service.NotebookWithPublisher(a.Publisher),
		service.NotebookWithLogger(logger),
	}
	if a.Store != nil {
		notebookOpts = append(notebookOpts, service.NotebookWithStore(a.Store))
	}
	a.Notebook = service.NewNotebook(notebookOpts...)
	a.Exports = service.NewExportService(a.Notebook, a.Archive, logger)
	a.Sessions = service.NewSessions(a.Analysis, a.Notebook, cfg.SessionTTL)

	return a, nil
}

// OpenStore connects the configured backend.
func OpenStore(ctx context.Context, cfg *config.Config, layout models.Layout) (repository.Store, error) {
	switch cfg.StoreBackend {
	case repository.BackendSheets:
		creds, err := cfg.ServiceAccountJSON()
		if err != nil {
			return nil, err
		}
		return repository.NewSheetsStore(ctx, repository.SheetsConfig{
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			SheetName:       cfg.SheetsSheetName,
			CredentialsJSON: creds,
		}, layout)
	case repository.BackendPostgres:
		store, err := repository.NewPostgresStore(ctx, cfg.DatabaseURL(), cfg.SQLTable, layout)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case repository.BackendSQLite:
		return repository.NewSQLiteStore(ctx, cfg.SQLitePath, cfg.SQLTable, layout)
	case repository.BackendMemory:
		return repository.NewMemoryStore(layout), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Close releases the store and the event connection.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn("close store", "error", err)
		}
	}
	a.Publisher.Close()
}
