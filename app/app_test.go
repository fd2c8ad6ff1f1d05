package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"jurisnote/config"
	"jurisnote/models"
	"jurisnote/repository"
	"jurisnote/service"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestBuild_MemoryBackend(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"STORE_BACKEND": "memory", "REVISION": "summary"})

	a, err := Build(context.Background(), cfg, discardLogger)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer a.Close()

	if a.Store == nil || !a.Notebook.Available() {
		t.Fatal("memory store should be available")
	}
	if a.Layout.Revision != models.RevisionSummary || a.Notebook.Layout().Revision != models.RevisionSummary {
		t.Errorf("layout = %s", a.Layout.Revision)
	}
	if a.Archive == nil {
		t.Error("local archive should be configured")
	}
	if a.Generator.Name() != "gemini" {
		t.Errorf("generator = %s", a.Generator.Name())
	}
}

func TestBuild_UnreachableStoreIsDisabled(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"STORE_BACKEND":            "sheets",
		"GCP_SERVICE_ACCOUNT_JSON": "",
		"GCP_SERVICE_ACCOUNT_FILE": "",
	})

	a, err := Build(context.Background(), cfg, discardLogger)
	if err != nil {
		t.Fatalf("Build should tolerate a missing store: %v", err)
	}
	defer a.Close()

	if a.Store != nil || a.Notebook.Available() {
		t.Error("store should be disabled")
	}
	res, err := a.Notebook.Browse(context.Background(), service.BrowseRequest{Category: models.AllCategories})
	if err != nil || res.Available {
		t.Errorf("browse = %+v, %v", res, err)
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"STORE_BACKEND": "sqlite", "SQLITE_PATH": ":memory:"})
	store, err := OpenStore(context.Background(), cfg, models.MustLayout(cfg.Revision))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*repository.SQLiteStore); !ok {
		t.Errorf("store = %T", store)
	}
}
