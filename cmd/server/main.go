package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"jurisnote/app"
	"jurisnote/config"
	"jurisnote/handlers"
	"jurisnote/logging"
	"jurisnote/web"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// Load .env from the working directory or the project root
	config.LoadDotEnv(slog.Default())

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	a, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	tmpl, err := web.Templates()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	r := handlers.NewRouter(handlers.RouterConfig{
		Sessions:     a.Sessions,
		Notebook:     a.Notebook,
		Exports:      a.Exports,
		Archive:      a.Archive,
		Taxonomy:     a.Taxonomy,
		Fetcher:      a.Fetcher,
		Templates:    tmpl,
		PasswordHash: cfg.AccessPasswordHash(),
		Limiter:      handlers.NewAnalyzeLimiter(cfg.AnalyzePerMinute),
		SessionTTL:   cfg.SessionTTL,
	})

	logger.Info("server starting",
		"port", cfg.Port,
		"revision", a.Layout.Revision,
		"store", cfg.StoreBackend,
		"store_available", a.Notebook.Available(),
		"provider", a.Generator.Name(),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
