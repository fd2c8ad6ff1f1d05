package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"jurisnote/models"
	"jurisnote/service"
	"jurisnote/sources"
	"jurisnote/storage"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Sessions     *service.Sessions
	Notebook     *service.Notebook
	Exports      *service.ExportService
	Archive      storage.Storage
	Taxonomy     models.Taxonomy
	Fetcher      *sources.Fetcher
	Templates    *template.Template
	PasswordHash string
	Limiter      *rate.Limiter
	SessionTTL   time.Duration
}

// NewRouter builds the gin engine with HTML pages and the JSON API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Limiter == nil {
		cfg.Limiter = NewAnalyzeLimiter(0)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(PasswordGate(cfg.PasswordHash), Sessions(cfg.SessionTTL))
	r.SetHTMLTemplate(cfg.Templates)

	analysisHandler := NewAnalysisHandler(cfg.Sessions)
	notebookHandler := NewNotebookHandler(cfg.Notebook, cfg.Taxonomy)
	exportHandler := NewExportHandler(cfg.Exports, cfg.Archive)
	sourceHandler := NewSourceHandler(cfg.Fetcher)
	webHandler := NewWebHandler(cfg.Sessions, cfg.Notebook, cfg.Taxonomy, cfg.Fetcher)
	throttle := Throttle(cfg.Limiter)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"store":    cfg.Notebook.Available(),
			"revision": cfg.Notebook.Layout().Revision,
			"sessions": cfg.Sessions.Count(),
		})
	})

	// HTML pages
	r.GET("/", webHandler.Index)
	r.POST("/analyze", throttle, webHandler.Analyze)
	r.POST("/review/save", webHandler.Save)
	r.POST("/review/cancel", webHandler.Cancel)
	r.GET("/notes", webHandler.Notes)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/taxonomy", notebookHandler.GetTaxonomy)

		api.POST("/analyses", throttle, analysisHandler.Analyze)
		api.GET("/analyses/pending", analysisHandler.GetPending)
		api.POST("/analyses/pending/submit", analysisHandler.Submit)
		api.DELETE("/analyses/pending", analysisHandler.Cancel)

		api.GET("/notes", notebookHandler.ListNotes)

		api.POST("/sources/fetch", sourceHandler.Fetch)

		api.GET("/exports/notes.xlsx", exportHandler.Download)
		api.POST("/exports", exportHandler.Archive)
		api.GET("/exports/archive/*path", exportHandler.GetArchived)
		api.DELETE("/exports/archive/*path", exportHandler.DeleteArchived)
	}

	return r
}
