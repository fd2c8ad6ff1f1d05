package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"jurisnote/models"
	"jurisnote/service"
	"jurisnote/sources"
)

// WebHandler renders the two HTML modes: analyze & register, and browse.
type WebHandler struct {
	sessions *service.Sessions
	notebook *service.Notebook
	taxonomy models.Taxonomy
	fetcher  *sources.Fetcher
}

// NewWebHandler creates a new web handler
func NewWebHandler(sessions *service.Sessions, notebook *service.Notebook, taxonomy models.Taxonomy, fetcher *sources.Fetcher) *WebHandler {
	return &WebHandler{sessions: sessions, notebook: notebook, taxonomy: taxonomy, fetcher: fetcher}
}

type analyzePage struct {
	Title          string
	Error          string
	Warning        string
	Notice         string
	StoreAvailable bool
	CaseText       string
	SourceURL      string
	Pending        *service.PendingReview
}

type notesPage struct {
	Title      string
	Error      string
	Warning    string
	Notice     string
	Categories []string
	Category   string
	Query      string
	Result     *service.BrowseResult
}

func (h *WebHandler) newAnalyzePage(c *gin.Context) analyzePage {
	p := analyzePage{Title: "판례 분석 및 등록", StoreAvailable: h.notebook.Available()}
	if pending, ok := h.sessions.Workbench(sessionID(c)).Pending(); ok {
		p.Pending = pending
	}
	if id := c.Query("saved"); id != "" {
		p.Notice = "저장되었습니다: " + id
	}
	return p
}

// Index handles GET /
func (h *WebHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "analyze.tmpl", h.newAnalyzePage(c))
}

// Analyze handles POST /analyze. A source URL is fetched when no text was pasted.
func (h *WebHandler) Analyze(c *gin.Context) {
	caseText := c.PostForm("case_text")
	sourceURL := strings.TrimSpace(c.PostForm("source_url"))
	ctx := c.Request.Context()

	if strings.TrimSpace(caseText) == "" && sourceURL != "" {
		src, err := h.fetcher.Fetch(ctx, sourceURL)
		if err != nil {
			page := h.newAnalyzePage(c)
			page.SourceURL = sourceURL
			page.Error = "원문을 가져오지 못했습니다: " + err.Error()
			c.HTML(http.StatusOK, "analyze.tmpl", page)
			return
		}
		caseText = src.Text
	}

	wb := h.sessions.Workbench(sessionID(c))
	_, err := wb.Analyze(ctx, caseText)

	page := h.newAnalyzePage(c)
	page.CaseText = caseText
	page.SourceURL = sourceURL
	switch {
	case errors.Is(err, service.ErrEmptyCaseText):
		page.Warning = service.UserMessage(err)
	case err != nil:
		page.Error = service.UserMessage(err)
	}
	c.HTML(http.StatusOK, "analyze.tmpl", page)
}

// editsFromForm collects the review inputs present in the posted form.
func editsFromForm(c *gin.Context) service.ReviewEdits {
	field := func(name string) *string {
		if v, ok := c.GetPostForm(name); ok {
			return &v
		}
		return nil
	}
	return service.ReviewEdits{
		CaseNo:     field(models.KeyCaseNo),
		Title:      field(models.KeyTitle),
		Date:       field(models.KeyDate),
		Categories: field(models.KeyCategories),
		Facts:      field(models.KeyFacts),
		Issues:     field(models.KeyIssues),
		Laws:       field(models.KeyLaws),
		Holdings:   field(models.KeyHoldings),
		Summary:    field(models.KeySummary),
		Insight:    field(models.KeyInsight),
		Memo:       field("memo"),
		URL:        field("url"),
	}
}

// Save handles POST /review/save
func (h *WebHandler) Save(c *gin.Context) {
	edits := editsFromForm(c)
	rec, err := h.sessions.Workbench(sessionID(c)).Submit(c.Request.Context(), edits)
	if err != nil {
		page := h.newAnalyzePage(c)
		page.Error = service.UserMessage(err)
		// The review stays pending; show it with what the user typed.
		if page.Pending != nil {
			page.Pending.Form = page.Pending.Form.With(edits)
		}
		c.HTML(http.StatusOK, "analyze.tmpl", page)
		return
	}
	c.Redirect(http.StatusSeeOther, "/?saved="+url.QueryEscape(rec.Key()))
}

// Cancel handles POST /review/cancel
func (h *WebHandler) Cancel(c *gin.Context) {
	h.sessions.Workbench(sessionID(c)).Cancel()
	c.Redirect(http.StatusSeeOther, "/")
}

// Notes handles GET /notes
func (h *WebHandler) Notes(c *gin.Context) {
	category := c.DefaultQuery("category", models.AllCategories)
	page := notesPage{
		Title:      "나의 판례 노트",
		Categories: h.taxonomy.FilterOptions(),
		Category:   category,
		Query:      c.Query("q"),
	}

	res, err := h.notebook.Browse(c.Request.Context(), service.BrowseRequest{Category: category, Query: page.Query})
	if err != nil {
		page.Error = service.UserMessage(err)
		res = &service.BrowseResult{}
	}
	if !res.Available && err == nil {
		page.Warning = "저장소 연결을 확인해주세요."
	}
	page.Result = res
	c.HTML(http.StatusOK, "notes.tmpl", page)
}
