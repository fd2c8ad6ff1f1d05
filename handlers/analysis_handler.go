package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jurisnote/models"
	"jurisnote/service"
)

// AnalysisHandler handles the analyze-and-register JSON API
type AnalysisHandler struct {
	sessions *service.Sessions
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(sessions *service.Sessions) *AnalysisHandler {
	return &AnalysisHandler{sessions: sessions}
}

// AnalyzeRequest represents the request body for starting an analysis
type AnalyzeRequest struct {
	CaseText string `json:"case_text"`
}

// ReviewView is the JSON form of a pending review
type ReviewView struct {
	Revision      models.Revision     `json:"revision"`
	CaseNo        string              `json:"case_no,omitempty"`
	Title         string              `json:"title"`
	Date          string              `json:"date"`
	DateFallback  bool                `json:"date_fallback"`
	Fields        []service.FormField `json:"fields"`
	Memo          string              `json:"memo"`
	URL           string              `json:"url"`
	EditableID    bool                `json:"editable_id"`
	EditableTitle bool                `json:"editable_title"`
	AnalyzedAt    time.Time           `json:"analyzed_at"`
}

func newReviewView(p *service.PendingReview) ReviewView {
	f := p.Form
	return ReviewView{
		Revision:      f.Revision,
		CaseNo:        f.CaseNo,
		Title:         f.Title,
		Date:          f.DateString(),
		DateFallback:  f.DateFallback,
		Fields:        f.Fields(),
		Memo:          f.Memo,
		URL:           f.URL,
		EditableID:    f.EditableID,
		EditableTitle: f.EditableTitle,
		AnalyzedAt:    p.AnalyzedAt,
	}
}

// Analyze handles POST /api/analyses
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	wb := h.sessions.Workbench(sessionID(c))
	pending, err := wb.Analyze(c.Request.Context(), req.CaseText)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, newReviewView(pending))
}

// GetPending handles GET /api/analyses/pending
func (h *AnalysisHandler) GetPending(c *gin.Context) {
	pending, ok := h.sessions.Workbench(sessionID(c)).Pending()
	if !ok {
		respondServiceError(c, service.ErrNoPendingResult)
		return
	}
	respondOK(c, http.StatusOK, newReviewView(pending))
}

// Submit handles POST /api/analyses/pending/submit
func (h *AnalysisHandler) Submit(c *gin.Context) {
	// Omitted keys keep the extracted values; an empty body saves the review as-is.
	var edits service.ReviewEdits
	if err := c.ShouldBindJSON(&edits); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rec, err := h.sessions.Workbench(sessionID(c)).Submit(c.Request.Context(), edits)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{
		"id":       rec.Key(),
		"revision": rec.Revision(),
		"record":   rec,
	})
}

// Cancel handles DELETE /api/analyses/pending
func (h *AnalysisHandler) Cancel(c *gin.Context) {
	h.sessions.Workbench(sessionID(c)).Cancel()
	respondOK(c, http.StatusOK, gin.H{"cancelled": true})
}
