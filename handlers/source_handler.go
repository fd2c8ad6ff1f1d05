package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jurisnote/sources"
)

// SourceHandler fetches decision text from a URL
type SourceHandler struct {
	fetcher *sources.Fetcher
}

// NewSourceHandler creates a new source handler
func NewSourceHandler(fetcher *sources.Fetcher) *SourceHandler {
	return &SourceHandler{fetcher: fetcher}
}

// FetchSourceRequest represents the request body for fetching a source page
type FetchSourceRequest struct {
	URL string `json:"url" binding:"required"`
}

// Fetch handles POST /api/sources/fetch
func (h *SourceHandler) Fetch(c *gin.Context) {
	var req FetchSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	src, err := h.fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, sources.ErrInvalidURL) {
			respondError(c, http.StatusBadRequest, "INVALID_URL", "올바른 http(s) 주소를 입력해주세요.")
			return
		}
		respondError(c, http.StatusBadGateway, "FETCH_FAILED", err.Error())
		return
	}
	respondOK(c, http.StatusOK, src)
}
