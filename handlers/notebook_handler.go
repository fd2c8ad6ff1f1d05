package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jurisnote/models"
	"jurisnote/service"
)

// NotebookHandler serves saved notes and the taxonomy
type NotebookHandler struct {
	notebook *service.Notebook
	taxonomy models.Taxonomy
}

// NewNotebookHandler creates a new notebook handler
func NewNotebookHandler(notebook *service.Notebook, taxonomy models.Taxonomy) *NotebookHandler {
	return &NotebookHandler{notebook: notebook, taxonomy: taxonomy}
}

// ListNotes handles GET /api/notes?category=&q=
func (h *NotebookHandler) ListNotes(c *gin.Context) {
	res, err := h.notebook.Browse(c.Request.Context(), service.BrowseRequest{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// GetTaxonomy handles GET /api/taxonomy
func (h *NotebookHandler) GetTaxonomy(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"revision":       h.notebook.Layout().Revision,
		"filter_options": h.taxonomy.FilterOptions(),
		"categories":     h.taxonomy.Entries(),
	})
}
