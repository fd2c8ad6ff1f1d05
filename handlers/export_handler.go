package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"jurisnote/service"
	"jurisnote/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles workbook exports
type ExportHandler struct {
	exports *service.ExportService
	archive storage.Storage
}

// NewExportHandler creates a new export handler. archive may be nil.
func NewExportHandler(exports *service.ExportService, archive storage.Storage) *ExportHandler {
	return &ExportHandler{exports: exports, archive: archive}
}

// ExportRequest selects the notes to export
type ExportRequest struct {
	Category string `json:"category"`
	Query    string `json:"q"`
}

// Download handles GET /api/exports/notes.xlsx
func (h *ExportHandler) Download(c *gin.Context) {
	res, err := h.exports.Workbook(c.Request.Context(), service.BrowseRequest{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", res.Filename))
	c.DataFromReader(http.StatusOK, int64(len(res.Data)), xlsxContentType, bytes.NewReader(res.Data), nil)
}

// Archive handles POST /api/exports
func (h *ExportHandler) Archive(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	res, err := h.exports.Archive(c.Request.Context(), service.BrowseRequest{Category: req.Category, Query: req.Query})
	if err != nil {
		if errors.Is(err, service.ErrArchiveDisabled) {
			respondError(c, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "내보내기 보관소가 설정되지 않았습니다.")
			return
		}
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, res)
}

// GetArchived handles GET /api/exports/archive/*path
func (h *ExportHandler) GetArchived(c *gin.Context) {
	if h.archive == nil {
		respondError(c, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "내보내기 보관소가 설정되지 않았습니다.")
		return
	}
	storagePath := strings.TrimPrefix(c.Param("path"), "/")

	reader, err := h.archive.Download(c.Request.Context(), storagePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Export not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", fmt.Sprintf("Failed to download export: %v", err))
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", path.Base(storagePath)))
	c.DataFromReader(http.StatusOK, -1, xlsxContentType, reader, nil)
}

// DeleteArchived handles DELETE /api/exports/archive/*path
func (h *ExportHandler) DeleteArchived(c *gin.Context) {
	if h.archive == nil {
		respondError(c, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "내보내기 보관소가 설정되지 않았습니다.")
		return
	}
	storagePath := strings.TrimPrefix(c.Param("path"), "/")

	if err := h.archive.Delete(c.Request.Context(), storagePath); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", fmt.Sprintf("Failed to delete export: %v", err))
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": storagePath})
}
