package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jurisnote/service"
	"jurisnote/sources"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps a service error onto status, code and user message.
func respondServiceError(c *gin.Context, err error) {
	respondError(c, errorStatus(err), service.ErrorCode(err), service.UserMessage(err))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyCaseText), errors.Is(err, sources.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoPendingResult):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGeneration), errors.Is(err, service.ErrParse), errors.Is(err, service.ErrFieldAccess):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrStoreConnect), errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
