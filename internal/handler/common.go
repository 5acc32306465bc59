package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
)

// writeError maps an error kind to its HTTP status and writes the JSON
// error body. Unknown kinds fall through as 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrUpstream), errors.Is(err, apperr.ErrStore):
		status = http.StatusInternalServerError
	}

	c.JSON(status, model.ErrorResponse{Error: err.Error()})
}

// badRequest writes a 400 with the given message and optional detail.
func badRequest(c *gin.Context, msg string, detail ...string) {
	resp := model.ErrorResponse{Error: msg}
	if len(detail) > 0 {
		resp.Detail = detail[0]
	}
	c.JSON(http.StatusBadRequest, resp)
}
