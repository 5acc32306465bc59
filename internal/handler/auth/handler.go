package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
	"chatdesk/internal/service"
)

// Handler serves the auth endpoints.
type Handler struct {
	authService *service.AuthService
}

// NewHandler creates the auth handler.
func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, model.ErrorResponse{Error: err.Error()})
}

func authResponse(result *service.AuthResult) model.AuthResponse {
	return model.AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      result.User,
	}
}
