package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/model"
)

// Login verifies credentials and issues an access token.
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "credentials"
// @Success      200      {object}  model.AuthResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request body", Detail: err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse(result))
}
