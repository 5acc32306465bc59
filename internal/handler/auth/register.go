package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/model"
)

// Register creates an account and signs the user in.
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.RegisterRequest  true  "registration"
// @Success      201      {object}  model.AuthResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request body", Detail: err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse(result))
}
