package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout acknowledges a sign-out. Access tokens are stateless, so the
// client just drops its token; nothing is revoked server-side.
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
