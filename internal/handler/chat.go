package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/model"
	"chatdesk/internal/service"
)

// ChatHandler serves the chat endpoints.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates the chat handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Message relays a user message to the AI provider and appends the turn.
// @Summary      Send a chat message
// @Description  Relays the message to the completion provider and persists the conversation with both new turns appended
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChatMessageRequest  true  "chat message"
// @Success      200      {object}  model.ChatMessageResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/chat/message [post]
func (h *ChatHandler) Message(c *gin.Context) {
	var req model.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.chatService.AppendTurn(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Regenerate recomputes an AI turn in place.
// @Summary      Regenerate an AI response
// @Description  Recomputes the target AI message from the preceding user message and replaces it in place
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.RegenerateRequest  true  "regenerate request"
// @Success      200      {object}  model.RegenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/chat/regenerate [post]
func (h *ChatHandler) Regenerate(c *gin.Context) {
	var req model.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.chatService.Regenerate(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
