package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/model"
	"chatdesk/internal/service"
)

// ConversationHandler serves the conversation management endpoints.
type ConversationHandler struct {
	convService *service.ConversationService
}

// NewConversationHandler creates the conversation handler.
func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

// List returns a user's conversations, filtered, sorted and paginated.
// List records carry no messages.
// @Summary      List conversations
// @Tags         conversations
// @Produce      json
// @Param        userId            path      string  true   "user id"
// @Param        searchTerm        query     string  false  "case-insensitive match on title, preview or message content"
// @Param        dateRange         query     string  false  "today|week|month|quarter|year|all"
// @Param        conversationType  query     string  false  "support|technical|general|feedback|other|all"
// @Param        sortBy            query     string  false  "newest|oldest|duration|messages"
// @Param        page              query     int     false  "1-indexed page"
// @Param        limit             query     int     false  "items per page"
// @Success      200  {object}  model.ListConversationsResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/conversations/{userId} [get]
func (h *ConversationHandler) List(c *gin.Context) {
	var q model.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query parameters", err.Error())
		return
	}
	q.UserID = c.Param("userId")

	resp, err := h.convService.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSingle returns one conversation with its full message list.
// @Summary      Get a conversation
// @Tags         conversations
// @Produce      json
// @Param        conversationId  path      string  true  "conversation id"
// @Success      200  {object}  model.Conversation
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/conversations/single/{conversationId} [get]
func (h *ConversationHandler) GetSingle(c *gin.Context) {
	conv, err := h.convService.Get(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// BulkDelete removes conversations by id set.
// @Summary      Delete conversations
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      model.BulkDeleteRequest  true  "conversation ids"
// @Success      200  {object}  model.BulkDeleteResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /api/conversations/bulk [delete]
func (h *ConversationHandler) BulkDelete(c *gin.Context) {
	var req model.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ConversationIDs == nil {
		badRequest(c, "Invalid conversation IDs")
		return
	}

	resp, err := h.convService.BulkDelete(c.Request.Context(), req.ConversationIDs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Save upserts a conversation wholesale from the dashboard.
// @Summary      Save a conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      model.SaveConversationRequest  true  "conversation"
// @Success      200  {object}  model.Conversation
// @Failure      400  {object}  model.ErrorResponse
// @Router       /api/conversations/save [post]
func (h *ConversationHandler) Save(c *gin.Context) {
	var req model.SaveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}

	conv, err := h.convService.Save(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// UpdateTitle renames a conversation.
// @Summary      Update a conversation title
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      model.UpdateTitleRequest  true  "new title"
// @Success      200  {object}  model.UpdateTitleResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/conversations/update-title [post]
func (h *ConversationHandler) UpdateTitle(c *gin.Context) {
	var req model.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.convService.UpdateTitle(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
