package model

import "time"

// ErrorResponse is the error body for every endpoint.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ChatMessageResponse is the POST /api/chat/message result.
type ChatMessageResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
	Title          string `json:"title"`
}

// RegenerateResponse is the POST /api/chat/regenerate result.
type RegenerateResponse struct {
	RegeneratedMessage string `json:"regeneratedMessage"`
	MessageID          string `json:"messageId"`
	Success            bool   `json:"success"`
}

// ListConversationsResponse is the paginated listing envelope. Records carry
// no messages; full messages come from the single-conversation endpoint.
type ListConversationsResponse struct {
	Conversations []*Conversation `json:"conversations"`
	TotalCount    int64           `json:"totalCount"`
	TotalPages    int64           `json:"totalPages"`
	CurrentPage   int             `json:"currentPage"`
	HasNextPage   bool            `json:"hasNextPage"`
	HasPrevPage   bool            `json:"hasPrevPage"`
}

// BulkDeleteResponse is the DELETE /api/conversations/bulk result.
type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// UpdatedTitle is the trimmed conversation view in the update-title result.
type UpdatedTitle struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpdateTitleResponse is the POST /api/conversations/update-title result.
type UpdateTitleResponse struct {
	Success      bool         `json:"success"`
	Conversation UpdatedTitle `json:"conversation"`
}

// HealthResponse is the GET /api/health result.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	StoreConnected bool      `json:"storeConnected"`
}

// AuthResponse is the register/login result.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	User      any    `json:"user"`
}
