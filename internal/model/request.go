package model

// ChatMessageRequest is the POST /api/chat/message body. Title is a pointer
// so an absent field can be told apart from an explicit empty string: an
// omitted title never overwrites a stored one.
type ChatMessageRequest struct {
	Message             string    `json:"message"`
	ConversationHistory []Message `json:"conversationHistory"`
	ConversationID      string    `json:"conversationId,omitempty"`
	UserID              string    `json:"userId"`
	Title               *string   `json:"title,omitempty"`
}

// RegenerateRequest is the POST /api/chat/regenerate body.
type RegenerateRequest struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	CurrentMessage string `json:"currentMessage,omitempty"`
}

// ListQuery carries the filter/sort/page parameters of the listing endpoint.
// Zero values mean "no filter" / defaults.
type ListQuery struct {
	UserID           string `form:"-"`
	SearchTerm       string `form:"searchTerm"`
	DateRange        string `form:"dateRange"`
	ConversationType string `form:"conversationType"`
	SortBy           string `form:"sortBy"`
	Page             int    `form:"page"`
	Limit            int    `form:"limit"`
}

// SaveConversationRequest is the POST /api/conversations/save body. Messages
// are accepted wholesale; messageCount and duration are recomputed
// server-side regardless of what the caller sends.
type SaveConversationRequest struct {
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Preview        string    `json:"preview"`
	Messages       []Message `json:"messages"`
	Type           string    `json:"type,omitempty"`
}

// UpdateTitleRequest is the POST /api/conversations/update-title body.
type UpdateTitleRequest struct {
	ConversationID string `json:"conversationId"`
	Title          string `json:"title"`
}

// BulkDeleteRequest is the DELETE /api/conversations/bulk body.
type BulkDeleteRequest struct {
	ConversationIDs []string `json:"conversationIds"`
}

// RegisterRequest is the POST /api/auth/register body.
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the PUT /api/auth/profile body.
type UpdateProfileRequest struct {
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
