package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
	"chatdesk/internal/pkg/id"
	"chatdesk/internal/repository"
)

// ConversationStore is the persistence contract the chat service needs.
// Implemented by repository.ConversationRepo; faked in tests.
type ConversationStore interface {
	FindByConversationID(ctx context.Context, conversationID string) (*model.Conversation, error)
	Upsert(ctx context.Context, conversationID string, fields repository.UpsertFields) (*model.Conversation, error)
	ReplaceMessages(ctx context.Context, conversationID string, messages []model.Message) error
}

// Completer is the AI completion collaborator: prior turns plus a new user
// message in, generated text or an upstream error out.
type Completer interface {
	Complete(ctx context.Context, message string, history []model.Message) (string, error)
}

// ChatService orchestrates turn appending and regeneration. The store write
// is the only mutation either operation performs, and nothing is persisted
// when the completion call fails.
type ChatService struct {
	store      ConversationStore
	completer  Completer
	invalidate CacheInvalidator
}

// NewChatService creates the chat service. invalidate may be nil when no
// cache is configured.
func NewChatService(store ConversationStore, completer Completer, invalidate CacheInvalidator) *ChatService {
	return &ChatService{
		store:      store,
		completer:  completer,
		invalidate: invalidate,
	}
}

// AppendTurn relays a user message to the completion provider and persists
// the conversation with both new turns appended. A missing conversation id
// means a new conversation: a fresh id is generated and becomes the durable
// identity for every later operation.
func (s *ChatService) AppendTurn(ctx context.Context, req *model.ChatMessageRequest) (*model.ChatMessageResponse, error) {
	if req.Message == "" {
		return nil, apperr.Validation("message is required")
	}
	if req.UserID == "" {
		return nil, apperr.Validation("user ID is required")
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = id.NewConversationID()
	}

	response, err := s.completer.Complete(ctx, req.Message, req.ConversationHistory)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	messages := make([]model.Message, 0, len(req.ConversationHistory)+2)
	for _, m := range req.ConversationHistory {
		if m.ID == "" {
			m.ID = id.New()
		}
		messages = append(messages, m)
	}
	messages = append(messages,
		model.Message{ID: id.New(), Content: req.Message, IsUser: true, Timestamp: now},
		model.Message{ID: id.New(), Content: response, IsUser: false, Timestamp: now},
	)

	conv, err := s.store.Upsert(ctx, conversationID, repository.UpsertFields{
		UserID:   req.UserID,
		Title:    req.Title,
		Preview:  model.MakePreview(req.Message),
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.Store(errors.New("conversation disappeared during upsert"))
	}

	s.invalidateConversation(ctx, conversationID)

	log.Info().
		Str("conversation_id", conversationID).
		Str("user_id", req.UserID).
		Int("message_count", conv.MessageCount).
		Msg("turn appended")

	return &model.ChatMessageResponse{
		Response:       response,
		ConversationID: conversationID,
		Title:          conv.Title,
	}, nil
}

// Regenerate recomputes an AI turn from the user message that preceded it.
// The context sent upstream is truncated strictly before that user message,
// and the target entry is replaced in place: same position, new content and
// timestamp, regenerated flag set. Nothing is written when the upstream
// call fails.
func (s *ChatService) Regenerate(ctx context.Context, req *model.RegenerateRequest) (*model.RegenerateResponse, error) {
	if req.ConversationID == "" {
		return nil, apperr.Validation("conversation ID is required")
	}

	conv, err := s.store.FindByConversationID(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation not found")
	}

	idx := conv.FindMessageIndex(req.MessageID)
	if idx <= 0 {
		// Absent, or the first message: there is no preceding turn to
		// regenerate from.
		return nil, apperr.NotFound("message not found")
	}

	prev := conv.Messages[idx-1]
	if !prev.IsUser {
		return nil, apperr.InvalidState("previous message is not from user")
	}

	history := conv.Messages[:idx-1]

	response, err := s.completer.Complete(ctx, prev.Content, history)
	if err != nil {
		return nil, err
	}

	conv.Messages[idx].Content = response
	conv.Messages[idx].Timestamp = time.Now()
	conv.Messages[idx].Regenerated = true

	if err := s.store.ReplaceMessages(ctx, req.ConversationID, conv.Messages); err != nil {
		return nil, err
	}

	s.invalidateConversation(ctx, req.ConversationID)

	log.Info().
		Str("conversation_id", req.ConversationID).
		Str("message_id", req.MessageID).
		Msg("message regenerated")

	return &model.RegenerateResponse{
		RegeneratedMessage: response,
		MessageID:          conv.Messages[idx].ID,
		Success:            true,
	}, nil
}

func (s *ChatService) invalidateConversation(ctx context.Context, conversationID string) {
	if s.invalidate == nil {
		return
	}
	if err := s.invalidate.InvalidateConversation(ctx, conversationID); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("cache invalidation failed")
	}
}
