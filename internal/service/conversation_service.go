package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
	"chatdesk/internal/pkg/id"
	"chatdesk/internal/repository"
)

// ConversationListStore extends the chat store contract with the listing
// and management operations.
type ConversationListStore interface {
	FindByConversationID(ctx context.Context, conversationID string) (*model.Conversation, error)
	Upsert(ctx context.Context, conversationID string, fields repository.UpsertFields) (*model.Conversation, error)
	FindFiltered(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*model.Conversation, int64, error)
	DeleteByIDs(ctx context.Context, conversationIDs []string) (int64, error)
	UpdateTitle(ctx context.Context, conversationID, title string) (*model.Conversation, error)
}

// CacheInvalidator drops a conversation's cache entry after a mutation.
type CacheInvalidator interface {
	InvalidateConversation(ctx context.Context, conversationID string) error
}

// ConversationCache adds read-through access for single lookups.
type ConversationCache interface {
	CacheInvalidator
	Get(ctx context.Context, conversationID string) (*model.Conversation, error)
	Set(ctx context.Context, conv *model.Conversation) error
}

// ConversationService implements listing, lookup, bulk save, bulk delete
// and title updates.
type ConversationService struct {
	store ConversationListStore
	cache ConversationCache
}

// NewConversationService creates the conversation service. cache may be nil.
func NewConversationService(store ConversationListStore, cache ConversationCache) *ConversationService {
	return &ConversationService{
		store: store,
		cache: cache,
	}
}

// List runs a filtered, sorted, paginated listing for a user. List records
// carry no messages.
func (s *ConversationService) List(ctx context.Context, q model.ListQuery) (*model.ListConversationsResponse, error) {
	if q.UserID == "" {
		return nil, apperr.Validation("user ID is required")
	}

	filter, sort, skip, limit := repository.BuildListQuery(q, time.Now())

	records, total, err := s.store.FindFiltered(ctx, filter, sort, skip, limit)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = repository.DefaultPage
	}

	return &model.ListConversationsResponse{
		Conversations: records,
		TotalCount:    total,
		TotalPages:    (total + limit - 1) / limit,
		CurrentPage:   page,
		HasNextPage:   skip+int64(len(records)) < total,
		HasPrevPage:   page > 1,
	}, nil
}

// Get fetches one conversation with its full message list, read through the
// cache when one is configured.
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	if conversationID == "" {
		return nil, apperr.Validation("conversation ID is required")
	}

	if s.cache != nil {
		if conv, err := s.cache.Get(ctx, conversationID); err != nil {
			log.Warn().Err(err).Str("conversation_id", conversationID).Msg("cache read failed")
		} else if conv != nil {
			return conv, nil
		}
	}

	conv, err := s.store.FindByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation not found")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, conv); err != nil {
			log.Warn().Err(err).Str("conversation_id", conversationID).Msg("cache write failed")
		}
	}

	return conv, nil
}

// Save upserts a conversation wholesale from the dashboard. Messages are
// taken as given (ids assigned where missing), but messageCount and
// duration are recomputed server-side, never trusted from the caller.
func (s *ConversationService) Save(ctx context.Context, req *model.SaveConversationRequest) (*model.Conversation, error) {
	if req.ConversationID == "" {
		return nil, apperr.Validation("conversation ID is required")
	}
	if req.UserID == "" {
		return nil, apperr.Validation("user ID is required")
	}

	messages := make([]model.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.ID == "" {
			m.ID = id.New()
		}
		messages = append(messages, m)
	}

	fields := repository.UpsertFields{
		UserID:   req.UserID,
		Title:    &req.Title,
		Preview:  req.Preview,
		Messages: messages,
	}
	if t := model.ConversationType(req.Type); t.IsValid() {
		fields.Type = &t
	}

	conv, err := s.store.Upsert(ctx, req.ConversationID, fields)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.ConversationID)

	return conv, nil
}

// BulkDelete removes conversations by id set. Ids that match nothing are
// skipped; the count reflects what was actually deleted.
func (s *ConversationService) BulkDelete(ctx context.Context, conversationIDs []string) (*model.BulkDeleteResponse, error) {
	deleted, err := s.store.DeleteByIDs(ctx, conversationIDs)
	if err != nil {
		return nil, err
	}

	for _, cid := range conversationIDs {
		s.invalidate(ctx, cid)
	}

	log.Info().Int64("deleted", deleted).Int("requested", len(conversationIDs)).Msg("conversations deleted")

	return &model.BulkDeleteResponse{
		Message:      fmt.Sprintf("Deleted %d conversations", deleted),
		DeletedCount: deleted,
	}, nil
}

// UpdateTitle renames an existing conversation.
func (s *ConversationService) UpdateTitle(ctx context.Context, req *model.UpdateTitleRequest) (*model.UpdateTitleResponse, error) {
	if req.ConversationID == "" {
		return nil, apperr.Validation("conversation ID is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	conv, err := s.store.UpdateTitle(ctx, req.ConversationID, req.Title)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation not found")
	}

	s.invalidate(ctx, req.ConversationID)

	return &model.UpdateTitleResponse{
		Success: true,
		Conversation: model.UpdatedTitle{
			ConversationID: conv.ConversationID,
			Title:          conv.Title,
			UpdatedAt:      conv.UpdatedAt,
		},
	}, nil
}

func (s *ConversationService) invalidate(ctx context.Context, conversationID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateConversation(ctx, conversationID); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("cache invalidation failed")
	}
}
