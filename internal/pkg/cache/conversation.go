package cache

import (
	"context"

	"chatdesk/internal/model"
)

// ConversationCache caches full conversation records for the
// single-conversation lookup path.
type ConversationCache struct {
	redis *RedisCache
}

// NewConversationCache wraps a redis cache.
func NewConversationCache(redis *RedisCache) *ConversationCache {
	return &ConversationCache{redis: redis}
}

// Get returns the cached conversation, or (nil, nil) on a miss.
func (c *ConversationCache) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := c.redis.Get(ctx, ConversationCacheKey(conversationID), &conv)
	if IsMiss(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// Set stores a conversation under its identity key.
func (c *ConversationCache) Set(ctx context.Context, conv *model.Conversation) error {
	return c.redis.Set(ctx, ConversationCacheKey(conv.ConversationID), conv, ConversationCacheTTL)
}

// InvalidateConversation drops the cache entry for a conversation. Called
// after every mutation.
func (c *ConversationCache) InvalidateConversation(ctx context.Context, conversationID string) error {
	return c.redis.Delete(ctx, ConversationCacheKey(conversationID))
}
