package model

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Field limits from the schema.
const (
	TitleMaxLen   = 200
	PreviewMaxLen = 100

	// DefaultTitle is used when a first append carries no title.
	DefaultTitle = "New Conversation"
)

// ConversationType categorizes a conversation.
type ConversationType string

const (
	TypeSupport   ConversationType = "support"
	TypeTechnical ConversationType = "technical"
	TypeGeneral   ConversationType = "general"
	TypeFeedback  ConversationType = "feedback"
	TypeOther     ConversationType = "other"
)

// IsValid checks whether the type is one of the known values.
func (t ConversationType) IsValid() bool {
	switch t {
	case TypeSupport, TypeTechnical, TypeGeneral, TypeFeedback, TypeOther:
		return true
	}
	return false
}

// ConversationStatus tracks a conversation's lifecycle state.
type ConversationStatus string

const (
	StatusActive    ConversationStatus = "active"
	StatusCompleted ConversationStatus = "completed"
	StatusArchived  ConversationStatus = "archived"
)

// IsValid checks whether the status is one of the known values.
func (s ConversationStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Message is one turn inside a conversation. Messages are embedded in the
// conversation document, ordered by insertion, and never reordered.
// Regeneration replaces Content and Timestamp of an existing entry in place.
type Message struct {
	// ID is a server-assigned UUID, set when the message first enters the
	// store. It is the only message identity scheme.
	ID          string    `bson:"id,omitempty" json:"id,omitempty"`
	Content     string    `bson:"content" json:"content"`
	IsUser      bool      `bson:"isUser" json:"isUser"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Regenerated bool      `bson:"regenerated,omitempty" json:"regenerated,omitempty"`
}

// Conversation is a persisted chat with embedded messages.
// ConversationID is the durable identity key; the storage-assigned _id is
// never exposed to callers.
type Conversation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	UserID         string             `bson:"user_id" json:"user_id"`
	Title          string             `bson:"title" json:"title"`
	Preview        string             `bson:"preview" json:"preview"`
	Type           ConversationType   `bson:"type" json:"type"`
	Status         ConversationStatus `bson:"status" json:"status"`
	MessageCount   int                `bson:"messageCount" json:"messageCount"`
	Duration       float64            `bson:"duration" json:"duration"`
	Messages       []Message          `bson:"messages" json:"messages,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MakePreview truncates text to the preview length, appending an ellipsis
// marker when it was cut. Counts runes, not bytes.
func MakePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewMaxLen {
		return text
	}
	return string(runes[:PreviewMaxLen]) + "..."
}

// NormalizeTitle trims the title and clamps it to the schema limit.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	runes := []rune(title)
	if len(runes) > TitleMaxLen {
		return string(runes[:TitleMaxLen])
	}
	return title
}

// RecomputeDerived recalculates messageCount and duration from the embedded
// messages. Derived fields are never taken from callers; every persistence
// path runs this first.
func (c *Conversation) RecomputeDerived() {
	c.MessageCount = len(c.Messages)
	if len(c.Messages) == 0 {
		c.Duration = 0
		return
	}
	first := c.Messages[0].Timestamp
	last := c.Messages[len(c.Messages)-1].Timestamp
	c.Duration = last.Sub(first).Seconds()
}

// FindMessageIndex locates a message by id. Returns -1 when absent.
func (c *Conversation) FindMessageIndex(messageID string) int {
	for i := range c.Messages {
		if c.Messages[i].ID == messageID && messageID != "" {
			return i
		}
	}
	return -1
}

// Collection implements mongodb.Model.
func (c *Conversation) Collection() string {
	return "conversations"
}

// EnsureIndexes implements mongodb.Model. conversation_id carries the unique
// constraint that makes upsert-by-id safe under concurrency.
func (c *Conversation) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "conversation_id", Value: 1}},
			Options: options.Index().SetName("idx_conversation_id").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}, bson.E{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}, bson.E{Key: "type", Value: 1}},
			Options: options.Index().SetName("idx_user_type"),
		},
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}, bson.E{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_user_status"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
