package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
)

// ConversationRepo owns the conversations collection. Lookups that find
// nothing return (nil, nil); driver failures come back wrapped as store
// errors.
type ConversationRepo struct {
	collection *mongo.Collection
}

// NewConversationRepo creates the repository.
func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	return &ConversationRepo{
		collection: db.Collection("conversations"),
	}
}

// UpsertFields are the mutable fields written by an upsert. Nil Title and
// Type mean "leave as is" on update and "use the default" on insert.
// messageCount and duration are always recomputed here from Messages; they
// are never caller-supplied.
type UpsertFields struct {
	UserID   string
	Title    *string
	Type     *model.ConversationType
	Preview  string
	Messages []model.Message
}

// FindByConversationID fetches a full conversation by its identity key.
func (r *ConversationRepo) FindByConversationID(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.collection.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &conv, nil
}

// Upsert is the only creation/update path for conversations: insert if the
// conversation_id is absent, else replace the mutable fields. The two
// branches are explicit so insert-only defaults (createdAt, type, status,
// title fallback) cannot leak into updates. A duplicate-key failure on the
// insert branch means another request created the record first; the write
// is retried as an update so concurrent first-appends converge.
func (r *ConversationRepo) Upsert(ctx context.Context, conversationID string, fields UpsertFields) (*model.Conversation, error) {
	existing, err := r.FindByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		conv, err := r.insert(ctx, conversationID, fields)
		if err == nil || !errors.Is(err, errDuplicate) {
			return conv, err
		}
		// Lost the insert race, fall through to the update branch.
	}

	return r.update(ctx, conversationID, fields)
}

var errDuplicate = errors.New("duplicate conversation_id")

func (r *ConversationRepo) insert(ctx context.Context, conversationID string, fields UpsertFields) (*model.Conversation, error) {
	now := time.Now()

	conv := &model.Conversation{
		ConversationID: conversationID,
		UserID:         fields.UserID,
		Title:          model.DefaultTitle,
		Preview:        fields.Preview,
		Type:           model.TypeGeneral,
		Status:         model.StatusCompleted,
		Messages:       fields.Messages,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if fields.Title != nil {
		conv.Title = model.NormalizeTitle(*fields.Title)
	}
	if fields.Type != nil {
		conv.Type = *fields.Type
	}
	conv.RecomputeDerived()

	result, err := r.collection.InsertOne(ctx, conv)
	if mongo.IsDuplicateKeyError(err) {
		return nil, errDuplicate
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		conv.ID = oid
	}
	return conv, nil
}

func (r *ConversationRepo) update(ctx context.Context, conversationID string, fields UpsertFields) (*model.Conversation, error) {
	tmp := model.Conversation{Messages: fields.Messages}
	tmp.RecomputeDerived()

	set := bson.M{
		"user_id":      fields.UserID,
		"preview":      fields.Preview,
		"messages":     fields.Messages,
		"messageCount": tmp.MessageCount,
		"duration":     tmp.Duration,
		"updatedAt":    time.Now(),
	}
	if fields.Title != nil {
		set["title"] = model.NormalizeTitle(*fields.Title)
	}
	if fields.Type != nil {
		set["type"] = *fields.Type
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var conv model.Conversation
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"conversation_id": conversationID}, bson.M{"$set": set}, opts).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &conv, nil
}

// ReplaceMessages rewrites the embedded message list, recomputing the
// derived fields. Used by regeneration, which edits one entry in place.
func (r *ConversationRepo) ReplaceMessages(ctx context.Context, conversationID string, messages []model.Message) error {
	tmp := model.Conversation{Messages: messages}
	tmp.RecomputeDerived()

	update := bson.M{"$set": bson.M{
		"messages":     messages,
		"messageCount": tmp.MessageCount,
		"duration":     tmp.Duration,
		"updatedAt":    time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"conversation_id": conversationID}, update)
	if err != nil {
		return apperr.Store(err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("conversation not found")
	}
	return nil
}

// FindFiltered runs a listing query, returning the matching page and the
// total match count. Messages are projected out of list results.
func (r *ConversationRepo) FindFiltered(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*model.Conversation, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Store(err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"messages": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Store(err)
	}
	defer cursor.Close(ctx)

	convs := make([]*model.Conversation, 0, limit)
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, 0, apperr.Store(err)
	}

	return convs, total, nil
}

// DeleteByIDs removes conversations by identity key, embedded messages
// included. Ids that match nothing are skipped, not errors.
func (r *ConversationRepo) DeleteByIDs(ctx context.Context, conversationIDs []string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"conversation_id": bson.M{"$in": conversationIDs}})
	if err != nil {
		return 0, apperr.Store(err)
	}
	return result.DeletedCount, nil
}

// UpdateTitle sets the title of an existing conversation. Returns (nil, nil)
// when the conversation does not exist.
func (r *ConversationRepo) UpdateTitle(ctx context.Context, conversationID, title string) (*model.Conversation, error) {
	update := bson.M{"$set": bson.M{
		"title":     model.NormalizeTitle(title),
		"updatedAt": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var conv model.Conversation
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"conversation_id": conversationID}, update, opts).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &conv, nil
}
