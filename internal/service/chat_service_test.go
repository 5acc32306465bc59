package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
	"chatdesk/internal/pkg/id"
	"chatdesk/internal/repository"
)

type fakeStore struct {
	conversations map[string]*model.Conversation

	upsertCalls  int
	lastUpsertID string
	lastUpsert   repository.UpsertFields
	replaceCalls int
	lastMessages []model.Message
	findErr      error
	upsertErr    error
	replaceErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{conversations: make(map[string]*model.Conversation)}
}

func (f *fakeStore) FindByConversationID(_ context.Context, conversationID string) (*model.Conversation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.conversations[conversationID], nil
}

func (f *fakeStore) Upsert(_ context.Context, conversationID string, fields repository.UpsertFields) (*model.Conversation, error) {
	f.upsertCalls++
	f.lastUpsertID = conversationID
	f.lastUpsert = fields
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}

	conv, ok := f.conversations[conversationID]
	if !ok {
		conv = &model.Conversation{
			ConversationID: conversationID,
			UserID:         fields.UserID,
			Title:          model.DefaultTitle,
			Type:           model.TypeGeneral,
			Status:         model.StatusCompleted,
			CreatedAt:      time.Now(),
		}
		f.conversations[conversationID] = conv
	}
	if fields.Title != nil {
		conv.Title = model.NormalizeTitle(*fields.Title)
	}
	if fields.Type != nil {
		conv.Type = *fields.Type
	}
	conv.Preview = fields.Preview
	conv.Messages = fields.Messages
	conv.UpdatedAt = time.Now()
	conv.RecomputeDerived()
	return conv, nil
}

func (f *fakeStore) ReplaceMessages(_ context.Context, conversationID string, messages []model.Message) error {
	f.replaceCalls++
	f.lastMessages = messages
	if f.replaceErr != nil {
		return f.replaceErr
	}
	conv, ok := f.conversations[conversationID]
	if !ok {
		return apperr.NotFound("conversation not found")
	}
	conv.Messages = messages
	return nil
}

type fakeCompleter struct {
	response    string
	err         error
	calls       int
	lastMessage string
	lastHistory []model.Message
}

func (f *fakeCompleter) Complete(_ context.Context, message string, history []model.Message) (string, error) {
	f.calls++
	f.lastMessage = message
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestChatServiceAppendTurn(t *testing.T) {
	ctx := context.Background()

	Convey("AppendTurn relays and persists a turn", t, func() {
		store := newFakeStore()
		completer := &fakeCompleter{response: "Hi there!"}
		svc := NewChatService(store, completer, nil)

		Convey("an empty message is rejected before any work", func() {
			_, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{UserID: "u1"})
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
			So(completer.calls, ShouldEqual, 0)
			So(store.upsertCalls, ShouldEqual, 0)
		})

		Convey("a missing user id is rejected", func() {
			_, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{Message: "hello"})
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
		})

		Convey("a first append creates a conversation with a fresh id", func() {
			resp, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{
				Message: "hello",
				UserID:  "u1",
			})
			So(err, ShouldBeNil)
			So(id.IsConversationID(resp.ConversationID), ShouldBeTrue)
			So(resp.Response, ShouldEqual, "Hi there!")
			So(resp.Title, ShouldEqual, model.DefaultTitle)

			Convey("exactly two messages are persisted, user then assistant", func() {
				So(store.upsertCalls, ShouldEqual, 1)
				msgs := store.lastUpsert.Messages
				So(len(msgs), ShouldEqual, 2)
				So(msgs[0].IsUser, ShouldBeTrue)
				So(msgs[0].Content, ShouldEqual, "hello")
				So(msgs[1].IsUser, ShouldBeFalse)
				So(msgs[1].Content, ShouldEqual, "Hi there!")
				So(id.IsValid(msgs[0].ID), ShouldBeTrue)
				So(id.IsValid(msgs[1].ID), ShouldBeTrue)
				So(msgs[0].ID, ShouldNotEqual, msgs[1].ID)
			})
		})

		Convey("a supplied conversation id is reused as-is", func() {
			resp, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{
				Message:        "again",
				UserID:         "u1",
				ConversationID: "conv-1700000000000-ab12cd34",
			})
			So(err, ShouldBeNil)
			So(resp.ConversationID, ShouldEqual, "conv-1700000000000-ab12cd34")
			So(store.lastUpsertID, ShouldEqual, "conv-1700000000000-ab12cd34")
		})

		Convey("history is preserved and missing message ids are assigned", func() {
			history := []model.Message{
				{ID: "m1", Content: "earlier", IsUser: true},
				{Content: "earlier reply", IsUser: false},
			}
			_, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{
				Message:             "next",
				UserID:              "u1",
				ConversationHistory: history,
			})
			So(err, ShouldBeNil)

			msgs := store.lastUpsert.Messages
			So(len(msgs), ShouldEqual, 4)
			So(msgs[0].ID, ShouldEqual, "m1")
			So(id.IsValid(msgs[1].ID), ShouldBeTrue)
			So(completer.lastMessage, ShouldEqual, "next")
			So(len(completer.lastHistory), ShouldEqual, 2)
		})

		Convey("the title pointer is passed through untouched", func() {
			title := "Billing question"
			_, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{
				Message: "hi",
				UserID:  "u1",
				Title:   &title,
			})
			So(err, ShouldBeNil)
			So(store.lastUpsert.Title, ShouldNotBeNil)
			So(*store.lastUpsert.Title, ShouldEqual, "Billing question")

			_, err = svc.AppendTurn(ctx, &model.ChatMessageRequest{
				Message: "hi again",
				UserID:  "u1",
			})
			So(err, ShouldBeNil)
			So(store.lastUpsert.Title, ShouldBeNil)
		})

		Convey("the preview comes from the user message", func() {
			_, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{Message: "hello", UserID: "u1"})
			So(err, ShouldBeNil)
			So(store.lastUpsert.Preview, ShouldEqual, "hello")
		})

		Convey("an upstream failure persists nothing", func() {
			completer.err = apperr.Upstream(errors.New("failed to get response from AI service"))
			_, err := svc.AppendTurn(ctx, &model.ChatMessageRequest{Message: "hello", UserID: "u1"})
			So(errors.Is(err, apperr.ErrUpstream), ShouldBeTrue)
			So(store.upsertCalls, ShouldEqual, 0)
		})
	})
}

func TestChatServiceRegenerate(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	seed := func(store *fakeStore) *model.Conversation {
		conv := &model.Conversation{
			ConversationID: "conv-1700000000000-ab12cd34",
			UserID:         "u1",
			Title:          "Chat",
			Messages: []model.Message{
				{ID: "m1", Content: "first question", IsUser: true, Timestamp: base},
				{ID: "m2", Content: "first answer", IsUser: false, Timestamp: base.Add(2 * time.Second)},
				{ID: "m3", Content: "second question", IsUser: true, Timestamp: base.Add(10 * time.Second)},
				{ID: "m4", Content: "second answer", IsUser: false, Timestamp: base.Add(12 * time.Second)},
			},
		}
		conv.RecomputeDerived()
		store.conversations[conv.ConversationID] = conv
		return conv
	}

	Convey("Regenerate replaces an AI turn in place", t, func() {
		store := newFakeStore()
		completer := &fakeCompleter{response: "a better answer"}
		svc := NewChatService(store, completer, nil)
		conv := seed(store)

		Convey("a missing conversation id is rejected", func() {
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{MessageID: "m2"})
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
		})

		Convey("an unknown conversation is not found", func() {
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: "conv-9999999999999-deadbeef",
				MessageID:      "m2",
			})
			So(errors.Is(err, apperr.ErrNotFound), ShouldBeTrue)
			So(completer.calls, ShouldEqual, 0)
		})

		Convey("an unknown message id is not found, with no upstream call", func() {
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID,
				MessageID:      "missing",
			})
			So(errors.Is(err, apperr.ErrNotFound), ShouldBeTrue)
			So(completer.calls, ShouldEqual, 0)
			So(store.replaceCalls, ShouldEqual, 0)
		})

		Convey("the first message cannot be regenerated", func() {
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID,
				MessageID:      "m1",
			})
			So(errors.Is(err, apperr.ErrNotFound), ShouldBeTrue)
			So(completer.calls, ShouldEqual, 0)
		})

		Convey("a message not preceded by a user turn is invalid state", func() {
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID,
				MessageID:      "m3",
			})
			So(errors.Is(err, apperr.ErrInvalidState), ShouldBeTrue)
			So(completer.calls, ShouldEqual, 0)
			So(store.replaceCalls, ShouldEqual, 0)
		})

		Convey("regenerating the last answer uses the preceding question", func() {
			resp, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID,
				MessageID:      "m4",
			})
			So(err, ShouldBeNil)
			So(resp.Success, ShouldBeTrue)
			So(resp.MessageID, ShouldEqual, "m4")
			So(resp.RegeneratedMessage, ShouldEqual, "a better answer")

			So(completer.lastMessage, ShouldEqual, "second question")

			Convey("upstream context stops strictly before that question", func() {
				So(len(completer.lastHistory), ShouldEqual, 2)
				So(completer.lastHistory[0].ID, ShouldEqual, "m1")
				So(completer.lastHistory[1].ID, ShouldEqual, "m2")
			})

			Convey("the entry keeps its position and id", func() {
				So(store.replaceCalls, ShouldEqual, 1)
				So(len(store.lastMessages), ShouldEqual, 4)
				got := store.lastMessages[3]
				So(got.ID, ShouldEqual, "m4")
				So(got.Content, ShouldEqual, "a better answer")
				So(got.IsUser, ShouldBeFalse)
				So(got.Regenerated, ShouldBeTrue)
				So(got.Timestamp.After(base), ShouldBeTrue)
			})
		})

		Convey("regenerating twice keeps the message count stable", func() {
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID, MessageID: "m4",
			})
			So(err, ShouldBeNil)
			completer.response = "an even better answer"
			resp, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID, MessageID: "m4",
			})
			So(err, ShouldBeNil)
			So(resp.RegeneratedMessage, ShouldEqual, "an even better answer")
			So(len(store.lastMessages), ShouldEqual, 4)
		})

		Convey("an upstream failure writes nothing", func() {
			completer.err = apperr.Upstream(errors.New("failed to get response from AI service"))
			_, err := svc.Regenerate(ctx, &model.RegenerateRequest{
				ConversationID: conv.ConversationID,
				MessageID:      "m4",
			})
			So(errors.Is(err, apperr.ErrUpstream), ShouldBeTrue)
			So(store.replaceCalls, ShouldEqual, 0)
			So(conv.Messages[3].Content, ShouldEqual, "second answer")
			So(conv.Messages[3].Regenerated, ShouldBeFalse)
		})
	})
}
