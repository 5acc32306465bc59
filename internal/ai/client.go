// Package ai wraps the completion provider behind a single Complete call.
// The rest of the system treats it as a black box: role-tagged turns in,
// generated text or an upstream error out.
package ai

import (
	"context"
	"errors"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"chatdesk/internal/ai/component"
	"chatdesk/internal/apperr"
	"chatdesk/internal/config"
	"chatdesk/internal/model"
)

const defaultRequestTimeout = 60 * time.Second

// Client calls the configured chat completion model.
type Client struct {
	chatModel einomodel.ChatModel
	timeout   time.Duration
}

// NewClient creates a completion client for the configured provider.
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		chatModel: chatModel,
		timeout:   timeout,
	}, nil
}

// Complete sends the prior turns plus the new user message to the model and
// returns the generated text. History order is preserved: isUser turns map
// to the user role, the rest to assistant. Failures and timeouts surface as
// upstream errors; the provider detail stays in the logs.
func (c *Client) Complete(ctx context.Context, message string, history []model.Message) (string, error) {
	messages := make([]*schema.Message, 0, len(history)+1)
	for _, m := range history {
		if m.IsUser {
			messages = append(messages, schema.UserMessage(m.Content))
		} else {
			messages = append(messages, schema.AssistantMessage(m.Content, nil))
		}
	}
	messages = append(messages, schema.UserMessage(message))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		log.Error().Err(err).Int("history_len", len(history)).Msg("completion request failed")
		return "", apperr.Upstream(errors.New("failed to get response from AI service"))
	}

	if resp.Content == "" {
		return "", apperr.Upstream(errors.New("empty response from AI service"))
	}

	return resp.Content, nil
}
