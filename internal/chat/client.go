// Package chat wraps the Gemini collaborator behind a small completion API.
// Construction never fails on a missing credential; the client just reports
// itself unavailable and every caller degrades to local behavior.
package chat

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/lectura/server/internal/agent/model"
	errx "github.com/lectura/server/internal/core/error"
	logx "github.com/lectura/server/pkg/logger"
)

// placeholder value shipped in .env.example; treated the same as no key.
const placeholderAPIKey = "your-gemini-api-key"

type Client struct {
	chatModel einomodel.BaseChatModel
	modelName string
	timeout   time.Duration
}

// New builds the Gemini-backed client. A missing or placeholder API key
// yields a non-nil client that reports Available() == false.
func New(ctx context.Context, cfg model.ChatModelConfig) (*Client, error) {
	c := &Client{
		modelName: cfg.Model,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if cfg.APIKey == "" || cfg.APIKey == placeholderAPIKey {
		logx.Warn().Msg("GEMINI_API_KEY not configured, remote assistance disabled")
		return c, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	genaiClient, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      genaiClient,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}
	c.chatModel = chatModel
	return c, nil
}

// NewFromModel wires an existing BaseChatModel, used by tests to script the
// collaborator.
func NewFromModel(m einomodel.BaseChatModel, timeout time.Duration) *Client {
	return &Client{chatModel: m, timeout: timeout}
}

// Available reports whether remote completions can be attempted.
func (c *Client) Available() bool {
	return c != nil && c.chatModel != nil
}

// Complete sends one system+user exchange and returns the reply text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	})
}

// CompleteHistory sends prior conversation turns ahead of the newest user
// message so the model keeps context across a chat session.
func (c *Client) CompleteHistory(ctx context.Context, system string, history []*schema.Message, user string) (string, error) {
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(system))
	msgs = append(msgs, history...)
	msgs = append(msgs, schema.UserMessage(user))
	return c.generate(ctx, msgs)
}

// CompleteVision sends a prompt with inline PNG images for transcription
// work. Images travel as base64 data URLs in multi-content parts.
func (c *Client) CompleteVision(ctx context.Context, system, prompt string, images [][]byte) (string, error) {
	parts := make([]schema.ChatMessagePart, 0, len(images)+1)
	parts = append(parts, schema.ChatMessagePart{
		Type: schema.ChatMessagePartTypeText,
		Text: prompt,
	})
	for _, img := range images {
		parts = append(parts, schema.ChatMessagePart{
			Type: schema.ChatMessagePartTypeImageURL,
			ImageURL: &schema.ChatMessageImageURL{
				URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
			},
		})
	}
	return c.generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		{Role: schema.User, MultiContent: parts},
	})
}

func (c *Client) generate(ctx context.Context, msgs []*schema.Message) (string, error) {
	if !c.Available() {
		return "", errx.ErrRemoteUnavailable
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	out, err := c.chatModel.Generate(ctx, msgs)
	if err != nil {
		logx.Debug().Err(err).Str("model", c.modelName).Msg("chat completion failed")
		return "", errx.Remote(err)
	}
	return strings.TrimSpace(out.Content), nil
}
