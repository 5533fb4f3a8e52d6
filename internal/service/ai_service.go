package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/dvitale199/blossom/internal/config"
	"github.com/dvitale199/blossom/internal/model"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AIService wraps the Anthropic Messages API behind the ModelInvoker
// interface. It carries no retry or backoff logic; a failed call is the
// caller's problem. Model settings can be swapped at runtime via
// UpdateConfig (config hot-reload).
type AIService struct {
	mu        sync.RWMutex
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewAIService(cfg config.AnthropicConfig) *AIService {
	s := &AIService{}
	s.UpdateConfig(cfg)
	return s
}

func (s *AIService) UpdateConfig(cfg config.AnthropicConfig) {
	var clientOpts []option.RequestOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}

	m := anthropic.Model(cfg.Model)
	if cfg.Model == "" {
		m = anthropic.Model(defaultAnthropicModel)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	s.mu.Lock()
	s.client = anthropic.NewClient(clientOpts...)
	s.model = m
	s.maxTokens = maxTokens
	s.mu.Unlock()
}

func (s *AIService) Invoke(ctx context.Context, system string, messages []ChatMessage) (string, error) {
	s.mu.RLock()
	client := s.client
	params := anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  make([]anthropic.MessageParam, 0, len(messages)),
	}
	s.mu.RUnlock()

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content")
	}

	return sb.String(), nil
}
