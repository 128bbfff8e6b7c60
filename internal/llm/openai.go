package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/syrianarchive/archivectl/internal/model"
)

// Summarizer drafts post summaries through the OpenAI Chat Completions API.
type Summarizer struct {
	client *openai.Client
	config model.LLMConfig
}

// NewSummarizer creates a summarizer from configuration.
func NewSummarizer(config model.LLMConfig) (*Summarizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Draft generates a post draft from the source material.
func (s *Summarizer) Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("no source text to summarize")
	}

	modelName := s.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 600
	}

	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You draft neutral, source-bound summaries for a documentation archive. You never invent facts.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	resp, err := s.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	title, content := splitDraft(strings.TrimSpace(resp.Choices[0].Message.Content))

	return &DraftResponse{
		Title:      title,
		Content:    content,
		Model:      modelName,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// splitDraft separates the one-line title from the summary body.
func splitDraft(text string) (title, content string) {
	parts := strings.SplitN(text, "\n", 2)
	if len(parts) == 1 {
		return "", text
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
