package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/syrianarchive/archivectl/internal/model"
)

func TestSummarizer_Draft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("authorization = %s", r.Header.Get("Authorization"))
		}

		var chatReq openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&chatReq)
		if len(chatReq.Messages) != 2 {
			t.Fatalf("got %d messages", len(chatReq.Messages))
		}
		if !strings.Contains(chatReq.Messages[1].Content, "https://example.org/report") {
			t.Errorf("prompt missing source URL")
		}

		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "Strike on northern hospital\n\nA hospital was struck on 4 May. Source: https://example.org/report",
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 80},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	summarizer, err := NewSummarizer(model.LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}

	draft, err := summarizer.Draft(context.Background(), DraftRequest{
		SourceURL: "https://example.org/report",
		Title:     "Hospital strike",
		Text:      "A hospital in the north was struck on 4 May according to witnesses.",
	})
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	if draft.Title != "Strike on northern hospital" {
		t.Errorf("title = %q", draft.Title)
	}
	if !strings.Contains(draft.Content, "Source: https://example.org/report") {
		t.Errorf("content missing attribution: %q", draft.Content)
	}
	if draft.TokensUsed != 80 {
		t.Errorf("tokens = %d", draft.TokensUsed)
	}

	post := draft.ToPostDraft()
	if post.Title == nil || *post.Title != draft.Title || post.Content != draft.Content {
		t.Errorf("post draft = %+v", post)
	}
}

func TestSummarizer_RequiresKeyAndText(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{}); err == nil {
		t.Errorf("missing API key accepted")
	}

	summarizer, err := NewSummarizer(model.LLMConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}
	if _, err := summarizer.Draft(context.Background(), DraftRequest{SourceURL: "u"}); err == nil {
		t.Errorf("empty source text accepted")
	}
}

func TestSplitDraft(t *testing.T) {
	title, content := splitDraft("Title line\n\nBody text.")
	if title != "Title line" || content != "Body text." {
		t.Errorf("split = %q / %q", title, content)
	}

	title, content = splitDraft("only body")
	if title != "" || content != "only body" {
		t.Errorf("split = %q / %q", title, content)
	}
}
