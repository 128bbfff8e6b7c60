// Package llm turns a mirrored source page into a post draft using OpenAI.
// It is optional, off by default, and never submits anything itself.
package llm

import (
	"fmt"

	"github.com/syrianarchive/archivectl/internal/model"
)

// DraftRequest contains the source material for drafting.
type DraftRequest struct {
	// SourceURL is the page the material came from; the draft must attribute
	// it and nothing else.
	SourceURL string

	// Title is the extracted page title, if any.
	Title string

	// Text is the extracted visible text, already truncated by the caller.
	Text string

	// MaxTokens limits the response length.
	MaxTokens int
}

// DraftResponse is the generated draft.
type DraftResponse struct {
	Title      string
	Content    string
	Model      string
	TokensUsed int
}

// BuildPrompt constructs the drafting prompt. The draft is a neutral summary
// for human review; the prompt forbids invented facts and outside sources.
func BuildPrompt(req DraftRequest) string {
	return fmt.Sprintf(`You are drafting a factual summary of a source page for a human-rights documentation archive. A human reviewer will edit and submit it; you only draft.

RULES:
1. Use ONLY information present in the source text below. Do not add facts, names, dates or numbers that are not in it.
2. Attribute the material to this source URL and no other: %s
3. Keep a neutral, documentary tone. No speculation about responsibility or intent.
4. If the text is too thin to summarize, say so instead of padding.

Source title: %s

Source text:
%s

Respond with a one-line title, then a blank line, then a 3-5 sentence summary ending with "Source: %s".`,
		req.SourceURL, req.Title, req.Text, req.SourceURL)
}

// ToPostDraft converts a generated draft into a create payload.
func (r *DraftResponse) ToPostDraft() model.PostDraft {
	draft := model.PostDraft{Content: r.Content}
	if r.Title != "" {
		title := r.Title
		draft.Title = &title
	}
	return draft
}
