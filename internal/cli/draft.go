package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/syrianarchive/archivectl/internal/archive"
	"github.com/syrianarchive/archivectl/internal/llm"
)

var (
	draftSubmit    bool
	draftMaxChars  int
	draftTimeout   time.Duration
	draftUserAgent string
)

// draftCmd represents the draft command
var draftCmd = &cobra.Command{
	Use:   "draft <url>",
	Short: "Draft a post from a source page using an LLM summary",
	Long: `Draft fetches a web page, extracts its visible text and asks an LLM
for a short, source-bound summary in post form. Nothing is submitted
unless --submit is passed; the draft always names its source URL.

Requires OPENAI_API_KEY in the environment.

Example:
  archivectl draft https://example.org/report-2024-05
  archivectl draft https://example.org/report-2024-05 --submit`,
	Args: cobra.ExactArgs(1),
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().BoolVar(&draftSubmit, "submit", false, "submit the draft as a new post")
	draftCmd.Flags().IntVar(&draftMaxChars, "max-chars", 8000, "max source characters sent to the LLM")
	draftCmd.Flags().DurationVar(&draftTimeout, "timeout", 2*time.Minute, "overall draft timeout")
	draftCmd.Flags().StringVar(&draftUserAgent, "ua", "", "HTTP User-Agent for the source fetch (default from config)")
}

func runDraft(cmd *cobra.Command, args []string) error {
	sourceURL := args[0]
	cfg := loadConfig()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	llmCfg := cfg.LLM
	llmCfg.APIKey = apiKey

	summarizer, err := llm.NewSummarizer(llmCfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	userAgent := draftUserAgent
	if userAgent == "" {
		userAgent = cfg.HTTP.UserAgent
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching %s\n", sourceURL)
	}

	fetcher := archive.NewFetcher(cfg.Mirror.FetchTimeout, userAgent, cfg.Mirror.MaxBytes)
	result, err := fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return fmt.Errorf("fetch source: %w", err)
	}

	page, err := archive.ExtractPage(string(result.Body))
	if err != nil {
		return fmt.Errorf("extract source text: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d characters, summarizing with %s\n", len(page.Text), llmCfg.Model)
	}

	draft, err := summarizer.Draft(ctx, llm.DraftRequest{
		SourceURL: result.FinalURL,
		Title:     page.Title,
		Text:      archive.Truncate(page.Text, draftMaxChars),
	})
	if err != nil {
		return err
	}

	if draft.Title != "" {
		fmt.Printf("%s\n\n", draft.Title)
	}
	fmt.Printf("%s\n", draft.Content)
	fmt.Fprintf(os.Stderr, "\n(%s, %d tokens)\n", draft.Model, draft.TokensUsed)

	if !draftSubmit {
		fmt.Fprintf(os.Stderr, "\nRe-run with --submit to post this draft.\n")
		return nil
	}

	client, cfg, err := newAPI()
	if err != nil {
		return err
	}
	post, err := client.Posts.Create(ctx, draft.ToPostDraft())
	if err != nil {
		return err
	}
	fmt.Printf("\nCreated post %d (status: %s)\n", post.ID, post.Status)
	return nil
}
