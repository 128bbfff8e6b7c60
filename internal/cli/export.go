package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/syrianarchive/archivectl/internal/api"
	"github.com/syrianarchive/archivectl/internal/archive"
	"github.com/syrianarchive/archivectl/internal/model"
)

var (
	exportDir      string
	exportMaxPages int
	exportEvent    int64
	exportMirror   bool
	exportWorkers  int
	exportTimeout  time.Duration
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export approved posts to local JSON, optionally mirroring attachments",
	Long: `Export walks the approved post listing page by page and writes each
page's posts into a JSON file under the output directory. With
--mirror, external attachment URLs are downloaded alongside, honoring
robots.txt and per-domain rate limits.

Example:
  archivectl export --out ./archive-dump
  archivectl export --event 12 --mirror --workers 8`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDir, "out", "./archive-export", "output directory")
	exportCmd.Flags().IntVar(&exportMaxPages, "max-pages", 0, "stop after N pages (0 = all)")
	exportCmd.Flags().Int64Var(&exportEvent, "event", 0, "export only posts of this event")
	exportCmd.Flags().BoolVar(&exportMirror, "mirror", false, "download attachment URLs alongside the posts")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 0, "mirror worker count (default from config)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 10*time.Minute, "total export timeout")
}

func runExport(cmd *cobra.Command, args []string) error {
	client, cfg, err := newAPI()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Exporting posts to %s\n", exportDir)

	var (
		attachments []string
		total       int
		pageNum     = 1
	)
	for {
		page, err := client.Posts.List(ctx, api.ListPostsOptions{
			ListOptions: api.ListOptions{Page: pageNum, PageSize: 100},
			EventID:     exportEvent,
		})
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", pageNum, err)
		}
		if len(page.Results) == 0 {
			break
		}

		path := filepath.Join(exportDir, fmt.Sprintf("posts-%04d.json", pageNum))
		if err := writeJSONFile(path, page.Results); err != nil {
			return err
		}
		total += len(page.Results)
		fmt.Fprintf(os.Stderr, "✓ Page %d: %d posts -> %s\n", pageNum, len(page.Results), path)

		for _, post := range page.Results {
			if post.Attachment != "" {
				attachments = append(attachments, post.Attachment)
			}
		}

		if !page.HasNext() {
			break
		}
		pageNum++
		if exportMaxPages > 0 && pageNum > exportMaxPages {
			break
		}
	}

	fmt.Fprintf(os.Stderr, "✓ Exported %d posts\n", total)

	if exportMirror && len(attachments) > 0 {
		if err := mirrorAttachments(ctx, cfg, attachments); err != nil {
			return err
		}
	} else if exportMirror {
		fmt.Fprintf(os.Stderr, "No attachments to mirror\n")
	}

	return nil
}

// mirrorAttachments downloads attachment URLs into <out>/attachments using
// the configured worker pool.
func mirrorAttachments(ctx context.Context, cfg model.Config, urls []string) error {
	workers := exportWorkers
	if workers <= 0 {
		workers = cfg.Mirror.Workers
	}

	mirrorDir := filepath.Join(exportDir, "attachments")
	mirrorer := archive.DefaultMirrorer(
		mirrorDir,
		cfg.HTTP.UserAgent,
		cfg.Mirror.FetchTimeout,
		cfg.Mirror.MaxBytes,
		cfg.Mirror.RequestsPerSecond,
		cfg.Mirror.Burst,
		cfg.Mirror.RespectRobots,
	)

	fmt.Fprintf(os.Stderr, "\nMirroring %d attachments with %d workers...\n", len(urls), workers)

	outcomes := mirrorer.MirrorAll(ctx, urls, workers)

	var mirrored, skipped, failed int
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.URL, o.Err)
		case o.Skipped:
			skipped++
			if verbose {
				fmt.Fprintf(os.Stderr, "- %s: disallowed by robots.txt\n", o.URL)
			}
		default:
			mirrored++
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", o.URL, o.Path)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "✓ Mirrored %d, skipped %d, failed %d -> %s\n", mirrored, skipped, failed, mirrorDir)
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
