package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syrianarchive/archivectl/internal/api"
	"github.com/syrianarchive/archivectl/internal/model"
)

var (
	postsPage     int
	postsPageSize int
	postsSearch   string
	postsUser     int64
	postsEvent    int64

	postTitle      string
	postContent    string
	postAttachment string
	postEventID    int64

	reportReason string
)

// postsCmd represents the posts command
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse, submit and moderate archived posts",
	Long: `Posts are the archive's core records. Listing shows approved posts
only; 'posts my' shows the caller's own posts in every status.

Trust and verify are restricted to journalist, politician and admin
accounts; report accepts the reasons spam, fake_news, offensive and
other.`,
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List approved posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		page, err := client.Posts.List(ctx, api.ListPostsOptions{
			ListOptions: api.ListOptions{Page: postsPage, PageSize: postsPageSize, Search: postsSearch},
			UserID:      postsUser,
			EventID:     postsEvent,
		})
		if err != nil {
			return err
		}

		return printResult(cfg, page, func() {
			printPostTable(page.Results)
			printPageFooter(page.Count, page.HasNext(), page.HasPrevious())
		})
	},
}

var postsMyCmd = &cobra.Command{
	Use:   "my",
	Short: "List your own posts in every status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		page, err := client.Posts.My(ctx, api.ListOptions{Page: postsPage, PageSize: postsPageSize})
		if err != nil {
			return err
		}

		return printResult(cfg, page, func() {
			printPostTable(page.Results)
			printPageFooter(page.Count, page.HasNext(), page.HasPrevious())
		})
	},
}

var postsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		post, err := client.Posts.Get(ctx, id)
		if err != nil {
			return err
		}

		return printResult(cfg, post, func() { printPost(post) })
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new post",
	Long: `Create submits a new post. It lands in pending review unless the
server's auto-approval rules apply to your account.

Example:
  archivectl posts create --content "Shelling reported in ..." --title "Field report" --event 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		post, err := client.Posts.Create(ctx, postDraftFromFlags())
		if err != nil {
			return err
		}

		fmt.Printf("Created post %d (status: %s)\n", post.ID, post.Status)
		return nil
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace one of your own posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		post, err := client.Posts.Update(ctx, id, postDraftFromFlags())
		if err != nil {
			return err
		}

		fmt.Printf("Updated post %d (status: %s)\n", post.ID, post.Status)
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your own posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		if !client.Posts.Delete(ctx, id) {
			return fmt.Errorf("post %d could not be deleted", id)
		}
		fmt.Printf("Deleted post %d\n", id)
		return nil
	},
}

var postsLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		result, err := client.Posts.Like(ctx, id)
		if err != nil {
			return err
		}

		if result.Liked {
			fmt.Printf("Liked post %d (%d likes)\n", id, result.LikesCount)
		} else {
			fmt.Printf("Removed like from post %d (%d likes)\n", id, result.LikesCount)
		}
		return nil
	},
}

var postsTrustCmd = &cobra.Command{
	Use:   "trust <id>",
	Short: "Toggle your trust endorsement on a post",
	Long: `Trust is a moderation endorsement restricted to journalist,
politician and admin accounts. Enough trust endorsements mark the post
verified; the threshold is the server's policy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		result, err := client.Posts.Trust(ctx, id)
		if err != nil {
			return err
		}

		if result.Trusted {
			fmt.Printf("Trusted post %d (%d trusts)\n", id, result.TrustsCount)
		} else {
			fmt.Printf("Removed trust from post %d (%d trusts)\n", id, result.TrustsCount)
		}
		if result.IsVerified {
			fmt.Printf("Post %d is now verified\n", id)
		}
		return nil
	},
}

var postsReportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Report a post for moderation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		report, err := client.Posts.Report(ctx, id, model.ReportReason(reportReason))
		if err != nil {
			return err
		}

		fmt.Printf("Reported post %d (reason: %s, report id: %d)\n", id, report.Reason, report.ID)
		return nil
	},
}

var postsVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "File a formal verification of a post",
	Long: `Verify files a formal confirmation, distinct from trust. Restricted
to journalist, politician and admin accounts; the server records the
verification type from your role.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		verification, err := client.Posts.Verify(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("Verified post %d (%s)\n", id, verification.Type)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd, postsMyCmd, postsGetCmd, postsCreateCmd,
		postsUpdateCmd, postsDeleteCmd, postsLikeCmd, postsTrustCmd,
		postsReportCmd, postsVerifyCmd)

	for _, c := range []*cobra.Command{postsListCmd, postsMyCmd} {
		c.Flags().IntVar(&postsPage, "page", 0, "page number")
		c.Flags().IntVar(&postsPageSize, "page-size", 0, "results per page (server caps at 100)")
	}
	postsListCmd.Flags().StringVar(&postsSearch, "search", "", "search term")
	postsListCmd.Flags().Int64Var(&postsUser, "user", 0, "filter by author user id")
	postsListCmd.Flags().Int64Var(&postsEvent, "event", 0, "filter by event id")

	for _, c := range []*cobra.Command{postsCreateCmd, postsUpdateCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "post title")
		c.Flags().StringVar(&postContent, "content", "", "post content (required)")
		c.Flags().StringVar(&postAttachment, "attachment", "", "attachment URL or reference")
		c.Flags().Int64Var(&postEventID, "event", 0, "related event id")
	}

	postsReportCmd.Flags().StringVar(&reportReason, "reason", "", "report reason: spam, fake_news, offensive, other")
	_ = postsReportCmd.MarkFlagRequired("reason")
}

// postDraftFromFlags assembles the create/update payload, leaving unset
// optionals absent rather than empty.
func postDraftFromFlags() model.PostDraft {
	draft := model.PostDraft{Content: postContent}
	if postTitle != "" {
		draft.Title = &postTitle
	}
	if postAttachment != "" {
		draft.Attachment = &postAttachment
	}
	if postEventID > 0 {
		draft.EventID = &postEventID
	}
	return draft
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printPostTable(posts []model.Post) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTHOR\tSTATUS\tVERIFIED\tLIKES\tTRUSTS\tTITLE")
	for _, p := range posts {
		title := p.Title
		if title == "" {
			title = truncateLine(p.Content, 50)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%d\t%d\t%s\n",
			p.ID, p.User.Username, p.Status, p.IsVerified, p.LikesCount, p.TrustsCount, title)
	}
	_ = w.Flush()
}

func printPost(p *model.Post) {
	if p.Title != "" {
		fmt.Printf("Title:    %s\n", p.Title)
	}
	fmt.Printf("ID:       %d\n", p.ID)
	fmt.Printf("Author:   %s (%s)\n", p.User.Username, p.User.Role)
	fmt.Printf("Status:   %s\n", p.Status)
	fmt.Printf("Verified: %v\n", p.IsVerified)
	fmt.Printf("Likes:    %d  Trusts: %d  Comments: %d\n", p.LikesCount, p.TrustsCount, p.CommentsCount)
	if p.Event != nil {
		fmt.Printf("Event:    %s (%d)\n", p.Event.Title, p.Event.ID)
	}
	if p.Attachment != "" {
		fmt.Printf("Attachment: %s\n", p.Attachment)
	}
	fmt.Printf("Created:  %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("\n%s\n", p.Content)
}

func printPageFooter(count int, hasNext, hasPrevious bool) {
	fmt.Printf("\n%d total", count)
	if hasPrevious {
		fmt.Print(" | earlier pages available")
	}
	if hasNext {
		fmt.Print(" | more pages available (--page)")
	}
	fmt.Println()
}

func truncateLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
