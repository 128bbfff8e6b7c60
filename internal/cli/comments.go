package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syrianarchive/archivectl/internal/api"
	"github.com/syrianarchive/archivectl/internal/model"
)

var (
	commentsPage      int
	commentsPageSize  int
	commentContent    string
	commentAttachment string
)

// commentsCmd represents the comments command
var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Browse and manage comments on posts",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List the comments of a post, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		page, err := client.Comments.List(ctx, postID, api.ListOptions{Page: commentsPage, PageSize: commentsPageSize})
		if err != nil {
			return err
		}

		return printResult(cfg, page, func() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAUTHOR\tCREATED\tCONTENT")
			for _, c := range page.Results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					c.ID, c.User.Username, c.CreatedAt.Format("2006-01-02 15:04"), truncateLine(c.Content, 60))
			}
			_ = w.Flush()
			printPageFooter(page.Count, page.HasNext(), page.HasPrevious())
		})
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <post-id>",
	Short: "Add a comment to a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		comment, err := client.Comments.Create(ctx, postID, commentDraftFromFlags())
		if err != nil {
			return err
		}

		fmt.Printf("Added comment %d to post %d\n", comment.ID, postID)
		return nil
	},
}

var commentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace one of your own comments",
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

		comment, err := client.Comments.Update(ctx, id, commentDraftFromFlags())
		if err != nil {
			return err
		}

		fmt.Printf("Updated comment %d\n", comment.ID)
		return nil
	},
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your own comments",
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

		if !client.Comments.Delete(ctx, id) {
			return fmt.Errorf("comment %d could not be deleted", id)
		}
		fmt.Printf("Deleted comment %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commentsCmd)
	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsUpdateCmd, commentsDeleteCmd)

	commentsListCmd.Flags().IntVar(&commentsPage, "page", 0, "page number")
	commentsListCmd.Flags().IntVar(&commentsPageSize, "page-size", 0, "results per page (server caps at 100)")

	for _, c := range []*cobra.Command{commentsAddCmd, commentsUpdateCmd} {
		c.Flags().StringVar(&commentContent, "content", "", "comment text")
		c.Flags().StringVar(&commentAttachment, "attachment", "", "attachment URL or reference")
	}
}

func commentDraftFromFlags() model.CommentDraft {
	draft := model.CommentDraft{Content: commentContent}
	if commentAttachment != "" {
		draft.Attachment = &commentAttachment
	}
	return draft
}
