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
	eventsPage     int
	eventsPageSize int
	eventsSearch   string

	eventTitle       string
	eventDescription string
	eventDate        string
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and submit documented incidents",
	Long: `Events group archived posts around a documented incident. New events
stay pending until an admin approves them.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List approved events",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		page, err := client.Events.List(ctx, api.ListOptions{Page: eventsPage, PageSize: eventsPageSize, Search: eventsSearch})
		if err != nil {
			return err
		}

		return printResult(cfg, page, func() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tSTATUS\tTITLE")
			for _, e := range page.Results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Date, e.Status, truncateLine(e.Title, 60))
			}
			_ = w.Flush()
			printPageFooter(page.Count, page.HasNext(), page.HasPrevious())
		})
	},
}

var eventsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one event",
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

		event, err := client.Events.Get(ctx, id)
		if err != nil {
			return err
		}

		return printResult(cfg, event, func() {
			fmt.Printf("Title:  %s\n", event.Title)
			fmt.Printf("ID:     %d\n", event.ID)
			fmt.Printf("Date:   %s\n", event.Date)
			fmt.Printf("Status: %s\n", event.Status)
			if event.Description != "" {
				fmt.Printf("\n%s\n", event.Description)
			}
			if len(event.Participants) > 0 {
				fmt.Println("\nParticipants:")
				for _, p := range event.Participants {
					fmt.Printf("  %s (%s)\n", p.Name, p.Role)
				}
			}
		})
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new event",
	Long: `Create submits an event for admin approval.

Example:
  archivectl events create --title "Market shelling" --date 2024-05-04`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		draft := model.EventDraft{Title: eventTitle, Date: eventDate}
		if eventDescription != "" {
			draft.Description = &eventDescription
		}

		event, err := client.Events.Create(ctx, draft)
		if err != nil {
			return err
		}

		fmt.Printf("Created event %d (status: %s)\n", event.ID, event.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsGetCmd, eventsCreateCmd)

	eventsListCmd.Flags().IntVar(&eventsPage, "page", 0, "page number")
	eventsListCmd.Flags().IntVar(&eventsPageSize, "page-size", 0, "results per page (server caps at 100)")
	eventsListCmd.Flags().StringVar(&eventsSearch, "search", "", "search term")

	eventsCreateCmd.Flags().StringVar(&eventTitle, "title", "", "event title (required)")
	eventsCreateCmd.Flags().StringVar(&eventDescription, "description", "", "event description")
	eventsCreateCmd.Flags().StringVar(&eventDate, "date", "", "event date, YYYY-MM-DD (required)")
	_ = eventsCreateCmd.MarkFlagRequired("title")
	_ = eventsCreateCmd.MarkFlagRequired("date")
}
