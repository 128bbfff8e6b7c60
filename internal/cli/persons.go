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
	personsPage     int
	personsPageSize int
	personsSearch   string

	personName  string
	personRole  string
	personImage string
)

// personsCmd represents the persons command
var personsCmd = &cobra.Command{
	Use:   "persons",
	Short: "Browse and submit the person registry",
	Long: `Persons are the individuals referenced by archived posts and events:
victims, witnesses, perpetrators, journalists, activists, officials.
New records stay pending until an admin approves them.`,
}

var personsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List approved persons",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		page, err := client.Persons.List(ctx, api.ListOptions{Page: personsPage, PageSize: personsPageSize, Search: personsSearch})
		if err != nil {
			return err
		}

		return printResult(cfg, page, func() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tSTATUS")
			for _, p := range page.Results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Role, p.Status)
			}
			_ = w.Flush()
			printPageFooter(page.Count, page.HasNext(), page.HasPrevious())
		})
	},
}

var personsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one person",
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

		person, err := client.Persons.Get(ctx, id)
		if err != nil {
			return err
		}

		return printResult(cfg, person, func() {
			fmt.Printf("Name:   %s\n", person.Name)
			fmt.Printf("ID:     %d\n", person.ID)
			fmt.Printf("Role:   %s\n", person.Role)
			fmt.Printf("Status: %s\n", person.Status)
			if person.AddedBy != nil {
				fmt.Printf("Added by: %s\n", person.AddedBy.Username)
			}
		})
	},
}

var personsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new person record",
	Long: `Create submits a person record for admin approval.

Example:
  archivectl persons create --name "A. Example" --role witness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		draft := model.PersonDraft{Name: personName, Role: model.PersonRole(personRole)}
		if personImage != "" {
			draft.Image = &personImage
		}

		person, err := client.Persons.Create(ctx, draft)
		if err != nil {
			return err
		}

		fmt.Printf("Created person %d (status: %s)\n", person.ID, person.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personsCmd)
	personsCmd.AddCommand(personsListCmd, personsGetCmd, personsCreateCmd)

	personsListCmd.Flags().IntVar(&personsPage, "page", 0, "page number")
	personsListCmd.Flags().IntVar(&personsPageSize, "page-size", 0, "results per page (server caps at 100)")
	personsListCmd.Flags().StringVar(&personsSearch, "search", "", "search term")

	personsCreateCmd.Flags().StringVar(&personName, "name", "", "person name (required)")
	personsCreateCmd.Flags().StringVar(&personRole, "role", "", "role: victim, witness, perpetrator, journalist, activist, official, other")
	personsCreateCmd.Flags().StringVar(&personImage, "image", "", "image URL or reference")
	_ = personsCreateCmd.MarkFlagRequired("name")
	_ = personsCreateCmd.MarkFlagRequired("role")
}
