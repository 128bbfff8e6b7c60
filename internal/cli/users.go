package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syrianarchive/archivectl/internal/api"
)

var (
	usersPage     int
	usersPageSize int
	usersSearch   string

	profileEmail     string
	profileFirstName string
	profileLastName  string
)

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		page, err := client.Users.List(ctx, api.ListOptions{Page: usersPage, PageSize: usersPageSize, Search: usersSearch})
		if err != nil {
			return err
		}

		return printResult(cfg, page, func() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCONFIRMED\tJOINED")
			for _, u := range page.Results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n",
					u.ID, u.Username, u.Role, u.IdentityConfirmed, u.DateJoined.Format("2006-01-02"))
			}
			_ = w.Flush()
			printPageFooter(page.Count, page.HasNext(), page.HasPrevious())
		})
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
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

		user, err := client.Users.Get(ctx, id)
		if err != nil {
			return err
		}

		return printResult(cfg, user, func() {
			fmt.Printf("Username: %s\n", user.Username)
			fmt.Printf("ID:       %d\n", user.ID)
			fmt.Printf("Role:     %s\n", user.Role)
			fmt.Printf("Joined:   %s\n", user.DateJoined.Format("2006-01-02"))
		})
	},
}

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your own profile",
	Long: `Profile patches the writable fields of your account. Only the flags
you pass are sent; everything else stays untouched.

Example:
  archivectl profile --email new@example.org --first-name Sam`,
	RunE: func(cmd *cobra.Command, args []string) error {
		update := api.ProfileUpdate{}
		if cmd.Flags().Changed("email") {
			update.Email = &profileEmail
		}
		if cmd.Flags().Changed("first-name") {
			update.FirstName = &profileFirstName
		}
		if cmd.Flags().Changed("last-name") {
			update.LastName = &profileLastName
		}
		if update.Email == nil && update.FirstName == nil && update.LastName == nil {
			return fmt.Errorf("nothing to update; pass --email, --first-name or --last-name")
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		user, err := client.Users.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}

		fmt.Printf("Updated profile for %s\n", user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(profileCmd)
	usersCmd.AddCommand(usersListCmd, usersGetCmd)

	usersListCmd.Flags().IntVar(&usersPage, "page", 0, "page number")
	usersListCmd.Flags().IntVar(&usersPageSize, "page-size", 0, "results per page (server caps at 100)")
	usersListCmd.Flags().StringVar(&usersSearch, "search", "", "search term")

	profileCmd.Flags().StringVar(&profileEmail, "email", "", "new email address")
	profileCmd.Flags().StringVar(&profileFirstName, "first-name", "", "new first name")
	profileCmd.Flags().StringVar(&profileLastName, "last-name", "", "new last name")
}
