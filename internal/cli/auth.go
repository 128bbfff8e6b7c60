package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginPassword string

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate against the archive and store the session",
	Long: `Login exchanges a username and password for a token pair and stores
it in the local session file. The password is read from the --password
flag, the ARCHIVECTL_PASSWORD environment variable, or stdin.

Example:
  archivectl login reporter42
  ARCHIVECTL_PASSWORD=... archivectl login reporter42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password := loginPassword
		if password == "" {
			password = os.Getenv("ARCHIVECTL_PASSWORD")
		}
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		user, err := client.Auth.Login(ctx, username, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (role: %s)\n", user.Username, user.Role)
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newAPI()
		if err != nil {
			return err
		}
		if err := client.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		if _, ok := client.Auth.Session(); !ok {
			return fmt.Errorf("not logged in")
		}

		ctx, cancel := cmdContext(cfg)
		defer cancel()

		user, err := client.Users.Profile(ctx)
		if err != nil {
			return err
		}

		return printResult(cfg, user, func() {
			fmt.Printf("Username:           %s\n", user.Username)
			fmt.Printf("Role:               %s\n", user.Role)
			if user.Email != "" {
				fmt.Printf("Email:              %s\n", user.Email)
			}
			fmt.Printf("Identity confirmed: %v\n", user.IdentityConfirmed)
			fmt.Printf("Joined:             %s\n", user.DateJoined.Format("2006-01-02"))
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (avoid on shared shells; prefer stdin)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
