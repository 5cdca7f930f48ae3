package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	apperrors "homescout/cli/internal/errors"
)

// whoamiCmd represents the whoami command for displaying current authentication state.
// It shows the signed-in account by validating the current session with the
// backend, falling back to the locally stored profile when offline.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the signed-in account",
	Long: `The whoami command displays information about the signed-in account. It
validates the session with the backend and shows the account when the
session is still valid. When the backend is unreachable, the locally
stored profile is shown instead.

If no session exists, it will indicate that you are not logged in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore()
		if err != nil {
			// No secure storage means no session; treat as not logged in
			printNotLoggedIn()
			return nil
		}
		if !store.IsAuthenticated() {
			printNotLoggedIn()
			return nil
		}

		client, _, err := newClient(store)
		if err != nil {
			return err
		}

		user, err := client.Me(ctx)
		if err == nil {
			fmt.Printf("👤 Current user: %s\n", identifierFor(user))
			if user != nil && user.Email != "" && user.Name != "" {
				fmt.Printf("   %s\n", user.Email)
			}
			return nil
		}
		if api.IsSessionExpired(err) {
			// The wrapper already cleared the session and pointed at login
			return nil
		}

		// A typed error means the backend answered; that is not "offline".
		var e *apperrors.E
		if stderrors.As(err, &e) {
			fmt.Println("⚠️  Could not verify your session: " + e.Message)
			return err
		}

		// Transport failure: fall back to the stored profile
		if user := store.User(); user != nil {
			fmt.Printf("👤 Current user: %s (offline)\n", identifierFor(user))
			return nil
		}

		printNotLoggedIn()
		return nil
	},
}

func printNotLoggedIn() {
	fmt.Println("🔒 You're not logged in yet!")
	fmt.Println("   Run 'homescout login' to get started.")
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
