// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/config"
	"homescout/cli/internal/session"
)

// logoutCmd represents the logout command for clearing authentication state.
// It removes the stored token and profile from the OS keychain and notifies
// the backend (best-effort; the backend's tokens are stateless).
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Long: `The logout command clears the stored session from the OS keychain: the
access token and the cached user profile. It also notifies the backend
(best-effort - signing out works even when offline).

Running logout while already signed out is a no-op.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return signOut(cmd.Context(), store)
	},
}

// signOut notifies the backend and clears the local session. The remote
// call is best-effort and must not trigger the expired-session navigation,
// so its client gets no navigator.
func signOut(ctx context.Context, store session.Store) error {
	if store.IsAuthenticated() {
		if cfg, err := config.Load(); err == nil {
			client := api.New(cfg.BaseURL, store, nil)
			_ = client.Logout(ctx) // Ignore error - best effort
		}
	}

	// Always clear local credentials regardless of backend response
	if err := store.ClearAuth(); err != nil {
		return err
	}

	fmt.Println("✅ Signed out; session removed")
	return nil
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
