// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/httperrors"
	"homescout/cli/internal/menu"
)

// menuCmd shows the user menu: login/signup affordances when signed out, or
// the account menu with a logout action when signed in.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the user menu",
	Long: `The menu command renders the user menu derived from the stored session.
Signed out it offers Login and Sign Up; signed in it shows your name,
email, your properties, and a logout action. On an interactive terminal
the entries can be selected directly.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		client, nav, err := newClient(store)
		if err != nil {
			return err
		}

		m := menu.Build(store)
		fmt.Println(m.Render())

		// Interactivity is wired explicitly after the render; on a
		// non-interactive terminal this is a no-op.
		return menu.Run(m, nav, menu.Handlers{
			MyProperties: func() error {
				props, err := fetchMyProperties(cmd.Context(), client)
				if err != nil {
					if api.IsSessionExpired(err) {
						return nil
					}
					return httperrors.FormatNetworkError(err, "fetching your properties")
				}
				renderProperties(props)
				return nil
			},
			Logout: func() error {
				return signOut(cmd.Context(), store)
			},
		})
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
