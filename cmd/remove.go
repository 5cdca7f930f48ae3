// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homescout/cli/internal/menu"
)

// removeCmd deletes a property listing by its identifier.
var removeCmd = &cobra.Command{
	Use:     "remove <listing-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a property listing",
	Args:    cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		client, nav, err := newClient(store)
		if err != nil {
			return err
		}
		if !menu.RequireAuth(store, nav) {
			return nil
		}

		id := args[0]
		if err := client.DeleteProperty(cmd.Context(), id); err != nil {
			return presentClientError(err, "removing the listing")
		}

		fmt.Printf("🗑️  Listing %s removed\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
