// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/httperrors"
	"homescout/cli/internal/menu"
)

// propertiesCmd lists the signed-in user's own property listings.
var propertiesCmd = &cobra.Command{
	Use:     "properties",
	Aliases: []string{"mine"},
	Short:   "List your property listings",
	Long: `The properties command shows the listings owned by the signed-in
account. It requires a session; when none exists you are pointed at the
login page instead.`,

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

		props, err := fetchMyProperties(cmd.Context(), client)
		if err != nil {
			if api.IsSessionExpired(err) {
				return nil
			}
			return httperrors.FormatNetworkError(err, "fetching your properties")
		}

		if len(props) == 0 {
			pterm.Println("You have no listings yet.")
			return nil
		}
		renderProperties(props)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
}

// fetchMyProperties wraps the listing call with a spinner.
func fetchMyProperties(ctx context.Context, client *api.Client) ([]api.Property, error) {
	cursor.Hide()
	defer cursor.Show()
	stopSpinner := startInlineSpinner(os.Stdout, "Fetching your properties", spinnerFrames, 120*time.Millisecond)
	defer stopSpinner()
	return client.MyProperties(ctx)
}

// renderProperties prints listings as a table.
func renderProperties(props []api.Property) {
	data := pterm.TableData{
		{"Title", "Locality", "Type", "BHK", "Sqft", "Price"},
	}
	for _, p := range props {
		data = append(data, []string{
			p.Title,
			p.Locality,
			p.PropertyType,
			fmt.Sprintf("%d", p.BHK),
			fmt.Sprintf("%d", p.AreaSqft),
			fmt.Sprintf("%.0f", p.Price),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d listing(s)\n", len(props))
}
