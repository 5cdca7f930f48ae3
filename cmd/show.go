// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/session"
)

// showCmd displays a single listing. Listings are public, so no session is
// required.
var showCmd = &cobra.Command{
	Use:   "show <listing-id>",
	Short: "Show a property listing",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(session.NewMemory())
		if err != nil {
			return err
		}

		p, err := client.GetProperty(cmd.Context(), args[0])
		if err != nil {
			return presentClientError(err, "loading the listing")
		}

		renderPropertyDetail(p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// renderPropertyDetail prints one listing with all its known fields.
func renderPropertyDetail(p *api.Property) {
	var b strings.Builder
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-10s %s\n", label, value)
		}
	}
	row("Locality", p.Locality)
	row("City", p.City)
	row("Type", p.PropertyType)
	row("Price", fmt.Sprintf("%.0f", p.Price))
	row("BHK", fmt.Sprintf("%d", p.BHK))
	row("Bathrooms", fmt.Sprintf("%d", p.Bathrooms))
	row("Area", fmt.Sprintf("%d sqft", p.AreaSqft))
	if p.Furnished != nil {
		state := "unfurnished"
		if *p.Furnished {
			state = "furnished"
		}
		row("Furnished", state)
	}
	if p.Lift != nil {
		row("Lift", fmt.Sprintf("%t", *p.Lift))
	}
	if len(p.Amenities) > 0 {
		row("Amenities", strings.Join(p.Amenities, ", "))
	}
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}

	title := p.Title
	if p.ID != "" {
		title = fmt.Sprintf("%s (%s)", p.Title, p.ID)
	}
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.Bold).Sprint(title)).
		Println(strings.TrimRight(b.String(), "\n"))
}
