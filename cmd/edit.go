// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"homescout/cli/internal/menu"
)

var (
	editTitle       string
	editDescription string
	editLocality    string
	editCity        string
	editPrice       float64
	editBHK         int
	editBathrooms   int
	editSqft        int
	editType        string
	editFurnished   bool
	editLift        bool
)

// editCmd updates fields of an existing listing. It fetches the current
// document, overlays the given flags, and writes the result back, so
// untouched fields keep their values.
var editCmd = &cobra.Command{
	Use:   "edit <listing-id>",
	Short: "Update a property listing",
	Args:  cobra.ExactArgs(1),
	Long: `The edit command changes a published listing. Only the fields given as
flags are changed:

  homescout edit p-42 --price 85000
  homescout edit p-42 --title "Sunny 2BHK" --furnished`,

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
		p, err := client.GetProperty(cmd.Context(), id)
		if err != nil {
			return presentClientError(err, "loading the listing")
		}

		changed := false
		set := func(name string, apply func()) {
			if cmd.Flags().Changed(name) {
				apply()
				changed = true
			}
		}
		set("title", func() { p.Title = editTitle })
		set("description", func() { p.Description = editDescription })
		set("locality", func() { p.Locality = editLocality })
		set("city", func() { p.City = editCity })
		set("price", func() { p.Price = editPrice })
		set("bhk", func() { p.BHK = editBHK })
		set("bathrooms", func() { p.Bathrooms = editBathrooms })
		set("sqft", func() { p.AreaSqft = editSqft })
		set("type", func() { p.PropertyType = editType })
		set("furnished", func() { p.Furnished = &editFurnished })
		set("lift", func() { p.Lift = &editLift })

		if !changed {
			fmt.Println("Nothing to change; pass at least one field flag.")
			return nil
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Updating listing", spinnerFrames, 120*time.Millisecond)
		err = client.UpdateProperty(cmd.Context(), id, *p)
		stopSpinner()
		if err != nil {
			return presentClientError(err, "updating the listing")
		}

		fmt.Printf("✏️  Listing %s updated\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "Listing title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "Listing description")
	editCmd.Flags().StringVar(&editLocality, "locality", "", "Locality")
	editCmd.Flags().StringVar(&editCity, "city", "", "City")
	editCmd.Flags().Float64Var(&editPrice, "price", 0, "Monthly price")
	editCmd.Flags().IntVar(&editBHK, "bhk", 0, "Number of bedrooms")
	editCmd.Flags().IntVar(&editBathrooms, "bathrooms", 0, "Number of bathrooms")
	editCmd.Flags().IntVar(&editSqft, "sqft", 0, "Area in square feet")
	editCmd.Flags().StringVar(&editType, "type", "", "Property type")
	editCmd.Flags().BoolVar(&editFurnished, "furnished", false, "Furnished (--furnished=false for unfurnished)")
	editCmd.Flags().BoolVar(&editLift, "lift", false, "Lift available")
}
