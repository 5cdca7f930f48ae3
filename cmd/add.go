// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/menu"
)

// addCmd creates a new property listing owned by the signed-in account.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "List a new property",
	Long: `The add command publishes a new property listing. It prompts for the
listing details (title, locality, price, size) and prints the identifier
assigned to the listing, which later edit and remove commands take.`,

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

		p, err := promptListing()
		if err != nil {
			return err
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Publishing listing", spinnerFrames, 120*time.Millisecond)
		id, err := client.CreateProperty(cmd.Context(), p)
		stopSpinner()
		if err != nil {
			return presentClientError(err, "publishing your listing")
		}

		fmt.Printf("🏠 Listing published with id %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// promptListing collects a complete listing from the terminal.
func promptListing() (api.Property, error) {
	var p api.Property

	p.Title = promptLine("Title: ")
	if p.Title == "" {
		return p, errors.New("title is required")
	}
	p.Locality = promptLine("Locality: ")
	if p.Locality == "" {
		return p, errors.New("locality is required")
	}
	p.City = promptLine("City (optional): ")
	p.Description = promptLine("Description (optional): ")
	p.PropertyType = promptLine("Property type (apartment/house/studio): ")
	if p.PropertyType == "" {
		return p, errors.New("property type is required")
	}

	var err error
	if p.Price, err = promptFloat("Monthly price: "); err != nil {
		return p, err
	}
	if p.BHK, err = promptInt("Bedrooms (BHK): "); err != nil {
		return p, err
	}
	if p.Bathrooms, err = promptInt("Bathrooms: "); err != nil {
		return p, err
	}
	if p.AreaSqft, err = promptInt("Area (sqft): "); err != nil {
		return p, err
	}
	return p, nil
}

func promptInt(prompt string) (int, error) {
	raw := promptLine(prompt)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a valid number", raw)
	}
	return n, nil
}

func promptFloat(prompt string) (float64, error) {
	raw := promptLine(prompt)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%q is not a valid amount", raw)
	}
	return f, nil
}
