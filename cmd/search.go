// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/httperrors"
	"homescout/cli/internal/session"
)

var (
	searchLocality  string
	searchKeywords  string
	searchTitle     string
	searchBHK       int
	searchMinSqft   int
	searchMaxSqft   int
	searchMinPrice  int
	searchMaxPrice  int
	searchFurnished bool
	searchLift      bool
	searchLimit     int
)

// searchCmd searches public property listings. No session required.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search property listings",
	Long: `The search command queries the public property index. Filters can be
combined freely; unset filters are omitted from the query.

Examples:
  homescout search --locality bandra --bhk 2
  homescout search --keywords "sea view" --max-price 90000 --furnished`,

	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(session.NewMemory())
		if err != nil {
			return err
		}

		q := api.SearchQuery{
			Locality:      searchLocality,
			Keywords:      searchKeywords,
			TitleKeywords: searchTitle,
			BHK:           searchBHK,
			MinSqft:       searchMinSqft,
			MaxSqft:       searchMaxSqft,
			MinPrice:      searchMinPrice,
			MaxPrice:      searchMaxPrice,
			Size:          searchLimit,
		}
		// Boolean filters are tri-state on the wire; only send them when
		// the flag was given.
		if cmd.Flags().Changed("furnished") {
			q.Furnished = &searchFurnished
		}
		if cmd.Flags().Changed("lift") {
			q.HasLift = &searchLift
		}

		cursor.Hide()
		stopSpinner := startInlineSpinner(os.Stdout, "Searching", spinnerFrames, 120*time.Millisecond)
		props, err := client.SearchProperties(cmd.Context(), q)
		stopSpinner()
		cursor.Show()
		if err != nil {
			return httperrors.FormatNetworkError(err, "searching listings")
		}

		if len(props) == 0 {
			pterm.Println("No listings matched your search.")
			return nil
		}
		renderProperties(props)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchLocality, "locality", "", "Match listings in a locality (fuzzy)")
	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "Keywords matched against descriptions")
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Keywords matched against titles")
	searchCmd.Flags().IntVar(&searchBHK, "bhk", 0, "Exact number of bedrooms")
	searchCmd.Flags().IntVar(&searchMinSqft, "min-sqft", 0, "Minimum area in square feet")
	searchCmd.Flags().IntVar(&searchMaxSqft, "max-sqft", 0, "Maximum area in square feet")
	searchCmd.Flags().IntVar(&searchMinPrice, "min-price", 0, "Minimum price")
	searchCmd.Flags().IntVar(&searchMaxPrice, "max-price", 0, "Maximum price")
	searchCmd.Flags().BoolVar(&searchFurnished, "furnished", false, "Only furnished (or --furnished=false for unfurnished)")
	searchCmd.Flags().BoolVar(&searchLift, "lift", false, "Only buildings with a lift")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
}
