// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"homescout/cli/internal/config"
)

var configBaseURL string

// configCmd shows or updates the non-secret CLI configuration. Secrets
// (the session token and profile) live in the OS keychain, not here.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update CLI configuration",
	Long: `The config command prints the current CLI configuration. With
--base-url it points the CLI at a different backend, for example a local
development server:

  homescout config --base-url http://localhost:8000

HOMESCOUT_BASE_URL overrides the stored value for a single invocation.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL = strings.TrimRight(configBaseURL, "/")
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✅ Backend set to %s\n", cfg.BaseURL)
			return nil
		}

		fmt.Printf("base_url: %s\n", cfg.BaseURL)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configBaseURL, "base-url", "", "Backend base URL")
}
