// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the HomeScout CLI.
// It implements subcommands for authentication, property search, and the
// user menu using the Cobra CLI framework, with a terminal UI built on
// pterm. The session token and user profile persist in the OS keychain
// between invocations.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/config"
	apperrors "homescout/cli/internal/errors"
	"homescout/cli/internal/httperrors"
	"homescout/cli/internal/logging"
	"homescout/cli/internal/session"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "homescout",
	Short:         "HomeScout CLI for the property search service",
	Long:          `HomeScout is a command-line client for the HomeScout property search service: sign in, browse listings, and manage your own properties from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			ctx := context.Background()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := api.New(cfg.BaseURL, session.NewMemory(), nil)
			backendStatus, err := client.Ping(ctx)
			if err != nil {
				backendStatus = "unreachable"
			}

			fmt.Printf("homescout %s\nbackend %s\n", Version, backendStatus)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during
// execution. Errors pass through the credential mask before printing.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("homescout", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and backend status")
}

// openStore returns the keychain-backed session store, with a friendly
// message when secure storage is unavailable on this platform.
func openStore() (session.Store, error) {
	store, err := session.OpenKeyring()
	if err != nil {
		return nil, fmt.Errorf("secure storage unavailable: %w", err)
	}
	return store, nil
}

// newClient builds the backend client around the given store, with browser
// navigation to the web login/signup pages.
func newClient(store session.Store) (*api.Client, *api.Browser, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	nav := &api.Browser{Base: cfg.BaseURL}
	return api.New(cfg.BaseURL, store, nav), nav, nil
}

// presentClientError reports a failed backend call. An expired session was
// already explained by the wrapper; a typed backend error means the service
// answered and its message is shown; everything else is a network problem.
func presentClientError(err error, context string) error {
	if api.IsSessionExpired(err) {
		return nil
	}
	var e *apperrors.E
	if stderrors.As(err, &e) {
		fmt.Println("❌ " + e.Message)
		return err
	}
	return httperrors.FormatNetworkError(err, context)
}
