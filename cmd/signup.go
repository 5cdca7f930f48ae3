// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	apperrors "homescout/cli/internal/errors"
	"homescout/cli/internal/httperrors"
)

// signupCmd represents the signup command for account registration.
// The backend issues a token together with the new account, so a successful
// signup leaves the user logged in.
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a HomeScout account",
	Long: `The signup command registers a new HomeScout account. It prompts for
your name, email, an optional phone number, and a password (minimum 6
characters). On success you are signed in immediately and the session is
stored in the OS keychain.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		store, err := openStore()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system")
			return err
		}
		client, _, err := newClient(store)
		if err != nil {
			return err
		}

		name := promptLine("Name: ")
		if name == "" {
			return errors.New("name is required")
		}
		email := promptLine("Email: ")
		if email == "" {
			return errors.New("email is required")
		}
		phone := promptLine("Phone (optional): ")
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if len(password) < 6 {
			return errors.New("password must be at least 6 characters")
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if confirm != password {
			return errors.New("passwords do not match")
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Creating account", spinnerFrames, 120*time.Millisecond)
		token, user, err := client.Signup(ctx, api.SignupRequest{
			Email:    email,
			Name:     name,
			Phone:    phone,
			Password: password,
		})
		stopSpinner()
		if err != nil {
			var e *apperrors.E
			if errors.As(err, &e) && e.Kind == apperrors.LoginFailed {
				fmt.Println("❌ " + e.Message)
				return err
			}
			return httperrors.FormatNetworkError(err, "creating your account")
		}

		if err := store.SetAuth(token, user); err != nil {
			return err
		}

		fmt.Printf("🎉 Account created! Welcome, %s!\n", identifierFor(user))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
}
