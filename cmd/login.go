// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"homescout/cli/internal/api"
	"homescout/cli/internal/config"
	apperrors "homescout/cli/internal/errors"
	"homescout/cli/internal/httperrors"
	"homescout/cli/internal/session"
)

// loginCmd represents the login command for password authentication.
// It prompts for the account email and password, exchanges them for an
// access token, and stores the resulting session securely.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to your HomeScout account",
	Long: `The login command signs in with your HomeScout email and password. On
success the issued access token and your profile are stored in the OS
keychain, and subsequent commands run authenticated until the backend
reports the session as expired.

If already logged in with a valid session, the authentication flow is
skipped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		store, err := openStore()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system")
			fmt.Println("   Keychain is only supported on macOS and Windows")
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// No navigator here: a 401 during the pre-check must not bounce
		// the user to the login page they are already on.
		client := api.New(cfg.BaseURL, store, nil)

		// If already logged in with a valid token, short-circuit
		if store.IsAuthenticated() {
			if user, err := client.Me(ctx); err == nil {
				fmt.Printf("Already logged in as %s\n", identifierFor(user))
				return nil
			}
			// Session no longer valid; the wrapper has cleared it. Fall
			// through to a fresh login.
		}

		email := promptLine("Email: ")
		if email == "" {
			return errors.New("email is required")
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("password is required")
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Signing in", spinnerFrames, 120*time.Millisecond)
		token, user, err := client.Login(ctx, email, password)
		stopSpinner()
		if err != nil {
			var e *apperrors.E
			if errors.As(err, &e) && e.Kind == apperrors.LoginFailed {
				fmt.Println("❌ " + e.Message)
				return err
			}
			return httperrors.FormatNetworkError(err, "signing in")
		}

		if err := store.SetAuth(token, user); err != nil {
			return err
		}

		fmt.Println(getRandomLoginGreeting(identifierFor(user)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// identifierFor picks the friendliest identifier available for a user.
func identifierFor(user *session.User) string {
	if user == nil {
		return "User"
	}
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return user.DisplayName()
}

// getRandomLoginGreeting returns a random greeting phrase with the user's identifier
func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🏠 You're all set, %s!",
		"👋 Hello %s! Ready to browse?",
		"✅ Successfully signed in as %s",
		"🔓 Access granted! Welcome %s!",
	}

	idx := rand.Intn(len(greetings))
	return fmt.Sprintf(greetings[idx], identifier)
}
