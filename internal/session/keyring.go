// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

// This file stores the session in the OS keychain via internal/keychain.
package session

import (
	"encoding/json"
	"fmt"
	"os"

	"homescout/cli/internal/keychain"
)

var verboseSession = os.Getenv("HOMESCOUT_VERBOSE") == "1"

// Keyring is the durable Store backed by the OS keychain. The token and the
// serialized profile live under two separate keys.
type Keyring struct {
	km *keychain.Manager
}

// OpenKeyring returns a keychain-backed session store.
func OpenKeyring() (*Keyring, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return nil, err
	}
	return &Keyring{km: km}, nil
}

// Token returns the stored access token. Any keychain failure, including a
// missing entry, reads as absent.
func (k *Keyring) Token() string {
	token, err := k.km.LoadAccessToken()
	if err != nil {
		if verboseSession {
			fmt.Printf("[DEBUG] session: no token in keychain: %v\n", err)
		}
		return ""
	}
	return token
}

// User returns the stored profile. Missing or malformed data reads as nil.
func (k *Keyring) User() *User {
	data, err := k.km.LoadUserProfile()
	if err != nil {
		return nil
	}
	return decodeUser(data)
}

// IsAuthenticated reports whether a token is present.
func (k *Keyring) IsAuthenticated() bool {
	return k.Token() != ""
}

// SetAuth overwrites the stored token and profile.
func (k *Keyring) SetAuth(token string, user *User) error {
	if err := k.km.SaveAccessToken(token); err != nil {
		return err
	}
	profile := []byte{}
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return err
		}
		profile = b
	}
	return k.km.SaveUserProfile(profile)
}

// ClearAuth removes the token and profile. Idempotent.
func (k *Keyring) ClearAuth() error {
	return k.km.ClearAuth()
}

// AuthHeaders returns the bearer authorization mapping for the stored token.
func (k *Keyring) AuthHeaders() map[string]string {
	return bearerHeaders(k.Token())
}
