// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session implements persistence for the authenticated session: an
// opaque access token paired with a user profile record. The token is issued
// by the backend login flow and presence of a token alone decides
// authentication status; no local validation of format or expiry happens
// here. Expiry is discovered through request outcomes.
package session

// Store is the durable session store. It is passed explicitly to the
// components that need it so tests can substitute a fake.
type Store interface {
	// Token returns the stored access token verbatim, or "" when absent.
	Token() string
	// User returns the stored profile, or nil when absent or unreadable.
	User() *User
	// IsAuthenticated reports whether a token is present. It is a
	// non-empty-string check, not a validity check.
	IsAuthenticated() bool
	// SetAuth unconditionally overwrites both the token and the profile.
	SetAuth(token string, user *User) error
	// ClearAuth removes both stored values. Clearing an already-empty
	// store is a no-op.
	ClearAuth() error
	// AuthHeaders returns the authorization header derived from the
	// stored token, or an empty map when unauthenticated.
	AuthHeaders() map[string]string
}

// bearerHeaders builds the single-entry authorization mapping for a token.
func bearerHeaders(token string) map[string]string {
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
