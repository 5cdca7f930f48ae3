// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"encoding/json"
	"sync"
)

// Memory is a non-durable Store. It keeps the same two-slot shape as the
// keychain store (raw token string, serialized profile) so it behaves
// identically with respect to malformed profile data. Used in tests and as
// a fallback on platforms without secure storage.
type Memory struct {
	mu      sync.RWMutex
	token   string
	profile []byte
}

// NewMemory returns an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{}
}

// Token returns the stored access token, or "" when absent.
func (m *Memory) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the stored profile. Malformed data reads as nil.
func (m *Memory) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeUser(m.profile)
}

// IsAuthenticated reports whether a token is present.
func (m *Memory) IsAuthenticated() bool {
	return m.Token() != ""
}

// SetAuth overwrites the stored token and profile.
func (m *Memory) SetAuth(token string, user *User) error {
	profile := []byte{}
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return err
		}
		profile = b
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.profile = profile
	return nil
}

// ClearAuth removes the token and profile. Idempotent.
func (m *Memory) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.profile = nil
	return nil
}

// AuthHeaders returns the bearer authorization mapping for the stored token.
func (m *Memory) AuthHeaders() map[string]string {
	return bearerHeaders(m.Token())
}
