// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"homescout/cli/internal/errors"
	"homescout/cli/internal/session"
)

// SignupRequest is the payload for account registration.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Login calls POST /auth/login with email and password. On success it
// returns the issued access token and the user record; storing them is the
// caller's job. Login and signup run outside Fetch: a 401 here means wrong
// credentials, not an expired session, and must not clear anything.
func (c *Client) Login(ctx context.Context, email, password string) (string, *session.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", nil, errors.New(errors.LoginFailed, "incorrect email or password")
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", nil, errors.Wrap(errors.BackendError, "login failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	return parseTokenResponse(resp.Body)
}

// Signup calls POST /auth/signup. The backend issues a token right away, so
// a successful signup doubles as a login.
func (c *Client) Signup(ctx context.Context, r SignupRequest) (string, *session.User, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/signup", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(b))
		if resp.StatusCode == http.StatusBadRequest {
			return "", nil, errors.New(errors.LoginFailed, extractDetail(msg))
		}
		return "", nil, errors.Wrap(errors.BackendError, "signup failed",
			fmt.Errorf("%d %s", resp.StatusCode, msg))
	}

	return parseTokenResponse(resp.Body)
}

// Me calls GET /auth/me through the authenticated wrapper and returns the
// backend's view of the current user.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	resp, err := c.Fetch(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrap(errors.BackendError, "whoami failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var u session.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout calls POST /auth/logout through the authenticated wrapper. The
// backend's tokens are stateless, so this is informational; callers treat
// it as best-effort and clear the local session regardless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.Fetch(ctx, "/auth/logout", &Options{Method: http.MethodPost})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("logout failed: %d %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// parseTokenResponse decodes a token-issuing response liberally: the token
// may appear under a few different field names, and the user record rides
// along under "user".
func parseTokenResponse(r io.Reader) (string, *session.User, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return "", nil, err
	}

	token := extractAccessToken(raw)
	if token == "" {
		return "", nil, errors.New(errors.BackendError, "no access token in response")
	}

	var user *session.User
	if payload, ok := raw["user"]; ok {
		if b, err := json.Marshal(payload); err == nil {
			var u session.User
			if err := json.Unmarshal(b, &u); err == nil {
				user = &u
			}
		}
	}
	return token, user, nil
}

// extractAccessToken extracts the access token from the response payload.
// It tries multiple common field names to be resilient to different response formats.
func extractAccessToken(result map[string]any) string {
	if v, ok := result["access_token"].(string); ok && v != "" {
		return v
	}
	if v, ok := result["accessToken"].(string); ok && v != "" {
		return v
	}
	if v, ok := result["token"].(string); ok && v != "" {
		return v
	}
	return ""
}

// extractDetail pulls the backend's {"detail": "..."} message out of an
// error body, falling back to the raw text.
func extractDetail(body string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if body == "" {
		return "request rejected"
	}
	return body
}
