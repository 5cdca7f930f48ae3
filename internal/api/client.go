// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api implements the HTTP client for the HomeScout backend. Its
// center is Fetch, the authenticated request wrapper: it attaches the
// session's bearer token to outgoing requests and consumes the backend's
// 401 contract by clearing the session, handing off to navigation, and
// failing the call with a distinguished session-expired error.
package api

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"homescout/cli/internal/errors"
	"homescout/cli/internal/session"
)

// Client issues requests against the backend on behalf of the stored session.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	nav     Navigator
}

// New creates a Client with a 10-second request timeout. The session store
// and navigator are injected so tests can substitute fakes.
func New(baseURL string, store session.Store, nav Navigator) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
		nav:     nav,
	}
}

// Options carries the caller-controlled parts of a request.
type Options struct {
	// Method defaults to GET.
	Method string
	// Header entries are sent as given. The session's Authorization
	// header wins over a caller-supplied one; everything else coexists.
	Header http.Header
	// Query is appended to the request URL.
	Query url.Values
	// Body is the request body, if any.
	Body io.Reader
	// ContentType is set on the request when non-empty.
	ContentType string
}

// Fetch issues an HTTP request with the session's auth headers merged in.
//
// The response contract is thin: a 401 means the session is no
// longer valid, so the store is cleared, the navigator is invoked once, and
// the caller receives a session-expired error instead of the response. Every
// other status, error statuses included, resolves as the response itself.
// Transport failures propagate unmodified; there is no retry.
//
// The auth headers are read at call time, so a call already in flight keeps
// the headers it sent even if another call clears the session meanwhile.
func (c *Client) Fetch(ctx context.Context, path string, opts *Options) (*http.Response, error) {
	if opts == nil {
		opts = &Options{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := path
	if !strings.Contains(path, "://") {
		target = c.baseURL + path
	}
	if len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return nil, err
	}
	for k, vals := range opts.Header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	}
	for k, v := range c.store.AuthHeaders() {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
		_ = c.store.ClearAuth()
		// The expiry wording belongs to the 401 path only; the navigator
		// is also used for plain login prompts.
		pterm.Println("🔒 Your session has expired.")
		pterm.Println("   Run 'homescout login' to sign in again.")
		if c.nav != nil {
			c.nav.ToLogin()
		}
		return nil, errors.New(errors.SessionExpired, "session expired, please log in again")
	}

	return resp, nil
}

// IsSessionExpired reports whether err is the wrapper's distinguished
// session-expired failure.
func IsSessionExpired(err error) bool {
	var e *errors.E
	if stderrors.As(err, &e) {
		return e.Kind == errors.SessionExpired
	}
	return false
}
