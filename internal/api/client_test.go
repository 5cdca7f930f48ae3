package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"homescout/cli/internal/session"
)

type fakeNav struct {
	logins  int
	signups int
}

func (f *fakeNav) ToLogin()  { f.logins++ }
func (f *fakeNav) ToSignup() { f.signups++ }

func authedClient(t *testing.T, handler http.Handler) (*Client, *session.Memory, *fakeNav, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemory()
	if err := store.SetAuth("tok-123", &session.User{Name: "Jo", Email: "jo@x.com"}); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	nav := &fakeNav{}
	return New(srv.URL, store, nav), store, nav, srv
}

func TestFetchUnauthorizedClearsSessionAndNavigates(t *testing.T) {
	c, store, nav, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	resp, err := c.Fetch(context.Background(), "/api/properties/my-properties", nil)
	if resp != nil {
		t.Fatal("caller must not receive the 401 response")
	}
	if err == nil {
		t.Fatal("expected session-expired error")
	}
	if !IsSessionExpired(err) {
		t.Errorf("IsSessionExpired(%v) = false", err)
	}
	if !strings.Contains(err.Error(), "session expired") {
		t.Errorf("error %q lacks human-readable message", err)
	}
	if store.IsAuthenticated() {
		t.Error("session not cleared after 401")
	}
	if store.User() != nil {
		t.Error("profile not cleared after 401")
	}
	if nav.logins != 1 {
		t.Errorf("login navigation triggered %d times, want 1", nav.logins)
	}
}

func TestFetchSuccessLeavesSessionAlone(t *testing.T) {
	var gotAuth string
	c, store, nav, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))

	resp, err := c.Fetch(context.Background(), "/auth/me", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token from session", gotAuth)
	}
	if !store.IsAuthenticated() {
		t.Error("session cleared on success")
	}
	if nav.logins != 0 {
		t.Error("navigation triggered on success")
	}
}

func TestFetchOtherErrorStatusesPassThrough(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		c, store, nav, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		resp, err := c.Fetch(context.Background(), "/whatever", nil)
		if err != nil {
			t.Fatalf("status %d: Fetch returned error %v, want response", status, err)
		}
		resp.Body.Close()
		if resp.StatusCode != status {
			t.Errorf("status = %d, want %d", resp.StatusCode, status)
		}
		if !store.IsAuthenticated() {
			t.Errorf("status %d cleared the session", status)
		}
		if nav.logins != 0 {
			t.Errorf("status %d triggered navigation", status)
		}
	}
}

func TestFetchMergesCallerHeaders(t *testing.T) {
	var gotCustom, gotAuth string
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCustom = r.Header.Get("X-Request-Source")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))

	h := http.Header{}
	h.Set("X-Request-Source", "cli")
	resp, err := c.Fetch(context.Background(), "/auth/me", &Options{Header: h})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	resp.Body.Close()

	if gotCustom != "cli" {
		t.Errorf("caller header dropped, got %q", gotCustom)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("auth header dropped, got %q", gotAuth)
	}
}

func TestFetchAuthorizationPrecedence(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	t.Run("session token wins over caller header", func(t *testing.T) {
		c, _, _, _ := authedClient(t, handler)
		h := http.Header{}
		h.Set("Authorization", "Bearer caller-token")
		resp, err := c.Fetch(context.Background(), "/auth/me", &Options{Header: h})
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		resp.Body.Close()
		if gotAuth != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want session token", gotAuth)
		}
	})

	t.Run("caller header survives when unauthenticated", func(t *testing.T) {
		srv := httptest.NewServer(handler)
		defer srv.Close()
		c := New(srv.URL, session.NewMemory(), &fakeNav{})

		h := http.Header{}
		h.Set("Authorization", "Bearer caller-token")
		resp, err := c.Fetch(context.Background(), "/auth/me", &Options{Header: h})
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		resp.Body.Close()
		if gotAuth != "Bearer caller-token" {
			t.Errorf("Authorization = %q, want caller token", gotAuth)
		}
	})
}

func TestFetchNetworkErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	store := session.NewMemory()
	_ = store.SetAuth("tok", nil)
	nav := &fakeNav{}
	c := New(srv.URL, store, nav)

	_, err := c.Fetch(context.Background(), "/auth/me", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if IsSessionExpired(err) {
		t.Error("transport error misclassified as session expiry")
	}
	if !store.IsAuthenticated() {
		t.Error("transport error cleared the session")
	}
	if nav.logins != 0 {
		t.Error("transport error triggered navigation")
	}
}

func TestFetchForwardsMethodQueryAndCancellation(t *testing.T) {
	var gotMethod, gotQuery string
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))

	q := url.Values{}
	q.Set("locality", "bandra")
	resp, err := c.Fetch(context.Background(), "/api/properties/search/", &Options{Method: http.MethodPost, Query: q})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	resp.Body.Close()
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotQuery != "locality=bandra" {
		t.Errorf("query = %q", gotQuery)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Fetch(ctx, "/auth/me", nil); err == nil {
		t.Error("cancelled context did not fail the call")
	}
}
