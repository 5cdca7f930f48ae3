package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "homescout/cli/internal/errors"
	"homescout/cli/internal/session"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("bad login body: %v", err)
		}
		if creds["email"] != "jo@x.com" || creds["password"] != "hunter22" {
			t.Errorf("credentials not forwarded: %v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "tok-issued",
			"token_type": "bearer",
			"user": {"id": "u-1", "name": "Jo", "email": "jo@x.com", "is_active": true}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemory(), &fakeNav{})
	token, user, err := c.Login(context.Background(), "jo@x.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-issued" {
		t.Errorf("token = %q", token)
	}
	if user == nil || user.Name != "Jo" || user.Email != "jo@x.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestLoginRejectedIsNotSessionExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := session.NewMemory()
	nav := &fakeNav{}
	c := New(srv.URL, store, nav)

	_, _, err := c.Login(context.Background(), "jo@x.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var e *apperrors.E
	if !stderrors.As(err, &e) || e.Kind != apperrors.LoginFailed {
		t.Errorf("error = %v, want login_failed kind", err)
	}
	if IsSessionExpired(err) {
		t.Error("login rejection classified as session expiry")
	}
	if nav.logins != 0 {
		t.Error("login rejection triggered navigation")
	}
}

func TestSignupCreatedStoresNothingButReturnsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"access_token": "tok-new", "user": {"name": "New", "email": "new@x.com"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemory(), &fakeNav{})
	token, user, err := c.Signup(context.Background(), SignupRequest{
		Email: "new@x.com", Name: "New", Password: "secret6",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if token != "tok-new" || user == nil || user.Email != "new@x.com" {
		t.Errorf("got token %q user %+v", token, user)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Email already registered"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemory(), &fakeNav{})
	_, _, err := c.Signup(context.Background(), SignupRequest{Email: "dup@x.com", Name: "Dup", Password: "secret6"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Email already registered") {
		t.Errorf("error %q lost the backend detail", err)
	}
}

func TestMeGoesThroughWrapper(t *testing.T) {
	c, store, nav, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id": "u-1", "name": "Jo", "email": "jo@x.com", "is_active": true}`))
	}))

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Name != "Jo" {
		t.Errorf("user = %+v", user)
	}

	// Expired token: Me surfaces the distinguished error and the side effects
	_ = store.SetAuth("stale", nil)
	_, err = c.Me(context.Background())
	if !IsSessionExpired(err) {
		t.Errorf("Me with bad token: err = %v, want session expired", err)
	}
	if store.IsAuthenticated() || nav.logins != 1 {
		t.Errorf("session cleared = %v, logins = %d", !store.IsAuthenticated(), nav.logins)
	}
}

func TestMeErrorClassification(t *testing.T) {
	// A 500 is the backend answering, so it surfaces as a typed error.
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"search cluster down"}`, http.StatusInternalServerError)
	}))
	_, err := c.Me(context.Background())
	var e *apperrors.E
	if !stderrors.As(err, &e) || e.Kind != apperrors.BackendError {
		t.Errorf("Me with 500: err = %v, want typed backend error", err)
	}
	if IsSessionExpired(err) {
		t.Error("500 misclassified as session expiry")
	}

	// A transport failure carries no typed kind; that is the offline signal.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	store := session.NewMemory()
	_ = store.SetAuth("tok", nil)
	_, err = New(srv.URL, store, &fakeNav{}).Me(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if stderrors.As(err, &e) {
		t.Errorf("transport failure carries a typed kind: %v", err)
	}
}

func TestParseTokenResponseFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "access_token", body: `{"access_token": "a"}`, want: "a"},
		{name: "accessToken", body: `{"accessToken": "b"}`, want: "b"},
		{name: "token", body: `{"token": "c"}`, want: "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := parseTokenResponse(strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("parseTokenResponse: %v", err)
			}
			if token != tt.want {
				t.Errorf("token = %q, want %q", token, tt.want)
			}
		})
	}

	if _, _, err := parseTokenResponse(strings.NewReader(`{"user": {}}`)); err == nil {
		t.Error("missing token did not error")
	}
}
