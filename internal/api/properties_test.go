package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homescout/cli/internal/session"
)

const searchBody = `{
	"took": 4,
	"hits": {
		"total": {"value": 2},
		"hits": [
			{"_id": "p-1", "_source": {"title": "2BHK in Bandra", "locality": "Bandra", "price": 95000, "bhk": 2, "bathrooms": 2, "area_sqft": 850, "property_type": "apartment"}},
			{"_id": "p-2", "_source": {"title": "Studio near station", "locality": "Andheri", "price": 40000, "bhk": 1, "bathrooms": 1, "area_sqft": 420, "property_type": "studio"}}
		]
	}
}`

func TestSearchPropertiesParsesEnvelope(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties/search/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("public search carried an auth header")
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemory(), &fakeNav{})
	furnished := true
	props, err := c.SearchProperties(context.Background(), SearchQuery{
		Locality:  "bandra",
		BHK:       2,
		MaxPrice:  100000,
		Furnished: &furnished,
	})
	if err != nil {
		t.Fatalf("SearchProperties: %v", err)
	}

	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}
	if props[0].ID != "p-1" || props[0].Title != "2BHK in Bandra" || props[0].BHK != 2 {
		t.Errorf("first property = %+v", props[0])
	}

	for _, frag := range []string{"locality=bandra", "bhk=2", "max_price=100000", "is_furnished=true"} {
		if !strings.Contains(gotQuery, frag) {
			t.Errorf("query %q missing %q", gotQuery, frag)
		}
	}
	if strings.Contains(gotQuery, "min_price") {
		t.Errorf("zero-valued filter leaked into query %q", gotQuery)
	}
}

func TestMyPropertiesUsesWrapper(t *testing.T) {
	c, store, nav, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		// plain array shape
		w.Write([]byte(`[{"title": "My flat", "locality": "Dadar", "price": 60000, "bhk": 2, "bathrooms": 1, "area_sqft": 700, "property_type": "apartment"}]`))
	}))

	props, err := c.MyProperties(context.Background())
	if err != nil {
		t.Fatalf("MyProperties: %v", err)
	}
	if len(props) != 1 || props[0].Title != "My flat" {
		t.Errorf("props = %+v", props)
	}

	_ = store.SetAuth("stale", nil)
	_, err = c.MyProperties(context.Background())
	if !IsSessionExpired(err) {
		t.Errorf("err = %v, want session expired", err)
	}
	if nav.logins != 1 {
		t.Errorf("logins = %d, want 1", nav.logins)
	}
}

func TestDecodePropertiesRejectsGarbage(t *testing.T) {
	if _, err := decodeProperties(strings.NewReader("not json")); err == nil {
		t.Error("garbage payload did not error")
	}
}

func TestCreateProperty(t *testing.T) {
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/properties/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Error("create ran without the session token")
		}
		var p Property
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("bad create body: %v", err)
		}
		if p.Title != "2BHK in Bandra" || p.BHK != 2 {
			t.Errorf("listing fields not forwarded: %+v", p)
		}
		w.Write([]byte(`{"result": "Property added", "opensearch_id": "p-9"}`))
	}))

	id, err := c.CreateProperty(context.Background(), Property{
		Title: "2BHK in Bandra", Locality: "Bandra", Price: 95000,
		BHK: 2, Bathrooms: 2, AreaSqft: 850, PropertyType: "apartment",
	})
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if id != "p-9" {
		t.Errorf("id = %q, want p-9", id)
	}
}

func TestGetProperty(t *testing.T) {
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/properties/p-1":
			w.Write([]byte(`{"_id": "p-1", "found": true, "_source": {"title": "2BHK in Bandra", "locality": "Bandra", "price": 95000, "bhk": 2, "bathrooms": 2, "area_sqft": 850, "property_type": "apartment"}}`))
		default:
			http.Error(w, `{"detail":"Property not found"}`, http.StatusNotFound)
		}
	}))

	p, err := c.GetProperty(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if p.ID != "p-1" || p.Title != "2BHK in Bandra" || p.AreaSqft != 850 {
		t.Errorf("property = %+v", p)
	}

	if _, err := c.GetProperty(context.Background(), "missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing listing: err = %v, want not found", err)
	}
}

func TestUpdatePropertySendsFullDocument(t *testing.T) {
	var gotMethod, gotPath string
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		var p Property
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("bad update body: %v", err)
		}
		if p.Title != "Sunny 2BHK" || p.Price != 85000 {
			t.Errorf("updated fields not forwarded: %+v", p)
		}
		w.Write([]byte(`{"result": "Property updated", "opensearch_id": "p-1"}`))
	}))

	err := c.UpdateProperty(context.Background(), "p-1", Property{
		Title: "Sunny 2BHK", Locality: "Bandra", Price: 85000,
		BHK: 2, Bathrooms: 2, AreaSqft: 850, PropertyType: "apartment",
	})
	if err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/properties/p-1" {
		t.Errorf("request = %s %s, want PUT /api/properties/p-1", gotMethod, gotPath)
	}
}

func TestDeleteProperty(t *testing.T) {
	var gotMethod string
	c, _, _, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if strings.HasSuffix(r.URL.Path, "/missing") {
			http.Error(w, `{"detail":"Property not found"}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"result": "Property deleted"}`))
	}))

	if err := c.DeleteProperty(context.Background(), "p-1"); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}

	if err := c.DeleteProperty(context.Background(), "missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing listing: err = %v, want not found", err)
	}
}

func TestListingWritesRequireValidSession(t *testing.T) {
	c, store, nav, _ := authedClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	_ = store.SetAuth("stale", nil)

	if _, err := c.CreateProperty(context.Background(), Property{Title: "x"}); !IsSessionExpired(err) {
		t.Errorf("create with stale token: err = %v, want session expired", err)
	}
	if store.IsAuthenticated() || nav.logins != 1 {
		t.Errorf("session cleared = %v, logins = %d", !store.IsAuthenticated(), nav.logins)
	}
}
