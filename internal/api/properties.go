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
	"net/url"
	"strconv"
	"strings"

	"homescout/cli/internal/errors"
)

// Property mirrors the backend's listing record.
type Property struct {
	ID           string   `json:"-"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Locality     string   `json:"locality"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Price        float64  `json:"price"`
	BHK          int      `json:"bhk"`
	Bathrooms    int      `json:"bathrooms"`
	AreaSqft     int      `json:"area_sqft"`
	PropertyType string   `json:"property_type"`
	Furnished    *bool    `json:"furnished_or_unfurnished,omitempty"`
	Lift         *bool    `json:"lift_available,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// SearchQuery holds the supported property search filters. Zero values are
// omitted from the request.
type SearchQuery struct {
	Locality      string
	Keywords      string
	TitleKeywords string
	BHK           int
	MinSqft       int
	MaxSqft       int
	MinPrice      int
	MaxPrice      int
	Furnished     *bool
	HasLift       *bool
	Size          int
}

// values encodes the query as URL parameters.
func (q SearchQuery) values() url.Values {
	v := url.Values{}
	setStr := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setInt := func(key string, val int) {
		if val > 0 {
			v.Set(key, strconv.Itoa(val))
		}
	}
	setStr("locality", q.Locality)
	setStr("keywords", q.Keywords)
	setStr("title_keywords", q.TitleKeywords)
	setInt("bhk", q.BHK)
	setInt("min_sqft", q.MinSqft)
	setInt("max_sqft", q.MaxSqft)
	setInt("min_price", q.MinPrice)
	setInt("max_price", q.MaxPrice)
	if q.Furnished != nil {
		v.Set("is_furnished", strconv.FormatBool(*q.Furnished))
	}
	if q.HasLift != nil {
		v.Set("has_lift", strconv.FormatBool(*q.HasLift))
	}
	setInt("size", q.Size)
	return v
}

// searchEnvelope is the search-engine response shape the backend passes
// through verbatim: matches live under hits.hits[] with the document in
// _source and its identifier in _id.
type searchEnvelope struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

type searchHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// SearchProperties calls GET /api/properties/search/ with the given filters.
// Search is public, so it bypasses the authenticated wrapper.
func (c *Client) SearchProperties(ctx context.Context, q SearchQuery) ([]Property, error) {
	target := c.baseURL + "/api/properties/search/"
	if params := q.values().Encode(); params != "" {
		target += "?" + params
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrap(errors.BackendError, "search failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	return decodeProperties(resp.Body)
}

// MyProperties calls GET /api/properties/my-properties through the
// authenticated wrapper and returns the caller's own listings.
func (c *Client) MyProperties(ctx context.Context) ([]Property, error) {
	resp, err := c.Fetch(ctx, "/api/properties/my-properties", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrap(errors.BackendError, "listing fetch failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	return decodeProperties(resp.Body)
}

// CreateProperty calls POST /api/properties/ through the authenticated
// wrapper and returns the identifier the backend assigned to the listing.
func (c *Client) CreateProperty(ctx context.Context, p Property) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	resp, err := c.Fetch(ctx, "/api/properties/", &Options{
		Method:      http.MethodPost,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return "", errors.Wrap(errors.BackendError, "listing create failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var out struct {
		ID string `json:"opensearch_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New(errors.BackendError, "no listing id in response")
	}
	return out.ID, nil
}

// GetProperty calls GET /api/properties/{id} and returns the listing.
func (c *Client) GetProperty(ctx context.Context, id string) (*Property, error) {
	resp, err := c.Fetch(ctx, "/api/properties/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.BackendError, "property not found")
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrap(errors.BackendError, "listing fetch failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var doc searchHit
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	var p Property
	if err := json.Unmarshal(doc.Source, &p); err != nil {
		return nil, errors.Wrap(errors.BackendError, "unrecognized listing payload", err)
	}
	p.ID = doc.ID
	return &p, nil
}

// UpdateProperty calls PUT /api/properties/{id} with the full listing; the
// backend replaces the stored document's fields with it.
func (c *Client) UpdateProperty(ctx context.Context, id string, p Property) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	resp, err := c.Fetch(ctx, "/api/properties/"+url.PathEscape(id), &Options{
		Method:      http.MethodPut,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return errors.Wrap(errors.BackendError, "listing update failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}
	return nil
}

// DeleteProperty calls DELETE /api/properties/{id}.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	resp, err := c.Fetch(ctx, "/api/properties/"+url.PathEscape(id), &Options{Method: http.MethodDelete})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.New(errors.BackendError, "property not found")
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return errors.Wrap(errors.BackendError, "listing delete failed",
			fmt.Errorf("%d %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}
	return nil
}

// decodeProperties accepts either the raw search-engine envelope or a plain
// JSON array of records; the backend uses both shapes.
func decodeProperties(r io.Reader) ([]Property, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Hits.Hits != nil {
		out := make([]Property, 0, len(env.Hits.Hits))
		for _, hit := range env.Hits.Hits {
			var p Property
			if err := json.Unmarshal(hit.Source, &p); err != nil {
				continue
			}
			p.ID = hit.ID
			out = append(out, p)
		}
		return out, nil
	}

	var plain []Property
	if err := json.Unmarshal(body, &plain); err != nil {
		return nil, errors.Wrap(errors.BackendError, "unrecognized listing payload", err)
	}
	return plain, nil
}
