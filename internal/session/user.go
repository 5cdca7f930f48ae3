// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import "encoding/json"

// User is the profile record paired with the session token.
// Name and Email are optional; a zero value means the backend did not
// provide the field. Fields the CLI does not model are preserved in
// Extra so a stored profile round-trips without loss.
type User struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Active bool

	// Extra holds any additional profile fields returned by the backend.
	Extra map[string]any
}

// knownUserFields are lifted out of the payload into struct fields.
var knownUserFields = map[string]bool{
	"id": true, "name": true, "email": true, "phone": true, "is_active": true,
}

// UnmarshalJSON decodes a profile payload liberally: known fields are mapped
// onto the struct, everything else lands in Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["id"].(string); ok {
		u.ID = v
	}
	if v, ok := raw["name"].(string); ok {
		u.Name = v
	}
	if v, ok := raw["email"].(string); ok {
		u.Email = v
	}
	if v, ok := raw["phone"].(string); ok {
		u.Phone = v
	}
	if v, ok := raw["is_active"].(bool); ok {
		u.Active = v
	}

	for k, v := range raw {
		if knownUserFields[k] {
			continue
		}
		if u.Extra == nil {
			u.Extra = map[string]any{}
		}
		u.Extra[k] = v
	}
	return nil
}

// MarshalJSON emits the backend's wire shape, merging Extra back in.
func (u User) MarshalJSON() ([]byte, error) {
	raw := map[string]any{}
	for k, v := range u.Extra {
		raw[k] = v
	}
	if u.ID != "" {
		raw["id"] = u.ID
	}
	if u.Name != "" {
		raw["name"] = u.Name
	}
	if u.Email != "" {
		raw["email"] = u.Email
	}
	if u.Phone != "" {
		raw["phone"] = u.Phone
	}
	raw["is_active"] = u.Active
	return json.Marshal(raw)
}

// DisplayName returns the user's name, falling back to a generic placeholder
// when the profile has none.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "User"
	}
	return u.Name
}

// decodeUser parses a stored profile. Malformed or empty data yields nil,
// never an error: a profile we cannot read is treated as absent.
func decodeUser(data []byte) *User {
	if len(data) == 0 {
		return nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}
