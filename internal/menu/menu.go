// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package menu presents the user menu: a read-only projection of session
// state into either a login/signup affordance or an authenticated menu with
// a logout action. Building the menu never mutates the session.
package menu

import (
	"strings"

	"github.com/pterm/pterm"

	"homescout/cli/internal/api"
	"homescout/cli/internal/session"
)

// Action identifies what a menu entry does when activated.
type Action int

const (
	ActionLogin Action = iota
	ActionSignup
	ActionMyProperties
	ActionLogout
)

// Entry is a single activatable menu item.
type Entry struct {
	Label  string
	Action Action
}

// Menu is the presented state. It is derived purely from the session store
// at build time.
type Menu struct {
	Authenticated bool
	// Title is the display name when authenticated, a greeting otherwise.
	Title string
	// Email is shown under the title when the profile has one.
	Email   string
	Entries []Entry
}

// Build derives the menu from current session state.
func Build(store session.Store) Menu {
	if !store.IsAuthenticated() {
		return Menu{
			Title: "Welcome to HomeScout",
			Entries: []Entry{
				{Label: "Login", Action: ActionLogin},
				{Label: "Sign Up", Action: ActionSignup},
			},
		}
	}

	user := store.User()
	m := Menu{
		Authenticated: true,
		Title:         user.DisplayName(),
		Entries: []Entry{
			{Label: "My Properties", Action: ActionMyProperties},
			{Label: "Log out", Action: ActionLogout},
		},
	}
	if user != nil {
		m.Email = user.Email
	}
	return m
}

// Render formats the menu for the terminal.
func (m Menu) Render() string {
	var b strings.Builder
	if m.Authenticated && m.Email != "" {
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint(m.Email))
		b.WriteString("\n")
	}

	items := make([]pterm.BulletListItem, 0, len(m.Entries))
	for _, e := range m.Entries {
		items = append(items, pterm.BulletListItem{Level: 0, Text: e.Label})
	}
	if list, err := pterm.DefaultBulletList.WithItems(items).Srender(); err == nil {
		b.WriteString(list)
	}

	return pterm.DefaultBox.WithTitle(pterm.NewStyle(pterm.Bold).Sprint(m.Title)).Sprint(strings.TrimRight(b.String(), "\n"))
}

// RequireAuth guards views that need a session: when unauthenticated it
// hands off to login navigation and reports false. Otherwise it has no
// effect.
func RequireAuth(store session.Store, nav api.Navigator) bool {
	if store.IsAuthenticated() {
		return true
	}
	if nav != nil {
		nav.ToLogin()
	}
	return false
}
