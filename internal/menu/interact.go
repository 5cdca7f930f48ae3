// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package menu

import (
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"homescout/cli/internal/api"
)

// Handlers binds the authenticated menu actions to behavior. Navigation
// actions go through the Navigator instead.
type Handlers struct {
	MyProperties func() error
	Logout       func() error
}

// Run wires interactivity onto a built menu: it shows a selector and
// dispatches the chosen entry. Callers invoke it once, after rendering.
// Without an interactive terminal it is a no-op rather than a failure.
func Run(m Menu, nav api.Navigator, h Handlers) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	labels := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		labels = append(labels, e.Label)
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		Show("Choose an option")
	if err != nil {
		return err
	}

	for _, e := range m.Entries {
		if e.Label != choice {
			continue
		}
		switch e.Action {
		case ActionLogin:
			if nav != nil {
				nav.ToLogin()
			}
		case ActionSignup:
			if nav != nil {
				nav.ToSignup()
			}
		case ActionMyProperties:
			if h.MyProperties != nil {
				return h.MyProperties()
			}
		case ActionLogout:
			if h.Logout != nil {
				return h.Logout()
			}
		}
		return nil
	}
	return nil
}
