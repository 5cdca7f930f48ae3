// Copyright (c) 2025 HomeScout
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"os/exec"
	"runtime"

	"github.com/pterm/pterm"
)

// Navigator is the navigation boundary: it takes the user to the login or
// signup view. Implementations must be best-effort and non-blocking; the
// wrapper never waits on navigation.
type Navigator interface {
	ToLogin()
	ToSignup()
}

// Browser navigates by opening the web login/signup pages in the user's
// default browser, with a terminal hint for when that fails silently.
type Browser struct {
	// Base is the web origin hosting the login and signup pages.
	Base string
}

// ToLogin opens the login page and prints how to sign in from the CLI.
// Why the session is needed is the caller's story to tell; this only
// navigates.
func (b *Browser) ToLogin() {
	pterm.Println("🔑 Opening the login page in your browser...")
	pterm.Printf("   %s\n", b.Base+"/login")
	pterm.Println("   Or run 'homescout login' to sign in from the terminal.")
	openBrowser(b.Base + "/login")
}

// ToSignup opens the signup page.
func (b *Browser) ToSignup() {
	pterm.Println("📝 Opening the sign-up page in your browser...")
	pterm.Printf("   %s\n", b.Base+"/signup")
	openBrowser(b.Base + "/signup")
}

// openBrowser attempts to open the provided URL in the user's default browser.
// It uses platform-specific commands to launch the default browser:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open command
//   - Linux: xdg-open command
//
// The function starts the browser process but does not wait for it to
// complete. It is a package variable so tests can stub the launch.
var openBrowser = func(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
