// Package terminal provides utilities for terminal operations such as clearing text.
package terminal

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines clears text from the terminal that was previously printed.
// It calculates how many lines the text occupied at the current terminal width,
// then moves up and clears each line with ANSI escape sequences.
//
// This is used to scrub credential prompts from the screen after the user has
// entered them. textLength is the total character count of prompt plus input.
// One extra line is cleared to account for the newline emitted by Enter.
func ClearPreviousLines(textLength int) {
	termWidth := 80 // fallback when size is unavailable
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}

	lines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if lines < 1 {
		lines = 1
	}
	linesToClear := lines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K") // clear entire line
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A") // move up one line
		}
	}
}
