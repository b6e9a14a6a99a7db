// Package strings provides small string helpers for terminal output.
package strings

import "strings"

// Truncate shortens a string to n runes with a trailing ellipsis.
// If n < 4, uses n = 4 to ensure room for "...".
func Truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PadRight pads s with spaces to width runes. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
