// internal/util/util.go
package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteFile writes data to a file with 0o644 permissions, creating the parent
// directory when needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// TruncateToWidth shortens text to at most width terminal cells, appending an
// ellipsis if truncated.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// PadLeft right-aligns text in a column of width cells, truncating when it
// does not fit.
func PadLeft(text string, width int) string {
	text = TruncateToWidth(text, width)
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return strings.Repeat(" ", gap) + text
}

// PadRight left-aligns text in a column of width cells.
func PadRight(text string, width int) string {
	text = TruncateToWidth(text, width)
	return runewidth.FillRight(text, width)
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
