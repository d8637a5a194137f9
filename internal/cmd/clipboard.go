package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// copyToClipboard copies text to the system clipboard and returns a
// user-friendly message
func copyToClipboard(text string) (string, error) {
	if err := writeClipboard(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return fmt.Sprintf("Output copied to clipboard (%d bytes)", len(text)), nil
}
