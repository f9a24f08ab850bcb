package clipboard

import "github.com/atotto/clipboard"

// OSClipboard is the production handpilot.ClipboardIO backed by the host
// clipboard.
type OSClipboard struct{}

// ReadText reads the current host clipboard contents.
func (OSClipboard) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// WriteText replaces the host clipboard contents.
func (OSClipboard) WriteText(s string) error {
	return clipboard.WriteAll(s)
}
