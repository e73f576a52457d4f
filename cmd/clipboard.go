package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Clipboard is the system clipboard as the commands see it.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

var clipboardRetryDelay = 100 * time.Millisecond

// copyText writes text to the clipboard, retrying a failed write up to retries
// more times. The prompt store itself never retries.
func copyText(c Clipboard, text string, retries int) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			time.Sleep(clipboardRetryDelay)
		}
		if err = c.WriteAll(text); err == nil {
			return nil
		}
	}
	return fmt.Errorf("copy to clipboard: %w", err)
}

// pasteText reads the clipboard and rejects blank content.
func pasteText(c Clipboard) (string, error) {
	text, err := c.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("clipboard is empty")
	}
	return text, nil
}
