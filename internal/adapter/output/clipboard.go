package output

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// clipboardTimeout bounds a configured clipboard command.
const clipboardTimeout = 5 * time.Second

// CopyToClipboard copies text to the system clipboard. A non-empty
// command (e.g. "wl-copy") receives text on stdin; otherwise the
// platform clipboard is detected.
func CopyToClipboard(ctx context.Context, text, command string) error {
	if command == "" {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return nil
	}

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command %q", command)
	}

	ctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)
	if err := c.Run(); err != nil {
		return fmt.Errorf("clipboard command %q failed: %w", parts[0], err)
	}
	return nil
}
