// Package clipboard copies rendered prompts to the system clipboard via the
// platform's native utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Copy copies text to the system clipboard.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipe(text, "pbcopy")
	case "windows":
		return pipe(text, "cmd", "/c", "clip")
	case "linux":
		return copyLinux(text)
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
}

// copyLinux tries the common Linux clipboard utilities in order.
func copyLinux(text string) error {
	candidates := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"wl-copy"},
	}

	var lastErr error
	for _, args := range candidates {
		if _, err := exec.LookPath(args[0]); err != nil {
			continue
		}
		if err := pipe(text, args[0], args[1:]...); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", args[0], err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no clipboard utility found (install xclip, xsel, or wl-clipboard)")
}

func pipe(text string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
