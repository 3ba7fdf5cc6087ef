package reporting

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// SaveTXT writes a rendered report to path, appending the .txt extension if
// it is missing, and returns the path actually written.
func SaveTXT(path, report string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".txt") {
		path += ".txt"
	}
	if err := os.WriteFile(path, []byte(report+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// PrintFile sends a saved report to the default printer via lp, falling back
// to lpr. Best effort: spooling failures are reported, not fatal.
func PrintFile(path string) error {
	for _, spooler := range []string{"lp", "lpr"} {
		if _, err := exec.LookPath(spooler); err != nil {
			continue
		}
		if err := exec.Command(spooler, path).Run(); err != nil {
			return fmt.Errorf("%s %s: %w", spooler, path, err)
		}
		return nil
	}
	return fmt.Errorf("no print spooler found (tried lp, lpr)")
}
