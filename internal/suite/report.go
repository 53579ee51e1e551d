package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	cucumberReport = "cucumber-report"
	junitReport    = "junit-report"
)

// formatFor returns the godog format string for one attempt. When reportDir
// is set, cucumber JSON and JUnit reports are written there next to the
// console output.
func formatFor(base, reportDir string, attempt int) (string, error) {
	if base == "" {
		base = "pretty"
	}
	if reportDir == "" {
		return base, nil
	}
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", reportDir, err)
	}

	suffix := ""
	if attempt > 1 {
		suffix = fmt.Sprintf("-attempt-%d", attempt)
	}
	formats := []string{
		base,
		"cucumber:" + filepath.Join(reportDir, cucumberReport+suffix+".json"),
		"junit:" + filepath.Join(reportDir, junitReport+suffix+".xml"),
	}
	return strings.Join(formats, ","), nil
}
