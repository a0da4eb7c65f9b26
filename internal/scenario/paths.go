package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResolvePath returns path itself for files. For directories it returns
// the most recently modified .yaml or .yml file inside.
func ResolvePath(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("could not open scenario file: %w", err)
	}
	if !fi.IsDir() {
		return path, nil
	}
	return FindLatestScenario(path)
}

// FindLatestScenario finds the most recent scenario file in dir.
func FindLatestScenario(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	var latestFile string
	var latestTime time.Time

	for _, entry := range entries {
		if entry.IsDir() || !isScenarioFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, entry.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no scenario files found in %s", dir)
	}
	return latestFile, nil
}

func isScenarioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
