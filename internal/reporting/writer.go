package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteFiles publishes the rendered outputs atomically: every file is first
// written under a temporary name, then all are renamed into place. A failure
// during the temp phase leaves no visible partial output.
func WriteFiles(outputDir string, files map[string]string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Deterministic order keeps failures reproducible.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	temps := make(map[string]string, len(files))
	for _, name := range names {
		tmp := filepath.Join(outputDir, "."+name+".tmp")
		if err := os.WriteFile(tmp, []byte(files[name]), 0o644); err != nil {
			removeAll(temps)
			return fmt.Errorf("write %s: %w", name, err)
		}
		temps[name] = tmp
	}

	for _, name := range names {
		if err := os.Rename(temps[name], filepath.Join(outputDir, name)); err != nil {
			removeAll(temps)
			return fmt.Errorf("publish %s: %w", name, err)
		}
	}
	return nil
}

func removeAll(temps map[string]string) {
	for _, tmp := range temps {
		os.Remove(tmp)
	}
}
