// Package envfile renders and writes KEY=value environment streams.
package envfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Header describes the comment lines written before the variables.
type Header struct {
	Tool        string
	SystemID    string
	ComponentID string
	Generated   time.Time
}

// Render returns the header comments followed by one KEY=value line per
// variable, sorted by name. Values are written verbatim.
func Render(h Header, vars map[string]string) []byte {
	var b bytes.Buffer

	if h.Tool != "" {
		fmt.Fprintf(&b, "# Generated by %s\n", h.Tool)
	}
	if h.ComponentID != "" {
		fmt.Fprintf(&b, "# Component: %s\n", h.ComponentID)
	}
	if h.SystemID != "" {
		fmt.Fprintf(&b, "# System: %s\n", h.SystemID)
	}
	if !h.Generated.IsZero() {
		fmt.Fprintf(&b, "# Generated at: %s\n", h.Generated.UTC().Format(time.RFC3339))
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(vars[k])
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Save writes data to path atomically: the content goes to a temp file in the
// destination directory which is then renamed over path.
func Save(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".fleetenv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
