package output

import (
	"fmt"
	"os"
	"strings"
)

// SaveScripts writes the structure script to <base>_structure.sql and, when
// non-empty, the data script to <base>_data.sql. It returns the paths
// written.
func SaveScripts(base string, structure, data []string) ([]string, error) {
	var written []string

	if len(structure) > 0 {
		path := base + "_structure.sql"
		if err := writeScript(path, structure); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(data) > 0 {
		path := base + "_data.sql"
		if err := writeScript(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func writeScript(path string, statements []string) error {
	content := strings.Join(statements, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
