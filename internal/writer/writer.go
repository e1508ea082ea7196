// Package writer renders a validated ParsedFile into the supported output
// formats.
package writer

import (
	"fmt"
	"os"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

// Generator renders a parsed statement file into one output format.
type Generator interface {
	Generate(parsed *models.ParsedFile) string
}

// Write sends rendered content to the given path, or to stdout when the
// path is empty or "-".
func Write(path, content string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing output file %q: %w", path, err)
	}
	return nil
}
