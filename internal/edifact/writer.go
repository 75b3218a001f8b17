package edifact

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// WriteFile persists a generated interchange under dir using the given
// file name. The name must be a bare file name: anything whose base
// name differs from the full name is rejected to prevent path
// traversal. A non-.edi/.edifact extension only logs a warning.
func (g *Generator) WriteFile(message, dir, name string) error {
	if name == "" || filepath.Base(name) != name {
		return newError(CodeBadFilename, "output file name %q must not contain path separators", name).
			withDetail("name", name)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".edi", ".edifact":
	default:
		g.log.WithField("name", name).Warn("unexpected output file extension")
	}

	path := name
	if dir != "" {
		path = filepath.Join(dir, name)
	}

	if err := os.WriteFile(path, []byte(message), 0o644); err != nil {
		wrapped := errors.Wrap(err, "write interchange")
		g.log.WithError(wrapped).Error("file write failed")
		return newError(CodeWriteFailed, "failed to write %s", path).
			withDetail("path", path).
			withCause(wrapped)
	}

	g.log.WithField("path", path).Info("interchange written")
	return nil
}
