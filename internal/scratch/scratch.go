// Package scratch manages per-call temporary working directories for the
// converter chains. Each extraction or assembly call owns exactly one
// directory; nothing may outlive the call that created it.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir is a scoped temporary directory. Callers must invoke Cleanup on every
// exit path, typically via defer immediately after New.
type Dir struct {
	Path string
}

// New creates a uniquely named scratch directory under the system temp root.
// The uuid component guarantees concurrent calls never share a path.
func New(prefix string) (*Dir, error) {
	path := filepath.Join(os.TempDir(), "grant-agent", fmt.Sprintf("%s-%s", prefix, uuid.NewString()))
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &Dir{Path: path}, nil
}

// Join returns a path inside the scratch directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}

// WriteFile writes a file inside the scratch directory and returns its path.
// Only the base of name is used, so absolute paths and traversal sequences
// from untrusted upload filenames cannot place the file outside the
// directory or outlive Cleanup.
func (d *Dir) WriteFile(name string, data []byte) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		base = "input"
	}
	path := d.Join(base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write scratch file %s: %w", base, err)
	}
	return path, nil
}

// Cleanup removes the directory and everything in it. Safe to call more
// than once.
func (d *Dir) Cleanup() {
	if d == nil || d.Path == "" {
		return
	}
	_ = os.RemoveAll(d.Path)
}
