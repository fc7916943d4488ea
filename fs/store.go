// Package fs provides file-based storage for decision artifacts and the
// per-year harvest logs.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/ratedoc"
)

// ArtifactName is the file name of a decision report.
const ArtifactName = "info.md"

// ArtifactPath returns the location of the report for date under root:
// <root>/<YYYY>/<MM>/<DD>/info.md.
func ArtifactPath(root string, date ratedoc.Date) string {
	return filepath.Join(root,
		fmt.Sprintf("%04d", date.Year),
		fmt.Sprintf("%02d", date.Month),
		fmt.Sprintf("%02d", date.Day),
		ArtifactName,
	)
}

// Ensure Store implements ratedoc.ArtifactStore at compile time.
var _ ratedoc.ArtifactStore = (*Store)(nil)

// Store writes decision reports below a root directory.
// Reports are written to a temporary file and renamed into place, so a
// report is either absent or complete.
type Store struct {
	root string
}

// NewStore creates a new Store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory reports are written below.
func (s *Store) Root() string {
	return s.root
}

// Save writes report for date, replacing any earlier report, and returns
// its path.
func (s *Store) Save(ctx context.Context, date ratedoc.Date, report string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if date.IsZero() {
		return "", ratedoc.Errorf(ratedoc.EINVALID, "report date required")
	}

	path := ArtifactPath(s.root, date)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	if err := writeAtomic(path, []byte(report)); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes data to a temporary file next to path and renames it.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
