package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps uploaded binaries in per-kind subdirectories under a
// single root. Rows reference files by the storage-relative path it returns.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save writes data to {root}/{kind}/{filename}, creating the kind directory
// on demand. It returns the number of bytes written and the storage-relative
// path to record in the database. A partially written file is removed on
// write failure.
func (s *DiskStore) Save(kind, filename string, data io.Reader) (int64, string, error) {
	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, "", fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	rel := filepath.ToSlash(filepath.Join(kind, filename))
	abs := filepath.Join(s.root, kind, filename)

	file, err := os.Create(abs)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create file %s: %w", abs, err)
	}
	defer file.Close()

	n, err := io.Copy(file, data)
	if err != nil {
		os.Remove(abs)
		return 0, "", fmt.Errorf("failed to write file: %w", err)
	}

	return n, rel, nil
}

// Path returns the absolute path for a stored relative path.
func (s *DiskStore) Path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Exists reports whether the referenced file is present on disk. Rows whose
// file went missing out-of-band are tolerated; callers turn this into a
// not-found response rather than repairing anything.
func (s *DiskStore) Exists(rel string) bool {
	info, err := os.Stat(s.Path(rel))
	return err == nil && !info.IsDir()
}

// Remove deletes the referenced file. A missing file is not an error.
func (s *DiskStore) Remove(rel string) error {
	if err := os.Remove(s.Path(rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", rel, err)
	}
	return nil
}

// SanitizeFilename strips directory components and limits length.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	if len(name) > 200 {
		ext := filepath.Ext(name)
		// The extension itself can exceed the limit; keep it only when the
		// stem has room left.
		if len(ext) < 200 {
			name = name[:200-len(ext)] + ext
		} else {
			name = name[:200]
		}
	}

	if name == "" || name == "." || name == "/" {
		name = "upload"
	}

	return name
}
