// Package atomicfile writes a file's full contents without ever leaving
// a half-written file at the destination path, grounded on the
// sibling-file-then-rename idiom used throughout the corpus's file
// producers (gendicom, odcm-gend) wherever they stage output before
// publishing it under its final name.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write stages data in a sibling temp file in the same directory as
// path, fsyncs it, then renames it over path. The same-directory
// placement keeps the rename atomic on POSIX filesystems (no
// cross-device link). perm is applied to the temp file before rename.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("atomicfile: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("atomicfile: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("atomicfile: fsync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomicfile: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomicfile: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomicfile: rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}
