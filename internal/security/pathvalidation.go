package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a path resolves outside its directory.
var ErrPathTraversal = errors.New("security: path traversal")

// ValidatePathWithinDirectory checks lexically that filePath stays inside dir
// once both are cleaned. Relative paths are resolved against dir. Symlinks are
// not followed, so the check also applies to in-memory filesystems.
func ValidatePathWithinDirectory(filePath, dir string) error {
	if filePath == "" {
		return fmt.Errorf("%w: empty path", ErrPathTraversal)
	}
	cleanDir := filepath.Clean(dir)
	target := filePath
	if !filepath.IsAbs(target) {
		target = filepath.Join(cleanDir, target)
	}
	target = filepath.Clean(target)

	relPath, err := filepath.Rel(cleanDir, target)
	if err != nil {
		return fmt.Errorf("%w: %s is outside %s: %v", ErrPathTraversal, filePath, dir, err)
	}
	if relPath == "." || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s attempts to escape %s", ErrPathTraversal, filePath, dir)
	}
	return nil
}
