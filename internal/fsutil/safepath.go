// Package fsutil contains filesystem path helpers.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrPathEscapesRoot = errors.New("path escapes root")

// ResolveWithinRoot maps a caller-provided relative path to a local path
// under root. It rejects any traversal outside root, including via existing
// symlinked components.
func ResolveWithinRoot(root, name string) (string, error) {
	if root == "" {
		return "", errors.New("root is required")
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	rootAbs = filepath.Clean(rootAbs)

	// Force relative paths.
	p := strings.TrimLeft(name, "/\\")
	joined := filepath.Clean(filepath.Join(rootAbs, filepath.FromSlash(p)))

	if !isWithin(rootAbs, joined) {
		return "", ErrPathEscapesRoot
	}

	// If an existing ancestor is a symlink pointing outside root, block it.
	// The walk stops at root: a root that does not exist yet has no
	// components to resolve and is created by the caller afterwards.
	existing := nearestExisting(joined, rootAbs)
	if existing != "" {
		resolved, err := filepath.EvalSymlinks(existing)
		if err != nil {
			return "", err
		}
		if !isWithin(rootAbs, filepath.Clean(resolved)) {
			return "", ErrPathEscapesRoot
		}
	}

	return joined, nil
}

func isWithin(root, candidate string) bool {
	root = filepath.Clean(root)
	candidate = filepath.Clean(candidate)
	if root == candidate {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(candidate, root)
}

// nearestExisting returns the deepest existing path on the way from p up to
// stop, or "" when nothing at or below stop exists.
func nearestExisting(p, stop string) string {
	cur := p
	for {
		_, err := os.Lstat(cur)
		if err == nil {
			return cur
		}
		if !os.IsNotExist(err) {
			return ""
		}
		if cur == stop {
			return ""
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}
