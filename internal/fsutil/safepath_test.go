// Package fsutil tests validate path confinement.
package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestResolveWithinRootRejectsTraversal blocks obvious .. escapes.
func TestResolveWithinRootRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	if _, err := ResolveWithinRoot(root, "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := ResolveWithinRoot(root, "/../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

// TestResolveWithinRootPlainName maps a bare file name under root.
func TestResolveWithinRootPlainName(t *testing.T) {
	root := t.TempDir()
	p, err := ResolveWithinRoot(root, "notes.pdf")
	if err != nil {
		t.Fatalf("ResolveWithinRoot: %v", err)
	}
	if filepath.Dir(p) != filepath.Clean(root) {
		t.Fatalf("expected %s under root, got %s", "notes.pdf", p)
	}
}

// TestResolveWithinRootMissingRoot resolves names under a root that does
// not exist yet; the caller creates it afterwards.
func TestResolveWithinRootMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploaded_notes")
	p, err := ResolveWithinRoot(root, "notes.pdf")
	if err != nil {
		t.Fatalf("ResolveWithinRoot: %v", err)
	}
	if filepath.Dir(p) != filepath.Clean(root) {
		t.Fatalf("expected notes.pdf under root, got %s", p)
	}

	// Traversal is still rejected even when root is missing.
	if _, err := ResolveWithinRoot(root, "../escape.txt"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

// TestResolveWithinRootRejectsSymlinkEscape blocks symlink-based escapes.
func TestResolveWithinRootRejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		// Symlink creation may require privileges.
		t.Skip("symlink behavior varies on windows")
	}
	root := t.TempDir()
	outside := t.TempDir()

	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	if _, err := ResolveWithinRoot(root, "link/escape.txt"); err == nil {
		t.Fatalf("expected symlink escape to be rejected")
	}
}
