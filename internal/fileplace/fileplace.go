// Package fileplace copies uploaded files into the notes directory under
// collision-free names. No placement ever overwrites an existing file.
package fileplace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"campusconnect/internal/fsutil"
)

var (
	ErrSourceNotFound        = errors.New("source file not found")
	ErrDestinationUnwritable = errors.New("destination directory not writable")
)

// Placed describes where a source file ended up. StoredName differs from
// OriginalName only when a numeric suffix was needed to avoid a collision.
type Placed struct {
	OriginalName string
	StoredName   string
	StoredPath   string
}

// Service copies files byte-for-byte into a destination directory.
// The filesystem is injectable for tests; New uses the OS filesystem.
type Service struct {
	fs afero.Fs
}

func New() *Service { return &Service{fs: afero.NewOsFs()} }

// NewWithFs builds a Service over fs.
func NewWithFs(fs afero.Fs) *Service { return &Service{fs: fs} }

// Place copies the file at source into destDir. When the base name is
// taken, a numeric suffix (name_1.ext, name_2.ext, ...) is appended until
// an unused name is found. The source file is left untouched.
func (s *Service) Place(source, destDir string) (*Placed, error) {
	if destDir == "" {
		return nil, fmt.Errorf("%w: destination directory is required", ErrDestinationUnwritable)
	}
	st, err := s.fs.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, source)
	}

	orig := filepath.Base(filepath.Clean(source))
	if orig == "" || orig == "." || orig == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	// Crafted source names must not place files outside destDir.
	if _, err := fsutil.ResolveWithinRoot(destDir, orig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}

	if err := s.fs.MkdirAll(destDir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}

	ext := filepath.Ext(orig)
	stem := strings.TrimSuffix(orig, ext)
	name := orig
	dest := filepath.Join(destDir, name)
	for i := 1; ; i++ {
		exists, err := afero.Exists(s.fs, dest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
		}
		if !exists {
			break
		}
		name = fmt.Sprintf("%s_%d%s", stem, i, ext)
		dest = filepath.Join(destDir, name)
	}

	if err := s.copyFile(source, dest); err != nil {
		return nil, err
	}
	return &Placed{OriginalName: orig, StoredName: name, StoredPath: dest}, nil
}

// Remove deletes a previously placed file. It exists so a failed note
// insert can undo its placement.
func (s *Service) Remove(path string) error {
	return s.fs.Remove(path)
}

func (s *Service) copyFile(source, dest string) error {
	in, err := s.fs.Open(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}
	defer in.Close()

	// O_EXCL: the collision scan already picked an unused name, and this
	// keeps the no-overwrite invariant even if the scan was stale.
	out, err := s.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = s.fs.Remove(dest)
		return fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}
	if err := out.Close(); err != nil {
		_ = s.fs.Remove(dest)
		return fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}
	return nil
}
