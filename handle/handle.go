package handle

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
)

// Handle is an in-memory reference to a filesystem entity, carrying a path
// and a validity state, distinct from the entity itself. File and Folder
// implement it.
type Handle interface {
	// Path returns the handle's current location, or "" once invalidated.
	Path() string

	// Name returns the final path component, or "" once invalidated.
	Name() string

	// Valid reports whether the handle can still be operated on.
	Valid() bool
}

// Option configures open behavior for OpenFile and OpenFolder.
type Option func(*openConfig)

type openConfig struct {
	create bool
}

// WithCreate requests creation when the target does not exist: an empty
// file for OpenFile (created exclusively, never truncating a file that
// appears concurrently), or the directory and all missing ancestors for
// OpenFolder.
func WithCreate() Option {
	return func(c *openConfig) {
		c.create = true
	}
}

func applyOptions(opts []Option) openConfig {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// normalize converts paths to use forward slashes consistently.
func normalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// validateName rejects anything that is not a bare name: empty strings,
// separators, and relative path components.
func validateName(name string) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument, "name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || path.Base(name) != name {
		return errors.Newf(errors.CodeInvalidArgument, "must be a name, not a path: %q", name)
	}
	return nil
}

// validatePath rejects empty destination paths before any I/O happens.
func validatePath(p string) error {
	if p == "" {
		return errors.New(errors.CodeInvalidArgument, "path must not be empty")
	}
	return nil
}

// isSymlink reports whether p is a symbolic link, without following it.
// Providers without Lstat support cannot distinguish links; every entry is
// then treated as a regular file or directory.
func isSymlink(fsys core.FS, p string) bool {
	mfs, ok := fsys.(core.MetadataFS)
	if !ok {
		return false
	}
	info, err := mfs.Lstat(p)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}
