package core

import (
	"io"
	"io/fs"
	"time"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// FS is the primary filesystem interface combining all core operations.
// FS explicitly embeds fs.FS for stdlib compatibility.
//
// The handle layer accepts any FS; providers MUST implement this interface,
// which is composed of five sub-interfaces representing different categories
// of operations: ReadFS, WriteFS, ManageFS, WalkFS, and ChrootFS.
type FS interface {
	fs.FS // Ensures stdlib compatibility (provides Open returning fs.File)
	ReadFS
	WriteFS
	ManageFS
	WalkFS
	ChrootFS

	// Type returns the underlying filesystem type.
	// This allows callers to introspect whether the filesystem is backed by
	// a real disk or by in-memory storage.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
// All providers MUST support this interface.
type ReadFS interface {
	// Open opens the named file for reading.
	// Returns fs.File for compatibility with the io/fs package.
	// Symbolic links are followed; the content read is the target's.
	Open(name string) (fs.File, error)

	// Stat returns file metadata, following symbolic links.
	// This is the kind query the handle layer uses to distinguish files
	// from directories.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir reads the directory named by dirname and returns its
	// entries. Order is not guaranteed; callers that need determinism
	// sort the result themselves.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents.
	// A successful call returns err == nil, not err == EOF.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error indicates the existence could
	// not be determined, not that the path is absent.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	// If the file already exists, it is truncated.
	// The returned file must be closed when no longer needed.
	Create(name string) (File, error)

	// OpenFile opens a file with the specified flags and permissions.
	// The flags are a bitmask (O_RDONLY, O_WRONLY, O_CREATE, O_EXCL,
	// O_APPEND, O_TRUNC, ...). Flag support varies by provider.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, creating it if necessary
	// and truncating it if it already exists.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Mkdir creates a new directory with the specified name and
	// permission bits. Fails if the parent does not exist or the
	// directory already does.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary
	// parents. If path is already a directory, MkdirAll does nothing.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines file and directory management operations.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	// Removing a symbolic link removes the link itself, never its target.
	Remove(name string) error

	// RemoveAll removes path and any children it contains.
	// If the path does not exist, RemoveAll returns nil.
	RemoveAll(path string) error

	// Rename renames (moves) oldpath to newpath atomically where the
	// backend allows it. Providers return an error when the rename cannot
	// complete (for example across filesystem boundaries); callers fall
	// back to copy+delete.
	Rename(oldpath, newpath string) error
}

// WalkFS defines directory tree traversal operations.
type WalkFS interface {
	// Walk walks the file tree rooted at root, calling walkFn for each
	// file or directory in the tree, including root, in lexical order.
	// Walk does not follow symbolic links.
	Walk(root string, walkFn fs.WalkDirFunc) error
}

// ChrootFS defines the ability to create scoped filesystem views.
//
// Chroot allows creating a restricted view of the filesystem where all
// operations are relative to a specific directory. Tests use this to sandbox
// handle operations inside a temporary directory.
type ChrootFS interface {
	// Chroot returns a filesystem scoped to the given directory.
	// The directory must exist and be accessible.
	Chroot(dir string) (FS, error)
}

// File represents an open file handle.
// File extends fs.File with write operations.
type File interface {
	fs.File // Read([]byte) (int, error), Close() error, Stat() (fs.FileInfo, error)

	// Write writes len(p) bytes from p to the underlying data stream and
	// returns the number of bytes written.
	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}

// Optional File capabilities (use type assertions):
//
// - io.Seeker: Seek(offset int64, whence int) (int64, error)
// - Truncater: Truncate(size int64) error
// - Syncer: Sync() error

// Truncater allows truncating a file to a specified size.
type Truncater interface {
	// Truncate changes the size of the file without changing the I/O offset.
	Truncate(size int64) error
}

// Syncer allows syncing file contents to stable storage.
type Syncer interface {
	// Sync commits the current contents of the file to stable storage.
	Sync() error
}

// MetadataFS defines metadata operations.
//
// Use a type assertion to check whether a provider supports them:
//
//	if mfs, ok := fsys.(core.MetadataFS); ok {
//	    info, err := mfs.Lstat("maybe-a-link")
//	}
//
// Lstat is what lets the handle layer detect symbolic links without
// following them. Providers that cannot express a capability return
// ErrUnsupported from it.
type MetadataFS interface {
	// Lstat returns file info without following symbolic links.
	Lstat(name string) (fs.FileInfo, error)

	// Chmod changes the mode/permissions of the named file.
	Chmod(name string, mode fs.FileMode) error

	// Chtimes changes the access and modification times of the named file.
	Chtimes(name string, atime, mtime time.Time) error
}

// SymlinkFS defines symbolic link operations.
//
// Use a type assertion to check whether a provider supports them:
//
//	if sfs, ok := fsys.(core.SymlinkFS); ok {
//	    err := sfs.Symlink("target", "linkname")
//	}
type SymlinkFS interface {
	// Symlink creates a symbolic link named newname pointing to oldname.
	// The oldname path is not validated; broken links are valid and
	// detectable via Lstat.
	Symlink(oldname, newname string) error

	// Readlink returns the destination of the named symbolic link.
	Readlink(name string) (string, error)
}
