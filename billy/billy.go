package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/japaneseTemmie/os-extras/core"
)

// FS adapts a billy.Filesystem to core.FS.
// The same adapter serves both backends; typ records which one so callers
// can introspect it through Type().
type FS struct {
	bfs billy.Filesystem
	typ core.FSType
}

// NewLocal creates a go-billy-backed local filesystem rooted at the
// filesystem root ("/"). Use Chroot to scope it to a working directory.
func NewLocal() *FS {
	return &FS{
		bfs: osfs.New("/"),
		typ: core.FSTypeLocal,
	}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory() *FS {
	return &FS{
		bfs: memfs.New(),
		typ: core.FSTypeMemory,
	}
}

// Unwrap returns the underlying billy.Filesystem for go-billy integration.
func (f *FS) Unwrap() billy.Filesystem {
	return f.bfs
}

// normalize converts paths to use forward slashes consistently.
// This is a simplified path normalization since billy handles security.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// ReadFS implementation

// Open opens the named file for reading.
// Returns a File that also implements fs.File.
func (f *FS) Open(name string) (fs.File, error) {
	name = normalize(name)
	file, err := f.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: file, fs: f.bfs, name: name}, nil
}

// Stat returns file metadata for the named file, following symlinks.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	return f.bfs.Stat(normalize(name))
}

// ReadDir reads the directory named by dirname and returns its entries.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	// Billy's ReadDir returns []fs.FileInfo; convert to []fs.DirEntry.
	infos, err := f.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (f *FS) ReadFile(name string) ([]byte, error) {
	name = normalize(name)
	file, err := f.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return io.ReadAll(file)
}

// Exists reports whether the named file or directory exists.
func (f *FS) Exists(name string) (bool, error) {
	_, err := f.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// WriteFS implementation

// Create creates or truncates the named file for writing.
func (f *FS) Create(name string) (core.File, error) {
	name = normalize(name)
	file, err := f.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{file: file, fs: f.bfs, name: name}, nil
}

// OpenFile opens a file with the specified flags and permissions.
func (f *FS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	file, err := f.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: file, fs: f.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (f *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = normalize(name)
	file, err := f.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	_, err = file.Write(data)
	return err
}

// Mkdir creates a new directory with the specified name and permission bits.
// Unlike MkdirAll, this fails if the parent directory does not exist.
func (f *FS) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := f.bfs.Stat(name); err == nil {
		return os.ErrExist
	}
	parent := filepath.Dir(name)
	if parent != "." && parent != "/" {
		if _, err := f.bfs.Stat(parent); err != nil {
			return err
		}
	}
	// Parent verified above, so this creates exactly one directory.
	return f.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (f *FS) MkdirAll(path string, perm fs.FileMode) error {
	return f.bfs.MkdirAll(normalize(path), perm)
}

// ManageFS implementation

// Remove removes the named file, empty directory, or symlink.
// Removing a symlink removes the link itself.
func (f *FS) Remove(name string) error {
	return f.bfs.Remove(normalize(name))
}

// RemoveAll removes path and any children it contains.
// Billy has no RemoveAll, so this recurses over ReadDir.
func (f *FS) RemoveAll(path string) error {
	path = normalize(path)
	info, err := f.bfs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return f.bfs.Remove(path)
	}

	entries, err := f.bfs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		entryPath := normalize(filepath.Join(path, entry.Name()))
		if err := f.RemoveAll(entryPath); err != nil {
			return err
		}
	}

	return f.bfs.Remove(path)
}

// Rename renames (moves) oldpath to newpath.
func (f *FS) Rename(oldpath, newpath string) error {
	return f.bfs.Rename(normalize(oldpath), normalize(newpath))
}

// WalkFS implementation

// Walk walks the file tree rooted at root, calling walkFn for each file or
// directory in the tree, including root.
func (f *FS) Walk(root string, walkFn fs.WalkDirFunc) error {
	root = normalize(root)
	info, err := f.bfs.Stat(root)
	if err != nil {
		err = walkFn(root, nil, err)
	} else {
		err = f.walk(root, &dirEntry{info: info}, walkFn)
	}
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (f *FS) walk(path string, d fs.DirEntry, walkFn fs.WalkDirFunc) error {
	if err := walkFn(path, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, fs.SkipDir) && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := f.bfs.ReadDir(path)
	if err != nil {
		err = walkFn(path, d, err)
		if err != nil {
			return err
		}
	}

	for _, entry := range entries {
		newPath := normalize(filepath.Join(path, entry.Name()))
		if err := f.walk(newPath, &dirEntry{info: entry}, walkFn); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
	}
	return nil
}

// ChrootFS implementation

// Chroot returns a filesystem scoped to the given directory.
func (f *FS) Chroot(dir string) (core.FS, error) {
	chrootFS, err := f.bfs.Chroot(normalize(dir))
	if err != nil {
		return nil, err
	}
	return &FS{bfs: chrootFS, typ: f.typ}, nil
}

// Type returns the backend type of this filesystem.
func (f *FS) Type() core.FSType {
	return f.typ
}

// MetadataFS implementation

// Lstat returns file info without following symbolic links.
func (f *FS) Lstat(name string) (fs.FileInfo, error) {
	return f.bfs.Lstat(normalize(name))
}

// Chmod changes the mode of the named file.
// Only supported on the local backend; billy itself has no chmod, so the
// real path is derived from the filesystem root.
func (f *FS) Chmod(name string, mode fs.FileMode) error {
	if f.typ != core.FSTypeLocal {
		return core.ErrUnsupported
	}
	return os.Chmod(f.realPath(name), mode)
}

// Chtimes changes the access and modification times of the named file.
// Only supported on the local backend.
func (f *FS) Chtimes(name string, atime, mtime time.Time) error {
	if f.typ != core.FSTypeLocal {
		return core.ErrUnsupported
	}
	return os.Chtimes(f.realPath(name), atime, mtime)
}

// realPath resolves name against the billy root for direct os calls.
func (f *FS) realPath(name string) string {
	return filepath.Join(f.bfs.Root(), filepath.FromSlash(normalize(name)))
}

// SymlinkFS implementation

// Symlink creates newname as a symbolic link to oldname.
func (f *FS) Symlink(oldname, newname string) error {
	return f.bfs.Symlink(oldname, normalize(newname))
}

// Readlink returns the destination of the named symbolic link.
func (f *FS) Readlink(name string) (string, error) {
	return f.bfs.Readlink(normalize(name))
}

// Compile-time interface checks.
var (
	_ core.FS         = (*FS)(nil)
	_ core.MetadataFS = (*FS)(nil)
	_ core.SymlinkFS  = (*FS)(nil)
)
