package handle

import (
	"io/fs"
	"path"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
)

// Folder is a handle to a directory. It is the interior node of the tree:
// the recursive operations (Delete, CopyTo, MoveTo, Find, CompareContent)
// live here.
//
// The zero value is Uninitialized and unusable; obtain a Folder from
// OpenFolder or from another Folder's enumeration.
type Folder struct {
	fsys  core.FS
	path  string
	name  string
	valid bool
}

// CopyPair records one file copied by Folder.CopyTo: the source handle and
// the handle to its new copy.
type CopyPair struct {
	Source      *File
	Destination *File
}

// MovedFile records one file relocated by Folder.MoveTo: a handle to the
// file at its new location and the path it used to live at.
type MovedFile struct {
	File    *File
	OldPath string
}

// OpenFolder opens the directory at p, returning a Valid handle.
//
// Without WithCreate, a missing path fails with CodeNotFound. With
// WithCreate, the directory and any missing ancestors are created. A path
// that exists but is a regular file fails with CodeWrongKind.
func OpenFolder(fsys core.FS, p string, opts ...Option) (*Folder, error) {
	if fsys == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "filesystem must not be nil")
	}
	if err := validatePath(p); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	p = normalize(p)

	info, err := fsys.Stat(p)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, errors.Newf(errors.CodeWrongKind, "%s is a file, not a directory", p)
		}
	case errors.Is(err, core.ErrNotExist):
		if !cfg.create {
			return nil, errors.Newf(errors.CodeNotFound, "directory %s does not exist", p)
		}
		if err := fsys.MkdirAll(p, 0o755); err != nil {
			return nil, errors.Wrapf(err, errors.CodeIO, "failed to create %s", p)
		}
	default:
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
	}

	return &Folder{fsys: fsys, path: p, name: path.Base(p), valid: true}, nil
}

// Path returns the folder's current location, or "" once invalidated.
func (f *Folder) Path() string { return f.path }

// Name returns the final path component, or "" once invalidated.
func (f *Folder) Name() string { return f.name }

// Valid reports whether the handle can still be operated on.
func (f *Folder) Valid() bool { return f != nil && f.valid }

func (f *Folder) ensureValid() error {
	if !f.Valid() {
		return errors.New(errors.CodeInvalidState, "folder handle is invalid")
	}
	return nil
}

func (f *Folder) invalidate() {
	f.valid = false
	f.path = ""
	f.name = ""
}

// Exists reports whether the directory is currently present. An invalid
// handle reports false without error.
func (f *Folder) Exists() (bool, error) {
	if !f.Valid() {
		return false, nil
	}
	ok, err := f.fsys.Exists(f.path)
	if err != nil {
		return false, errors.Wrapf(err, errors.CodeIO, "failed to check %s", f.path)
	}
	return ok, nil
}

// Stat returns the directory's current metadata. Nothing is cached.
func (f *Folder) Stat() (fs.FileInfo, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	info, err := f.fsys.Stat(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", f.path)
	}
	return info, nil
}

// IsSymlink reports whether the handle's path is a symbolic link to a
// directory. False when the provider cannot distinguish links.
func (f *Folder) IsSymlink() (bool, error) {
	if err := f.ensureValid(); err != nil {
		return false, err
	}
	return isSymlink(f.fsys, f.path), nil
}

// IsEmpty reports whether the directory currently has no entries.
func (f *Folder) IsEmpty() (bool, error) {
	if err := f.ensureValid(); err != nil {
		return false, err
	}
	entries, err := f.fsys.ReadDir(f.path)
	if err != nil {
		return false, errors.Wrapf(err, errors.CodeIO, "failed to read %s", f.path)
	}
	return len(entries) == 0, nil
}

// readSorted returns the directory's entries sorted lexicographically by
// name. Every call re-reads the directory, so traversal order is
// deterministic and each traversal observes the live state.
func readSorted(fsys core.FS, dir string) ([]fs.DirEntry, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to read %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// children scans the directory once and classifies each entry by following
// symbolic links, so a link to a directory lands in folders. Entries that
// vanish between the listing and the stat are skipped.
func (f *Folder) children() (files []*File, folders []*Folder, err error) {
	entries, err := readSorted(f.fsys, f.path)
	if err != nil {
		return nil, nil, err
	}

	for _, entry := range entries {
		p := path.Join(f.path, entry.Name())
		info, err := f.fsys.Stat(p)
		if errors.Is(err, core.ErrNotExist) {
			continue
		}
		if err != nil {
			return files, folders, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
		}
		if info.IsDir() {
			folders = append(folders, &Folder{fsys: f.fsys, path: p, name: entry.Name(), valid: true})
		} else {
			files = append(files, &File{fsys: f.fsys, path: p, name: entry.Name(), valid: true})
		}
	}
	return files, folders, nil
}

// Files returns handles to the folder's immediate regular files, sorted by
// name.
func (f *Folder) Files() ([]*File, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	files, _, err := f.children()
	return files, err
}

// Subfolders returns handles to the folder's immediate subdirectories,
// sorted by name.
func (f *Folder) Subfolders() ([]*Folder, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	_, folders, err := f.children()
	return folders, err
}

// Entries returns handles to all immediate children, both kinds
// interleaved in sorted name order.
func (f *Folder) Entries() ([]Handle, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	entries, err := readSorted(f.fsys, f.path)
	if err != nil {
		return nil, err
	}

	handles := make([]Handle, 0, len(entries))
	for _, entry := range entries {
		p := path.Join(f.path, entry.Name())
		info, err := f.fsys.Stat(p)
		if errors.Is(err, core.ErrNotExist) {
			continue
		}
		if err != nil {
			return handles, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
		}
		if info.IsDir() {
			handles = append(handles, &Folder{fsys: f.fsys, path: p, name: entry.Name(), valid: true})
		} else {
			handles = append(handles, &File{fsys: f.fsys, path: p, name: entry.Name(), valid: true})
		}
	}
	return handles, nil
}

// AddFile creates an empty file with the given bare name directly inside
// the folder and returns a handle to it. An existing file is left untouched
// and simply opened.
func (f *Folder) AddFile(name string) (*File, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return OpenFile(f.fsys, path.Join(f.path, name), WithCreate())
}

// DeleteFile removes the named immediate child file. The name must be a
// bare name, not a path; a child that is a directory fails with
// CodeWrongKind.
func (f *Folder) DeleteFile(name string) error {
	if err := f.ensureValid(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	p := path.Join(f.path, name)
	info, err := f.fsys.Stat(p)
	if err != nil {
		if errors.Is(err, core.ErrNotExist) {
			return errors.Newf(errors.CodeNotFound, "file %s does not exist", p)
		}
		return errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
	}
	if info.IsDir() {
		return errors.Newf(errors.CodeWrongKind, "%s is a directory, not a file", p)
	}
	if err := f.fsys.Remove(p); err != nil && !errors.Is(err, core.ErrNotExist) {
		return errors.Wrapf(err, errors.CodeIO, "failed to delete %s", p)
	}
	return nil
}

// MakeSubfolder creates a subdirectory with the given bare name and returns
// a handle to it. An existing subdirectory is simply opened.
func (f *Folder) MakeSubfolder(name string) (*Folder, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return OpenFolder(f.fsys, path.Join(f.path, name), WithCreate())
}

// DeleteSubfolder recursively removes the named immediate child directory
// and returns the paths of the files deleted from it. A child that is a
// regular file fails with CodeWrongKind.
func (f *Folder) DeleteSubfolder(name string) ([]string, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	p := path.Join(f.path, name)
	info, err := f.fsys.Stat(p)
	if err != nil {
		if errors.Is(err, core.ErrNotExist) {
			return nil, errors.Newf(errors.CodeNotFound, "directory %s does not exist", p)
		}
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.CodeWrongKind, "%s is a file, not a directory", p)
	}
	if isSymlink(f.fsys, p) {
		if err := f.fsys.Remove(p); err != nil && !errors.Is(err, core.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.CodeIO, "failed to remove link %s", p)
		}
		return nil, nil
	}
	return deleteTree(f.fsys, p)
}

// Delete recursively removes the directory and everything under it, then
// invalidates the handle. Removal is post-order: a directory is removed
// only after its contents. Symbolic links are removed as links; their
// targets are never entered or touched. The returned slice lists the files
// deleted, in traversal order; on error it holds the files deleted before
// the failure.
func (f *Folder) Delete() ([]string, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}

	// A handle opened on a symlink removes the link itself; the linked
	// directory's contents are never entered.
	if isSymlink(f.fsys, f.path) {
		if err := f.fsys.Remove(f.path); err != nil && !errors.Is(err, core.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.CodeIO, "failed to remove link %s", f.path)
		}
		f.invalidate()
		return nil, nil
	}

	deleted, err := deleteTree(f.fsys, f.path)
	if err != nil {
		return deleted, err
	}
	f.invalidate()
	return deleted, nil
}

func deleteTree(fsys core.FS, dir string) ([]string, error) {
	entries, err := readSorted(fsys, dir)
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, entry := range entries {
		p := path.Join(dir, entry.Name())

		// A symlink is removed as a link, whether it points at a file or a
		// directory. Recursing through it would delete content outside the
		// tree being removed.
		if isSymlink(fsys, p) {
			if err := fsys.Remove(p); err != nil && !errors.Is(err, core.ErrNotExist) {
				return deleted, errors.Wrapf(err, errors.CodeIO, "failed to remove link %s", p)
			}
			deleted = append(deleted, p)
			continue
		}

		if entry.IsDir() {
			sub, err := deleteTree(fsys, p)
			deleted = append(deleted, sub...)
			if err != nil {
				return deleted, err
			}
			continue
		}

		if err := fsys.Remove(p); err != nil {
			if errors.Is(err, core.ErrNotExist) {
				continue
			}
			return deleted, errors.Wrapf(err, errors.CodeIO, "failed to delete %s", p)
		}
		deleted = append(deleted, p)
	}

	if err := fsys.Remove(dir); err != nil && !errors.Is(err, core.ErrNotExist) {
		return deleted, errors.Wrapf(err, errors.CodeIO, "failed to remove %s", dir)
	}
	return deleted, nil
}

// CopyTo recursively copies the directory's contents to dst, creating dst
// and any missing ancestors. Copying is pre-order: a directory is created
// before its contents are copied into it. The source handle stays valid and
// untouched. The returned pairs map each copied file to its new copy, in
// traversal order; on error they hold the files copied before the failure.
func (f *Folder) CopyTo(dst string) ([]CopyPair, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if err := validatePath(dst); err != nil {
		return nil, err
	}
	return copyTree(f.fsys, f.path, normalize(dst))
}

func copyTree(fsys core.FS, src, dst string) ([]CopyPair, error) {
	if err := fsys.MkdirAll(dst, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to create %s", dst)
	}

	entries, err := readSorted(fsys, src)
	if err != nil {
		return nil, err
	}

	var pairs []CopyPair
	for _, entry := range entries {
		srcPath := path.Join(src, entry.Name())
		dstPath := path.Join(dst, entry.Name())

		info, err := fsys.Stat(srcPath)
		if errors.Is(err, core.ErrNotExist) {
			continue
		}
		if err != nil {
			return pairs, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", srcPath)
		}

		if info.IsDir() {
			sub, err := copyTree(fsys, srcPath, dstPath)
			pairs = append(pairs, sub...)
			if err != nil {
				return pairs, err
			}
			continue
		}

		if err := core.CopyFile(fsys, srcPath, dstPath); err != nil {
			return pairs, errors.Wrapf(err, errors.CodeIO, "failed to copy %s to %s", srcPath, dstPath)
		}
		pairs = append(pairs, CopyPair{
			Source:      &File{fsys: fsys, path: srcPath, name: entry.Name(), valid: true},
			Destination: &File{fsys: fsys, path: dstPath, name: entry.Name(), valid: true},
		})
	}
	return pairs, nil
}

// MoveTo relocates the directory tree to dst. The provider's rename is
// tried first; when it cannot complete the move falls back to copy+delete,
// removing the destination copy if the source delete fails so a failed move
// never leaves two live trees. On success the handle's location updates to
// dst and it stays valid. The result lists every relocated file with the
// path it used to live at.
func (f *Folder) MoveTo(dst string) ([]MovedFile, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if err := validatePath(dst); err != nil {
		return nil, err
	}
	dst = normalize(dst)
	src := f.path

	if err := f.fsys.Rename(src, dst); err == nil {
		f.path = dst
		f.name = path.Base(dst)
		return movedFiles(f.fsys, src, dst)
	}

	pairs, err := copyTree(f.fsys, src, dst)
	if err != nil {
		_ = f.fsys.RemoveAll(dst)
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to move %s to %s", src, dst)
	}
	if _, err := deleteTree(f.fsys, src); err != nil {
		_ = f.fsys.RemoveAll(dst)
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to remove %s after copying to %s", src, dst)
	}

	f.path = dst
	f.name = path.Base(dst)

	moved := make([]MovedFile, 0, len(pairs))
	for _, pair := range pairs {
		moved = append(moved, MovedFile{File: pair.Destination, OldPath: pair.Source.Path()})
	}
	return moved, nil
}

// movedFiles walks the relocated tree at dst and reconstructs where each
// file lived under src before the rename.
func movedFiles(fsys core.FS, src, dst string) ([]MovedFile, error) {
	var moved []MovedFile
	err := walkTree(fsys, dst, func(p string, info fs.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		rel := p[len(dst):]
		moved = append(moved, MovedFile{
			File:    &File{fsys: fsys, path: p, name: path.Base(p), valid: true},
			OldPath: src + rel,
		})
		return nil
	})
	return moved, err
}

func walkTree(fsys core.FS, dir string, fn func(p string, info fs.FileInfo) error) error {
	entries, err := readSorted(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		p := path.Join(dir, entry.Name())
		info, err := fsys.Stat(p)
		if errors.Is(err, core.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
		}
		if err := fn(p, info); err != nil {
			return err
		}
		if info.IsDir() {
			if err := walkTree(fsys, p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindFirst searches the tree depth-first for the first entry whose name
// matches the query and returns a handle to it, a File for a regular file
// and a Folder for a directory. At each level files are checked before
// subfolders. A nil Handle with nil error means nothing matched.
func (f *Folder) FindFirst(query string, mode MatchMode) (Handle, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	match, err := newMatcher(query, mode)
	if err != nil {
		return nil, err
	}
	return findFirst(f, match)
}

func findFirst(f *Folder, match matcher) (Handle, error) {
	files, folders, err := f.children()
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if match(file.Name()) {
			return file, nil
		}
	}
	for _, folder := range folders {
		if match(folder.Name()) {
			return folder, nil
		}
		found, err := findFirst(folder, match)
		if err != nil || found != nil {
			return found, err
		}
	}
	return nil, nil
}

// FindAll searches the whole tree and returns handles to every entry whose
// name matches the query, in traversal order (files before subfolders at
// each level). No match yields an empty result, not an error.
func (f *Folder) FindAll(query string, mode MatchMode) ([]Handle, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	match, err := newMatcher(query, mode)
	if err != nil {
		return nil, err
	}

	var found []Handle
	err = findAll(f, match, &found)
	return found, err
}

func findAll(f *Folder, match matcher, found *[]Handle) error {
	files, folders, err := f.children()
	if err != nil {
		return err
	}
	for _, file := range files {
		if match(file.Name()) {
			*found = append(*found, file)
		}
	}
	for _, folder := range folders {
		if match(folder.Name()) {
			*found = append(*found, folder)
		}
		if err := findAll(folder, match, found); err != nil {
			return err
		}
	}
	return nil
}

// CompareContent reports whether the two folders hold identical direct file
// content. Each folder's immediate files are sorted by name independently,
// then paired positionally and compared by digest, so names never have to
// agree, only content and count. Differing file counts fail with
// CodeCountMismatch. Subfolders are not descended into; compare them with
// their own CompareContent calls. Digests are computed concurrently, one
// goroutine per file pair.
func (f *Folder) CompareContent(other *Folder, algorithm string) (bool, error) {
	if err := f.ensureValid(); err != nil {
		return false, err
	}
	if other == nil {
		return false, errors.New(errors.CodeInvalidArgument, "other folder must not be nil")
	}
	if err := other.ensureValid(); err != nil {
		return false, err
	}
	if _, err := newHasher(algorithm); err != nil {
		return false, err
	}

	mine, err := f.Files()
	if err != nil {
		return false, err
	}
	theirs, err := other.Files()
	if err != nil {
		return false, err
	}
	if len(mine) != len(theirs) {
		return false, errors.Newf(errors.CodeCountMismatch,
			"%s has %d files, %s has %d", f.path, len(mine), other.path, len(theirs))
	}

	equal := make([]bool, len(mine))
	var g errgroup.Group
	for i := range mine {
		g.Go(func() error {
			da, err := mine[i].Digest(algorithm)
			if err != nil {
				return err
			}
			db, err := theirs[i].Digest(algorithm)
			if err != nil {
				return err
			}
			equal[i] = da == db
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, eq := range equal {
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// Walk traverses the tree rooted at the folder using the provider's walk,
// invoking fn for every visited entry.
func (f *Folder) Walk(fn fs.WalkDirFunc) error {
	if err := f.ensureValid(); err != nil {
		return err
	}
	return f.fsys.Walk(f.path, fn)
}

var _ Handle = (*Folder)(nil)
