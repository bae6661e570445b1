package handle

import (
	"bufio"
	"encoding/hex"
	"io"
	"io/fs"
	"iter"
	"os"
	"path"
	"time"

	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
)

// File is a handle to a regular file. It is a leaf: it has no children and
// depends only on the core.FS provider it was opened against.
//
// The zero value is Uninitialized and unusable; obtain a File from OpenFile
// or from a Folder operation.
type File struct {
	fsys  core.FS
	path  string
	name  string
	valid bool
}

// OpenFile opens the file at p, returning a Valid handle.
//
// Without WithCreate, a missing path fails with CodeNotFound. With
// WithCreate, a missing file is created empty and exclusively (O_EXCL), so
// a file created concurrently by another actor is never truncated. A path
// that exists but is a directory fails with CodeWrongKind.
func OpenFile(fsys core.FS, p string, opts ...Option) (*File, error) {
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
		if info.IsDir() {
			return nil, errors.Newf(errors.CodeWrongKind, "%s is a directory, not a file", p)
		}
	case errors.Is(err, core.ErrNotExist):
		if !cfg.create {
			return nil, errors.Newf(errors.CodeNotFound, "file %s does not exist", p)
		}
		if err := createEmptyFile(fsys, p); err != nil {
			return nil, err
		}
		// Re-stat to catch a directory racing into the path.
		info, err = fsys.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
		}
		if info.IsDir() {
			return nil, errors.Newf(errors.CodeWrongKind, "%s is a directory, not a file", p)
		}
	default:
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", p)
	}

	return &File{fsys: fsys, path: p, name: path.Base(p), valid: true}, nil
}

// createEmptyFile creates p exclusively. Losing the creation race to
// another actor is fine; the file exists either way and is left untouched.
func createEmptyFile(fsys core.FS, p string) error {
	f, err := fsys.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, core.ErrExist) {
			return nil
		}
		return errors.Wrapf(err, errors.CodeIO, "failed to create %s", p)
	}
	return f.Close()
}

// Path returns the file's current location, or "" once invalidated.
func (f *File) Path() string { return f.path }

// Name returns the final path component, or "" once invalidated.
func (f *File) Name() string { return f.name }

// Valid reports whether the handle can still be operated on.
func (f *File) Valid() bool { return f != nil && f.valid }

// ensureValid gates every operation on a live handle.
func (f *File) ensureValid() error {
	if !f.Valid() {
		return errors.New(errors.CodeInvalidState, "file handle is invalid")
	}
	return nil
}

// invalidate clears the handle after a delete or a source-side move.
// There is no transition back to Valid.
func (f *File) invalidate() {
	f.valid = false
	f.path = ""
	f.name = ""
}

// Exists reports whether the file is currently present. An invalid handle
// reports false without error.
func (f *File) Exists() (bool, error) {
	if !f.Valid() {
		return false, nil
	}
	ok, err := f.fsys.Exists(f.path)
	if err != nil {
		return false, errors.Wrapf(err, errors.CodeIO, "failed to check %s", f.path)
	}
	return ok, nil
}

// Stat returns the file's current metadata. Nothing is cached; every call
// re-queries the provider.
func (f *File) Stat() (fs.FileInfo, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	info, err := f.fsys.Stat(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to stat %s", f.path)
	}
	return info, nil
}

// Size returns the file's current size in bytes.
func (f *File) Size() (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ModTime returns the file's current modification time.
func (f *File) ModTime() (time.Time, error) {
	info, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// IsSymlink reports whether the handle's path is a symbolic link. False
// when the provider cannot distinguish links.
func (f *File) IsSymlink() (bool, error) {
	if err := f.ensureValid(); err != nil {
		return false, err
	}
	return isSymlink(f.fsys, f.path), nil
}

// ReadAll returns the file's entire content as raw bytes.
func (f *File) ReadAll() ([]byte, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	data, err := f.fsys.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to read %s", f.path)
	}
	return data, nil
}

// ReadString returns the file's entire content as a string. No transcoding
// is performed; bytes are returned as written.
func (f *File) ReadString() (string, error) {
	data, err := f.ReadAll()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLimit returns at most limit bytes from the start of the file. A short
// file yields its full content. limit must be positive.
func (f *File) ReadLimit(limit int64) ([]byte, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errors.Newf(errors.CodeInvalidArgument, "limit must be positive, got %d", limit)
	}

	file, err := f.fsys.Open(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to open %s", f.path)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to read %s", f.path)
	}
	return data, nil
}

// Write replaces the file's content with p and returns the number of bytes
// written.
func (f *File) Write(p []byte) (int, error) {
	return f.write(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Append appends p to the file's content and returns the number of bytes
// written.
func (f *File) Append(p []byte) (int, error) {
	return f.write(p, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// WriteString replaces the file's content with s.
func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// AppendString appends s to the file's content.
func (f *File) AppendString(s string) (int, error) {
	return f.Append([]byte(s))
}

func (f *File) write(p []byte, flag int) (int, error) {
	if err := f.ensureValid(); err != nil {
		return 0, err
	}

	file, err := f.fsys.OpenFile(f.path, flag, 0o644)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeIO, "failed to open %s", f.path)
	}

	n, err := file.Write(p)
	if err != nil {
		_ = file.Close()
		return n, errors.Wrapf(err, errors.CodeIO, "failed to write %s", f.path)
	}
	if err := file.Close(); err != nil {
		return n, errors.Wrapf(err, errors.CodeIO, "failed to close %s", f.path)
	}
	return n, nil
}

// Delete removes the underlying file and invalidates the handle. A file
// already removed by another actor counts as success; only an invalidated
// handle is an error.
func (f *File) Delete() error {
	if err := f.ensureValid(); err != nil {
		return err
	}
	if err := f.fsys.Remove(f.path); err != nil && !errors.Is(err, core.ErrNotExist) {
		return errors.Wrapf(err, errors.CodeIO, "failed to delete %s", f.path)
	}
	f.invalidate()
	return nil
}

// CopyTo copies the file to dst and returns a handle to the new file. The
// source handle stays valid and its content is untouched. An existing
// destination is overwritten. Symbolic links are dereferenced: the target's
// content is copied, never the link itself. Mode and modification time are
// preserved where the provider supports it.
func (f *File) CopyTo(dst string) (*File, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	if err := validatePath(dst); err != nil {
		return nil, err
	}
	dst = normalize(dst)

	if err := core.CopyFile(f.fsys, f.path, dst); err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to copy %s to %s", f.path, dst)
	}
	return &File{fsys: f.fsys, path: dst, name: path.Base(dst), valid: true}, nil
}

// MoveTo relocates the file to dst. The provider's rename is tried first;
// when it cannot complete (typically across filesystem boundaries) the move
// falls back to copy+delete, removing the partial destination if the source
// delete fails so a failed move never leaves two live copies unaccounted
// for. On success the handle's location updates to dst and it stays valid.
func (f *File) MoveTo(dst string) error {
	if err := f.ensureValid(); err != nil {
		return err
	}
	if err := validatePath(dst); err != nil {
		return err
	}
	dst = normalize(dst)

	if err := f.fsys.Rename(f.path, dst); err != nil {
		if cerr := core.CopyFile(f.fsys, f.path, dst); cerr != nil {
			return errors.Wrapf(cerr, errors.CodeIO, "failed to move %s to %s", f.path, dst)
		}
		if rerr := f.fsys.Remove(f.path); rerr != nil {
			_ = f.fsys.Remove(dst)
			return errors.Wrapf(rerr, errors.CodeIO, "failed to remove %s after copying to %s", f.path, dst)
		}
	}

	f.path = dst
	f.name = path.Base(dst)
	return nil
}

// Digest computes a cryptographic digest of the file's content, returned as
// a lowercase hex string. Content is streamed through the hasher in fixed
// chunks; the file is never held in memory whole. Unknown algorithm names
// fail with CodeUnsupportedAlgorithm; see Algorithms for the supported set.
func (f *File) Digest(algorithm string) (string, error) {
	if err := f.ensureValid(); err != nil {
		return "", err
	}
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	file, err := f.fsys.Open(f.path)
	if err != nil {
		return "", errors.Wrapf(err, errors.CodeIO, "failed to open %s", f.path)
	}
	defer func() { _ = file.Close() }()

	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", errors.Wrapf(err, errors.CodeIO, "failed to hash %s", f.path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Lines returns a lazy sequence over the file's lines. The sequence is
// restartable: every range re-opens the file and reads from the start,
// independent of prior traversals. Iteration errors are yielded as the
// second value with an empty line.
func (f *File) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := f.ensureValid(); err != nil {
			yield("", err)
			return
		}

		file, err := f.fsys.Open(f.path)
		if err != nil {
			yield("", errors.Wrapf(err, errors.CodeIO, "failed to open %s", f.path))
			return
		}
		defer func() { _ = file.Close() }()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", errors.Wrapf(err, errors.CodeIO, "failed to read %s", f.path))
		}
	}
}

// Grep scans the file line by line and returns every line matching the
// query under the given MatchMode. This is a streaming scan, not an index:
// cost is linear in file size on every call.
func (f *File) Grep(query string, mode MatchMode) ([]string, error) {
	if err := f.ensureValid(); err != nil {
		return nil, err
	}
	match, err := newMatcher(query, mode)
	if err != nil {
		return nil, err
	}

	var matches []string
	for line, err := range f.Lines() {
		if err != nil {
			return matches, err
		}
		if match(line) {
			matches = append(matches, line)
		}
	}
	return matches, nil
}

var _ Handle = (*File)(nil)
