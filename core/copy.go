package core

import (
	"errors"
	"io"
	"path"
)

// CopyFile copies the file at src to dst within fsys, overwriting any
// existing destination. Content is streamed rather than loaded whole, and
// symbolic links are dereferenced because the source is read through Open.
// Missing destination ancestors are created.
//
// When the provider implements MetadataFS, the source's permission bits and
// modification time are applied to the destination, mirroring a
// copy-preserving-metadata primitive. A provider answering ErrUnsupported
// for a metadata operation is tolerated; the copy still succeeds.
func CopyFile(fsys FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if dir := path.Dir(dst); dir != "." && dir != "" && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := fsys.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	mfs, ok := fsys.(MetadataFS)
	if !ok {
		return nil
	}
	if err := mfs.Chmod(dst, info.Mode().Perm()); err != nil && !errors.Is(err, ErrUnsupported) {
		return err
	}
	if err := mfs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil && !errors.Is(err, ErrUnsupported) {
		return err
	}
	return nil
}
