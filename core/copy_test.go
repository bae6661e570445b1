package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/japaneseTemmie/os-extras/billy"
	"github.com/japaneseTemmie/os-extras/core"
)

func TestCopyFile(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("src.txt", []byte("payload"), 0o644))

	require.NoError(t, core.CopyFile(fsys, "src.txt", "dst.txt"))

	data, err := fsys.ReadFile("dst.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	// The source is untouched.
	data, err = fsys.ReadFile("src.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)
}

func TestCopyFileCreatesAncestors(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("src.txt", []byte("x"), 0o644))

	require.NoError(t, core.CopyFile(fsys, "src.txt", "a/b/c/dst.txt"))

	ok, err := fsys.Exists("a/b/c/dst.txt")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCopyFileOverwrites(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("src.txt", []byte("short"), 0o644))
	require.NoError(t, fsys.WriteFile("dst.txt", []byte("much longer content"), 0o644))

	require.NoError(t, core.CopyFile(fsys, "src.txt", "dst.txt"))

	data, err := fsys.ReadFile("dst.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("short"), data)
}

func TestCopyFileMissingSource(t *testing.T) {
	fsys := billy.NewMemory()
	err := core.CopyFile(fsys, "missing.txt", "dst.txt")
	require.ErrorIs(t, err, core.ErrNotExist)
}

func TestCopyFileDereferencesSymlink(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("target.txt", []byte("real content"), 0o644))
	require.NoError(t, fsys.Symlink("target.txt", "link.txt"))

	require.NoError(t, core.CopyFile(fsys, "link.txt", "dst.txt"))

	// The copy holds the target's content and is itself a regular file.
	data, err := fsys.ReadFile("dst.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("real content"), data)

	info, err := fsys.Lstat("dst.txt")
	require.NoError(t, err)
	require.True(t, info.Mode().IsRegular())
}

func TestCopyFilePreservesMetadataLocally(t *testing.T) {
	fsys, err := billy.NewLocal().Chroot(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fsys.WriteFile("src.txt", []byte("x"), 0o644))
	mfs, ok := fsys.(core.MetadataFS)
	require.True(t, ok)
	require.NoError(t, mfs.Chmod("src.txt", 0o600))

	require.NoError(t, core.CopyFile(fsys, "src.txt", "dst.txt"))

	srcInfo, err := fsys.Stat("src.txt")
	require.NoError(t, err)
	dstInfo, err := fsys.Stat("dst.txt")
	require.NoError(t, err)
	require.Equal(t, srcInfo.Mode().Perm(), dstInfo.Mode().Perm())
	require.True(t, dstInfo.ModTime().Equal(srcInfo.ModTime()))
}
