package billy_test

import (
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/japaneseTemmie/os-extras/billy"
	"github.com/japaneseTemmie/os-extras/core"
)

// newLocal returns a local filesystem scoped to a fresh temporary
// directory.
func newLocal(t *testing.T) core.FS {
	t.Helper()
	fsys, err := billy.NewLocal().Chroot(t.TempDir())
	require.NoError(t, err)
	return fsys
}

func TestType(t *testing.T) {
	require.Equal(t, core.FSTypeMemory, billy.NewMemory().Type())
	require.Equal(t, core.FSTypeLocal, billy.NewLocal().Type())

	// Chroot preserves the backend type.
	require.Equal(t, core.FSTypeLocal, newLocal(t).Type())
}

func TestWriteReadFile(t *testing.T) {
	fsys := billy.NewMemory()

	err := fsys.WriteFile("dir/file.txt", []byte("content"), 0o644)
	require.NoError(t, err)

	data, err := fsys.ReadFile("dir/file.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("content"), data)
}

func TestExists(t *testing.T) {
	fsys := billy.NewMemory()

	ok, err := fsys.Exists("missing.txt")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, fsys.WriteFile("present.txt", nil, 0o644))
	ok, err = fsys.Exists("present.txt")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestReadDir(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("dir/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.MkdirAll("dir/sub", 0o755))

	entries, err := fsys.ReadDir("dir")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = e.IsDir()
	}
	require.Equal(t, map[string]bool{"a.txt": false, "sub": true}, names)
}

func TestMkdir(t *testing.T) {
	fsys := billy.NewMemory()

	// Mkdir requires the parent to exist.
	err := fsys.Mkdir("a/b", 0o755)
	require.Error(t, err)

	require.NoError(t, fsys.MkdirAll("a", 0o755))
	require.NoError(t, fsys.Mkdir("a/b", 0o755))

	err = fsys.Mkdir("a/b", 0o755)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestRemoveAll(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("tree/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile("tree/sub/b.txt", []byte("b"), 0o644))

	require.NoError(t, fsys.RemoveAll("tree"))

	ok, err := fsys.Exists("tree")
	require.NoError(t, err)
	require.False(t, ok)

	// Removing an absent path succeeds.
	require.NoError(t, fsys.RemoveAll("tree"))
}

func TestRename(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("old.txt", []byte("x"), 0o644))

	require.NoError(t, fsys.Rename("old.txt", "new.txt"))

	data, err := fsys.ReadFile("new.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("x"), data)

	ok, err := fsys.Exists("old.txt")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWalk(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("root/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile("root/sub/b.txt", []byte("b"), 0o644))

	var visited []string
	err := fsys.Walk("root", func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		visited = append(visited, p)
		return nil
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"root", "root/a.txt", "root/sub", "root/sub/b.txt"}, visited)
}

func TestWalkSkipDir(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("root/skip/inner.txt", []byte("x"), 0o644))
	require.NoError(t, fsys.WriteFile("root/a.txt", []byte("a"), 0o644))

	var visited []string
	err := fsys.Walk("root", func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if p == "root/skip" {
			return fs.SkipDir
		}
		visited = append(visited, p)
		return nil
	})
	require.NoError(t, err)
	require.NotContains(t, visited, "root/skip/inner.txt")
}

func TestChroot(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("scope/inner.txt", []byte("x"), 0o644))

	scoped, err := fsys.Chroot("scope")
	require.NoError(t, err)

	ok, err := scoped.Exists("inner.txt")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLstatSymlink(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("target.txt", []byte("x"), 0o644))
	require.NoError(t, fsys.Symlink("target.txt", "link.txt"))

	info, err := fsys.Lstat("link.txt")
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&fs.ModeSymlink)

	// Stat follows the link.
	info, err = fsys.Stat("link.txt")
	require.NoError(t, err)
	require.Zero(t, info.Mode()&fs.ModeSymlink)

	dest, err := fsys.Readlink("link.txt")
	require.NoError(t, err)
	require.Equal(t, "target.txt", dest)
}

func TestChmodChtimesMemoryUnsupported(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("file.txt", nil, 0o644))

	require.ErrorIs(t, fsys.Chmod("file.txt", 0o600), core.ErrUnsupported)
	require.ErrorIs(t, fsys.Chtimes("file.txt", time.Now(), time.Now()), core.ErrUnsupported)
}

func TestChmodChtimesLocal(t *testing.T) {
	fsys := newLocal(t)
	require.NoError(t, fsys.WriteFile("file.txt", nil, 0o644))

	mfs, ok := fsys.(core.MetadataFS)
	require.True(t, ok)

	require.NoError(t, mfs.Chmod("file.txt", 0o600))
	info, err := fsys.Stat("file.txt")
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, mfs.Chtimes("file.txt", mtime, mtime))
	info, err = fsys.Stat("file.txt")
	require.NoError(t, err)
	require.True(t, info.ModTime().Equal(mtime))
}
