package handle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/japaneseTemmie/os-extras/billy"
	"github.com/japaneseTemmie/os-extras/errors"
	"github.com/japaneseTemmie/os-extras/handle"
)

func TestOpenFolderNilFS(t *testing.T) {
	_, err := handle.OpenFolder(nil, "dir")
	require.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestFolderZeroValueInvalid(t *testing.T) {
	var f handle.Folder
	require.False(t, f.Valid())

	_, err := f.Files()
	require.Equal(t, errors.CodeInvalidState, errors.GetCode(err))
}

func TestFolderSymlinkToDirEnumeratesAsFolder(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.MkdirAll("root/real", 0o755))
	require.NoError(t, fsys.Symlink("real", "root/linked"))

	root, err := handle.OpenFolder(fsys, "root")
	require.NoError(t, err)

	// Kind classification follows the link, so the link lands with the
	// subfolders.
	folders, err := root.Subfolders()
	require.NoError(t, err)
	require.Len(t, folders, 2)
	require.Equal(t, "linked", folders[0].Name())
	require.Equal(t, "real", folders[1].Name())

	files, err := root.Files()
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestFolderMoveToFallback(t *testing.T) {
	fsys := &noRenameFS{FS: billy.NewMemory()}
	require.NoError(t, fsys.WriteFile("src/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile("src/sub/b.txt", []byte("b"), 0o644))

	root, err := handle.OpenFolder(fsys, "src")
	require.NoError(t, err)

	moved, err := root.MoveTo("dst")
	require.NoError(t, err)
	require.Equal(t, "dst", root.Path())
	require.Len(t, moved, 2)

	old := map[string]string{}
	for _, m := range moved {
		old[m.File.Path()] = m.OldPath
	}
	require.Equal(t, map[string]string{
		"dst/a.txt":     "src/a.txt",
		"dst/sub/b.txt": "src/sub/b.txt",
	}, old)

	ok, err := fsys.Exists("src")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFolderCompareContentAcrossProviders(t *testing.T) {
	left := billy.NewMemory()
	right := billy.NewMemory()
	for _, fsys := range []*billy.FS{left, right} {
		require.NoError(t, fsys.WriteFile("tree/a.txt", []byte("same"), 0o644))
		require.NoError(t, fsys.WriteFile("tree/b.txt", []byte("also same"), 0o644))
	}

	a, err := handle.OpenFolder(left, "tree")
	require.NoError(t, err)
	b, err := handle.OpenFolder(right, "tree")
	require.NoError(t, err)

	// The comparison works across distinct filesystems.
	equal, err := a.CompareContent(b, handle.SHA256)
	require.NoError(t, err)
	require.True(t, equal)

	require.NoError(t, right.WriteFile("tree/b.txt", []byte("changed"), 0o644))
	equal, err = a.CompareContent(b, handle.SHA256)
	require.NoError(t, err)
	require.False(t, equal)
}

func TestFolderCompareContentDifferentNames(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("a/one.txt", []byte("x"), 0o644))
	require.NoError(t, fsys.WriteFile("b/two.txt", []byte("x"), 0o644))

	a, err := handle.OpenFolder(fsys, "a")
	require.NoError(t, err)
	b, err := handle.OpenFolder(fsys, "b")
	require.NoError(t, err)

	// Pairing is positional after sorting, not name-matched: one file each
	// with identical bytes compares equal despite the different names.
	equal, err := a.CompareContent(b, handle.SHA256)
	require.NoError(t, err)
	require.True(t, equal)
}

func TestFolderCompareContentCountMismatch(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("a/one.txt", []byte("x"), 0o644))
	require.NoError(t, fsys.WriteFile("a/two.txt", []byte("x"), 0o644))
	require.NoError(t, fsys.WriteFile("b/one.txt", []byte("x"), 0o644))

	a, err := handle.OpenFolder(fsys, "a")
	require.NoError(t, err)
	b, err := handle.OpenFolder(fsys, "b")
	require.NoError(t, err)

	_, err = a.CompareContent(b, handle.SHA256)
	require.Equal(t, errors.CodeCountMismatch, errors.GetCode(err))
}

func TestFolderCompareContentIgnoresSubfolders(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("a/file.txt", []byte("x"), 0o644))
	require.NoError(t, fsys.WriteFile("a/sub/extra.txt", []byte("y"), 0o644))
	require.NoError(t, fsys.WriteFile("b/file.txt", []byte("x"), 0o644))

	a, err := handle.OpenFolder(fsys, "a")
	require.NoError(t, err)
	b, err := handle.OpenFolder(fsys, "b")
	require.NoError(t, err)

	// Only direct files participate; nested content is out of scope here.
	equal, err := a.CompareContent(b, handle.SHA256)
	require.NoError(t, err)
	require.True(t, equal)
}

func TestFolderCompareContentNil(t *testing.T) {
	fsys := billy.NewMemory()
	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	require.NoError(t, err)

	_, err = root.CompareContent(nil, handle.SHA256)
	require.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestFolderFindEmptyQuery(t *testing.T) {
	root, err := handle.OpenFolder(billy.NewMemory(), "root", handle.WithCreate())
	require.NoError(t, err)

	_, err = root.FindFirst("", handle.MatchLiteral)
	require.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = root.FindAll("", handle.MatchLiteral)
	require.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestFolderFindAllNoMatch(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("root/a.txt", []byte("a"), 0o644))

	root, err := handle.OpenFolder(fsys, "root")
	require.NoError(t, err)

	found, err := root.FindAll("zzz", handle.MatchLiteral)
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestFolderDeleteEmptied(t *testing.T) {
	fsys := billy.NewMemory()
	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	require.NoError(t, err)

	deleted, err := root.Delete()
	require.NoError(t, err)
	require.Empty(t, deleted)
	require.False(t, root.Valid())
}
