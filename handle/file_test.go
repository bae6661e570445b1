package handle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/japaneseTemmie/os-extras/billy"
	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
	"github.com/japaneseTemmie/os-extras/handle"
)

// noRenameFS refuses every rename, forcing the copy+delete fallback the way
// a cross-filesystem move would.
type noRenameFS struct {
	core.FS
}

func (f *noRenameFS) Rename(oldpath, newpath string) error {
	return errors.New(errors.CodeIO, "rename not supported across boundaries")
}

func TestOpenFileNilFS(t *testing.T) {
	_, err := handle.OpenFile(nil, "x.txt")
	require.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestOpenFileEmptyPath(t *testing.T) {
	_, err := handle.OpenFile(billy.NewMemory(), "")
	require.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestFileZeroValueInvalid(t *testing.T) {
	var f handle.File
	require.False(t, f.Valid())

	_, err := f.ReadAll()
	require.Equal(t, errors.CodeInvalidState, errors.GetCode(err))
}

func TestFileExistsAfterExternalRemoval(t *testing.T) {
	fsys := billy.NewMemory()
	f, err := handle.OpenFile(fsys, "x.txt", handle.WithCreate())
	require.NoError(t, err)

	ok, err := f.Exists()
	require.NoError(t, err)
	require.True(t, ok)

	// The file vanishing underneath does not invalidate the handle; it
	// just reports absent.
	require.NoError(t, fsys.Remove("x.txt"))
	ok, err = f.Exists()
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, f.Valid())

	// And deleting through the handle still succeeds.
	require.NoError(t, f.Delete())
	require.False(t, f.Valid())
}

func TestFileInvalidExists(t *testing.T) {
	f, err := handle.OpenFile(billy.NewMemory(), "x.txt", handle.WithCreate())
	require.NoError(t, err)
	require.NoError(t, f.Delete())

	// An invalid handle reports non-existence without error.
	ok, err := f.Exists()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileMoveToFallback(t *testing.T) {
	fsys := &noRenameFS{FS: billy.NewMemory()}

	f, err := handle.OpenFile(fsys, "src/file.txt", handle.WithCreate())
	require.NoError(t, err)
	_, err = f.WriteString("payload")
	require.NoError(t, err)

	require.NoError(t, f.MoveTo("dst/file.txt"))
	require.Equal(t, "dst/file.txt", f.Path())

	got, err := f.ReadString()
	require.NoError(t, err)
	require.Equal(t, "payload", got)

	ok, err := fsys.Exists("src/file.txt")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileDigestKnownVectors(t *testing.T) {
	f, err := handle.OpenFile(billy.NewMemory(), "x.txt", handle.WithCreate())
	require.NoError(t, err)
	_, err = f.WriteString("abc")
	require.NoError(t, err)

	vectors := map[string]string{
		handle.SHA1:   "a9993e364706816aba3e25717850c26c9cd0d89d",
		handle.SHA256: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		handle.SHA512: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
	}
	for alg, want := range vectors {
		got, err := f.Digest(alg)
		require.NoError(t, err, alg)
		require.Equal(t, want, got, alg)
	}
}

func TestFileDigestEmpty(t *testing.T) {
	f, err := handle.OpenFile(billy.NewMemory(), "empty.txt", handle.WithCreate())
	require.NoError(t, err)

	got, err := f.Digest(handle.SHA256)
	require.NoError(t, err)
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", got)
}

func TestFileLinesEmptyFile(t *testing.T) {
	f, err := handle.OpenFile(billy.NewMemory(), "empty.txt", handle.WithCreate())
	require.NoError(t, err)

	count := 0
	for _, err := range f.Lines() {
		require.NoError(t, err)
		count++
	}
	require.Zero(t, count)
}

func TestFileGrepNoTrailingNewline(t *testing.T) {
	f, err := handle.OpenFile(billy.NewMemory(), "x.txt", handle.WithCreate())
	require.NoError(t, err)
	_, err = f.WriteString("first\nlast has needle")
	require.NoError(t, err)

	matches, err := f.Grep("needle", handle.MatchLiteral)
	require.NoError(t, err)
	require.Equal(t, []string{"last has needle"}, matches)
}
