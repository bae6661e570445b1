// Package handletest provides a conformance suite for core.FS providers.
// A provider passes when the full handle layer behaves identically on it:
// file round-trips, folder enumeration, recursive tree operations, and the
// handle validity lifecycle.
//
// Run it against a provider factory:
//
//	func TestMemory(t *testing.T) {
//	    handletest.TestSuite(t, func() core.FS {
//	        return billy.NewMemory()
//	    })
//	}
//
// The factory must return a fresh, empty filesystem on every call so
// subtests stay independent.
package handletest

import (
	"testing"

	"github.com/japaneseTemmie/os-extras/core"
)

// Factory returns a fresh, empty filesystem for one subtest.
type Factory func() core.FS

// TestSuite runs the complete conformance suite against the provider.
func TestSuite(t *testing.T, newFS Factory) {
	t.Run("FileOps", func(t *testing.T) { TestFileOps(t, newFS) })
	t.Run("FolderOps", func(t *testing.T) { TestFolderOps(t, newFS) })
	t.Run("TreeOps", func(t *testing.T) { TestTreeOps(t, newFS) })
}

// TestFileOps runs the file handle conformance tests.
func TestFileOps(t *testing.T, newFS Factory) {
	t.Run("OpenMissing", func(t *testing.T) { testFileOpenMissing(t, newFS()) })
	t.Run("OpenCreate", func(t *testing.T) { testFileOpenCreate(t, newFS()) })
	t.Run("OpenDirectory", func(t *testing.T) { testFileOpenDirectory(t, newFS()) })
	t.Run("ReadWrite", func(t *testing.T) { testFileReadWrite(t, newFS()) })
	t.Run("Append", func(t *testing.T) { testFileAppend(t, newFS()) })
	t.Run("ReadLimit", func(t *testing.T) { testFileReadLimit(t, newFS()) })
	t.Run("Delete", func(t *testing.T) { testFileDelete(t, newFS()) })
	t.Run("CopyTo", func(t *testing.T) { testFileCopyTo(t, newFS()) })
	t.Run("MoveTo", func(t *testing.T) { testFileMoveTo(t, newFS()) })
	t.Run("Digest", func(t *testing.T) { testFileDigest(t, newFS()) })
	t.Run("Lines", func(t *testing.T) { testFileLines(t, newFS()) })
	t.Run("Grep", func(t *testing.T) { testFileGrep(t, newFS()) })
}

// TestFolderOps runs the folder handle conformance tests.
func TestFolderOps(t *testing.T, newFS Factory) {
	t.Run("OpenMissing", func(t *testing.T) { testFolderOpenMissing(t, newFS()) })
	t.Run("OpenCreate", func(t *testing.T) { testFolderOpenCreate(t, newFS()) })
	t.Run("OpenFile", func(t *testing.T) { testFolderOpenFile(t, newFS()) })
	t.Run("Enumerate", func(t *testing.T) { testFolderEnumerate(t, newFS()) })
	t.Run("AddDeleteFile", func(t *testing.T) { testFolderAddDeleteFile(t, newFS()) })
	t.Run("Subfolders", func(t *testing.T) { testFolderSubfolders(t, newFS()) })
	t.Run("IsEmpty", func(t *testing.T) { testFolderIsEmpty(t, newFS()) })
}

// TestTreeOps runs the recursive tree operation conformance tests.
func TestTreeOps(t *testing.T, newFS Factory) {
	t.Run("Delete", func(t *testing.T) { testTreeDelete(t, newFS()) })
	t.Run("DeleteSymlink", func(t *testing.T) { testTreeDeleteSymlink(t, newFS()) })
	t.Run("CopyTo", func(t *testing.T) { testTreeCopyTo(t, newFS()) })
	t.Run("MoveTo", func(t *testing.T) { testTreeMoveTo(t, newFS()) })
	t.Run("Find", func(t *testing.T) { testTreeFind(t, newFS()) })
	t.Run("CompareContent", func(t *testing.T) { testTreeCompareContent(t, newFS()) })
	t.Run("Walk", func(t *testing.T) { testTreeWalk(t, newFS()) })
}
