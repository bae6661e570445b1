package handletest

import (
	"io/fs"
	"testing"

	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
	"github.com/japaneseTemmie/os-extras/handle"
)

// seedTree builds the fixture used by the tree tests:
//
//	root/
//	  a.txt
//	  b.txt
//	  sub/
//	    a.txt
//	    deep/
//	      c.txt
func seedTree(t *testing.T, fsys core.FS) *handle.Folder {
	t.Helper()

	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create root: %v", err)
	}
	seed := map[string]string{
		"root/a.txt":          "alpha",
		"root/b.txt":          "beta",
		"root/sub/a.txt":      "nested alpha",
		"root/sub/deep/c.txt": "gamma",
	}
	for p, content := range seed {
		if err := fsys.MkdirAll(parentDir(p), 0o755); err != nil {
			t.Fatalf("failed to make parent of %s: %v", p, err)
		}
		if err := fsys.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}
	return root
}

func parentDir(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[:i]
		}
	}
	return "."
}

func testTreeDelete(t *testing.T, fsys core.FS) {
	root := seedTree(t, fsys)

	deleted, err := root.Delete()
	if err != nil {
		t.Fatalf("failed to delete tree: %v", err)
	}
	if len(deleted) != 4 {
		t.Errorf("expected 4 deleted files, got %d: %v", len(deleted), deleted)
	}
	if root.Valid() {
		t.Error("expected handle to be invalid after delete")
	}

	ok, err := fsys.Exists("root")
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if ok {
		t.Error("expected tree to be gone")
	}
}

func testTreeDeleteSymlink(t *testing.T, fsys core.FS) {
	sfs, ok := fsys.(core.SymlinkFS)
	if !ok {
		t.Skip("provider does not support symlinks")
	}
	if _, ok := fsys.(core.MetadataFS); !ok {
		t.Skip("provider cannot detect symlinks")
	}

	root := seedTree(t, fsys)
	if err := fsys.MkdirAll("outside", 0o755); err != nil {
		t.Fatalf("failed to make outside dir: %v", err)
	}
	if err := fsys.WriteFile("outside/keep.txt", []byte("survivor"), 0o644); err != nil {
		t.Fatalf("failed to write outside file: %v", err)
	}
	if err := sfs.Symlink("../outside", "root/link"); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	if _, err := root.Delete(); err != nil {
		t.Fatalf("failed to delete tree: %v", err)
	}

	// The link was removed as a link; its target must be untouched.
	ok2, err := fsys.Exists("outside/keep.txt")
	if err != nil {
		t.Fatalf("failed to check target: %v", err)
	}
	if !ok2 {
		t.Error("delete followed a symlink into its target")
	}

	// A handle opened on a symlink to a directory deletes the link itself,
	// never the linked contents.
	if err := sfs.Symlink("outside", "portal"); err != nil {
		t.Fatalf("failed to create dir symlink: %v", err)
	}
	linked, err := handle.OpenFolder(fsys, "portal")
	if err != nil {
		t.Fatalf("failed to open linked folder: %v", err)
	}
	deleted, err := linked.Delete()
	if err != nil {
		t.Fatalf("failed to delete linked folder: %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("expected no files deleted through the link, got %v", deleted)
	}
	if linked.Valid() {
		t.Error("expected handle to be invalid after delete")
	}
	ok2, err = fsys.Exists("outside/keep.txt")
	if err != nil {
		t.Fatalf("failed to recheck target: %v", err)
	}
	if !ok2 {
		t.Error("deleting the link removed the target's contents")
	}
}

func testTreeCopyTo(t *testing.T, fsys core.FS) {
	root := seedTree(t, fsys)

	pairs, err := root.CopyTo("clone")
	if err != nil {
		t.Fatalf("failed to copy tree: %v", err)
	}
	if len(pairs) != 4 {
		t.Fatalf("expected 4 copied files, got %d", len(pairs))
	}
	if !root.Valid() {
		t.Error("expected source handle to stay valid")
	}

	for _, pair := range pairs {
		src, err := pair.Source.ReadAll()
		if err != nil {
			t.Fatalf("failed to read source %s: %v", pair.Source.Path(), err)
		}
		dst, err := pair.Destination.ReadAll()
		if err != nil {
			t.Fatalf("failed to read copy %s: %v", pair.Destination.Path(), err)
		}
		if string(src) != string(dst) {
			t.Errorf("content mismatch for %s", pair.Destination.Path())
		}
	}

	// Structure survives, including the empty-to-deep nesting.
	info, err := fsys.Stat("clone/sub/deep")
	if err != nil {
		t.Fatalf("failed to stat copied subtree: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected copied subtree to be a directory")
	}
}

func testTreeMoveTo(t *testing.T, fsys core.FS) {
	root := seedTree(t, fsys)

	moved, err := root.MoveTo("relocated")
	if err != nil {
		t.Fatalf("failed to move tree: %v", err)
	}
	if len(moved) != 4 {
		t.Fatalf("expected 4 moved files, got %d", len(moved))
	}
	if !root.Valid() {
		t.Error("expected handle to stay valid after move")
	}
	if root.Path() != "relocated" {
		t.Errorf("expected handle at relocated, got %s", root.Path())
	}

	for _, m := range moved {
		if m.OldPath == "" || m.OldPath == m.File.Path() {
			t.Errorf("bad old path %q for %s", m.OldPath, m.File.Path())
		}
		if _, err := m.File.ReadAll(); err != nil {
			t.Errorf("failed to read moved file %s: %v", m.File.Path(), err)
		}
	}

	ok, err := fsys.Exists("root")
	if err != nil {
		t.Fatalf("failed to check old location: %v", err)
	}
	if ok {
		t.Error("expected old location to be gone")
	}
}

func testTreeFind(t *testing.T, fsys core.FS) {
	root := seedTree(t, fsys)

	// Files are checked before subfolders, so the shallow a.txt wins.
	first, err := root.FindFirst("a.txt", handle.MatchLiteral)
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if first == nil || first.Path() != "root/a.txt" {
		t.Errorf("expected root/a.txt first, got %v", first)
	}

	all, err := root.FindAll("a.txt", handle.MatchLiteral)
	if err != nil {
		t.Fatalf("failed to find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(all))
	}
	if all[0].Path() != "root/a.txt" || all[1].Path() != "root/sub/a.txt" {
		t.Errorf("unexpected match order: %s, %s", all[0].Path(), all[1].Path())
	}

	// Directories match by name too.
	dir, err := root.FindFirst("deep", handle.MatchLiteral)
	if err != nil {
		t.Fatalf("failed to find directory: %v", err)
	}
	if _, ok := dir.(*handle.Folder); !ok {
		t.Errorf("expected a Folder handle, got %T", dir)
	}

	// Patterns apply unanchored.
	matches, err := root.FindAll(`^[ab]\.txt$`, handle.MatchPattern)
	if err != nil {
		t.Fatalf("failed to find by pattern: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("expected 3 pattern matches, got %d", len(matches))
	}

	// No match is an empty result, not an error.
	none, err := root.FindFirst("nothing-here", handle.MatchLiteral)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil handle, got %v", none)
	}
}

func testTreeCompareContent(t *testing.T, fsys core.FS) {
	root := seedTree(t, fsys)

	if _, err := root.CopyTo("clone"); err != nil {
		t.Fatalf("failed to copy tree: %v", err)
	}
	clone, err := handle.OpenFolder(fsys, "clone")
	if err != nil {
		t.Fatalf("failed to open clone: %v", err)
	}

	equal, err := root.CompareContent(clone, handle.SHA256)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}
	if !equal {
		t.Error("expected identical folders to compare equal")
	}

	// The comparison is positional, not name-matched: renaming a direct
	// file leaves the sorted content pairing intact.
	if err := fsys.Rename("clone/a.txt", "clone/a-renamed.txt"); err != nil {
		t.Fatalf("failed to rename: %v", err)
	}
	equal, err = root.CompareContent(clone, handle.SHA256)
	if err != nil {
		t.Fatalf("failed to compare after rename: %v", err)
	}
	if !equal {
		t.Error("expected renamed but identical content to compare equal")
	}

	// One changed byte in a direct file flips the comparison.
	if err := fsys.WriteFile("clone/a-renamed.txt", []byte("tampered"), 0o644); err != nil {
		t.Fatalf("failed to tamper: %v", err)
	}
	equal, err = root.CompareContent(clone, handle.SHA256)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}
	if equal {
		t.Error("expected tampered folders to compare unequal")
	}

	// Differing file counts are an error, not just inequality.
	if err := fsys.WriteFile("clone/extra.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to add extra file: %v", err)
	}
	_, err = root.CompareContent(clone, handle.SHA256)
	if errors.GetCode(err) != errors.CodeCountMismatch {
		t.Errorf("expected CodeCountMismatch, got %v", err)
	}

	_, err = root.CompareContent(clone, "md5")
	if errors.GetCode(err) != errors.CodeUnsupportedAlgorithm {
		t.Errorf("expected CodeUnsupportedAlgorithm, got %v", err)
	}
}

func testTreeWalk(t *testing.T, fsys core.FS) {
	root := seedTree(t, fsys)

	var visited []string
	err := root.Walk(func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		visited = append(visited, p)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk: %v", err)
	}

	// Root, two directories, four files.
	if len(visited) != 7 {
		t.Errorf("expected 7 visited entries, got %d: %v", len(visited), visited)
	}
}
