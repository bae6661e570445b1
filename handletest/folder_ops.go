package handletest

import (
	"testing"

	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
	"github.com/japaneseTemmie/os-extras/handle"
)

func testFolderOpenMissing(t *testing.T, fsys core.FS) {
	_, err := handle.OpenFolder(fsys, "missing")
	if err == nil {
		t.Fatal("expected error opening missing directory")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %s", errors.GetCode(err))
	}
}

func testFolderOpenCreate(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFolder(fsys, "a/b/c", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if !f.Valid() {
		t.Error("expected handle to be valid")
	}
	if f.Name() != "c" {
		t.Errorf("expected name c, got %s", f.Name())
	}

	// All missing ancestors must exist too.
	for _, p := range []string{"a", "a/b", "a/b/c"} {
		info, err := fsys.Stat(p)
		if err != nil {
			t.Fatalf("failed to stat %s: %v", p, err)
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", p)
		}
	}
}

func testFolderOpenFile(t *testing.T, fsys core.FS) {
	if err := fsys.WriteFile("plain.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	_, err := handle.OpenFolder(fsys, "plain.txt")
	if err == nil {
		t.Fatal("expected error opening file as directory")
	}
	if errors.GetCode(err) != errors.CodeWrongKind {
		t.Errorf("expected CodeWrongKind, got %s", errors.GetCode(err))
	}
}

func testFolderEnumerate(t *testing.T, fsys core.FS) {
	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create root: %v", err)
	}
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.txt"} {
		if err := fsys.WriteFile("root/"+name, []byte(name), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	for _, name := range []string{"zdir", "adir"} {
		if err := fsys.MkdirAll("root/"+name, 0o755); err != nil {
			t.Fatalf("failed to make %s: %v", name, err)
		}
	}

	files, err := root.Files()
	if err != nil {
		t.Fatalf("failed to list files: %v", err)
	}
	wantFiles := []string{"alpha.txt", "mid.txt", "zeta.txt"}
	if len(files) != len(wantFiles) {
		t.Fatalf("expected %d files, got %d", len(wantFiles), len(files))
	}
	for i, f := range files {
		if f.Name() != wantFiles[i] {
			t.Errorf("file %d: expected %s, got %s", i, wantFiles[i], f.Name())
		}
	}

	folders, err := root.Subfolders()
	if err != nil {
		t.Fatalf("failed to list subfolders: %v", err)
	}
	wantFolders := []string{"adir", "zdir"}
	if len(folders) != len(wantFolders) {
		t.Fatalf("expected %d subfolders, got %d", len(wantFolders), len(folders))
	}
	for i, f := range folders {
		if f.Name() != wantFolders[i] {
			t.Errorf("subfolder %d: expected %s, got %s", i, wantFolders[i], f.Name())
		}
	}

	entries, err := root.Entries()
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	// Both kinds interleave in sorted name order.
	wantEntries := []string{"adir", "alpha.txt", "mid.txt", "zdir", "zeta.txt"}
	if len(entries) != len(wantEntries) {
		t.Fatalf("expected %d entries, got %d", len(wantEntries), len(entries))
	}
	for i, e := range entries {
		if e.Name() != wantEntries[i] {
			t.Errorf("entry %d: expected %s, got %s", i, wantEntries[i], e.Name())
		}
	}

	// Enumeration observes live state; a new file shows up on the next call.
	if err := fsys.WriteFile("root/late.txt", []byte("late"), 0o644); err != nil {
		t.Fatalf("failed to write late file: %v", err)
	}
	files, err = root.Files()
	if err != nil {
		t.Fatalf("failed to relist files: %v", err)
	}
	if len(files) != 4 {
		t.Errorf("expected fresh scan to see 4 files, got %d", len(files))
	}
}

func testFolderAddDeleteFile(t *testing.T, fsys core.FS) {
	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	f, err := root.AddFile("note.txt")
	if err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if f.Path() != "root/note.txt" {
		t.Errorf("expected path root/note.txt, got %s", f.Path())
	}

	// Names must be bare names, never paths.
	if _, err := root.AddFile("sub/note.txt"); errors.GetCode(err) != errors.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument for path-like name, got %v", err)
	}
	if _, err := root.AddFile(".."); errors.GetCode(err) != errors.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument for .., got %v", err)
	}

	if err := root.DeleteFile("note.txt"); err != nil {
		t.Fatalf("failed to delete file: %v", err)
	}
	ok, err := fsys.Exists("root/note.txt")
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if ok {
		t.Error("expected file to be gone")
	}

	if err := root.DeleteFile("note.txt"); errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected CodeNotFound for absent file, got %v", err)
	}

	// A directory child cannot be removed as a file.
	if _, err := root.MakeSubfolder("dir"); err != nil {
		t.Fatalf("failed to make subfolder: %v", err)
	}
	if err := root.DeleteFile("dir"); errors.GetCode(err) != errors.CodeWrongKind {
		t.Errorf("expected CodeWrongKind for directory, got %v", err)
	}
}

func testFolderSubfolders(t *testing.T, fsys core.FS) {
	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	sub, err := root.MakeSubfolder("sub")
	if err != nil {
		t.Fatalf("failed to make subfolder: %v", err)
	}
	if sub.Path() != "root/sub" {
		t.Errorf("expected path root/sub, got %s", sub.Path())
	}

	// Populate the subfolder, then delete it recursively through the parent.
	if _, err := sub.AddFile("inner.txt"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	deleted, err := root.DeleteSubfolder("sub")
	if err != nil {
		t.Fatalf("failed to delete subfolder: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "root/sub/inner.txt" {
		t.Errorf("unexpected deleted files: %v", deleted)
	}
	ok, err := fsys.Exists("root/sub")
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if ok {
		t.Error("expected subfolder to be gone")
	}

	// A file child cannot be removed as a subfolder.
	if _, err := root.AddFile("plain.txt"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if _, err := root.DeleteSubfolder("plain.txt"); errors.GetCode(err) != errors.CodeWrongKind {
		t.Errorf("expected CodeWrongKind for file, got %v", err)
	}
}

func testFolderIsEmpty(t *testing.T, fsys core.FS) {
	root, err := handle.OpenFolder(fsys, "root", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	empty, err := root.IsEmpty()
	if err != nil {
		t.Fatalf("failed to check emptiness: %v", err)
	}
	if !empty {
		t.Error("expected new directory to be empty")
	}

	if _, err := root.AddFile("x.txt"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	empty, err = root.IsEmpty()
	if err != nil {
		t.Fatalf("failed to recheck emptiness: %v", err)
	}
	if empty {
		t.Error("expected directory with a file to be non-empty")
	}
}
