package handletest

import (
	"bytes"
	"testing"

	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/errors"
	"github.com/japaneseTemmie/os-extras/handle"
)

func testFileOpenMissing(t *testing.T, fsys core.FS) {
	_, err := handle.OpenFile(fsys, "missing.txt")
	if err == nil {
		t.Fatal("expected error opening missing file")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %s", errors.GetCode(err))
	}
}

func testFileOpenCreate(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "new.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if !f.Valid() {
		t.Error("expected handle to be valid")
	}
	if f.Name() != "new.txt" {
		t.Errorf("expected name new.txt, got %s", f.Name())
	}

	size, err := f.Size()
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if size != 0 {
		t.Errorf("expected empty file, got %d bytes", size)
	}

	// Opening an existing file with WithCreate must not truncate it.
	if _, err := f.WriteString("content"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	again, err := handle.OpenFile(fsys, "new.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	got, err := again.ReadString()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if got != "content" {
		t.Errorf("reopen truncated file, got %q", got)
	}
}

func testFileOpenDirectory(t *testing.T, fsys core.FS) {
	if err := fsys.MkdirAll("dir", 0o755); err != nil {
		t.Fatalf("failed to make dir: %v", err)
	}
	_, err := handle.OpenFile(fsys, "dir")
	if err == nil {
		t.Fatal("expected error opening directory as file")
	}
	if errors.GetCode(err) != errors.CodeWrongKind {
		t.Errorf("expected CodeWrongKind, got %s", errors.GetCode(err))
	}
}

func testFileReadWrite(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "data.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	content := []byte("hello world")
	n, err := f.Write(content)
	if err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if n != len(content) {
		t.Errorf("expected %d bytes written, got %d", len(content), n)
	}

	got, err := f.ReadAll()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("expected %q, got %q", content, got)
	}

	// Write replaces, never appends.
	if _, err := f.WriteString("short"); err != nil {
		t.Fatalf("failed to rewrite: %v", err)
	}
	s, err := f.ReadString()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if s != "short" {
		t.Errorf("expected %q, got %q", "short", s)
	}
}

func testFileAppend(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "log.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if _, err := f.AppendString("one\n"); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	if _, err := f.AppendString("two\n"); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	got, err := f.ReadString()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if got != "one\ntwo\n" {
		t.Errorf("expected appended content, got %q", got)
	}
}

func testFileReadLimit(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "data.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.WriteString("0123456789"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	got, err := f.ReadLimit(4)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(got) != "0123" {
		t.Errorf("expected prefix 0123, got %q", got)
	}

	// A limit past the end returns the whole file.
	got, err = f.ReadLimit(100)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(got) != "0123456789" {
		t.Errorf("expected full content, got %q", got)
	}

	if _, err := f.ReadLimit(0); errors.GetCode(err) != errors.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument for zero limit, got %v", err)
	}
}

func testFileDelete(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "doomed.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := f.Delete(); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if f.Valid() {
		t.Error("expected handle to be invalid after delete")
	}
	if f.Path() != "" || f.Name() != "" {
		t.Errorf("expected cleared path and name, got %q %q", f.Path(), f.Name())
	}

	ok, err := fsys.Exists("doomed.txt")
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if ok {
		t.Error("expected file to be gone")
	}

	// Every operation on an invalid handle fails with CodeInvalidState.
	if _, err := f.ReadAll(); errors.GetCode(err) != errors.CodeInvalidState {
		t.Errorf("expected CodeInvalidState, got %v", err)
	}
	if err := f.Delete(); errors.GetCode(err) != errors.CodeInvalidState {
		t.Errorf("expected CodeInvalidState on double delete, got %v", err)
	}
}

func testFileCopyTo(t *testing.T, fsys core.FS) {
	src, err := handle.OpenFile(fsys, "src.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := src.WriteString("payload"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	dst, err := src.CopyTo("sub/dst.txt")
	if err != nil {
		t.Fatalf("failed to copy: %v", err)
	}
	if !src.Valid() || !dst.Valid() {
		t.Error("expected both handles to be valid")
	}
	if dst.Path() != "sub/dst.txt" {
		t.Errorf("expected destination path sub/dst.txt, got %s", dst.Path())
	}

	got, err := dst.ReadString()
	if err != nil {
		t.Fatalf("failed to read copy: %v", err)
	}
	if got != "payload" {
		t.Errorf("expected copied content, got %q", got)
	}

	// The source is independent of its copy.
	if _, err := src.WriteString("changed"); err != nil {
		t.Fatalf("failed to rewrite source: %v", err)
	}
	got, err = dst.ReadString()
	if err != nil {
		t.Fatalf("failed to reread copy: %v", err)
	}
	if got != "payload" {
		t.Errorf("copy changed with source, got %q", got)
	}
}

func testFileMoveTo(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "old.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.WriteString("payload"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	if err := f.MoveTo("moved/new.txt"); err != nil {
		t.Fatalf("failed to move: %v", err)
	}
	if !f.Valid() {
		t.Error("expected handle to stay valid after move")
	}
	if f.Path() != "moved/new.txt" {
		t.Errorf("expected path moved/new.txt, got %s", f.Path())
	}
	if f.Name() != "new.txt" {
		t.Errorf("expected name new.txt, got %s", f.Name())
	}

	got, err := f.ReadString()
	if err != nil {
		t.Fatalf("failed to read moved file: %v", err)
	}
	if got != "payload" {
		t.Errorf("expected content to survive move, got %q", got)
	}

	ok, err := fsys.Exists("old.txt")
	if err != nil {
		t.Fatalf("failed to check old path: %v", err)
	}
	if ok {
		t.Error("expected old path to be gone")
	}
}

func testFileDigest(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "data.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.WriteString("hello"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	got, err := f.Digest(handle.SHA256)
	if err != nil {
		t.Fatalf("failed to digest: %v", err)
	}
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("sha256 mismatch: got %s", got)
	}

	// Algorithm names are case-insensitive.
	upper, err := f.Digest("SHA256")
	if err != nil {
		t.Fatalf("failed to digest with upper-case name: %v", err)
	}
	if upper != want {
		t.Errorf("case-insensitive lookup returned %s", upper)
	}

	_, err = f.Digest("md5")
	if errors.GetCode(err) != errors.CodeUnsupportedAlgorithm {
		t.Errorf("expected CodeUnsupportedAlgorithm, got %v", err)
	}
}

func testFileLines(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "lines.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.WriteString("alpha\nbeta\ngamma\n"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	var lines []string
	for line, err := range f.Lines() {
		if err != nil {
			t.Fatalf("iteration error: %v", err)
		}
		lines = append(lines, line)
	}
	want := []string{"alpha", "beta", "gamma"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	// The sequence is restartable; a second range starts from the top.
	var first string
	for line, err := range f.Lines() {
		if err != nil {
			t.Fatalf("iteration error: %v", err)
		}
		first = line
		break
	}
	if first != "alpha" {
		t.Errorf("expected second traversal to restart, got %q", first)
	}
}

func testFileGrep(t *testing.T, fsys core.FS) {
	f, err := handle.OpenFile(fsys, "grep.txt", handle.WithCreate())
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.WriteString("error: disk full\nok\nerror: timeout\n"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	matches, err := f.Grep("error", handle.MatchLiteral)
	if err != nil {
		t.Fatalf("failed to grep: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	matches, err = f.Grep(`^error: \w+$`, handle.MatchPattern)
	if err != nil {
		t.Fatalf("failed to grep pattern: %v", err)
	}
	if len(matches) != 1 || matches[0] != "error: timeout" {
		t.Errorf("expected single pattern match, got %v", matches)
	}

	_, err = f.Grep("[", handle.MatchPattern)
	if errors.GetCode(err) != errors.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument for bad pattern, got %v", err)
	}
}
