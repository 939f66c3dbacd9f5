package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	content := "first\nsecond\n\tthird\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEditor(t)
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	wantLines(t, e, "first", "second", "\tthird")
	if e.Dirty() {
		t.Fatalf("fresh open marked dirty")
	}

	e.Save()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Fatalf("saved = %q, want %q", got, content)
	}
}

func TestOpenTrimsCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dos.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEditor(t)
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	wantLines(t, e, "a", "b")
}

func TestOpenMissingFileFails(t *testing.T) {
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "absent.txt")
	err := e.Open(path)
	if err == nil {
		t.Fatalf("open of a missing file must fail")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	// The buffer stays untouched so the caller can exit fatally.
	if e.Filename() != "" {
		t.Fatalf("filename = %q, want empty", e.Filename())
	}
}

func TestSaveNormalizesTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noeol.txt")
	if err := os.WriteFile(path, []byte("only"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEditor(t)
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	e.Save()
	got, _ := os.ReadFile(path)
	if string(got) != "only\n" {
		t.Fatalf("saved = %q, want trailing newline", got)
	}
}

func TestSaveClearsDirty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "d.txt")
	e := newTestEditor(t)
	e.filename = path
	e.InsertChar('x')
	if !e.Dirty() {
		t.Fatalf("typing did not dirty the buffer")
	}
	e.Save()
	if e.Dirty() {
		t.Fatalf("save left the buffer dirty")
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	e := newTestEditor(t)
	e.filename = filepath.Join(t.TempDir(), "missing-dir", "f.txt")
	e.InsertChar('x')
	e.Save()
	if !e.Dirty() {
		t.Fatalf("failed save cleared dirty")
	}
	if e.StatusMessage() == "" {
		t.Fatalf("failed save produced no status message")
	}
}

func TestSyntaxSelectedFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEditor(t)
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	if e.syntax == nil || e.syntax.Name != "c" {
		t.Fatalf("syntax = %v, want c", e.syntax)
	}
	if e.rows[0].highlight[0] != hlKeyword2 {
		t.Fatalf("int not painted after open")
	}
}
