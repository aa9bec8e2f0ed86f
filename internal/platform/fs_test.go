package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMkdirAllIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	for i := 0; i < 2; i++ {
		if err := MkdirAll(dir); err != nil {
			t.Fatalf("MkdirAll pass %d: %v", i+1, err)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestMkdirAllOverFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := MkdirAll(filepath.Join(blocker, "sub"))
	if !errors.Is(err, ErrDirectoryCreateFailed) {
		t.Errorf("error = %v, want ErrDirectoryCreateFailed", err)
	}
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := WriteFile(path, []byte("a much longer first version")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("short")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Errorf("content = %q, want %q", got, "short")
	}
}

func TestWriteFileMissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	err := WriteFile(path, []byte("x"))
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("error = %v, want ErrWriteFailed", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestTouch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touched.php")
	if err := os.WriteFile(path, []byte("old content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Touch(path); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}
