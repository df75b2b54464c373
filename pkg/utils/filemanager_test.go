package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateInputFile(csvPath); err != nil {
		t.Errorf("ValidateInputFile(.csv) = %v, want nil", err)
	}
	if err := ValidateInputFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("ValidateInputFile(missing) = nil, want error")
	}
	if err := ValidateInputFile(dir); err == nil {
		t.Error("ValidateInputFile(directory) = nil, want error")
	}

	pdfPath := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(pdfPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateInputFile(pdfPath); err == nil {
		t.Error("ValidateInputFile(.pdf) = nil, want error")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, werr := io.WriteString(w, "hello")
		return werr
	})
	if err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Errorf("read back %q, %v", data, err)
	}
}

func TestWriteFileAtomicLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		return errors.New("producer failed")
	})
	if err == nil {
		t.Fatal("WriteFileAtomic() = nil, want producer error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed write left %d files behind", len(entries))
	}
}

func TestArchiveFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "manifest.csv")
	if err := os.WriteFile(input, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	archiveDir := filepath.Join(dir, "archive")
	target, err := ArchiveFile(input, archiveDir)
	if err != nil {
		t.Fatalf("ArchiveFile() error = %v", err)
	}

	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Error("original still present after archival")
	}
	data, err := os.ReadFile(target)
	if err != nil || string(data) != "data" {
		t.Errorf("archived file %q, %v", data, err)
	}
	if filepath.Dir(target) != archiveDir {
		t.Errorf("archived to %q, want inside %q", target, archiveDir)
	}
}
