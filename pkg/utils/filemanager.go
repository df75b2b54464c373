// =============================================================================
// International Shipment Splitter - File Utilities
// =============================================================================
//
// File-level helpers shared by the pipeline and the CLI: input checks,
// directory creation, atomic output writes, and input archival. Output
// files are written to a temporary file and renamed into place so a failed
// run never leaves a partial artifact behind.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// supportedExtensions are the manifest formats the loaders understand.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// ValidateInputFile checks that the input exists, is a regular file, and
// has a supported extension.
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return fmt.Errorf("unsupported file format %q (expected .csv or .xlsx)", ext)
	}

	return nil
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteFileAtomic writes content produced by write to path via a temporary
// file in the same directory followed by a rename.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// ArchiveFile moves a processed input file into archiveDir, timestamping
// the name to avoid collisions. Falls back to copy-and-delete when the
// rename crosses filesystems. Returns the archived path.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	target := filepath.Join(archiveDir, fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext))

	if err := os.Rename(path, target); err == nil {
		return target, nil
	}

	if err := copyFile(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", base, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("archived but failed to remove original: %w", err)
	}
	return target, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
