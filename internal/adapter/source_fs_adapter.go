// Package adapter contains infrastructure adapters for the mklinkdef CLI.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning headers and writing generated files. It hides direct
// `os` access so the pipeline can be tested without touching the disk.
type SourceFSAdapter interface {
	// ListFiles returns the names of the non-directory entries of dir.
	ListFiles(dir m.Path) ([]string, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile creates the parent directory if needed and writes content.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RemoveIfExists deletes path. A missing file is not an error.
	RemoveIfExists(path m.Path) error

	// CopyFile copies src to dst, creating dst's parent directory.
	CopyFile(src, dst m.Path) error

	// RealPath resolves symlinks and returns an absolute path.
	RealPath(path m.Path) (m.Path, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ListFiles lists the non-directory entries of dir.
func (a *LocalSourceFSAdapter) ListFiles(dir m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		names = append(names, entry.Name())
	}

	return names, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to path, creating parent directories.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(string(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// RemoveIfExists removes path, ignoring a missing file.
func (a *LocalSourceFSAdapter) RemoveIfExists(path m.Path) error {
	err := os.Remove(string(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// CopyFile copies a single file.
func (a *LocalSourceFSAdapter) CopyFile(src, dst m.Path) error {
	in, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(string(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	return out.Close()
}

// RealPath returns the absolute, symlink-free form of path.
func (a *LocalSourceFSAdapter) RealPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}
