// Package fs provides file system access for configuration layers.
// It handles raw bytes only; parsing is the job of document.Document
// implementations.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Default permission modes.
const (
	DefaultFileMode = 0644
	DefaultDirMode  = 0755
)

// File reads and writes raw configuration data at a fixed path.
type File struct {
	path     string
	fileMode os.FileMode
	dirMode  os.FileMode
}

// Option configures a File.
type Option func(*File)

// WithFileMode sets the file permission mode used when saving.
// Default is 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(f *File) {
		f.fileMode = mode
	}
}

// WithDirMode sets the directory permission mode used when creating
// parent directories. Default is 0755.
func WithDirMode(mode os.FileMode) Option {
	return func(f *File) {
		f.dirMode = mode
	}
}

// NewFile creates a file source for the given path.
//
// Example:
//
//	src := fs.NewFile("/etc/app/defaults.hjson")
//	src := fs.NewFile("user.hjson", fs.WithFileMode(0600))
func NewFile(path string, opts ...Option) *File {
	f := &File{
		path:     path,
		fileMode: DefaultFileMode,
		dirMode:  DefaultDirMode,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the file's contents.
func (f *File) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", f.path, err)
	}
	return data, nil
}

// Save writes data to the file atomically: the bytes are written to a
// temporary file in the target directory, synced, and renamed over the
// target path. Parent directories are created if they do not exist.
func (f *File) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, f.dirMode); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".kasane-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpPath, f.fileMode); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to rename temporary file to %q: %w", f.path, err)
	}

	success = true
	return nil
}

// ListDir returns the names of the regular files directly inside dir,
// sorted alphabetically. Subdirectories are skipped. The alphabetical
// order is part of the directory-load contract: later files override
// earlier ones when they map to the same layer name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
