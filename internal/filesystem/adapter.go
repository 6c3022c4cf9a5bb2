package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileStats holds basic statistics about a file.
type FileStats struct {
	Size    int64
	IsDir   bool
	ModTime time.Time
	Mode    os.FileMode
}

// DirEntryInfo holds information about a directory entry.
type DirEntryInfo struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// FileSystemAdapter defines an interface for interacting with the file
// system. It allows for easier testing and potential future extensions
// (e.g. virtual file systems).
type FileSystemAdapter interface {
	ReadFileBytes(filePath string) ([]byte, error)
	WriteFileBytesAtomic(filePath string, content []byte, perm os.FileMode) error
	OpenRead(filePath string) (io.ReadCloser, error)
	OpenAppend(filePath string) (io.WriteCloser, error)
	FileExists(filePath string) (bool, error)
	GetFileStats(filePath string) (*FileStats, error)
	MkdirAll(path string, perm os.FileMode) error
	ListDir(path string) ([]DirEntryInfo, error)
	EvalSymlinks(path string) (string, error)
}

// DefaultFileSystemAdapter is the standard implementation of
// FileSystemAdapter using the os package.
type DefaultFileSystemAdapter struct{}

// NewDefaultFileSystemAdapter creates a new DefaultFileSystemAdapter.
func NewDefaultFileSystemAdapter() *DefaultFileSystemAdapter {
	return &DefaultFileSystemAdapter{}
}

var _ FileSystemAdapter = (*DefaultFileSystemAdapter)(nil)

// ReadFileBytes reads the entire file into a byte slice.
func (fs *DefaultFileSystemAdapter) ReadFileBytes(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s: %w", filePath, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading file: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to read file: %s: %w", filePath, err)
	}
	return content, nil
}

// WriteFileBytesAtomic writes content to a file atomically. It writes to a
// temporary file in the same directory, renames it over the target, and
// then sets the final permissions. Rename carries over the temp file's
// 0600 mode, so the explicit Chmod keeps new files from staying at 0600.
func (fs *DefaultFileSystemAdapter) WriteFileBytesAtomic(filePath string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)

	tempFile, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	// Harmless after a successful rename; the temp name no longer exists.
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write to temporary file %s: %w", tempFile.Name(), err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %s: %w", tempFile.Name(), err)
	}
	if err := os.Rename(tempFile.Name(), filePath); err != nil {
		return fmt.Errorf("failed to rename temporary file %s to %s: %w", tempFile.Name(), filePath, err)
	}
	if err := os.Chmod(filePath, perm); err != nil {
		return fmt.Errorf("file written to %s, but failed to set final permissions to %o: %w", filePath, perm, err)
	}
	return nil
}

// OpenRead opens a file for streaming reads.
func (fs *DefaultFileSystemAdapter) OpenRead(filePath string) (io.ReadCloser, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s: %w", filePath, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading file: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to open file: %s: %w", filePath, err)
	}
	return f, nil
}

// OpenAppend opens an existing file for appending.
func (fs *DefaultFileSystemAdapter) OpenAppend(filePath string) (io.WriteCloser, error) {
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s: %w", filePath, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied appending to file: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to open file for append: %s: %w", filePath, err)
	}
	return f, nil
}

// FileExists checks if a file exists.
func (fs *DefaultFileSystemAdapter) FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking if file exists %s: %w", filePath, err)
}

// GetFileStats retrieves statistics for a given file.
func (fs *DefaultFileSystemAdapter) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found for stats: %s: %w", filePath, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied getting stats for file: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to get file stats for %s: %w", filePath, err)
	}
	return &FileStats{
		Size:    info.Size(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Mode:    info.Mode().Perm(),
	}, nil
}

// MkdirAll creates a directory and any missing parents.
func (fs *DefaultFileSystemAdapter) MkdirAll(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ListDir lists the contents of a directory, excluding "." and "..".
func (fs *DefaultFileSystemAdapter) ListDir(path string) ([]DirEntryInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s: %w", path, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading directory: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var dirEntries []DirEntryInfo
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// The entry may have vanished between ReadDir and Info. A
			// partial listing is misleading, so fail the whole call.
			return nil, fmt.Errorf("failed to get info for entry %s in %s: %w", entry.Name(), path, err)
		}
		dirEntries = append(dirEntries, DirEntryInfo{
			Name:    info.Name(),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return dirEntries, nil
}

// EvalSymlinks evaluates symbolic links for the given path.
func (fs *DefaultFileSystemAdapter) EvalSymlinks(path string) (string, error) {
	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate symlinks for %s: %w", path, err)
	}
	return resolvedPath, nil
}
