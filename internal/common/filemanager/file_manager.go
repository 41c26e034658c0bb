package filemanager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileInfo holds metadata about a file or directory
type FileInfo struct {
	Path        string
	Name        string
	Size        int64
	IsDir       bool
	ModTime     time.Time
	Permissions fs.FileMode
}

// FileReadOptions controls file reading behaviour
type FileReadOptions struct {
	MaxSize int64 // 0 means unlimited
}

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
	writer *FileWriter
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	componentLogger := logger.With().Str("component", "FileManager").Logger()

	return &FileManager{
		logger: componentLogger,
		writer: NewFileWriter(componentLogger),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileInfo returns information about a file
func (fm *FileManager) GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorwrapper.WrapError(errorwrapper.ErrNotFound, fmt.Sprintf("file not found: %s", path))
		}
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to get file info for: %s", path))
	}

	info := &FileInfo{
		Path:        path,
		Name:        stat.Name(),
		Size:        stat.Size(),
		IsDir:       stat.IsDir(),
		ModTime:     stat.ModTime(),
		Permissions: stat.Mode(),
	}

	return info, nil
}

// ReadFile reads a file with the given options
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := fm.GetFileInfo(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir {
		return nil, errorwrapper.NewValidationError("path", path, "is a directory, not a file")
	}

	if opts.MaxSize > 0 && info.Size > opts.MaxSize {
		return nil, errorwrapper.NewValidationError("file_size", info.Size, fmt.Sprintf("exceeds maximum size of %d bytes", opts.MaxSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read file: "+path)
	}

	return data, nil
}

// WriteFile writes data to a file, creating parent directories as needed
func (fm *FileManager) WriteFile(path string, data []byte) error {
	return fm.writer.WriteFile(path, data)
}

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it into place so concurrent readers never observe a torn file
func (fm *FileManager) WriteFileAtomic(path string, data []byte) error {
	return fm.writer.WriteFileAtomic(path, data)
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if fm.FileExists(path) {
		info, err := fm.GetFileInfo(path)
		if err != nil {
			return errorwrapper.WrapError(err, "failed to check directory: "+path)
		}
		if !info.IsDir {
			return errorwrapper.NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return errorwrapper.WrapError(err, "failed to create directory: "+path)
	}

	return nil
}

// RemoveDirectory removes a directory tree
func (fm *FileManager) RemoveDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errorwrapper.WrapError(err, "failed to remove directory: "+path)
	}
	fm.logger.Debug().Str("path", path).Msg("Directory removed")
	return nil
}

// CopyDirectory copies src recursively to dst. The destination is created
// with the source's layout; existing files under dst are overwritten.
func (fm *FileManager) CopyDirectory(src, dst string) error {
	srcInfo, err := fm.GetFileInfo(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir {
		return errorwrapper.NewValidationError("src", src, "is not a directory")
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errorwrapper.WrapError(err, "failed to read source file: "+path)
		}
		return fm.writer.WriteFile(target, data)
	})
}

// GetDirectorySize returns the total size in bytes of all regular files under path
func (fm *FileManager) GetDirectorySize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to compute directory size: "+path)
	}
	return total, nil
}

// ListSubdirectories returns the names of immediate subdirectories of path
func (fm *FileManager) ListSubdirectories(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorwrapper.WrapError(errorwrapper.ErrNotFound, "directory not found: "+path)
		}
		return nil, errorwrapper.WrapError(err, "failed to list directory: "+path)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
