package filemanager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileWriter handles file writing operations
type FileWriter struct {
	logger zerolog.Logger
}

// NewFileWriter creates a new FileWriter instance
func NewFileWriter(logger zerolog.Logger) *FileWriter {
	return &FileWriter{
		logger: logger.With().Str("component", "FileWriter").Logger(),
	}
}

// WriteFile writes data to a file, creating parent directories as needed
func (fw *FileWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errorwrapper.WrapError(err, "failed to create parent directory for: "+path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errorwrapper.WrapError(err, fmt.Sprintf("failed to write file: %s", path))
	}

	fw.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}

// WriteFileAtomic writes to a temp sibling and renames into place. Rename on
// the same filesystem is atomic, so readers see the old or new content, never
// a partial write.
func (fw *FileWriter) WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errorwrapper.WrapError(err, "failed to create parent directory for: "+path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create temp file in: "+dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to write temp file: "+tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to close temp file: "+tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to rename temp file into place: "+path)
	}

	fw.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written atomically")
	return nil
}
