package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrc-edu/matricula-backend/internal/pkg/logger"
)

// LocalStorage stores document files on the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are written
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// Save writes src to basePath/filename. The destination handle is closed on
// every exit path and a partially written file is removed on copy failure.
func (ls *LocalStorage) Save(filename string, src io.Reader) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("empty file name")
	}

	// Keep only the final path element, callers build the name themselves.
	filename = filepath.Base(filename)
	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to close destination file: %w", err)
	}

	storedPath := filepath.Join("uploads", "documents", filename)
	logger.Info().Str("saved_as", filename).Str("stored_path", storedPath).Msg("File saved successfully")
	return storedPath, nil
}

// Delete removes a file from storage. It accepts the path as stored in the
// database (e.g. uploads/documents/name.pdf). A missing file is treated as
// already deleted.
func (ls *LocalStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}

	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// FullPath returns the full filesystem path for a stored file path.
func (ls *LocalStorage) FullPath(filePath string) string {
	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}
