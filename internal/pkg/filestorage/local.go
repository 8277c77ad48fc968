package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pastoral/providencia/internal/pkg/logger"
)

// LocalStorage stores files on the local filesystem and serves them through
// the uploads static route. It fills the role the managed object-storage
// bucket played in the hosted version of the program.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // base URL files are reachable at
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFileWithPath saves an uploaded file under subPath with a generated
// name and returns the public URL.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, filepath.FromSlash(subPath))
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Generated name avoids collisions between uploads with the same name
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	var accessiblePath string
	if subPath != "" {
		accessiblePath = ls.baseURL + "/" + strings.Trim(subPath, "/") + "/" + uniqueFilename
	} else {
		accessiblePath = ls.baseURL + "/" + uniqueFilename
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("url", accessiblePath).Msg("File saved")
	return accessiblePath, nil
}

// DeleteFile removes a stored file. Accepts either the public URL or the
// path relative to the storage root. Deleting a missing file is not an
// error, the operation is idempotent.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	relPath := ls.relativePath(fileURL)
	if relPath == "" || relPath == "." {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// DeleteAll removes every stored file under subPath.
func (ls *LocalStorage) DeleteAll(subPath string) error {
	if subPath == "" || strings.Contains(subPath, "..") {
		return fmt.Errorf("invalid storage subpath: %s", subPath)
	}

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.RemoveAll(fullDirPath); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to remove storage directory")
		return fmt.Errorf("failed to remove storage directory: %w", err)
	}
	return nil
}

// relativePath strips the base URL prefix, keeping any subdirectory so
// files stored under companies/<id>/ resolve to the right location.
func (ls *LocalStorage) relativePath(fileURL string) string {
	if ls.baseURL != "" && strings.HasPrefix(fileURL, ls.baseURL) {
		return strings.TrimLeft(strings.TrimPrefix(fileURL, ls.baseURL), "/")
	}
	// Fall back to treating the value as a relative path inside the root
	return strings.TrimLeft(path.Clean("/"+fileURL), "/")
}
