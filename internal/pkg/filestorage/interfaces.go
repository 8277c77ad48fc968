package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations. Paths are
// relative to the storage root, e.g. "companies/12/3f1a...png".
type FileStorage interface {
	// SaveFileWithPath stores an uploaded file under a subdirectory and
	// returns its public URL
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file given its public URL or relative path
	DeleteFile(fileURL string) error

	// DeleteAll removes every stored file under a subdirectory
	DeleteAll(subPath string) error
}
