package filestorage

import "io"

// Storage defines the interface for document file storage operations.
type Storage interface {
	// Save writes the content of src under the given file name and returns
	// the stored path as it should be recorded in the database.
	Save(filename string, src io.Reader) (string, error)

	// Delete removes a previously stored file. Deleting a missing file is not
	// an error.
	Delete(filePath string) error

	// FullPath returns the full filesystem path for a stored file path.
	FullPath(filePath string) string
}
