package filestorage

import "mime/multipart"

// FileStore defines the interface for upload storage. Implementations own the
// on-disk naming; callers only ever see the opaque stored name.
type FileStore interface {
	// Save persists an uploaded file and returns the opaque stored name.
	Save(fileHeader *multipart.FileHeader) (string, error)

	// Remove deletes a stored file. Removing a missing file is not an error.
	Remove(storedName string) error

	// Path returns the full filesystem path for a stored name, or "" if the
	// name does not resolve to a file inside the store.
	Path(storedName string) string
}
