package storage

import (
	"errors"
	"mime/multipart"
)

var (
	AllowImage = []string{"image/png", "image/jpeg", "image/jpg", "image/webp"}
	AllowVideo = []string{"video/mp4", "video/webm", "video/quicktime"}

	ErrContentTypeNotAllowed = errors.New("content type not allowed")
)

// Storage persists uploaded media under generated object keys and resolves
// the public URL files are served back from.
type Storage interface {
	UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
	GetPublicLink(objectKey string) string
}

// Allowed reports whether the declared content type of file is in
// allowedTypes. An empty allow-list accepts everything.
func Allowed(file *multipart.FileHeader, allowedTypes ...string) bool {
	if len(allowedTypes) == 0 {
		return true
	}
	contentType := file.Header.Get("Content-Type")
	for _, t := range allowedTypes {
		if contentType == t {
			return true
		}
	}
	return false
}
