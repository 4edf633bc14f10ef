package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads to a directory on disk. Files are served back
// under the /uploads static prefix mounted by the app.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (l *LocalStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	if !Allowed(file, allowedTypes...) {
		return "", ErrContentTypeNotAllowed
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".bin"
	}

	objectKey := fileName + ext
	if folder != "" {
		objectKey = folder + "/" + fileName + ext
		if err := os.MkdirAll(filepath.Join(l.baseDir, folder), os.ModePerm); err != nil {
			return "", err
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(l.baseDir, filepath.FromSlash(objectKey)))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (l *LocalStorage) GetPublicLink(objectKey string) string {
	return "/uploads/" + objectKey
}
