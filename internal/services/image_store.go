package services

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotImage is a validation failure: the uploaded file is not an image.
	ErrNotImage = errors.New("uploaded file is not an image")
	// ErrTooLarge is a validation failure: the upload exceeds the size limit.
	ErrTooLarge = errors.New("uploaded file is too large")
)

// ImageStore persists post images on local disk under a configured directory
// and hands back the web path to store on the post.
type ImageStore struct {
	dir      string
	maxBytes int64
}

func NewImageStore(dir string, maxBytes int64) *ImageStore {
	return &ImageStore{dir: dir, maxBytes: maxBytes}
}

// Save validates and writes an uploaded image. The content is sniffed rather
// than trusting the client's filename or declared type, so a text file named
// photo.jpg is still rejected.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", ErrNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/media/posts/" + name, nil
}
