package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pngHeader is enough of a PNG for content sniffing to say image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func uploadRequest(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/create", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("parse form file: %v", err)
	}
	return file, header
}

func TestSaveAcceptsImage(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, 1024*1024)

	file, header := uploadRequest(t, "photo.png", pngHeader)
	defer file.Close()

	path, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, "/media/posts/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("unexpected stored path %q", path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, found %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("stored file does not match the upload")
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, 1024*1024)

	// A text file with an image name must still be rejected
	file, header := uploadRequest(t, "sneaky.jpg", []byte("nothing"))
	defer file.Close()

	_, err := store.Save(file, header)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("save: got %v, want ErrNotImage", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("rejected upload left %d files behind", len(entries))
	}
}

func TestSaveRejectsOversizedUpload(t *testing.T) {
	store := NewImageStore(t.TempDir(), 4)

	file, header := uploadRequest(t, "big.png", pngHeader)
	defer file.Close()

	if _, err := store.Save(file, header); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("save: got %v, want ErrTooLarge", err)
	}
}
