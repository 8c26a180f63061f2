package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func multipartFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/upload_note", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}

	return req.MultipartForm.File["file"][0]
}

func TestSaveStoresFileUnderUniqueName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	header := multipartFileHeader(t, "lecture.pdf", "pdf bytes")

	storedName, err := store.Save(header)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasSuffix(storedName, ".pdf") {
		t.Errorf("storedName %q does not keep the .pdf extension", storedName)
	}
	if storedName == "lecture.pdf" {
		t.Error("storedName equals the client filename")
	}

	data, err := os.ReadFile(store.Path(storedName))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored content = %q, want %q", data, "pdf bytes")
	}
}

func TestSaveSameFilenameTwiceDoesNotCollide(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	first, err := store.Save(multipartFileHeader(t, "notes.png", "one"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := store.Save(multipartFileHeader(t, "notes.png", "two"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if first == second {
		t.Fatal("two uploads of the same filename share a stored name")
	}

	data, err := os.ReadFile(store.Path(first))
	if err != nil {
		t.Fatalf("first stored file not readable: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("first upload content = %q, want %q", data, "one")
	}
}

func TestSaveNilHeader(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	if _, err := store.Save(nil); err == nil {
		t.Error("Save(nil) did not return an error")
	}
}

func TestRemove(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	storedName, err := store.Save(multipartFileHeader(t, "img.gif", "gif"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Remove(storedName); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(store.Path(storedName)); !os.IsNotExist(err) {
		t.Error("file still present after Remove()")
	}

	// Removing a missing file is treated as already removed
	if err := store.Remove(storedName); err != nil {
		t.Errorf("Remove() of missing file error = %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	if got := store.Path(".."); got != "" {
		t.Errorf("Path(\"..\") = %q, want empty", got)
	}

	// A traversal attempt is reduced to its base name inside the store
	got := store.Path("../../etc/passwd")
	if got != filepath.Join(base, "passwd") {
		t.Errorf("Path() = %q, want %q", got, filepath.Join(base, "passwd"))
	}
}
