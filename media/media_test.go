package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploaderSendsMultipart(t *testing.T) {
	var gotField, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for field, files := range r.MultipartForm.File {
			gotField = field
			if len(files) > 0 {
				gotName = files[0].Filename
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/" + gotName})
	}))
	defer srv.Close()

	up, err := NewUploader(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := up.Upload(context.Background(), "avatar.jpg", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if gotField != "file" {
		t.Fatalf("multipart field = %q, want file", gotField)
	}
	if !strings.HasSuffix(gotName, "-avatar.jpg") {
		t.Fatalf("stored name %q not prefixed", gotName)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestUploaderGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	up, err := NewUploader(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := up.Upload(context.Background(), "avatar.jpg", []byte{1}); err == nil {
		t.Fatal("expected error on gateway failure")
	}
}

func TestUploaderInputValidation(t *testing.T) {
	up, err := NewUploader("http://localhost:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := up.Upload(context.Background(), "", []byte{1}); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if _, err := up.Upload(context.Background(), "a.jpg", nil); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if _, err := NewUploader(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "https://files.example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Upload(context.Background(), "avatar.jpg", []byte("payload"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "https://files.example.com/") {
		t.Fatalf("unexpected url %q", url)
	}

	name := strings.TrimPrefix(url, "https://files.example.com/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("stored payload = %q", data)
	}

	// Path separators in the client name must not escape the directory.
	url, err = store.Upload(context.Background(), "../../etc/passwd", []byte("x"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if strings.Contains(strings.TrimPrefix(url, "https://files.example.com/"), "/") {
		t.Fatalf("name not sanitized: %q", url)
	}
}
