package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedNow(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

func TestGenerateStoragePath(t *testing.T) {
	fixedNow(t)
	id := uuid.MustParse("0b5f8a52-4b7e-4c6f-9a53-6b1f0f3d2c11")
	got := generateStoragePath(id, "판례 노트/2024.xlsx")
	want := "exports/2024/01/10/0b5f8a52-4b7e-4c6f-9a53-6b1f0f3d2c11_2024.xlsx"
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"notes.xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"NOTES.XLSX": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"notes.csv":  "text/csv; charset=utf-8",
		"notes.bin":  "application/octet-stream",
	}
	for name, want := range tests {
		if got := contentType(name); got != want {
			t.Errorf("contentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	fixedNow(t)
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	p, err := s.Upload(ctx, uuid.New(), "notes.xlsx", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(p, "exports/2024/01/10/") {
		t.Errorf("unexpected path %q", p)
	}

	rc, err := s.Download(ctx, p)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "payload" {
		t.Errorf("downloaded %q", data)
	}

	if err := s.Delete(ctx, p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Download(ctx, p); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, p); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"../secret", "/etc/passwd", "exports/../../x"} {
		if _, err := s.Download(context.Background(), p); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Download(%q) should be rejected, got %v", p, err)
		}
	}
}

func TestNewStorageSelectsBackend(t *testing.T) {
	s, err := NewStorage(context.Background(), StorageConfig{LocalPath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	if _, ok := s.(*LocalStorage); !ok {
		t.Errorf("default backend = %T, want *LocalStorage", s)
	}

	if _, err := NewStorage(context.Background(), StorageConfig{Type: StorageTypeS3}); err == nil {
		t.Error("s3 without bucket should fail")
	}
	if _, err := NewStorage(context.Background(), StorageConfig{Type: "ftp"}); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestS3StorageAgainstFakeEndpoint(t *testing.T) {
	fixedNow(t)
	var (
		mu      sync.Mutex
		objects = map[string][]byte{}
		types   = map[string]string{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		key := strings.TrimPrefix(r.URL.Path, "/notes-bucket/")
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			objects[key] = body
			types[key] = r.Header.Get("Content-Type")
		case http.MethodGet:
			body, ok := objects[key]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(body)
		case http.MethodDelete:
			delete(objects, key)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3Storage(ctx, StorageConfig{
		Type:         StorageTypeS3,
		S3Bucket:     "notes-bucket",
		S3Region:     "ap-northeast-2",
		S3Endpoint:   srv.URL,
		AWSAccessKey: "test",
		AWSSecretKey: "test",
	})
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	payload := []byte("xlsx-bytes")
	p, err := s.Upload(ctx, uuid.New(), "notes.xlsx", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	mu.Lock()
	stored, ok := objects[p]
	ct := types[p]
	mu.Unlock()
	if !ok || !bytes.Contains(stored, payload) {
		t.Fatalf("object %q not stored: %q", p, stored)
	}
	if ct != contentType("notes.xlsx") {
		t.Errorf("content type = %q", ct)
	}

	if err := s.Delete(ctx, p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mu.Lock()
	_, still := objects[p]
	mu.Unlock()
	if still {
		t.Error("object should be deleted")
	}
}
