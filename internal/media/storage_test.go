// Package media tests for content-addressed upload storage.
package media

import (
	"io"
	"path"
	"strings"
	"testing"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir(), "/files/")
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	return s
}

func TestStoreAndOpen(t *testing.T) {
	s := newTestStorage(t)

	stored, err := s.Store("photo.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if !strings.HasPrefix(stored.URL, "/files/") {
		t.Errorf("URL = %q, want /files/ prefix", stored.URL)
	}
	if !strings.HasSuffix(stored.URL, ".jpg") {
		t.Errorf("URL = %q, extension should normalize to lowercase .jpg", stored.URL)
	}
	if stored.Size != int64(len("image-bytes")) {
		t.Errorf("Size = %d", stored.Size)
	}

	f, err := s.Open(path.Base(stored.URL))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("content round-trip mismatch: %q", data)
	}
}

func TestStoreDeduplicates(t *testing.T) {
	s := newTestStorage(t)

	first, err := s.Store("a.png", strings.NewReader("same-content"))
	if err != nil {
		t.Fatalf("first Store failed: %v", err)
	}
	second, err := s.Store("b.png", strings.NewReader("same-content"))
	if err != nil {
		t.Fatalf("second Store failed: %v", err)
	}
	if first.URL != second.URL {
		t.Errorf("identical content should share a URL: %q vs %q", first.URL, second.URL)
	}
	if first.Hash != second.Hash {
		t.Errorf("identical content should share a hash")
	}
}

func TestStoreRejectsEmptyUpload(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Store("empty.png", strings.NewReader(""))
	if !apperrors.Is(err, apperrors.ErrUploadFailed) {
		t.Errorf("got %v, want UPLOAD_FAILED", err)
	}
}

func TestStoreStripsUnknownExtension(t *testing.T) {
	s := newTestStorage(t)

	stored, err := s.Store("script.sh", strings.NewReader("#!/bin/sh"))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if strings.Contains(stored.URL, ".sh") {
		t.Errorf("unknown extension should be dropped: %q", stored.URL)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.Open("../../etc/passwd"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("traversal attempt: got %v, want NOT_FOUND", err)
	}
	if _, err := s.Open("nonexistent.jpg"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing file: got %v, want NOT_FOUND", err)
	}
}
