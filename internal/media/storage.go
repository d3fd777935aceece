// Package media provides upload storage for entry attachments. Files are
// stored content-addressed (SHA-256) on disk and referenced by stable
// URLs; identical uploads deduplicate to the same object.
package media

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
)

// Storage stores uploaded files under a base directory and maps them to
// URLs below a base path (e.g. "/files").
type Storage struct {
	baseDir  string
	basePath string
}

// NewStorage creates upload storage rooted at baseDir. basePath is the
// URL prefix uploads are served from.
func NewStorage(baseDir, basePath string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "failed to create upload directory", err)
	}
	return &Storage{
		baseDir:  baseDir,
		basePath: strings.TrimSuffix(basePath, "/"),
	}, nil
}

// StoredFile describes a persisted upload.
type StoredFile struct {
	// URL is the stable retrievable URL for the file.
	URL string `json:"file_url"`

	// Hash is the SHA-256 content hash the file is addressed by.
	Hash string `json:"-"`

	// Size is the stored size in bytes.
	Size int64 `json:"-"`
}

// Store persists the reader's content and returns its stable URL. The
// original filename only contributes its extension. Empty uploads are
// rejected; callers must not assume the URL is reachable synchronously.
func (s *Storage) Store(filename string, r io.Reader) (*StoredFile, error) {
	hasher := sha256.New()

	tmpFile, err := os.CreateTemp(s.baseDir, "upload-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "failed to buffer upload", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	size, err := io.Copy(io.MultiWriter(tmpFile, hasher), r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "failed to read upload data", err)
	}
	if size == 0 {
		return nil, apperrors.New(apperrors.ErrUploadFailed, "empty upload (0 bytes)")
	}

	hash := hex.EncodeToString(hasher.Sum(nil))
	name := hash + normalizeExt(filename)

	// Two-character prefix directories keep listings manageable.
	dir := filepath.Join(s.baseDir, hash[:2])
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "failed to create storage directory", err)
	}
	target := filepath.Join(dir, name)

	if _, err := os.Stat(target); err == nil {
		// Already stored; deduplicate.
		return s.stored(hash, name, size), nil
	}

	if err := os.Rename(tmpFile.Name(), target); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "failed to finalize upload", err)
	}
	return s.stored(hash, name, size), nil
}

// Open opens a stored file by the name component of its URL.
func (s *Storage) Open(name string) (*os.File, error) {
	name = path.Base(name) // no directory traversal
	if len(name) < 2 {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "no such file: %s", name)
	}
	f, err := os.Open(filepath.Join(s.baseDir, name[:2], name))
	if os.IsNotExist(err) {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "no such file: %s", name)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to open stored file", err)
	}
	return f, nil
}

func (s *Storage) stored(hash, name string, size int64) *StoredFile {
	return &StoredFile{
		URL:  s.basePath + "/" + name,
		Hash: hash,
		Size: size,
	}
}

func normalizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".mov", ".webm", ".m4a", ".mp3", ".wav", ".ogg":
		return ext
	}
	return ""
}
