package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/google/uuid"
)

var ErrFileTooLarge = errors.New("file exceeds size limit")

// Store writes uploaded files to local disk and serves them under a public
// URL prefix.
type Store struct {
	dir           string
	publicBaseURL string
	maxSizeBytes  int64
}

// StoredFile result of a successful save
type StoredFile struct {
	OriginalName string
	StoredName   string
	ContentType  string
	SizeBytes    int64
	PublicURL    string
}

func NewStore(cfg config.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	maxSize := int64(cfg.MaxSizeMB)
	if maxSize == 0 {
		maxSize = 20
	}
	return &Store{
		dir:           cfg.Dir,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		maxSizeBytes:  maxSize * 1024 * 1024,
	}, nil
}

// Dir returns the backing directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes one multipart file under a uuid name.
func (s *Store) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	if fh.Size > s.maxSizeBytes {
		return nil, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fh.Filename)
	storedName := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		OriginalName: fh.Filename,
		StoredName:   storedName,
		ContentType:  fh.Header.Get("Content-Type"),
		SizeBytes:    written,
		PublicURL:    s.publicBaseURL + "/" + storedName,
	}, nil
}

// ReadText returns up to limit bytes of a stored file as a string.
func (s *Store) ReadText(storedName string, limit int64) (string, error) {
	f, err := os.Open(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to open stored file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", fmt.Errorf("failed to read stored file: %w", err)
	}
	return string(data), nil
}

// Remove deletes a stored file by its uuid name.
func (s *Store) Remove(storedName string) error {
	return os.Remove(filepath.Join(s.dir, storedName))
}
