package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore keeps file contents, namespaced per owner.
type BlobStore interface {
	Save(owner uuid.UUID, filename string, r io.Reader) (int64, error)
	Open(owner uuid.UUID, filename string) (*os.File, error)
	Exists(owner uuid.UUID, filename string) bool
	Remove(owner uuid.UUID, filename string) error
}

type DiskBlobStore struct {
	root string
}

func NewDiskBlobStore(root string) (*DiskBlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskBlobStore{root: root}, nil
}

// CleanFilename reduces a client-supplied name to a single path element.
func CleanFilename(name string) (string, error) {
	name = strings.TrimSpace(filepath.Base(filepath.Clean("/" + name)))
	if name == "" || name == "." || name == ".." || name == "/" || strings.ContainsAny(name, "/\\\x00") {
		return "", ErrInvalidFilename
	}
	return name, nil
}

func (s *DiskBlobStore) path(owner uuid.UUID, filename string) string {
	return filepath.Join(s.root, owner.String(), filename)
}

// Save writes to a temp file first so a failed upload never truncates an existing blob.
func (s *DiskBlobStore) Save(owner uuid.UUID, filename string, r io.Reader) (int64, error) {
	dir := filepath.Join(s.root, owner.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create owner dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(owner, filename)); err != nil {
		return 0, fmt.Errorf("move blob into place: %w", err)
	}
	return n, nil
}

func (s *DiskBlobStore) Open(owner uuid.UUID, filename string) (*os.File, error) {
	f, err := os.Open(s.path(owner, filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	return f, err
}

func (s *DiskBlobStore) Exists(owner uuid.UUID, filename string) bool {
	info, err := os.Stat(s.path(owner, filename))
	return err == nil && info.Mode().IsRegular()
}

func (s *DiskBlobStore) Remove(owner uuid.UUID, filename string) error {
	err := os.Remove(s.path(owner, filename))
	if errors.Is(err, os.ErrNotExist) {
		return ErrFileNotFound
	}
	return err
}
