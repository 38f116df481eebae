// Package blobstore keeps uploaded files on the local filesystem under a
// per-owner prefix, mirroring the uploads/<owner>/<name> layout of the
// hosted object store it stands in for.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBadName  = errors.New("blobstore: invalid file name")
	ErrNotFound = errors.New("blobstore: file not found")
)

type Entry struct {
	Name string
	Size int64
}

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) ownerDir(ownerID uint) string {
	return filepath.Join(s.root, strconv.FormatUint(uint64(ownerID), 10))
}

// sanitizeName rejects anything that could escape the owner directory.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "", ErrBadName
	}
	if strings.ContainsAny(name, "/\\") {
		return "", ErrBadName
	}
	if name != filepath.Base(name) {
		return "", ErrBadName
	}
	return name, nil
}

// Upload stores the stream under the owner's prefix. A name collision gets
// a short random suffix instead of overwriting the existing blob.
func (s *Store) Upload(ownerID uint, name string, r io.Reader) (Entry, error) {
	name, err := sanitizeName(name)
	if err != nil {
		return Entry{}, err
	}

	dir := s.ownerDir(ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("create owner dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = base + "-" + uuid.NewString()[:8] + ext
		path = filepath.Join(dir, name)
	}

	f, err := os.Create(path)
	if err != nil {
		return Entry{}, fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return Entry{}, fmt.Errorf("write blob: %w", err)
	}

	return Entry{Name: name, Size: n}, nil
}

func (s *Store) List(ownerID uint) ([]Entry, error) {
	dir := s.ownerDir(ownerID)
	dirents, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: de.Name(), Size: info.Size()})
	}
	return entries, nil
}

func (s *Store) Open(ownerID uint, name string) (*os.File, error) {
	name, err := sanitizeName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.ownerDir(ownerID), name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *Store) Delete(ownerID uint, name string) error {
	name, err := sanitizeName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.ownerDir(ownerID), name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *Store) Rename(ownerID uint, oldName, newName string) error {
	oldName, err := sanitizeName(oldName)
	if err != nil {
		return err
	}
	newName, err = sanitizeName(newName)
	if err != nil {
		return err
	}

	dir := s.ownerDir(ownerID)
	err = os.Rename(filepath.Join(dir, oldName), filepath.Join(dir, newName))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
