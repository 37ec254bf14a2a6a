// Package file provides a directory-backed implementation of store.Store.
//
// Each key is written to its own file whose name is the base64url encoding
// of the key, so arbitrary user-chosen keys map to safe file names. Keys
// whose encoded name would exceed the file name limit are stored under the
// sha256 of the key instead, with the original key kept in a sibling
// ".hkey" file so Keys can still report it. Storage
// access goes through viant/afs, so the base location may be a local path
// or any URL scheme afs understands (for example mem://localhost/clickflow).
package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/smallnest/clickflow/store"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

const (
	valueExt       = ".val"
	hashedValueExt = ".hval"
	hashedKeyExt   = ".hkey"

	// maxFileName is the common file name limit of local file systems.
	maxFileName = 255
)

// FileStore stores every key as a file under a base location.
type FileStore struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ store.Store = (*FileStore)(nil)

// NewFileStore creates a file store rooted at path, creating the directory
// if it does not exist.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file store path is required")
	}

	s := &FileStore{basePath: path, fs: afs.New()}

	ctx := context.Background()
	exists, err := s.fs.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat store directory %s: %w", path, err)
	}
	if !exists {
		if err := s.fs.Create(ctx, path, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", path, err)
		}
	}

	return s, nil
}

// Path returns the base location of the store
func (s *FileStore) Path() string {
	return s.basePath
}

// keyPath returns the location of the value file for key and, for hashed
// keys, the location of the file holding the original key.
func (s *FileStore) keyPath(key string) (value, original string) {
	name := base64.RawURLEncoding.EncodeToString([]byte(key)) + valueExt
	if len(name) <= maxFileName {
		return url.Join(s.basePath, name), ""
	}
	sum := sha256.Sum256([]byte(key))
	hashed := hex.EncodeToString(sum[:])
	return url.Join(s.basePath, hashed+hashedValueExt), url.Join(s.basePath, hashed+hashedKeyExt)
}

// Get returns the value stored under key
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	location, _ := s.keyPath(key)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to check key %q: %w", key, err)
	}
	if !exists {
		return "", store.ErrNotFound
	}

	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return string(data), nil
}

// Set stores value under key
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, original := s.keyPath(key)
	if err := s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader([]byte(value))); err != nil {
		return fmt.Errorf("failed to write key %q to %s: %w", key, location, err)
	}
	if original != "" {
		if err := s.fs.Upload(ctx, original, file.DefaultFileOsMode, bytes.NewReader([]byte(key))); err != nil {
			return fmt.Errorf("failed to write key name to %s: %w", original, err)
		}
	}
	return nil
}

// Delete removes key
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, original := s.keyPath(key)
	for _, target := range []string{location, original} {
		if target == "" {
			continue
		}
		exists, err := s.fs.Exists(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to check key %q: %w", key, err)
		}
		if !exists {
			continue
		}
		if err := s.fs.Delete(ctx, target); err != nil {
			return fmt.Errorf("failed to delete key %q: %w", key, err)
		}
	}
	return nil
}

// Keys lists the stored keys in lexical order
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.basePath, err)
	}

	keys := make([]string, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		name := object.Name()
		switch {
		case strings.HasSuffix(name, valueExt):
			decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(name, valueExt))
			if err != nil {
				continue
			}
			keys = append(keys, string(decoded))
		case strings.HasSuffix(name, hashedKeyExt):
			original, err := s.fs.DownloadWithURL(ctx, url.Join(s.basePath, name))
			if err != nil {
				return nil, fmt.Errorf("failed to read key name %s: %w", name, err)
			}
			keys = append(keys, string(original))
		}
	}
	sort.Strings(keys)
	return keys, nil
}
