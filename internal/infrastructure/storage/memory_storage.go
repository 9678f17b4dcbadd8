package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atelier/storefront/internal/application/media"
)

var _ media.Store = (*MemoryMediaStore)(nil)

// MemoryMediaStore keeps uploaded objects in process memory.
// It backs local development when no bucket is configured.
type MemoryMediaStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]MemoryObject
}

// MemoryObject is an object held by MemoryMediaStore
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// NewMemoryMediaStore creates an empty store serving URLs under baseURL
func NewMemoryMediaStore(baseURL string) *MemoryMediaStore {
	if baseURL == "" {
		baseURL = "http://localhost:8080/media"
	}
	return &MemoryMediaStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

// Put stores a copy of data under key
func (s *MemoryMediaStore) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = MemoryObject{Data: append([]byte(nil), data...), ContentType: contentType}
	return s.URLFor(key), nil
}

// Delete removes key; deleting a missing key is not an error
func (s *MemoryMediaStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns the object stored under key
func (s *MemoryMediaStore) Get(key string) (MemoryObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *MemoryMediaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// URLFor returns the public URL of key
func (s *MemoryMediaStore) URLFor(key string) string {
	return s.baseURL + "/" + key
}

// KeyFromURL extracts the object key from a URL served by this store
func (s *MemoryMediaStore) KeyFromURL(rawURL string) (string, bool) {
	return keyFromURL(s.baseURL, rawURL)
}
