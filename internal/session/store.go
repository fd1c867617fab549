package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when a handle has no live record.
var ErrNotFound = errors.New("session not found")

// Store persists sealed session payloads under an opaque device handle.
// Save returns the handle the device must present next time; an empty handle asks
// the store to allocate one.
type Store interface {
	Name() string
	Save(ctx context.Context, handle, payload string, ttl time.Duration) (string, error)
	Load(ctx context.Context, handle string) (string, error)
	Delete(ctx context.Context, handle string) error
}

// Purger is implemented by server-side stores that keep expired rows around.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// NewHandle allocates a server-side session handle.
func NewHandle() string {
	return uuid.NewString()
}

const cookieStoreName = "cookie"

// cookieStore keeps the sealed payload in the device cookie itself.
type cookieStore struct{}

// NewCookieStore returns the client-side store.
func NewCookieStore() Store {
	return cookieStore{}
}

func (cookieStore) Name() string { return cookieStoreName }

func (cookieStore) Save(_ context.Context, _, payload string, _ time.Duration) (string, error) {
	return payload, nil
}

func (cookieStore) Load(_ context.Context, handle string) (string, error) {
	if handle == "" {
		return "", ErrNotFound
	}
	return handle, nil
}

func (cookieStore) Delete(context.Context, string) error {
	return nil
}

type memoryEntry struct {
	payload   string
	expiresAt time.Time
}

// MemoryStore is a process-local store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Save(_ context.Context, handle, payload string, ttl time.Duration) (string, error) {
	if handle == "" {
		handle = NewHandle()
	}
	handle = strings.Clone(handle)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[handle] = memoryEntry{payload: payload, expiresAt: s.now().Add(ttl)}
	return handle, nil
}

func (s *MemoryStore) Load(_ context.Context, handle string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[handle]
	if !ok || !s.now().Before(entry.expiresAt) {
		return "", ErrNotFound
	}
	return entry.payload, nil
}

func (s *MemoryStore) Delete(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
	return nil
}

// PurgeExpired drops entries past their TTL.
func (s *MemoryStore) PurgeExpired(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var n int64
	for handle, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, handle)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
