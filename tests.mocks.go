package main

import (
	"context"
	"sync"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	CreateFunc func(ctx context.Context, book Book) (Book, error)
	GetOneFunc func(ctx context.Context, id int64) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
	UpdateFunc func(ctx context.Context, id int64, update UpdateBookRequest) (Book, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

// Create mocks the behavior of book creation by the store.
func (m *MockBookStorage) Create(ctx context.Context, book Book) (Book, error) {
	return m.CreateFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the store.
func (m *MockBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// GetAll mocks the behavior of retrieving all books by the store.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// Update mocks the behavior of updating a book by the store.
func (m *MockBookStorage) Update(ctx context.Context, id int64, update UpdateBookRequest) (Book, error) {
	return m.UpdateFunc(ctx, id, update)
}

// Delete mocks the behavior of deleting a book by the store.
func (m *MockBookStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// Close is a no-op on the mock.
func (m *MockBookStorage) Close() error { return nil }

// MemoryBookCache is an in-memory fake of the shared cache gateway.
// It records set calls so tests can assert on population and TTL use.
type MemoryBookCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	SetTTLs []time.Duration
	GetErr  error
	SetErr  error
	RemErr  error
}

func NewMemoryBookCache() *MemoryBookCache {
	return &MemoryBookCache{entries: make(map[string][]byte)}
}

func (c *MemoryBookCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	value, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (c *MemoryBookCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.entries[key] = value
	c.SetTTLs = append(c.SetTTLs, ttl)
	return nil
}

func (c *MemoryBookCache) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.RemErr != nil {
		return c.RemErr
	}
	delete(c.entries, key)
	return nil
}

// Contains reports whether a key currently holds a value.
func (c *MemoryBookCache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Put seeds an entry without going through Set bookkeeping.
func (c *MemoryBookCache) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// MockQueuer implements a no-op event queue recording pushed events.
type MockQueuer struct {
	mu     sync.Mutex
	Events []BookEvent
	Err    error
}

func (q *MockQueuer) Push(_ context.Context, _ string, event BookEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	q.Events = append(q.Events, event)
	return nil
}

func (q *MockQueuer) Pop(ctx context.Context, _ ...string) (string, BookEvent, error) {
	<-ctx.Done()
	return "", BookEvent{}, ctx.Err()
}

// MockAuditStorage records saved events in memory.
type MockAuditStorage struct {
	mu      sync.Mutex
	Records []AuditRecord
	Err     error
}

func (a *MockAuditStorage) Save(_ context.Context, event BookEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Records = append(a.Records, AuditRecord{
		Seq:     uint64(len(a.Records) + 1),
		Action:  event.Action,
		BookID:  event.BookID,
		Success: event.Success,
		At:      event.At,
	})
	return nil
}

func (a *MockAuditStorage) List(_ context.Context, limit int) ([]AuditRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	records := []AuditRecord{}
	for i := len(a.Records) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, a.Records[i])
	}
	return records, nil
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
