package client

import (
	"context"
	"io"
	"sync"
	"time"
)

// MockBlobStore implements BlobStore in memory for tests and local runs without object storage.
type MockBlobStore struct {
	BaseURL string

	UploadFunc    func(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	DeleteFunc    func(ctx context.Context, bucket, key string) error
	PublicURLFunc func(bucket, key string) string

	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		BaseURL: "http://localhost:9000",
		objects: make(map[string][]byte),
	}
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, bucket, key, body, size, contentType)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *MockBlobStore) Delete(ctx context.Context, bucket, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, bucket, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+key)
	m.deleted = append(m.deleted, bucket+"/"+key)
	return nil
}

func (m *MockBlobStore) PublicURL(bucket, key string) string {
	if m.PublicURLFunc != nil {
		return m.PublicURLFunc(bucket, key)
	}
	return publicURL("", m.BaseURL, "", bucket, key)
}

// Object returns the stored bytes for bucket/key.
func (m *MockBlobStore) Object(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	return data, ok
}

// Deleted lists "bucket/key" entries removed through the default Delete.
func (m *MockBlobStore) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// Len returns the number of stored objects.
func (m *MockBlobStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type noopRecorder struct{}

func (noopRecorder) RecordBlobOperation(string, string, time.Duration, error) {}

var _ BlobStore = (*MockBlobStore)(nil)
