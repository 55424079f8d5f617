package dal

import (
	"context"
	"sync"
)

// MemoryDAL implements BlobStore in process memory
type MemoryDAL struct {
	mu    sync.RWMutex
	blobs map[BlobName][]byte
}

// NewMemoryDAL creates a new in-memory data access layer
func NewMemoryDAL() *MemoryDAL {
	return &MemoryDAL{
		blobs: make(map[BlobName][]byte),
	}
}

var _ BlobStore = (*MemoryDAL)(nil)

func (m *MemoryDAL) Get(ctx context.Context, name BlobName) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrBlobNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryDAL) Set(ctx context.Context, name BlobName, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[name] = stored
	return nil
}

func (m *MemoryDAL) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range AllBlobs {
		delete(m.blobs, name)
	}
	return nil
}

func (m *MemoryDAL) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryDAL) Close() error {
	return nil
}
