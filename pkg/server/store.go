package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/placardlabs/placard/pkg/scene"
)

// Record is a stored layout together with its identifying metadata.
type Record struct {
	ID         string        `json:"id" bson:"_id"`
	SceneHash  string        `json:"scene_hash" bson:"scene_hash"`
	LayoutHash string        `json:"layout_hash" bson:"layout_hash"`
	Layout     *scene.Layout `json:"layout" bson:"layout"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a record by ID.
	// Returns nil, nil if the record doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any existing record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns stored records, newest first, up to limit.
	// A limit of 0 returns all records.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps records in process memory.
// Suitable for tests and single-instance deployments without persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Get retrieves a record by ID. Returns nil, nil if it doesn't exist.
func (m *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[id], nil
}

// Put stores a record.
func (m *MemoryStore) Put(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return nil
}

// Delete removes a record.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

// List returns stored records, newest first.
func (m *MemoryStore) List(_ context.Context, limit int) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close(_ context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
