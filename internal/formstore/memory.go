package formstore

import (
	"context"
	"sync"
	"time"

	"transaction_form/internal/transactions/ports"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process. Safe for concurrent use; records are
// values, so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]ports.FormRecord
	order   []uuid.UUID
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]ports.FormRecord),
		now:     time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, rec ports.NewFormRecord) (ports.FormRecord, error) {
	record := ports.FormRecord{
		ID:         uuid.New(),
		Submission: rec.Submission,
		EventID:    rec.EventID,
		CreatedAt:  m.now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	m.order = append(m.order, record.ID)
	return record, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (ports.FormRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return ports.FormRecord{}, errNotFound()
	}
	return record, nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]ports.FormRecord, error) {
	m.mu.RLock()
	out := make([]ports.FormRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.records[m.order[i]])
	}
	m.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}
