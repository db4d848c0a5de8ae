package interaction

import (
	"context"
	"sync"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendMongo    = "docstore"
	BackendPostgres = "postgres"
)

// Repository is the append-only interaction log. Append persists the record
// before returning and fills in the timestamp when the caller left it unknown.
type Repository interface {
	Append(ctx context.Context, r Record) (Record, error)
	ReadAll(ctx context.Context) ([]Record, error)
	Backend() string
}

var (
	_ Repository = (*InMemoryRepository)(nil)
	_ Repository = (*FileRepository)(nil)
	_ Repository = (*MongoRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
)

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Record
	now     func() time.Time
}

func NewInMemoryRepository(seed []Record) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Record, 0, len(seed)),
		now:     time.Now,
	}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) Append(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !rec.Timestamp.Valid {
		rec.Timestamp = NewTimestamp(r.now())
	}
	r.storage = append(r.storage, rec)
	return rec, nil
}

func (r *InMemoryRepository) ReadAll(_ context.Context) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Backend() string { return BackendMemory }
