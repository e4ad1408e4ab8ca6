package storage

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/minimal-api/internal/model"
)

// memoryTable is a goroutine-safe id-keyed table used by the in-memory stores.
type memoryTable[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	id     func(*T) *int64
}

func newMemoryTable[T any](id func(*T) *int64) *memoryTable[T] {
	return &memoryTable[T]{rows: make(map[int64]T), id: id}
}

// insert must be called with mu held.
func (t *memoryTable[T]) insert(entity *T) {
	t.nextID++
	*t.id(entity) = t.nextID
	t.rows[t.nextID] = *entity
}

func (t *memoryTable[T]) Create(_ context.Context, entity *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insert(entity)
	return nil
}

func (t *memoryTable[T]) FindByID(_ context.Context, id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *memoryTable[T]) FindPage(_ context.Context, page int) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(t.rows))
	if page > 0 {
		offset, ok := pageOffset(page)
		if !ok {
			return []T{}, nil
		}
		start := min(offset, len(ids))
		end := min(start+PageSize, len(ids))
		ids = ids[start:end]
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *memoryTable[T]) Update(_ context.Context, entity *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(entity)
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	t.rows[id] = *entity
	return nil
}

func (t *memoryTable[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// MemoryAdministrators is an AdministratorStore kept in process memory.
// Emails are unique, matching the postgres schema.
type MemoryAdministrators struct {
	*memoryTable[model.Administrator]
}

func NewMemoryAdministrators() *MemoryAdministrators {
	return &MemoryAdministrators{
		memoryTable: newMemoryTable(func(a *model.Administrator) *int64 { return &a.ID }),
	}
}

func (m *MemoryAdministrators) Create(_ context.Context, a *model.Administrator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(a.Email, 0) {
		return ErrDuplicateEmail
	}
	m.insert(a)
	return nil
}

func (m *MemoryAdministrators) Update(_ context.Context, a *model.Administrator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[a.ID]; !ok {
		return ErrNotFound
	}
	if m.emailTaken(a.Email, a.ID) {
		return ErrDuplicateEmail
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *MemoryAdministrators) FindByEmail(_ context.Context, email string) (*model.Administrator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.rows {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

func (m *MemoryAdministrators) emailTaken(email string, except int64) bool {
	for id, a := range m.rows {
		if id != except && a.Email == email {
			return true
		}
	}
	return false
}

// MemoryVehicles is a VehicleStore kept in process memory.
type MemoryVehicles struct {
	*memoryTable[model.Vehicle]
}

func NewMemoryVehicles() *MemoryVehicles {
	return &MemoryVehicles{
		memoryTable: newMemoryTable(func(v *model.Vehicle) *int64 { return &v.ID }),
	}
}

// MemoryPinger always reports the in-memory store as reachable.
type MemoryPinger struct{}

func (MemoryPinger) Ping(context.Context) error { return nil }
