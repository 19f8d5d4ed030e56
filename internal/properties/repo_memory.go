package properties

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Property
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Property)}
}

func (r *MemoryRepo) Create(ctx context.Context, p Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = p
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, propertyID string) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[propertyID]
	if !ok {
		return Property{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Property, 0, len(r.data))
	for _, p := range r.data {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, p Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[p.ID]; !ok {
		return ErrNotFound
	}
	r.data[p.ID] = p
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, propertyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[propertyID]; !ok {
		return ErrNotFound
	}
	delete(r.data, propertyID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
