package units

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Unit
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Unit)}
}

func (r *MemoryRepo) Create(ctx context.Context, u Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.Status == "" {
		u.Status = StatusVacant
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[u.ID] = u
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, unitID string) (Unit, error) {
	if err := ctx.Err(); err != nil {
		return Unit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[unitID]
	if !ok {
		return Unit{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) List(ctx context.Context, propertyID string) ([]Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Unit, 0, len(r.data))
	for _, u := range r.data {
		if propertyID != "" && u.PropertyID != propertyID {
			continue
		}
		out = append(out, u)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UnitNumber < out[j].UnitNumber })
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, unitID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[unitID]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	r.data[unitID] = u
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, unitID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[unitID]; !ok {
		return ErrNotFound
	}
	delete(r.data, unitID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
