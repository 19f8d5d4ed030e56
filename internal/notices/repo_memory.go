package notices

import (
	"context"
	"sort"
	"sync"
)

// MemoryLogRepo is an in-memory implementation of LogRepo.
type MemoryLogRepo struct {
	mu   sync.RWMutex
	logs []NotificationLog
}

// NewMemoryLogRepo constructs a MemoryLogRepo.
func NewMemoryLogRepo() *MemoryLogRepo {
	return &MemoryLogRepo{}
}

func (r *MemoryLogRepo) Insert(ctx context.Context, log NotificationLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *MemoryLogRepo) List(ctx context.Context, tenantID string, limit int) ([]NotificationLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	out := make([]NotificationLog, 0, len(r.logs))
	for _, log := range r.logs {
		if tenantID != "" && log.TenantID != tenantID {
			continue
		}
		out = append(out, log)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ LogRepo = (*MemoryLogRepo)(nil)
