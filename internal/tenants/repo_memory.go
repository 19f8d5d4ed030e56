package tenants

import (
	"context"
	"sort"
	"sync"
	"time"
)

// UnitInfo is the unit and property context a memory repo cannot join for
// itself.
type UnitInfo struct {
	UnitNumber      string
	UnitStatus      string
	PropertyID      string
	PropertyName    string
	PropertyAddress string
}

// MemoryRepo is an in-memory implementation of Repo. Now is injectable so
// schedule math can be pinned in tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Tenant
	units map[string]UnitInfo

	Now func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string]Tenant),
		units: make(map[string]UnitInfo),
		Now:   time.Now,
	}
}

// SetUnitInfo registers unit and property context for view lookups.
func (r *MemoryRepo) SetUnitInfo(unitID string, info UnitInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[unitID] = info
}

func (r *MemoryRepo) Create(ctx context.Context, t Tenant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.ReminderStatus == "" {
		t.ReminderStatus = ReminderActive
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[t.ID] = t
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, tenantID string) (Tenant, error) {
	if err := ctx.Err(); err != nil {
		return Tenant{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.data[tenantID]
	if !ok {
		return Tenant{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Tenant, 0, len(r.data))
	for _, t := range r.data {
		out = append(out, t)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, t Tenant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[t.ID]
	if !ok {
		return ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	r.data[t.ID] = t
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, tenantID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[tenantID]; !ok {
		return ErrNotFound
	}
	delete(r.data, tenantID)
	return nil
}

func (r *MemoryRepo) GetUnitView(ctx context.Context, tenantID string) (TenantUnit, error) {
	if err := ctx.Err(); err != nil {
		return TenantUnit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.data[tenantID]
	if !ok {
		return TenantUnit{}, ErrNotFound
	}
	return r.viewLocked(t), nil
}

func (r *MemoryRepo) ListNeedingReminders(ctx context.Context) ([]Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Reminder
	for _, t := range r.data {
		if t.ReminderStatus != ReminderActive {
			continue
		}
		days := DaysUntilDue(t.RentDueDate, r.Now())
		noticeType := NoticeTypeFor(days)
		if noticeType == "" {
			continue
		}
		tu := r.viewLocked(t)
		out = append(out, Reminder{
			TenantID:        t.ID,
			FullName:        t.FullName,
			Email:           t.Email,
			PhoneNumber:     t.PhoneNumber,
			UnitNumber:      tu.UnitNumber,
			PropertyName:    tu.PropertyName,
			PropertyAddress: tu.PropertyAddress,
			RentDueDate:     t.RentDueDate,
			DaysUntilDue:    days,
			NoticeType:      noticeType,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysUntilDue != out[j].DaysUntilDue {
			return out[i].DaysUntilDue < out[j].DaysUntilDue
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}

func (r *MemoryRepo) viewLocked(t Tenant) TenantUnit {
	days := DaysUntilDue(t.RentDueDate, r.Now())
	tu := TenantUnit{
		TenantID:       t.ID,
		FullName:       t.FullName,
		Email:          t.Email,
		PhoneNumber:    t.PhoneNumber,
		RentDueDate:    t.RentDueDate,
		ReminderStatus: t.ReminderStatus,
		UnitID:         t.UnitID,
		DaysUntilDue:   days,
		PaymentStatus:  PaymentStatusFor(days),
	}
	if info, ok := r.units[t.UnitID]; ok {
		tu.UnitNumber = info.UnitNumber
		tu.UnitStatus = info.UnitStatus
		tu.PropertyID = info.PropertyID
		tu.PropertyName = info.PropertyName
		tu.PropertyAddress = info.PropertyAddress
	}
	return tu
}

var _ Repo = (*MemoryRepo)(nil)
