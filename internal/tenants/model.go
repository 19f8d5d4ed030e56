package tenants

import (
	"errors"
	"time"
)

// Reminder cadence states.
const (
	ReminderActive   = "active"
	ReminderPaused   = "paused"
	ReminderDisabled = "disabled"
)

// Tenant is a leaseholder with a yearly rent schedule.
type Tenant struct {
	ID               string
	UnitID           string
	FullName         string
	Email            string
	PhoneNumber      string
	RentDueDate      time.Time
	YearlyRentAmount float64
	ReminderStatus   string
	CreatedAt        time.Time
}

// TenantUnit is the tenant joined with its unit and property, plus the
// derived schedule fields.
type TenantUnit struct {
	TenantID        string
	FullName        string
	Email           string
	PhoneNumber     string
	RentDueDate     time.Time
	ReminderStatus  string
	UnitID          string
	UnitNumber      string
	UnitStatus      string
	PropertyID      string
	PropertyName    string
	PropertyAddress string
	DaysUntilDue    int
	PaymentStatus   string
}

// Reminder is a tenant whose due date sits exactly on a notice threshold.
type Reminder struct {
	TenantID        string
	FullName        string
	Email           string
	PhoneNumber     string
	UnitNumber      string
	PropertyName    string
	PropertyAddress string
	RentDueDate     time.Time
	DaysUntilDue    int
	NoticeType      string
}

var (
	ErrNotFound     = errors.New("tenant not found")
	ErrInvalidInput = errors.New("invalid input")
)
