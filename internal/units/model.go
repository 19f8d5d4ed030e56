package units

import (
	"errors"
	"time"
)

// Occupancy states for a unit.
const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"
)

// Unit is a rentable space inside a property.
type Unit struct {
	ID         string
	PropertyID string
	UnitNumber string
	Status     string
	CreatedAt  time.Time
}

var (
	ErrNotFound     = errors.New("unit not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ValidStatus reports whether s is a recognized occupancy state.
func ValidStatus(s string) bool {
	return s == StatusVacant || s == StatusOccupied
}
