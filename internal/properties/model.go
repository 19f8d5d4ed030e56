package properties

import (
	"errors"
	"time"
)

// Property is a managed building or estate.
type Property struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}

var (
	ErrNotFound     = errors.New("property not found")
	ErrInvalidInput = errors.New("invalid input")
)
