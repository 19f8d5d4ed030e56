package notices

import (
	"errors"
	"time"
)

// Delivery outcomes recorded in the notification log.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// NotificationLog is one recorded delivery attempt.
type NotificationLog struct {
	ID         string
	TenantID   string
	SentAt     time.Time
	NoticeType string
	Status     string
}

var ErrInvalidInput = errors.New("invalid input")
