package tenants

import "time"

// Payment states derived from the days remaining until the due date.
const (
	PaymentOverdue = "overdue"
	PaymentUrgent  = "urgent"
	PaymentDueSoon = "due_soon"
	PaymentCurrent = "current"
)

// Notice types sent at fixed points before the due date.
const (
	Notice30Day  = "30_day_reminder"
	Notice7Day   = "7_day_urgent"
	Notice1Day   = "1_day_final"
	NoticeManual = "manual_reminder"
)

// DaysUntilDue returns the whole-day distance from today to the due date.
// Negative once the date has passed.
func DaysUntilDue(due, today time.Time) int {
	due = truncateToDate(due)
	today = truncateToDate(today)
	return int(due.Sub(today).Hours() / 24)
}

// PaymentStatusFor buckets the remaining days into a payment state.
func PaymentStatusFor(daysUntilDue int) string {
	switch {
	case daysUntilDue < 0:
		return PaymentOverdue
	case daysUntilDue <= 7:
		return PaymentUrgent
	case daysUntilDue <= 30:
		return PaymentDueSoon
	default:
		return PaymentCurrent
	}
}

// NoticeTypeFor returns the scheduled notice for an exact threshold day, or
// empty when the day is not a send day.
func NoticeTypeFor(daysUntilDue int) string {
	switch daysUntilDue {
	case 30:
		return Notice30Day
	case 7:
		return Notice7Day
	case 1:
		return Notice1Day
	default:
		return ""
	}
}

// ValidNoticeType reports whether t is a known notice type, including the
// operator-triggered manual reminder.
func ValidNoticeType(t string) bool {
	switch t {
	case Notice30Day, Notice7Day, Notice1Day, NoticeManual:
		return true
	default:
		return false
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
