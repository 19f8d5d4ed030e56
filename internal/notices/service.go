package notices

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"zephvault-backend/internal/shared/telemetry"
	"zephvault-backend/internal/tenants"
)

// ErrSendFailed marks a delivery failure after the tenant was resolved.
var ErrSendFailed = errors.New("failed to send email")

// Service sends rent notices and records the outcome.
type Service struct {
	Tenants  tenants.Repo
	Logs     LogRepo
	Composer Composer
	Sender   Sender
}

// SendNotice renders and delivers one rent notice. Every attempt is recorded
// in the notification log; a log insert failure never masks the delivery
// outcome.
func (s *Service) SendNotice(ctx context.Context, tenantID, noticeType string) error {
	if tenantID == "" || noticeType == "" {
		return ErrInvalidInput
	}
	if !tenants.ValidNoticeType(noticeType) {
		return ErrInvalidInput
	}

	tenant, err := s.Tenants.GetUnitView(ctx, tenantID)
	if err != nil {
		return err
	}

	email, err := s.Composer.RentNotice(tenant, noticeType)
	if err != nil {
		return err
	}

	if err := s.Sender.Send(ctx, email); err != nil {
		telemetry.Error("notice.send", map[string]any{
			"tenant_id":   tenantID,
			"notice_type": noticeType,
			"error":       err.Error(),
		})
		s.record(ctx, tenantID, noticeType, StatusFailed)
		return ErrSendFailed
	}

	telemetry.Info("notice.send", map[string]any{
		"tenant_id":   tenantID,
		"notice_type": noticeType,
		"to":          tenant.Email,
		"unit_number": tenant.UnitNumber,
	})
	s.record(ctx, tenantID, noticeType, StatusSent)
	return nil
}

func (s *Service) record(ctx context.Context, tenantID, noticeType, status string) {
	err := s.Logs.Insert(ctx, NotificationLog{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		SentAt:     time.Now().UTC(),
		NoticeType: noticeType,
		Status:     status,
	})
	if err != nil {
		telemetry.Warn("notice.log", map[string]any{
			"tenant_id":   tenantID,
			"notice_type": noticeType,
			"status":      status,
			"error":       err.Error(),
		})
	}
}
