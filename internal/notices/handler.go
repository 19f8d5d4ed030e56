package notices

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/shared/server/middleware"
	"zephvault-backend/internal/shared/server/respond"
	"zephvault-backend/internal/tenants"
)

// Handler wires the notice endpoints to the service and runner.
type Handler struct {
	Svc        *Service
	Runner     *Runner
	CronSecret string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, runner *Runner, cronSecret string) *Handler {
	return &Handler{Svc: svc, Runner: runner, CronSecret: cronSecret}
}

// RegisterRoutes attaches notice routes to the router group. The POST sweep
// endpoint is reserved for the external cron caller; the GET variant is an
// unauthenticated dry run for manual testing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/send-rent-notice", h.sendNotice)
	rg.POST("/check-rent-reminders", middleware.CronAuth(h.CronSecret), h.checkReminders)
	rg.GET("/check-rent-reminders", h.checkRemindersTest)
	rg.GET("/notification-logs", h.listLogs)
}

type sendNoticeRequest struct {
	TenantID   string `json:"tenantId"`
	NoticeType string `json:"noticeType"`
}

func (h *Handler) sendNotice(c *gin.Context) {
	var req sendNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TenantID == "" || req.NoticeType == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Tenant ID and notice type are required", nil)
		return
	}
	c.Set("tenantId", req.TenantID)

	err := h.Svc.SendNotice(c.Request.Context(), req.TenantID, req.NoticeType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown notice type", nil)
		case errors.Is(err, tenants.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Tenant not found", nil)
		case errors.Is(err, ErrSendFailed):
			respond.Error(c, http.StatusInternalServerError, "send_failed", "Failed to send email", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "Internal server error", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"message": "Rent notice sent successfully",
	})
}

func (h *Handler) checkReminders(c *gin.Context) {
	result, err := h.Runner.Run(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Internal server error", err.Error())
		return
	}

	if result.Total == 0 {
		respond.OK(c, gin.H{
			"success": true,
			"message": "No rent reminders needed today",
			"count":   0,
		})
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"message": fmt.Sprintf("Processed %d rent reminders", result.Total),
		"summary": gin.H{
			"total":      result.Total,
			"successful": result.Successful,
			"failed":     result.Failed,
		},
		"details": result.Details,
	})
}

// checkRemindersTest lists the tenants a sweep would touch without sending.
func (h *Handler) checkRemindersTest(c *gin.Context) {
	reminders, err := h.Runner.Tenants.ListNeedingReminders(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Error checking rent reminders", nil)
		return
	}

	out := make([]gin.H, 0, len(reminders))
	for _, rem := range reminders {
		out = append(out, gin.H{
			"tenant_id":        rem.TenantID,
			"full_name":        rem.FullName,
			"email":            rem.Email,
			"phone_number":     rem.PhoneNumber,
			"unit_number":      rem.UnitNumber,
			"property_name":    rem.PropertyName,
			"property_address": rem.PropertyAddress,
			"rent_due_date":    rem.RentDueDate.Format("2006-01-02"),
			"days_until_due":   rem.DaysUntilDue,
			"notice_type":      rem.NoticeType,
		})
	}

	respond.OK(c, gin.H{
		"success":                 true,
		"message":                 "Rent reminder check (test mode)",
		"tenantsNeedingReminders": out,
	})
}

type logResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id,omitempty"`
	SentAt     time.Time `json:"sent_at"`
	NoticeType string    `json:"notice_type"`
	Status     string    `json:"status"`
}

func (h *Handler) listLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.Svc.Logs.List(c.Request.Context(), c.Query("tenant_id"), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list notification logs", nil)
		return
	}

	out := make([]logResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, logResponse{
			ID:         log.ID,
			TenantID:   log.TenantID,
			SentAt:     log.SentAt,
			NoticeType: log.NoticeType,
			Status:     log.Status,
		})
	}
	respond.OK(c, gin.H{"logs": out})
}
