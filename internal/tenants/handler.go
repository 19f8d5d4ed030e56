package tenants

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zephvault-backend/internal/shared/server/respond"
)

const dueDateLayout = "2006-01-02"

// Service contains business logic for tenants.
type Service struct {
	Repo Repo
}

// TenantInput carries the mutable tenant fields from the API surface.
type TenantInput struct {
	UnitID           string
	FullName         string
	Email            string
	PhoneNumber      string
	RentDueDate      string
	YearlyRentAmount float64
	ReminderStatus   string
}

func (in TenantInput) parse() (Tenant, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	if fullName == "" || email == "" {
		return Tenant{}, ErrInvalidInput
	}
	due, err := time.Parse(dueDateLayout, in.RentDueDate)
	if err != nil {
		return Tenant{}, ErrInvalidInput
	}
	status := in.ReminderStatus
	if status == "" {
		status = ReminderActive
	}
	if status != ReminderActive && status != ReminderPaused && status != ReminderDisabled {
		return Tenant{}, ErrInvalidInput
	}
	return Tenant{
		UnitID:           in.UnitID,
		FullName:         fullName,
		Email:            email,
		PhoneNumber:      strings.TrimSpace(in.PhoneNumber),
		RentDueDate:      due,
		YearlyRentAmount: in.YearlyRentAmount,
		ReminderStatus:   status,
	}, nil
}

// Create validates and stores a new tenant.
func (s *Service) Create(ctx context.Context, in TenantInput) (Tenant, error) {
	t, err := in.parse()
	if err != nil {
		return Tenant{}, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	if err := s.Repo.Create(ctx, t); err != nil {
		return Tenant{}, err
	}
	return t, nil
}

// Update overwrites a tenant's mutable fields.
func (s *Service) Update(ctx context.Context, tenantID string, in TenantInput) (Tenant, error) {
	if tenantID == "" {
		return Tenant{}, ErrInvalidInput
	}
	t, err := in.parse()
	if err != nil {
		return Tenant{}, err
	}
	existing, err := s.Repo.GetByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, err
	}
	t.ID = tenantID
	t.CreatedAt = existing.CreatedAt
	if err := s.Repo.Update(ctx, t); err != nil {
		return Tenant{}, err
	}
	return t, nil
}

type tenantResponse struct {
	ID               string    `json:"id"`
	UnitID           string    `json:"unit_id,omitempty"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	RentDueDate      string    `json:"rent_due_date"`
	YearlyRentAmount float64   `json:"yearly_rent_amount,omitempty"`
	ReminderStatus   string    `json:"reminder_status"`
	CreatedAt        time.Time `json:"created_at"`
}

func toResponse(t Tenant) tenantResponse {
	return tenantResponse{
		ID:               t.ID,
		UnitID:           t.UnitID,
		FullName:         t.FullName,
		Email:            t.Email,
		PhoneNumber:      t.PhoneNumber,
		RentDueDate:      t.RentDueDate.Format(dueDateLayout),
		YearlyRentAmount: t.YearlyRentAmount,
		ReminderStatus:   t.ReminderStatus,
		CreatedAt:        t.CreatedAt,
	}
}

type scheduleResponse struct {
	TenantID        string `json:"tenant_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	RentDueDate     string `json:"rent_due_date"`
	ReminderStatus  string `json:"reminder_status"`
	UnitID          string `json:"unit_id,omitempty"`
	UnitNumber      string `json:"unit_number,omitempty"`
	UnitStatus      string `json:"unit_status,omitempty"`
	PropertyID      string `json:"property_id,omitempty"`
	PropertyName    string `json:"property_name,omitempty"`
	PropertyAddress string `json:"property_address,omitempty"`
	DaysUntilDue    int    `json:"days_until_due"`
	PaymentStatus   string `json:"payment_status"`
}

func toScheduleResponse(tu TenantUnit) scheduleResponse {
	return scheduleResponse{
		TenantID:        tu.TenantID,
		FullName:        tu.FullName,
		Email:           tu.Email,
		PhoneNumber:     tu.PhoneNumber,
		RentDueDate:     tu.RentDueDate.Format(dueDateLayout),
		ReminderStatus:  tu.ReminderStatus,
		UnitID:          tu.UnitID,
		UnitNumber:      tu.UnitNumber,
		UnitStatus:      tu.UnitStatus,
		PropertyID:      tu.PropertyID,
		PropertyName:    tu.PropertyName,
		PropertyAddress: tu.PropertyAddress,
		DaysUntilDue:    tu.DaysUntilDue,
		PaymentStatus:   tu.PaymentStatus,
	}
}

type tenantRequest struct {
	UnitID           string  `json:"unit_id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phone_number"`
	RentDueDate      string  `json:"rent_due_date"`
	YearlyRentAmount float64 `json:"yearly_rent_amount"`
	ReminderStatus   string  `json:"reminder_status"`
}

func (req tenantRequest) toInput() TenantInput {
	return TenantInput{
		UnitID:           req.UnitID,
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		RentDueDate:      req.RentDueDate,
		YearlyRentAmount: req.YearlyRentAmount,
		ReminderStatus:   req.ReminderStatus,
	}
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tenant routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tenants", h.create)
	rg.GET("/tenants", h.list)
	rg.GET("/tenants/:id", h.get)
	rg.GET("/tenants/:id/schedule", h.schedule)
	rg.PUT("/tenants/:id", h.update)
	rg.DELETE("/tenants/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req tenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "full_name, email and rent_due_date (YYYY-MM-DD) are required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create tenant", nil)
		return
	}
	respond.Created(c, toResponse(t))
}

func (h *Handler) list(c *gin.Context) {
	ts, err := h.Svc.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list tenants", nil)
		return
	}
	out := make([]tenantResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toResponse(t))
	}
	respond.OK(c, gin.H{"tenants": out})
}

func (h *Handler) get(c *gin.Context) {
	c.Set("tenantId", c.Param("id"))

	t, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Tenant not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load tenant", nil)
		return
	}
	respond.OK(c, toResponse(t))
}

func (h *Handler) schedule(c *gin.Context) {
	c.Set("tenantId", c.Param("id"))

	tu, err := h.Svc.Repo.GetUnitView(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Tenant not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load tenant schedule", nil)
		return
	}
	respond.OK(c, toScheduleResponse(tu))
}

func (h *Handler) update(c *gin.Context) {
	c.Set("tenantId", c.Param("id"))

	var req tenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "full_name, email and rent_due_date (YYYY-MM-DD) are required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Tenant not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update tenant", nil)
		}
		return
	}
	respond.OK(c, toResponse(t))
}

func (h *Handler) delete(c *gin.Context) {
	c.Set("tenantId", c.Param("id"))

	if err := h.Svc.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Tenant not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete tenant", nil)
		return
	}
	respond.OK(c, gin.H{"success": true})
}
