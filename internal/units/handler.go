package units

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

// Service contains business logic for units.
type Service struct {
	Repo Repo
}

// Create validates and stores a new unit.
func (s *Service) Create(ctx context.Context, propertyID, unitNumber, status string) (Unit, error) {
	unitNumber = strings.TrimSpace(unitNumber)
	if unitNumber == "" {
		return Unit{}, ErrInvalidInput
	}
	if status == "" {
		status = StatusVacant
	}
	if !ValidStatus(status) {
		return Unit{}, ErrInvalidInput
	}
	u := Unit{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		UnitNumber: unitNumber,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return Unit{}, err
	}
	return u, nil
}

// SetStatus updates a unit's occupancy state.
func (s *Service) SetStatus(ctx context.Context, unitID, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidInput
	}
	return s.Repo.UpdateStatus(ctx, unitID, status)
}

type unitResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id,omitempty"`
	UnitNumber string    `json:"unit_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(u Unit) unitResponse {
	return unitResponse{
		ID:         u.ID,
		PropertyID: u.PropertyID,
		UnitNumber: u.UnitNumber,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
	}
}

type createUnitRequest struct {
	PropertyID string `json:"property_id"`
	UnitNumber string `json:"unit_number"`
	Status     string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches unit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/units", h.create)
	rg.GET("/units", h.list)
	rg.GET("/units/:id", h.get)
	rg.PATCH("/units/:id/status", h.updateStatus)
	rg.DELETE("/units/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req.PropertyID, req.UnitNumber, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unit_number is required and status must be vacant or occupied", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create unit", nil)
		return
	}
	respond.Created(c, toResponse(u))
}

func (h *Handler) list(c *gin.Context) {
	us, err := h.Svc.Repo.List(c.Request.Context(), c.Query("property_id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list units", nil)
		return
	}
	out := make([]unitResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toResponse(u))
	}
	respond.OK(c, gin.H{"units": out})
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Unit not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load unit", nil)
		return
	}
	respond.OK(c, toResponse(u))
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "status must be vacant or occupied", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Unit not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update unit", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Unit not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete unit", nil)
		return
	}
	respond.OK(c, gin.H{"success": true})
}
