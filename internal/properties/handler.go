package properties

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

// Service contains business logic for properties.
type Service struct {
	Repo Repo
}

// Create validates and stores a new property.
func (s *Service) Create(ctx context.Context, name, address string) (Property, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Property{}, ErrInvalidInput
	}
	p := Property{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   strings.TrimSpace(address),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Property{}, err
	}
	return p, nil
}

// Update overwrites name and address on an existing property.
func (s *Service) Update(ctx context.Context, propertyID, name, address string) (Property, error) {
	name = strings.TrimSpace(name)
	if propertyID == "" || name == "" {
		return Property{}, ErrInvalidInput
	}
	existing, err := s.Repo.GetByID(ctx, propertyID)
	if err != nil {
		return Property{}, err
	}
	existing.Name = name
	existing.Address = strings.TrimSpace(address)
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Property{}, err
	}
	return existing, nil
}

type propertyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(p Property) propertyResponse {
	return propertyResponse{ID: p.ID, Name: p.Name, Address: p.Address, CreatedAt: p.CreatedAt}
}

type propertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches property routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.create)
	rg.GET("/properties", h.list)
	rg.GET("/properties/:id", h.get)
	rg.PUT("/properties/:id", h.update)
	rg.DELETE("/properties/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create property", nil)
		return
	}
	respond.Created(c, toResponse(p))
}

func (h *Handler) list(c *gin.Context) {
	props, err := h.Svc.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list properties", nil)
		return
	}
	out := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, toResponse(p))
	}
	respond.OK(c, gin.H{"properties": out})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Property not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load property", nil)
		return
	}
	respond.OK(c, toResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Property not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update property", nil)
		}
		return
	}
	respond.OK(c, toResponse(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Property not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete property", nil)
		return
	}
	respond.OK(c, gin.H{"success": true})
}
