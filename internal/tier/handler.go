// AngelaMos | 2026
// handler.go

package tier

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/firstclub/membership-api/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tiers", func(r chi.Router) {
		r.Post("/", h.CreateTier)
		r.Get("/", h.ListTiers)
		r.Get("/active", h.ListActiveTiers)
		r.Get("/eligible/{userID}", h.GetEligibleTier)
		r.Get("/{tierID}", h.GetTier)
		r.Put("/{tierID}", h.UpdateTier)
		r.Delete("/{tierID}", h.DeleteTier)
	})
}

func (h *Handler) CreateTier(w http.ResponseWriter, r *http.Request) {
	var req CreateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tier, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "tier with this name already exists")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid tier level")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToTierResponse(tier))
}

func (h *Handler) GetTier(w http.ResponseWriter, r *http.Request) {
	tierID := chi.URLParam(r, "tierID")

	tier, err := h.service.GetByID(r.Context(), tierID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tier")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTierResponse(tier))
}

func (h *Handler) ListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTierResponseList(tiers))
}

func (h *Handler) ListActiveTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.ListActive(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTierResponseList(tiers))
}

// GetEligibleTier previews what tier the user's order history currently
// earns, without creating or modifying a subscription.
func (h *Handler) GetEligibleTier(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	tier, err := h.service.EligibleTier(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		if errors.Is(err, core.ErrConfiguration) {
			core.InternalServerError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTierResponse(tier))
}

func (h *Handler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	tierID := chi.URLParam(r, "tierID")

	var req UpdateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tier, err := h.service.Update(r.Context(), tierID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tier")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid tier level")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTierResponse(tier))
}

func (h *Handler) DeleteTier(w http.ResponseWriter, r *http.Request) {
	tierID := chi.URLParam(r, "tierID")

	if err := h.service.Delete(r.Context(), tierID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tier")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
