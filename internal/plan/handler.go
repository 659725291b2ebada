// AngelaMos | 2026
// handler.go

package plan

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
	r.Route("/plans", func(r chi.Router) {
		r.Post("/", h.CreatePlan)
		r.Get("/", h.ListPlans)
		r.Get("/active", h.ListActivePlans)
		r.Get("/{planID}", h.GetPlan)
		r.Put("/{planID}", h.UpdatePlan)
		r.Delete("/{planID}", h.DeletePlan)
	})
}

func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	plan, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "plan with this name already exists")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid plan type")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPlanResponse(plan))
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	plan, err := h.service.GetByID(r.Context(), planID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "plan")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponseList(plans))
}

func (h *Handler) ListActivePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListActive(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponseList(plans))
}

func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	plan, err := h.service.Update(r.Context(), planID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "plan")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid plan type")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	if err := h.service.Delete(r.Context(), planID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "plan")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
