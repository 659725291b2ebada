// AngelaMos | 2026
// handler.go

package benefit

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
	r.Route("/benefits", func(r chi.Router) {
		r.Post("/", h.CreateBenefit)
		r.Get("/", h.ListBenefits)
		r.Get("/tier/{tierID}", h.ListBenefitsByTier)
		r.Get("/tier/{tierID}/active", h.ListActiveBenefitsByTier)
		r.Get("/{benefitID}", h.GetBenefit)
		r.Put("/{benefitID}", h.UpdateBenefit)
		r.Delete("/{benefitID}", h.DeleteBenefit)
	})
}

func (h *Handler) CreateBenefit(w http.ResponseWriter, r *http.Request) {
	var req CreateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	benefit, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tier")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid benefit type")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToBenefitResponse(benefit))
}

func (h *Handler) GetBenefit(w http.ResponseWriter, r *http.Request) {
	benefitID := chi.URLParam(r, "benefitID")

	benefit, err := h.service.GetByID(r.Context(), benefitID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "benefit")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBenefitResponse(benefit))
}

func (h *Handler) ListBenefits(w http.ResponseWriter, r *http.Request) {
	benefits, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBenefitResponseList(benefits))
}

func (h *Handler) ListBenefitsByTier(w http.ResponseWriter, r *http.Request) {
	tierID := chi.URLParam(r, "tierID")

	benefits, err := h.service.ListByTier(r.Context(), tierID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBenefitResponseList(benefits))
}

func (h *Handler) ListActiveBenefitsByTier(
	w http.ResponseWriter,
	r *http.Request,
) {
	tierID := chi.URLParam(r, "tierID")

	benefits, err := h.service.ListActiveByTier(r.Context(), tierID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBenefitResponseList(benefits))
}

func (h *Handler) UpdateBenefit(w http.ResponseWriter, r *http.Request) {
	benefitID := chi.URLParam(r, "benefitID")

	var req UpdateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	benefit, err := h.service.Update(r.Context(), benefitID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "benefit")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid benefit type")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBenefitResponse(benefit))
}

func (h *Handler) DeleteBenefit(w http.ResponseWriter, r *http.Request) {
	benefitID := chi.URLParam(r, "benefitID")

	if err := h.service.Delete(r.Context(), benefitID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "benefit")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
