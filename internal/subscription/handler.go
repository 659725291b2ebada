// AngelaMos | 2026
// handler.go

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/", h.CreateSubscription)
		r.Get("/", h.ListSubscriptions)
		r.Get("/user/{userID}", h.ListUserSubscriptions)
		r.Get("/user/{userID}/active", h.GetActiveSubscription)
		r.Get("/{subscriptionID}", h.GetSubscription)
		r.Patch("/{subscriptionID}/upgrade", h.UpgradeSubscription)
		r.Patch("/{subscriptionID}/downgrade", h.DowngradeSubscription)
		r.Patch("/{subscriptionID}/cancel", h.CancelSubscription)
		r.Post("/{subscriptionID}/renew", h.RenewSubscription)
	})
}

func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.Created(w, ToSubscriptionResponse(sub))
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID := chi.URLParam(r, "subscriptionID")

	sub, err := h.service.GetByID(r.Context(), subscriptionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "subscription")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	params := ListSubscriptionsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			core.BadRequest(w, "invalid status filter")
			return
		}
		params.Status = status
	}

	subs, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToSubscriptionResponseList(subs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListUserSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	subs, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponseList(subs))
}

func (h *Handler) GetActiveSubscription(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	sub, err := h.service.GetActiveByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "active subscription")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) UpgradeSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID := chi.URLParam(r, "subscriptionID")

	sub, err := h.service.Upgrade(r.Context(), subscriptionID)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) DowngradeSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID := chi.URLParam(r, "subscriptionID")

	var req DowngradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.Downgrade(r.Context(), subscriptionID, req.TierLevel)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID := chi.URLParam(r, "subscriptionID")

	sub, err := h.service.Cancel(r.Context(), subscriptionID)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) RenewSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID := chi.URLParam(r, "subscriptionID")

	sub, err := h.service.Renew(r.Context(), subscriptionID)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

// writeLifecycleError maps the service error taxonomy onto the response
// envelope: absent references are 404, duplicate-active is 409, status
// preconditions are 422, catalog misconfiguration is 500.
func (h *Handler) writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "resource")
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, err.Error())
	case errors.Is(err, core.ErrInvalidState):
		core.UnprocessableEntity(w, err.Error())
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
