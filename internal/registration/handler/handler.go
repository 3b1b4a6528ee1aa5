// Package handler exposes the registration HTTP surface. Handlers stay
// thin: decode and validate the payload, pull the authenticated user
// from context, delegate to the service, map the result.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"partnerhub/internal/registration/models"
	"partnerhub/internal/registration/service"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/platform/httputil"
	"partnerhub/pkg/requestcontext"
)

// Service is the registration surface the handlers depend on.
type Service interface {
	RegisterCompany(ctx context.Context, userID id.UserID, input service.CompanyInput) (*models.CompanyAggregate, error)
	RegisterIndividual(ctx context.Context, userID id.UserID, input service.IndividualInput) (*models.IndividualAggregate, error)
	RegisterOrganization(ctx context.Context, userID id.UserID, input service.OrganizationInput) (*models.OrganizationAggregate, error)
	EnsureProfile(ctx context.Context, userID id.UserID) (*models.UserProfile, error)
	ProfileStatus(ctx context.Context, userID id.UserID) (*models.UserProfile, error)
}

// Handler serves the registration endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registration Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the registration routes. The router is expected to
// already enforce authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registration/profile", h.ensureProfile)
	r.Post("/registration/company", h.registerCompany)
	r.Post("/registration/bd-individual", h.registerIndividual)
	r.Post("/registration/bd-org", h.registerOrganization)
	r.Get("/registration/status", h.status)
}

// ensureProfile is the signup hook: it creates the provisional profile
// for the authenticated user, idempotently.
func (h *Handler) ensureProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := h.service.EnsureProfile(ctx, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) registerCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[registerCompanyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	aggregate, err := h.service.RegisterCompany(ctx, requestcontext.UserID(ctx), req.toInput())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, aggregate)
}

func (h *Handler) registerIndividual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[registerIndividualRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	aggregate, err := h.service.RegisterIndividual(ctx, requestcontext.UserID(ctx), req.toInput())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, aggregate)
}

func (h *Handler) registerOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[registerOrganizationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	aggregate, err := h.service.RegisterOrganization(ctx, requestcontext.UserID(ctx), req.toInput())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, aggregate)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := h.service.ProfileStatus(ctx, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}
