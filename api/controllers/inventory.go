package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/branchstock/branchstock-backend/api/middleware"
	"github.com/branchstock/branchstock-backend/api/responses"
	"github.com/branchstock/branchstock-backend/api/validators"
	"github.com/branchstock/branchstock-backend/internal/inventory"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
	"github.com/branchstock/branchstock-backend/pkg/logger"
)

func callerFromRequest(r *http.Request) (inventory.Caller, error) {
	rawID := middleware.UserIDFromContext(r.Context())
	id, err := uuid.Parse(rawID)
	if err != nil {
		return inventory.Caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}
	return inventory.Caller{
		UserID:  id,
		Branch:  middleware.BranchFromContext(r.Context()),
		IsAdmin: middleware.IsAdminFromContext(r.Context()),
	}, nil
}

// InventoryCreate records a movement against the caller's branch.
func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body inventory.CreateRecordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), caller, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// InventoryGet returns one movement, subject to branch visibility.
func InventoryGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := chi.URLParam(r, "id")
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid record id").WithDetails(map[string]any{"id": raw}))
			return
		}

		dto, err := svc.Get(r.Context(), caller, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
