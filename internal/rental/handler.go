package rental

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rentfold/service-core/internal/token"
	userentity "github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

// Handler exposes the rental endpoints: tenants rent and end, everyone lists
// what their role entitles them to see.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the body for renting a house.
type CreateRequest struct {
	HouseID int `json:"house_id"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u := token.UserFrom(r.Context())
	switch u.Role {
	case userentity.RoleAdmin:
		h.writeJSON(w, http.StatusOK, h.svc.ListAll())
	case userentity.RoleLandlord:
		h.writeJSON(w, http.StatusOK, h.svc.ListByLandlord(u.ID))
	default:
		h.writeJSON(w, http.StatusOK, h.svc.ListByTenant(u.ID))
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireTenant(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HouseID <= 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.Rent(u, req.HouseID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireTenant(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	rec, err := h.svc.End(u.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) requireTenant(w http.ResponseWriter, r *http.Request) (*userentity.User, bool) {
	u := token.UserFrom(r.Context())
	if u == nil || u.Role != userentity.RoleTenant {
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "tenant role required"})
		return nil, false
	}
	return u, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrHouseUnavailable), errors.Is(err, ErrAlreadyInactive),
		errors.Is(err, storage.ErrCapacityExceeded):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotRentalHolder):
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		h.logger.Warnw("rental operation failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
