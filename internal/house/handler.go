package house

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rentfold/service-core/internal/house/entity"
	"github.com/rentfold/service-core/internal/token"
	userentity "github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

// Handler exposes the listing endpoints. What a caller sees depends on role:
// admins see everything, landlords their own listings, tenants the available
// ones.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the body for adding a listing.
type CreateRequest struct {
	Title       string  `json:"title"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Area        string  `json:"area"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Rent        float64 `json:"rent"`
	Description string  `json:"description"`
}

// UpdateRequest is the body for a partial edit; omitted fields are kept.
type UpdateRequest struct {
	Title       *string  `json:"title"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Area        *string  `json:"area"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Rent        *float64 `json:"rent"`
	Description *string  `json:"description"`
}

// StatusRequest is the body for the manual status change.
type StatusRequest struct {
	Status int `json:"status"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u := token.UserFrom(r.Context())
	switch u.Role {
	case userentity.RoleAdmin:
		h.writeJSON(w, http.StatusOK, h.svc.ListAll())
	case userentity.RoleLandlord:
		h.writeJSON(w, http.StatusOK, h.svc.ListByOwner(u.ID))
	default:
		h.writeJSON(w, http.StatusOK, h.svc.ListAvailable())
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u := token.UserFrom(r.Context())
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	// tenants only get details for listings they could rent
	if u.Role == userentity.RoleTenant && rec.Status != entity.StatusAvailable {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "house not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireLandlord(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid house payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.Create(u, CreateInput{
		Title:       req.Title,
		Address:     req.Address,
		City:        req.City,
		Area:        req.Area,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Rent:        req.Rent,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireLandlord(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid house payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.Update(u.ID, id, UpdateInput{
		Title:       req.Title,
		Address:     req.Address,
		City:        req.City,
		Area:        req.Area,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Rent:        req.Rent,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireLandlord(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(u.ID, id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "house deleted"})
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireLandlord(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.SetStatus(u.ID, id, entity.Status(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) requireLandlord(w http.ResponseWriter, r *http.Request) (*userentity.User, bool) {
	u := token.UserFrom(r.Context())
	if u == nil || u.Role != userentity.RoleLandlord {
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "landlord role required"})
		return nil, false
	}
	return u, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrHasActiveRental), errors.Is(err, storage.ErrCapacityExceeded):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "house not found"})
	default:
		h.logger.Warnw("house operation failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
