package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Invalidator drops a user's cached summary after a write. May be nil.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Handler exposes the status-transition endpoint.
//
// Routes:
//
//	POST /jobs/{id}/status → move a job to a new status
type Handler struct {
	svc   *Service
	cache Invalidator
}

// NewHandler returns a configured Handler. cache may be nil.
func NewHandler(svc *Service, cache Invalidator) *Handler {
	return &Handler{svc: svc, cache: cache}
}

// RegisterRoutes mounts the tracker routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /jobs/{id}/status", h.moveStatus)
}

func (h *Handler) moveStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}
	jobID := r.PathValue("id")

	var body struct {
		NewStatus string `json:"newStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewStatus == "" {
		jsonError(w, "body must contain newStatus", http.StatusBadRequest)
		return
	}

	job, err := h.svc.MoveStatus(r.Context(), userID, jobID, body.NewStatus)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.Is(err, ErrNotFound):
			jsonError(w, "job not found", http.StatusNotFound)
		case errors.As(err, &ve):
			jsonError(w, ve.Msg, http.StatusBadRequest)
		default:
			log.Printf("[tracker] moveStatus error: %v", err)
			jsonError(w, "database error", http.StatusInternalServerError)
		}
		return
	}

	// The cached summary now counts this job under the wrong status bucket.
	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context(), userID); err != nil {
			log.Printf("[tracker] summary invalidation failed for user %s: %v", userID, err)
		}
	}

	jsonOK(w, job)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
