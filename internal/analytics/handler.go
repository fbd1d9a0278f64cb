// HTTP handlers for the analytics service.
//
// All routes expect an x-user-id header forwarded by the Gateway (dev-only
// header auth; there is no other authentication layer).
//
// Routes:
//
//	GET  /analytics/stats         → overall salary statistics
//	GET  /analytics/companies     → per-company leaderboard
//	GET  /analytics/locations     → per-city leaderboard
//	GET  /analytics/remote-split  → remote vs onsite comparison
//	GET  /analytics/timeline      → per-month statistics with growth
//	GET  /analytics/positioning   → market-position bucket
//	GET  /analytics/summary       → bulk payload {analytics, jobs, offers}
//	GET  /analytics/consolidated  → the five shapes derived from the bulk payload
//	GET  /analytics/insights      → recommendation list
//	POST /admin/views/refresh     → re-apply the view migration, returns report
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"jobblaster/analytics-service/internal/insights"
	"jobblaster/analytics-service/internal/summary"
	"jobblaster/analytics-service/internal/views"
)

// ─── Dependencies ────────────────────────────────────────────────────────────

// Provider is the view-query surface the handler needs; *Service implements it.
type Provider interface {
	Stats(ctx context.Context, userID string) (*SalaryStats, error)
	ByCompany(ctx context.Context, userID string) ([]CompanySalaryRow, error)
	ByLocation(ctx context.Context, userID string) ([]LocationSalaryRow, error)
	RemoteSplit(ctx context.Context, userID string) ([]RemoteSplitRow, error)
	Timeline(ctx context.Context, userID string) ([]TimelineRow, error)
	Positioning(ctx context.Context, userID string) (*MarketPositioning, error)
}

// Refresher re-applies the view migration; *views.Runner implements it.
type Refresher interface {
	Apply(ctx context.Context) *views.Report
}

// CacheInvalidator drops cached summaries after a refresh. May be nil.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies for all analytics routes.
type Handler struct {
	svc       Provider
	summaries summary.Source
	memo      *summary.Memoizer
	runner    Refresher
	cache     CacheInvalidator
}

// NewHandler returns a configured Handler. cache may be nil.
func NewHandler(svc Provider, summaries summary.Source, runner Refresher, cache CacheInvalidator) *Handler {
	return &Handler{
		svc:       svc,
		summaries: summaries,
		memo:      summary.NewMemoizer(),
		runner:    runner,
		cache:     cache,
	}
}

// RegisterRoutes mounts all analytics routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /analytics/stats", h.withUser(h.stats))
	mux.HandleFunc("GET /analytics/companies", h.withUser(h.companies))
	mux.HandleFunc("GET /analytics/locations", h.withUser(h.locations))
	mux.HandleFunc("GET /analytics/remote-split", h.withUser(h.remoteSplit))
	mux.HandleFunc("GET /analytics/timeline", h.withUser(h.timeline))
	mux.HandleFunc("GET /analytics/positioning", h.withUser(h.positioning))
	mux.HandleFunc("GET /analytics/summary", h.withUser(h.bulkSummary))
	mux.HandleFunc("GET /analytics/consolidated", h.withUser(h.consolidated))
	mux.HandleFunc("GET /analytics/insights", h.withUser(h.recommendations))
	mux.HandleFunc("POST /admin/views/refresh", h.refreshViews)
}

// withUser extracts the x-user-id header and rejects requests without it.
func (h *Handler) withUser(fn func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("x-user-id")
		if userID == "" {
			jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
			return
		}
		fn(w, r, userID)
	}
}

// ─── View-backed routes ───────────────────────────────────────────────────────

func (h *Handler) stats(w http.ResponseWriter, r *http.Request, userID string) {
	st, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] stats error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, st)
}

func (h *Handler) companies(w http.ResponseWriter, r *http.Request, userID string) {
	rows, err := h.svc.ByCompany(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] companies error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, rows)
}

func (h *Handler) locations(w http.ResponseWriter, r *http.Request, userID string) {
	rows, err := h.svc.ByLocation(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] locations error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, rows)
}

func (h *Handler) remoteSplit(w http.ResponseWriter, r *http.Request, userID string) {
	rows, err := h.svc.RemoteSplit(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] remote-split error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, rows)
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request, userID string) {
	rows, err := h.svc.Timeline(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] timeline error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, rows)
}

func (h *Handler) positioning(w http.ResponseWriter, r *http.Request, userID string) {
	mp, err := h.svc.Positioning(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] positioning error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	// mp is nil for a user with no offers; clients render their no-data branch.
	jsonOK(w, mp)
}

// ─── Summary-backed routes ────────────────────────────────────────────────────

func (h *Handler) bulkSummary(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.summaries.Build(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] summary error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, p)
}

func (h *Handler) consolidated(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.summaries.Build(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] consolidated error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, h.memo.Derive(p))
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.summaries.Build(r.Context(), userID)
	if err != nil {
		log.Printf("[analytics] insights error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	derived := h.memo.Derive(p)
	if derived == nil {
		jsonOK(w, insights.Evaluate(nil, nil))
		return
	}
	jsonOK(w, insights.Evaluate(derived.Companies, derived.Stats))
}

// ─── Admin routes ────────────────────────────────────────────────────────────

func (h *Handler) refreshViews(w http.ResponseWriter, r *http.Request) {
	report := h.runner.Apply(r.Context())

	if h.cache != nil {
		if err := h.cache.InvalidateAll(r.Context()); err != nil {
			log.Printf("[analytics] cache invalidation after refresh failed: %v", err)
		}
	}

	jsonOK(w, report)
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
