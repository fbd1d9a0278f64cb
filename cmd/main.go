// jobblaster-analytics-service
//
// Salary-analytics pipeline for the job-application tracker. Owns:
//   - the analytics view cascade (v_offers_user → aggregate views) and the
//     idempotent migration that (re)applies it
//   - read endpoints over the views (stats, leaderboards, timeline, positioning)
//   - the bulk summary endpoint plus its derived shapes and insights
//   - the job status-transition endpoint (publishes EVENT_STATUS_CHANGED)
//
// Summary payloads are cached per user in Redis; a cron re-applies the view
// migration and flushes the cache.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobblaster/analytics-service/internal/analytics"
	"jobblaster/analytics-service/internal/config"
	"jobblaster/analytics-service/internal/db"
	"jobblaster/analytics-service/internal/scheduler"
	"jobblaster/analytics-service/internal/summary"
	"jobblaster/analytics-service/internal/tracker"
	"jobblaster/analytics-service/internal/views"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[analytics-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[analytics-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[analytics-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[analytics-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[analytics-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[analytics-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[analytics-service] Redis connected ✓")

	// ── Core services ────────────────────────────────────────────────────────
	runner := views.NewRunner(pool, rdb)
	svc := analytics.NewService(pool)
	summaries := summary.NewCachedSource(summary.NewBuilder(pool), rdb, cfg.SummaryCacheTTL)
	trackerSvc := tracker.NewService(pool, rdb)

	// ── Scheduler ────────────────────────────────────────────────────────────
	// Applies the view migration immediately, then on the cron cadence.
	sched := scheduler.New(runner, summaries, cfg.RefreshIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[analytics-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	analytics.NewHandler(svc, summaries, runner, summaries).RegisterRoutes(mux)
	tracker.NewHandler(trackerSvc, summaries).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[analytics-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[analytics-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[analytics-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[analytics-service] Shutdown error: %v", err)
	}
	log.Println("[analytics-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "analytics-service",
		"version": version,
	})
}
