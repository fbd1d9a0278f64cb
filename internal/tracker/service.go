package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates the status-transition logic for tracked jobs.
// It has no dependency on net/http — it can be used by any transport layer.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client) *Service {
	return &Service{pool: pool, rdb: rdb}
}

// MoveStatus transitions a job to a new status.
// Returns ErrNotFound if the job does not exist or belong to userID.
// Returns a ValidationError if the state machine rejects the transition.
func (s *Service) MoveStatus(ctx context.Context, userID, jobID, newStatusStr string) (*Job, error) {
	newStatus, err := ParseJobStatus(newStatusStr)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	// Fetch current state (also validates ownership)
	var currentStatusStr string
	err = s.pool.QueryRow(ctx,
		`SELECT status FROM jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID,
	).Scan(&currentStatusStr)
	if err != nil {
		return nil, ErrNotFound
	}

	currentStatus, _ := ParseJobStatus(currentStatusStr)
	if !IsTransitionAllowed(currentStatus, newStatus) {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("transition %s → %s is not allowed", currentStatus, newStatus),
		}
	}

	var job Job
	err = s.pool.QueryRow(ctx,
		`UPDATE jobs
		 SET status = $1::job_status, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, company, title, is_remote,
		           COALESCE(country, ''), COALESCE(state, ''), COALESCE(city, ''),
		           status, created_at, updated_at`,
		string(newStatus), jobID, userID,
	).Scan(
		&job.ID, &job.Company, &job.Title, &job.IsRemote,
		&job.Country, &job.State, &job.City,
		&job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("moveStatus update: %w", err)
	}

	// Publish event for SSE forward (non-fatal)
	event, _ := json.Marshal(map[string]string{
		"type":   "EVENT_STATUS_CHANGED",
		"jobId":  jobID,
		"userId": userID,
		"from":   string(currentStatus),
		"to":     string(newStatus),
	})
	if err := s.rdb.Publish(ctx, "EVENT_STATUS_CHANGED", event).Err(); err != nil {
		slog.Warn("publish EVENT_STATUS_CHANGED failed", "err", err)
	}

	return &job, nil
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when a job is missing or does not belong to the user.
var ErrNotFound = fmt.Errorf("job not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
