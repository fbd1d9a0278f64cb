package views

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// Execer is the subset of pgxpool.Pool the runner needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StatementResult records the outcome of one migration statement.
type StatementResult struct {
	Name     string        `json:"name"`
	Kind     Kind          `json:"kind"`
	Duration time.Duration `json:"durationNs"`
	Error    string        `json:"error,omitempty"`
}

// Report is the structured outcome of one migration run.
type Report struct {
	RunID     string            `json:"runId"`
	StartedAt time.Time         `json:"startedAt"`
	Applied   int               `json:"applied"`
	Failed    int               `json:"failed"`
	Results   []StatementResult `json:"results"`
}

// Runner applies the view migration sequence.
//
// It is best-effort, not atomic: a failing statement is logged as a warning
// and recorded in the report, and the run continues with the next statement.
// Every statement is independently retryable, so re-running the whole
// sequence is always safe.
type Runner struct {
	db  Execer
	rdb *redis.Client // optional; refresh events are skipped when nil
}

// NewRunner returns a Runner over db. rdb may be nil.
func NewRunner(db Execer, rdb *redis.Client) *Runner {
	return &Runner{db: db, rdb: rdb}
}

// Apply executes every migration statement in order and returns the report.
func (r *Runner) Apply(ctx context.Context) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	for _, st := range Statements() {
		start := time.Now()
		_, err := r.db.Exec(ctx, st.SQL)
		res := StatementResult{
			Name:     st.Name,
			Kind:     st.Kind,
			Duration: time.Since(start),
		}
		if err != nil {
			res.Error = err.Error()
			report.Failed++
			slog.Warn("migration statement failed",
				"run", report.RunID, "name", st.Name, "kind", st.Kind, "err", err)
		} else {
			report.Applied++
		}
		report.Results = append(report.Results, res)
	}

	r.publishRefreshed(ctx, report)
	return report
}

// publishRefreshed notifies listeners that the views were (re)applied (non-fatal).
func (r *Runner) publishRefreshed(ctx context.Context, report *Report) {
	if r.rdb == nil {
		return
	}
	event, _ := json.Marshal(map[string]any{
		"type":    "EVENT_VIEWS_REFRESHED",
		"runId":   report.RunID,
		"applied": report.Applied,
		"failed":  report.Failed,
	})
	if err := r.rdb.Publish(ctx, "EVENT_VIEWS_REFRESHED", event).Err(); err != nil {
		slog.Warn("publish EVENT_VIEWS_REFRESHED failed", "err", err)
	}
}
