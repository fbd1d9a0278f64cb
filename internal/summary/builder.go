package summary

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"jobblaster/analytics-service/internal/tracker"
)

// Querier is the subset of pgxpool.Pool the builder needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Source produces the bulk payload for one user.
type Source interface {
	Build(ctx context.Context, userID string) (*BulkPayload, error)
}

// Builder assembles the bulk payload from the database: the user's jobs,
// their offers read through v_offers_user, and the hand-aggregated
// analytics object.
type Builder struct {
	db Querier
}

// NewBuilder returns a configured Builder.
func NewBuilder(db Querier) *Builder {
	return &Builder{db: db}
}

// Build reads jobs and offers for userID and aggregates the summary.
func (b *Builder) Build(ctx context.Context, userID string) (*BulkPayload, error) {
	jobs, err := b.loadJobs(ctx, userID)
	if err != nil {
		return nil, err
	}

	offers, companies, locations, err := b.loadOffers(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &AnalyticsSummary{
		TotalJobs:   len(jobs),
		TotalOffers: len(offers),
		ByStatus:    map[string]int{},
		ByCompany:   map[string]GroupSummary{},
		ByLocation:  map[string]GroupSummary{},
	}

	for _, j := range jobs {
		a.ByStatus[j.Status]++
	}

	var total float64
	for _, o := range offers {
		total += o.Amount
	}
	if len(offers) > 0 {
		a.AverageSalary = total / float64(len(offers))
	}

	for name, g := range companies {
		a.ByCompany[name] = GroupSummary{Count: g.count, AvgSalary: g.sum / float64(g.count)}
	}
	for name, g := range locations {
		a.ByLocation[name] = GroupSummary{Count: g.count, AvgSalary: g.sum / float64(g.count)}
	}

	return &BulkPayload{Analytics: a, Jobs: jobs, Offers: offers}, nil
}

func (b *Builder) loadJobs(ctx context.Context, userID string) ([]tracker.Job, error) {
	rows, err := b.db.Query(ctx,
		`SELECT id, company, title, is_remote,
		        COALESCE(country, ''), COALESCE(state, ''), COALESCE(city, ''),
		        status, created_at, updated_at
		 FROM jobs
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("summary jobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]tracker.Job, 0)
	for rows.Next() {
		var j tracker.Job
		if err := rows.Scan(&j.ID, &j.Company, &j.Title, &j.IsRemote,
			&j.Country, &j.State, &j.City, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("summary jobs scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

type groupAcc struct {
	count int
	sum   float64
}

// loadOffers reads through v_offers_user — the isolation boundary — and
// accumulates the per-company and per-location buckets in the same pass.
func (b *Builder) loadOffers(ctx context.Context, userID string) (
	[]tracker.SalaryOffer, map[string]*groupAcc, map[string]*groupAcc, error,
) {
	rows, err := b.db.Query(ctx,
		`SELECT offer_id, job_id, company, city, effective_base, currency, status, offered_at
		 FROM v_offers_user
		 WHERE user_id = $1
		 ORDER BY offered_at DESC`,
		userID,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("summary offers query: %w", err)
	}
	defer rows.Close()

	offers := make([]tracker.SalaryOffer, 0)
	companies := map[string]*groupAcc{}
	locations := map[string]*groupAcc{}

	for rows.Next() {
		var o tracker.SalaryOffer
		var company, city string
		if err := rows.Scan(&o.ID, &o.JobID, &company, &city, &o.Amount,
			&o.Currency, &o.Status, &o.OfferedAt); err != nil {
			return nil, nil, nil, fmt.Errorf("summary offers scan: %w", err)
		}
		offers = append(offers, o)

		accumulate(companies, company, o.Amount)
		if city == "" {
			city = "Unknown"
		}
		accumulate(locations, city, o.Amount)
	}
	return offers, companies, locations, rows.Err()
}

func accumulate(m map[string]*groupAcc, key string, amount float64) {
	g, ok := m[key]
	if !ok {
		m[key] = &groupAcc{count: 1, sum: amount}
		return
	}
	g.count++
	g.sum += amount
}
