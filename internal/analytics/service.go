// Package analytics reads the salary-analytics views.
//
// Every query takes the user ID as an explicit argument and filters with
// WHERE user_id = $1 against the column the base view exposes. The tenant
// boundary is a visible, testable parameter — never an ambient session value.
package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool the service needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service encapsulates all reads of the analytics views.
// It is transport-agnostic: used by the HTTP handler and the summary builder.
type Service struct {
	db Querier
}

// NewService returns a configured Service.
func NewService(db Querier) *Service {
	return &Service{db: db}
}

// Stats returns the overall salary statistics for the user.
// A user with no offers gets the zero-count, all-nil stats row rather than
// an error: the views group by user_id, so the empty set yields no row at all.
func (s *Service) Stats(ctx context.Context, userID string) (*SalaryStats, error) {
	var st SalaryStats
	err := s.db.QueryRow(ctx,
		`SELECT total_offers, average_salary, p25, median, p75, p90,
		        min_salary, max_salary, salary_stddev
		 FROM v_salary_stats
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&st.TotalOffers, &st.AverageSalary, &st.P25, &st.Median, &st.P75, &st.P90,
		&st.MinSalary, &st.MaxSalary, &st.SalaryStddev,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &SalaryStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats query: %w", err)
	}
	return &st, nil
}

// ByCompany returns the per-company leaderboard, highest average first.
// Tie order between equal averages is whatever the sort produced — callers
// must not rely on it.
func (s *Service) ByCompany(ctx context.Context, userID string) ([]CompanySalaryRow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT company, offer_count, avg_salary, min_salary, max_salary, p25, p75
		 FROM v_salary_by_company
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("byCompany query: %w", err)
	}
	defer rows.Close()

	out := make([]CompanySalaryRow, 0)
	for rows.Next() {
		var r CompanySalaryRow
		if err := rows.Scan(&r.Company, &r.OfferCount, &r.AvgSalary,
			&r.MinSalary, &r.MaxSalary, &r.P25, &r.P75); err != nil {
			return nil, fmt.Errorf("byCompany scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ByLocation returns the per-city leaderboard, highest average first.
func (s *Service) ByLocation(ctx context.Context, userID string) ([]LocationSalaryRow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT city, offer_count, avg_salary, min_salary, max_salary, p25, p75
		 FROM v_salary_by_location
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("byLocation query: %w", err)
	}
	defer rows.Close()

	out := make([]LocationSalaryRow, 0)
	for rows.Next() {
		var r LocationSalaryRow
		if err := rows.Scan(&r.City, &r.OfferCount, &r.AvgSalary,
			&r.MinSalary, &r.MaxSalary, &r.P25, &r.P75); err != nil {
			return nil, fmt.Errorf("byLocation scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RemoteSplit returns the remote/onsite comparison, remote bucket first.
func (s *Service) RemoteSplit(ctx context.Context, userID string) ([]RemoteSplitRow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT is_remote, offer_count, avg_salary, min_salary, max_salary, p25, p75
		 FROM v_salary_remote_split
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("remoteSplit query: %w", err)
	}
	defer rows.Close()

	out := make([]RemoteSplitRow, 0)
	for rows.Next() {
		var r RemoteSplitRow
		if err := rows.Scan(&r.IsRemote, &r.OfferCount, &r.AvgSalary,
			&r.MinSalary, &r.MaxSalary, &r.P25, &r.P75); err != nil {
			return nil, fmt.Errorf("remoteSplit scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Timeline returns per-month statistics, most recent month first.
func (s *Service) Timeline(ctx context.Context, userID string) ([]TimelineRow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT month, offer_count, avg_salary, min_salary, max_salary,
		        prev_month_avg, growth_percentage
		 FROM v_salary_timeline
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("timeline query: %w", err)
	}
	defer rows.Close()

	out := make([]TimelineRow, 0)
	for rows.Next() {
		var r TimelineRow
		if err := rows.Scan(&r.Month, &r.OfferCount, &r.AvgSalary,
			&r.MinSalary, &r.MaxSalary, &r.PrevMonthAvg, &r.GrowthPercentage); err != nil {
			return nil, fmt.Errorf("timeline scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Positioning returns the market-position bucket for the user, or nil when
// the user has no offers to position.
func (s *Service) Positioning(ctx context.Context, userID string) (*MarketPositioning, error) {
	var mp MarketPositioning
	err := s.db.QueryRow(ctx,
		`SELECT user_avg_salary, overall_avg_salary, market_position
		 FROM v_market_positioning
		 WHERE user_id = $1`,
		userID,
	).Scan(&mp.UserAvgSalary, &mp.OverallAvgSalary, &mp.MarketPosition)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("positioning query: %w", err)
	}
	return &mp, nil
}
