package analytics

import "time"

// ─── View row types ──────────────────────────────────────────────────────────
//
// One type per analytics view. Statistical columns that can be NULL in SQL
// (empty underlying set, no predecessor month) are pointers; per-group rows
// always aggregate at least one offer, so their columns are plain floats.

// SalaryStats mirrors one v_salary_stats row. With zero offers every
// statistical field is nil and TotalOffers is 0 — callers must handle that,
// the view does not special-case the empty set.
type SalaryStats struct {
	TotalOffers   int64    `json:"totalOffers"`
	AverageSalary *float64 `json:"averageSalary"`
	P25           *float64 `json:"p25"`
	Median        *float64 `json:"median"`
	P75           *float64 `json:"p75"`
	P90           *float64 `json:"p90"`
	MinSalary     *float64 `json:"minSalary"`
	MaxSalary     *float64 `json:"maxSalary"`
	SalaryStddev  *float64 `json:"salaryStddev"`
}

// CompanySalaryRow mirrors one v_salary_by_company row.
type CompanySalaryRow struct {
	Company    string  `json:"company"`
	OfferCount int64   `json:"offerCount"`
	AvgSalary  float64 `json:"avgSalary"`
	MinSalary  float64 `json:"minSalary"`
	MaxSalary  float64 `json:"maxSalary"`
	P25        float64 `json:"p25"`
	P75        float64 `json:"p75"`
}

// LocationSalaryRow mirrors one v_salary_by_location row. City is the
// literal "Unknown" when the underlying job has no city.
type LocationSalaryRow struct {
	City       string  `json:"city"`
	OfferCount int64   `json:"offerCount"`
	AvgSalary  float64 `json:"avgSalary"`
	MinSalary  float64 `json:"minSalary"`
	MaxSalary  float64 `json:"maxSalary"`
	P25        float64 `json:"p25"`
	P75        float64 `json:"p75"`
}

// RemoteSplitRow mirrors one v_salary_remote_split row.
type RemoteSplitRow struct {
	IsRemote   bool    `json:"isRemote"`
	OfferCount int64   `json:"offerCount"`
	AvgSalary  float64 `json:"avgSalary"`
	MinSalary  float64 `json:"minSalary"`
	MaxSalary  float64 `json:"maxSalary"`
	P25        float64 `json:"p25"`
	P75        float64 `json:"p75"`
}

// TimelineRow mirrors one v_salary_timeline row. The earliest month has no
// predecessor: PrevMonthAvg and GrowthPercentage are both nil by contract.
type TimelineRow struct {
	Month            time.Time `json:"month"`
	OfferCount       int64     `json:"offerCount"`
	AvgSalary        float64   `json:"avgSalary"`
	MinSalary        float64   `json:"minSalary"`
	MaxSalary        float64   `json:"maxSalary"`
	PrevMonthAvg     *float64  `json:"prevMonthAvg"`
	GrowthPercentage *float64  `json:"growthPercentage"`
}

// MarketPositioning mirrors the single v_market_positioning row for a user.
type MarketPositioning struct {
	UserAvgSalary    float64 `json:"userAvgSalary"`
	OverallAvgSalary float64 `json:"overallAvgSalary"`
	MarketPosition   string  `json:"marketPosition"`
}
