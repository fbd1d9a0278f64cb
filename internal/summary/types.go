// Package summary builds the bulk analytics payload and derives every
// UI-facing shape from it in one pass, so a single fetch services all the
// charts and tables on the page.
//
// The payload is deliberately simpler than the SQL views: plain per-company
// and per-location maps plus a flat analytics object, hand-aggregated in Go.
// The derived percentile bands are estimates around the mean, not real
// percentiles — see derive.go.
package summary

import "jobblaster/analytics-service/internal/tracker"

// ─── Bulk payload ────────────────────────────────────────────────────────────

// BulkPayload is the one-round-trip response of the summary endpoint.
type BulkPayload struct {
	Analytics *AnalyticsSummary     `json:"analytics"`
	Jobs      []tracker.Job         `json:"jobs"`
	Offers    []tracker.SalaryOffer `json:"offers"`
}

// AnalyticsSummary is the flat, hand-aggregated analytics object.
type AnalyticsSummary struct {
	TotalJobs     int                     `json:"totalJobs"`
	TotalOffers   int                     `json:"totalOffers"`
	AverageSalary float64                 `json:"averageSalary"`
	ByStatus      map[string]int          `json:"byStatus"`
	ByCompany     map[string]GroupSummary `json:"byCompany"`
	ByLocation    map[string]GroupSummary `json:"byLocation"`
}

// GroupSummary is one per-company or per-location bucket.
type GroupSummary struct {
	Count     int     `json:"count"`
	AvgSalary float64 `json:"avgSalary"`
}

// ─── Derived shapes ──────────────────────────────────────────────────────────

// Consolidated holds the five shapes derived from one BulkPayload.
type Consolidated struct {
	Stats       *DerivedStats   `json:"stats"`
	Companies   []CompanyRow    `json:"companies"`
	Locations   []LocationRow   `json:"locations"`
	Timeline    []TimelineEntry `json:"timeline"`
	RemoteSplit RemoteSplit     `json:"remoteSplit"`
}

// DerivedStats carries percentile estimates around the mean. MedianSalary is
// an alias for the mean, not a statistical median.
type DerivedStats struct {
	TotalOffers   int     `json:"totalOffers"`
	AverageSalary float64 `json:"averageSalary"`
	MedianSalary  float64 `json:"medianSalary"`
	P25           float64 `json:"p25"`
	P75           float64 `json:"p75"`
	P90           float64 `json:"p90"`
}

// CompanyRow is one derived leaderboard row. The band columns are fixed
// multiples of this company's own average, never of the global average.
type CompanyRow struct {
	Company    string  `json:"company"`
	OfferCount int     `json:"offerCount"`
	AvgSalary  float64 `json:"avgSalary"`
	MinSalary  float64 `json:"minSalary"`
	MaxSalary  float64 `json:"maxSalary"`
	P25        float64 `json:"p25"`
	P75        float64 `json:"p75"`
}

// LocationRow is the per-location equivalent of CompanyRow.
type LocationRow struct {
	Location   string  `json:"location"`
	OfferCount int     `json:"offerCount"`
	AvgSalary  float64 `json:"avgSalary"`
	MinSalary  float64 `json:"minSalary"`
	MaxSalary  float64 `json:"maxSalary"`
	P25        float64 `json:"p25"`
	P75        float64 `json:"p75"`
}

// TimelineEntry is one YYYY-MM bucket. GrowthPercentage is always nil in
// this path — only the v_salary_timeline view computes growth.
type TimelineEntry struct {
	Month            string   `json:"month"`
	OfferCount       int      `json:"offerCount"`
	AvgSalary        float64  `json:"avgSalary"`
	MinSalary        float64  `json:"minSalary"`
	MaxSalary        float64  `json:"maxSalary"`
	GrowthPercentage *float64 `json:"growthPercentage"`
}

// RemoteSplit is a stub in the derived path: the summary payload carries no
// remote/onsite breakdown, so counts stay zero. The real split lives in
// v_salary_remote_split. Known gap, kept deliberately.
type RemoteSplit struct {
	RemoteCount int     `json:"remoteCount"`
	OnsiteCount int     `json:"onsiteCount"`
	RemoteAvg   float64 `json:"remoteAvg"`
	OnsiteAvg   float64 `json:"onsiteAvg"`
}
