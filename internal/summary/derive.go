package summary

import (
	"sort"
	"time"

	"jobblaster/analytics-service/internal/tracker"
)

// Band multipliers for the estimated statistics.
//
// TODO: replace with true percentiles from v_salary_stats / v_salary_by_company
// once the summary endpoint carries them; until then these are labelled
// estimates around the mean.
const (
	statsP25Factor = 0.8
	statsP75Factor = 1.2
	statsP90Factor = 1.4

	groupMinFactor = 0.9
	groupMaxFactor = 1.1
	groupP25Factor = 0.85
	groupP75Factor = 1.15
)

// Derive expands one bulk payload into the five UI-facing shapes.
// Pure function: nil (or analytics-less) payload in, nil out, and the input
// is never mutated.
func Derive(p *BulkPayload) *Consolidated {
	if p == nil || p.Analytics == nil {
		return nil
	}
	a := p.Analytics

	return &Consolidated{
		Stats: &DerivedStats{
			TotalOffers:   a.TotalOffers,
			AverageSalary: a.AverageSalary,
			MedianSalary:  a.AverageSalary, // alias for the mean, not a real median
			P25:           a.AverageSalary * statsP25Factor,
			P75:           a.AverageSalary * statsP75Factor,
			P90:           a.AverageSalary * statsP90Factor,
		},
		Companies:   deriveCompanies(a.ByCompany),
		Locations:   deriveLocations(a.ByLocation),
		Timeline:    deriveTimeline(p.Offers),
		RemoteSplit: RemoteSplit{}, // stub: split only exists in the SQL view
	}
}

func deriveCompanies(byCompany map[string]GroupSummary) []CompanyRow {
	rows := make([]CompanyRow, 0, len(byCompany))
	for name, g := range byCompany {
		rows = append(rows, CompanyRow{
			Company:    name,
			OfferCount: g.Count,
			AvgSalary:  g.AvgSalary,
			MinSalary:  g.AvgSalary * groupMinFactor,
			MaxSalary:  g.AvgSalary * groupMaxFactor,
			P25:        g.AvgSalary * groupP25Factor,
			P75:        g.AvgSalary * groupP75Factor,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgSalary != rows[j].AvgSalary {
			return rows[i].AvgSalary > rows[j].AvgSalary
		}
		return rows[i].Company < rows[j].Company
	})
	return rows
}

func deriveLocations(byLocation map[string]GroupSummary) []LocationRow {
	rows := make([]LocationRow, 0, len(byLocation))
	for name, g := range byLocation {
		rows = append(rows, LocationRow{
			Location:   name,
			OfferCount: g.Count,
			AvgSalary:  g.AvgSalary,
			MinSalary:  g.AvgSalary * groupMinFactor,
			MaxSalary:  g.AvgSalary * groupMaxFactor,
			P25:        g.AvgSalary * groupP25Factor,
			P75:        g.AvgSalary * groupP75Factor,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgSalary != rows[j].AvgSalary {
			return rows[i].AvgSalary > rows[j].AvgSalary
		}
		return rows[i].Location < rows[j].Location
	})
	return rows
}

// deriveTimeline buckets offers by calendar month (the first seven characters
// of the ISO date, YYYY-MM), most recent month first. Growth is never
// computed here — only v_salary_timeline has the lag window.
func deriveTimeline(offers []tracker.SalaryOffer) []TimelineEntry {
	type bucket struct {
		count    int
		sum      float64
		min, max float64
	}

	buckets := map[string]*bucket{}
	for _, o := range offers {
		month := o.OfferedAt.UTC().Format(time.RFC3339)[:7] // YYYY-MM
		b, ok := buckets[month]
		if !ok {
			buckets[month] = &bucket{count: 1, sum: o.Amount, min: o.Amount, max: o.Amount}
			continue
		}
		b.count++
		b.sum += o.Amount
		if o.Amount < b.min {
			b.min = o.Amount
		}
		if o.Amount > b.max {
			b.max = o.Amount
		}
	}

	entries := make([]TimelineEntry, 0, len(buckets))
	for month, b := range buckets {
		entries = append(entries, TimelineEntry{
			Month:      month,
			OfferCount: b.count,
			AvgSalary:  b.sum / float64(b.count),
			MinSalary:  b.min,
			MaxSalary:  b.max,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Month > entries[j].Month
	})
	return entries
}
