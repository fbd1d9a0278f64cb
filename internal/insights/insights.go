// Package insights turns the derived salary shapes into qualitative
// recommendations using fixed threshold rules.
package insights

import (
	"fmt"
	"math"

	"jobblaster/analytics-service/internal/summary"
)

// Insight is one qualitative recommendation.
type Insight struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Rule thresholds.
const (
	topCompanyPremiumThreshold = 0.15 // top company must beat the overall average by 15%
	tightSpreadThreshold       = 0.05 // (p75 - median) within 5% of the median
	highOutlierThreshold       = 1.1  // average more than 10% above the median
	limitedSampleThreshold     = 10   // fewer offers than this is a thin dataset
	wideSpreadThreshold        = 0.3  // (p75 - p25) at least 30% of the median
)

// Evaluate applies every rule independently, in fixed order, and returns all
// that match. With no companies or no stats it short-circuits to a single
// "not enough data" insight without evaluating any rule.
func Evaluate(companies []summary.CompanyRow, stats *summary.DerivedStats) []Insight {
	if len(companies) == 0 || stats == nil {
		return []Insight{{
			Title:   "Not Enough Data",
			Message: "Add more offers to unlock salary insights.",
		}}
	}

	var out []Insight

	// 1. Top company pays a meaningful premium over the user's overall average.
	top := companies[0]
	if stats.AverageSalary > 0 && top.AvgSalary >= stats.AverageSalary*(1+topCompanyPremiumThreshold) {
		premium := (top.AvgSalary - stats.AverageSalary) / stats.AverageSalary * 100
		out = append(out, Insight{
			Title: "Focus on High-Paying Companies",
			Message: fmt.Sprintf("%s pays %d%% above your average offer — prioritize similar companies.",
				top.Company, int(math.Round(premium))),
		})
	}

	// 2. Interquartile top half hugs the median: offers cluster tightly.
	if stats.P75-stats.MedianSalary <= stats.MedianSalary*tightSpreadThreshold {
		out = append(out, Insight{
			Title:   "Tight Market Conditions",
			Message: "Offers are clustered closely around the median — expect similar numbers across companies.",
		})
	}

	// 3. Mean pulled well above the median: a few high offers skew the set.
	if stats.AverageSalary > stats.MedianSalary*highOutlierThreshold {
		out = append(out, Insight{
			Title:   "High Outliers Present",
			Message: "A few offers are far above the rest — your average overstates the typical offer.",
		})
	}

	// 4. Small sample: statistics are noisy.
	if stats.TotalOffers < limitedSampleThreshold {
		out = append(out, Insight{
			Title:   "Limited Data Sample",
			Message: fmt.Sprintf("Only %d offers tracked — statistics will sharpen as you add more.", stats.TotalOffers),
		})
	}

	// 5. Wide interquartile spread: room to negotiate.
	if stats.P75-stats.P25 >= stats.MedianSalary*wideSpreadThreshold {
		out = append(out, Insight{
			Title:   "Wide Salary Range",
			Message: "Offers vary widely for comparable roles — there is real negotiation potential.",
		})
	}

	return out
}
