package analytics

// Market position labels, ordered from best to worst.
const (
	PositionAbove75     = "Above 75th percentile"
	PositionAboveMedian = "Above median"
	PositionAbove25     = "Above 25th percentile"
	PositionBelow25     = "Below 25th percentile"
)

// ClassifyPosition buckets an average salary against percentile thresholds.
// It mirrors the CASE chain in v_market_positioning: a priority chain
// evaluated top-down, first matching threshold wins.
func ClassifyPosition(avg, p25, median, p75 float64) string {
	switch {
	case avg > p75:
		return PositionAbove75
	case avg > median:
		return PositionAboveMedian
	case avg > p25:
		return PositionAbove25
	default:
		return PositionBelow25
	}
}
