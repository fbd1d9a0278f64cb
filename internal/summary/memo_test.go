package summary_test

import (
	"testing"

	"jobblaster/analytics-service/internal/summary"
)

// The memoizer is keyed on payload object identity: the same pointer must
// return the same derived result without recomputation.
func TestMemoizer_SamePayloadReturnsSameResult(t *testing.T) {
	m := summary.NewMemoizer()
	p := &summary.BulkPayload{
		Analytics: &summary.AnalyticsSummary{TotalOffers: 1, AverageSalary: 50000},
	}

	first := m.Derive(p)
	second := m.Derive(p)
	if first == nil {
		t.Fatal("Derive returned nil for a valid payload")
	}
	if first != second {
		t.Error("same payload pointer produced a different result object")
	}
}

func TestMemoizer_NewPayloadRecomputes(t *testing.T) {
	m := summary.NewMemoizer()

	a := &summary.BulkPayload{Analytics: &summary.AnalyticsSummary{AverageSalary: 50000}}
	b := &summary.BulkPayload{Analytics: &summary.AnalyticsSummary{AverageSalary: 90000}}

	first := m.Derive(a)
	second := m.Derive(b)
	if first == second {
		t.Error("different payloads must not share a derived result")
	}
	if !almostEqual(second.Stats.AverageSalary, 90000) {
		t.Errorf("second.Stats.AverageSalary = %v, want 90000", second.Stats.AverageSalary)
	}
}

// Equal contents in a different object still recompute — identity, not
// deep equality, is the cache key.
func TestMemoizer_IdentityNotEquality(t *testing.T) {
	m := summary.NewMemoizer()

	a := &summary.BulkPayload{Analytics: &summary.AnalyticsSummary{AverageSalary: 50000}}
	b := &summary.BulkPayload{Analytics: &summary.AnalyticsSummary{AverageSalary: 50000}}

	if m.Derive(a) == m.Derive(b) {
		t.Error("distinct payload objects with equal contents must recompute")
	}
}

func TestMemoizer_NilPayload(t *testing.T) {
	m := summary.NewMemoizer()
	if got := m.Derive(nil); got != nil {
		t.Errorf("Derive(nil) = %+v, want nil", got)
	}
}
