package views_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"jobblaster/analytics-service/internal/views"
)

// fakeExecer records executed statements and fails those whose SQL contains
// any configured marker.
type fakeExecer struct {
	executed []string
	failOn   []string
}

func (f *fakeExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.executed = append(f.executed, sql)
	for _, marker := range f.failOn {
		if marker != "" && strings.Contains(sql, marker) {
			return pgconn.CommandTag{}, fmt.Errorf("forced failure on %q", marker)
		}
	}
	return pgconn.CommandTag{}, nil
}

// ── Apply ──────────────────────────────────────────────────────────────────

func TestApply_AllStatementsSucceed(t *testing.T) {
	exec := &fakeExecer{}
	report := views.NewRunner(exec, nil).Apply(context.Background())

	want := len(views.Statements())
	if report.Applied != want {
		t.Errorf("Applied = %d, want %d", report.Applied, want)
	}
	if report.Failed != 0 {
		t.Errorf("Failed = %d, want 0", report.Failed)
	}
	if len(report.Results) != want {
		t.Errorf("len(Results) = %d, want %d", len(report.Results), want)
	}
	if report.RunID == "" {
		t.Error("RunID must not be empty")
	}
	if len(exec.executed) != want {
		t.Errorf("executed %d statements, want %d", len(exec.executed), want)
	}
}

// A failing statement must not stop the run: every later statement still
// executes and the failure is recorded in the report.
func TestApply_ContinuesPastFailure(t *testing.T) {
	exec := &fakeExecer{failOn: []string{"v_salary_stats"}}
	report := views.NewRunner(exec, nil).Apply(context.Background())

	total := len(views.Statements())
	if len(exec.executed) != total {
		t.Fatalf("executed %d statements, want all %d despite failure", len(exec.executed), total)
	}
	// v_salary_stats appears in its CREATE, its GRANT, and in
	// v_market_positioning's JOIN — at least two failures expected.
	if report.Failed < 2 {
		t.Errorf("Failed = %d, want >= 2", report.Failed)
	}
	if report.Applied+report.Failed != total {
		t.Errorf("Applied (%d) + Failed (%d) != %d", report.Applied, report.Failed, total)
	}

	foundErr := false
	for _, res := range report.Results {
		if res.Name == "v_salary_stats" && res.Error != "" {
			foundErr = true
		}
	}
	if !foundErr {
		t.Error("report has no recorded error for v_salary_stats")
	}
}

func TestApply_ReportPreservesStatementOrder(t *testing.T) {
	exec := &fakeExecer{}
	report := views.NewRunner(exec, nil).Apply(context.Background())

	sts := views.Statements()
	for i, res := range report.Results {
		if res.Name != sts[i].Name || res.Kind != sts[i].Kind {
			t.Errorf("Results[%d] = (%s, %s), want (%s, %s)",
				i, res.Name, res.Kind, sts[i].Name, sts[i].Kind)
		}
	}
}

func TestApply_AllFailuresStillProduceFullReport(t *testing.T) {
	exec := &fakeExecer{failOn: []string{"CREATE", "DROP", "GRANT", "DO"}}
	report := views.NewRunner(exec, nil).Apply(context.Background())

	total := len(views.Statements())
	if report.Failed != total {
		t.Errorf("Failed = %d, want %d", report.Failed, total)
	}
	if report.Applied != 0 {
		t.Errorf("Applied = %d, want 0", report.Applied)
	}
}
