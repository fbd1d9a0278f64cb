package views_test

import (
	"strings"
	"testing"

	"jobblaster/analytics-service/internal/views"
)

// ── Statement ordering ─────────────────────────────────────────────────────

// v_offers_user must be created before every view that selects from it.
func TestStatements_BaseViewBeforeDependents(t *testing.T) {
	sts := views.Statements()

	baseIdx := -1
	for i, st := range sts {
		if st.Kind == views.KindView && st.Name == "v_offers_user" {
			baseIdx = i
			break
		}
	}
	if baseIdx == -1 {
		t.Fatal("no CREATE statement for v_offers_user")
	}

	for i, st := range sts {
		if st.Kind != views.KindView || st.Name == "v_offers_user" {
			continue
		}
		if strings.Contains(st.SQL, "v_offers_user") && i < baseIdx {
			t.Errorf("statement %q (index %d) depends on v_offers_user but precedes it (index %d)",
				st.Name, i, baseIdx)
		}
	}
}

func TestStatements_TablesBeforeViews(t *testing.T) {
	sts := views.Statements()
	firstView := -1
	for i, st := range sts {
		if st.Kind == views.KindView {
			firstView = i
			break
		}
	}
	for i, st := range sts {
		if st.Kind == views.KindTable && i > firstView {
			t.Errorf("table %q created at index %d, after first view at index %d", st.Name, i, firstView)
		}
	}
}

func TestStatements_GrantsComeLast(t *testing.T) {
	sts := views.Statements()
	seenGrant := false
	for _, st := range sts {
		if st.Kind == views.KindGrant {
			seenGrant = true
			continue
		}
		if seenGrant {
			t.Errorf("statement %q (%s) appears after the grant block", st.Name, st.Kind)
		}
	}
}

// ── Grants ─────────────────────────────────────────────────────────────────

// Every view must be granted to the authenticated role.
func TestStatements_EveryViewHasGrant(t *testing.T) {
	sts := views.Statements()

	granted := map[string]bool{}
	for _, st := range sts {
		if st.Kind == views.KindGrant {
			granted[st.Name] = true
			if !strings.Contains(st.SQL, "TO authenticated") {
				t.Errorf("grant for %q does not target the authenticated role: %s", st.Name, st.SQL)
			}
		}
	}

	for _, st := range sts {
		if st.Kind == views.KindView && !granted[st.Name] {
			t.Errorf("view %q has no grant statement", st.Name)
		}
	}
}

// ── Idempotency guards ─────────────────────────────────────────────────────

// Views recreated with a changed column set must be dropped first, with
// IF EXISTS so a fresh database does not fail the drop.
func TestStatements_DropsUseIfExists(t *testing.T) {
	for _, st := range views.Statements() {
		if st.Kind != views.KindDrop {
			continue
		}
		if !strings.Contains(st.SQL, "IF EXISTS") {
			t.Errorf("drop for %q is not idempotent: %s", st.Name, st.SQL)
		}
	}
}

func TestStatements_TimelineDroppedBeforeCreate(t *testing.T) {
	for _, name := range []string{"v_salary_timeline", "v_market_positioning"} {
		dropIdx, createIdx := -1, -1
		for i, st := range views.Statements() {
			if st.Name != name {
				continue
			}
			switch st.Kind {
			case views.KindDrop:
				dropIdx = i
			case views.KindView:
				createIdx = i
			}
		}
		if dropIdx == -1 || createIdx == -1 {
			t.Fatalf("%s: missing drop (%d) or create (%d) statement", name, dropIdx, createIdx)
		}
		if dropIdx > createIdx {
			t.Errorf("%s: drop (index %d) must precede create (index %d)", name, dropIdx, createIdx)
		}
	}
}

// ── View contracts ─────────────────────────────────────────────────────────

// Downstream views must read from v_offers_user only, never the raw tables.
func TestStatements_DependentsReadOnlyFromBaseView(t *testing.T) {
	for _, st := range views.Statements() {
		if st.Kind != views.KindView || st.Name == "v_offers_user" {
			continue
		}
		if strings.Contains(st.SQL, "FROM salary_offers") || strings.Contains(st.SQL, "FROM jobs") {
			t.Errorf("view %q selects from a raw table, bypassing the isolation boundary", st.Name)
		}
	}
}

func TestStatements_LocationDefaultsUnknownCity(t *testing.T) {
	for _, st := range views.Statements() {
		if st.Kind == views.KindView && st.Name == "v_salary_by_location" {
			if !strings.Contains(st.SQL, "'Unknown'") {
				t.Error("v_salary_by_location must default missing city to 'Unknown'")
			}
			return
		}
	}
	t.Fatal("no CREATE statement for v_salary_by_location")
}

func TestStatements_TimelineGuardsDivision(t *testing.T) {
	for _, st := range views.Statements() {
		if st.Kind == views.KindView && st.Name == "v_salary_timeline" {
			if !strings.Contains(st.SQL, "> 0") {
				t.Error("v_salary_timeline growth must be guarded by prev_month_avg > 0")
			}
			return
		}
	}
	t.Fatal("no CREATE statement for v_salary_timeline")
}
