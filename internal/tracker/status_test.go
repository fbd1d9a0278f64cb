package tracker_test

import (
	"testing"

	"jobblaster/analytics-service/internal/tracker"
)

// ── ParseJobStatus ─────────────────────────────────────────────────────────

func TestParseJobStatus_ValidValues(t *testing.T) {
	valid := []string{"SAVED", "APPLIED", "INTERVIEW", "OFFER", "REJECTED"}
	for _, s := range valid {
		got, err := tracker.ParseJobStatus(s)
		if err != nil {
			t.Errorf("ParseJobStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseJobStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseJobStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"UNKNOWN", "HIRED", ""} {
		if _, err := tracker.ParseJobStatus(s); err == nil {
			t.Errorf("ParseJobStatus(%q) expected error, got nil", s)
		}
	}
}

func TestParseJobStatus_CaseSensitive(t *testing.T) {
	lowercase := []string{"saved", "applied", "interview", "offer", "rejected"}
	for _, s := range lowercase {
		if _, err := tracker.ParseJobStatus(s); err == nil {
			t.Errorf("ParseJobStatus(%q) should reject lowercase value, got nil error", s)
		}
	}
}

// ── ParseOfferStatus ───────────────────────────────────────────────────────

func TestParseOfferStatus(t *testing.T) {
	valid := []string{"PENDING", "ACCEPTED", "REJECTED", "EXPIRED"}
	for _, s := range valid {
		if _, err := tracker.ParseOfferStatus(s); err != nil {
			t.Errorf("ParseOfferStatus(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "pending", "OPEN"} {
		if _, err := tracker.ParseOfferStatus(s); err == nil {
			t.Errorf("ParseOfferStatus(%q) expected error, got nil", s)
		}
	}
}

// ── IsTransitionAllowed — valid (forward) transitions ─────────────────────

func TestIsTransitionAllowed_ValidForward(t *testing.T) {
	cases := []struct {
		from tracker.JobStatus
		to   tracker.JobStatus
	}{
		{tracker.StatusSaved, tracker.StatusApplied},
		{tracker.StatusApplied, tracker.StatusInterview},
		{tracker.StatusInterview, tracker.StatusOffer},
	}
	for _, c := range cases {
		if !tracker.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be true", c.from, c.to)
		}
	}
}

// ── IsTransitionAllowed — rejection is allowed from every non-terminal ─────

func TestIsTransitionAllowed_ToRejected(t *testing.T) {
	nonTerminals := []tracker.JobStatus{
		tracker.StatusSaved,
		tracker.StatusApplied,
		tracker.StatusInterview,
		tracker.StatusOffer,
	}
	for _, from := range nonTerminals {
		if !tracker.IsTransitionAllowed(from, tracker.StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s → REJECTED) should be true", from)
		}
	}
}

// ── IsTransitionAllowed — REJECTED has no outgoing transitions ─────────────

func TestIsTransitionAllowed_FromRejected(t *testing.T) {
	targets := []tracker.JobStatus{
		tracker.StatusSaved,
		tracker.StatusApplied,
		tracker.StatusInterview,
		tracker.StatusOffer,
		tracker.StatusRejected,
	}
	for _, to := range targets {
		if tracker.IsTransitionAllowed(tracker.StatusRejected, to) {
			t.Errorf("IsTransitionAllowed(REJECTED → %s) should be false (terminal state)", to)
		}
	}
}

// ── IsTransitionAllowed — skip-level transitions are forbidden ─────────────

func TestIsTransitionAllowed_SkipLevel(t *testing.T) {
	cases := []struct {
		from tracker.JobStatus
		to   tracker.JobStatus
	}{
		{tracker.StatusSaved, tracker.StatusInterview}, // skip APPLIED
		{tracker.StatusSaved, tracker.StatusOffer},     // skip two
		{tracker.StatusApplied, tracker.StatusOffer},   // skip INTERVIEW
	}
	for _, c := range cases {
		if tracker.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be false (skip-level)", c.from, c.to)
		}
	}
}

// ── IsTransitionAllowed — backwards movements are forbidden ───────────────

func TestIsTransitionAllowed_Backwards(t *testing.T) {
	cases := []struct {
		from tracker.JobStatus
		to   tracker.JobStatus
	}{
		{tracker.StatusApplied, tracker.StatusSaved},
		{tracker.StatusInterview, tracker.StatusApplied},
		{tracker.StatusOffer, tracker.StatusInterview},
	}
	for _, c := range cases {
		if tracker.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be false (backwards)", c.from, c.to)
		}
	}
}

// ── IsTransitionAllowed — self-transitions are forbidden ──────────────────

func TestIsTransitionAllowed_Self(t *testing.T) {
	all := []tracker.JobStatus{
		tracker.StatusSaved, tracker.StatusApplied, tracker.StatusInterview,
		tracker.StatusOffer, tracker.StatusRejected,
	}
	for _, s := range all {
		if tracker.IsTransitionAllowed(s, s) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be false (self)", s, s)
		}
	}
}

// ── IsTerminal ─────────────────────────────────────────────────────────────

func TestIsTerminal(t *testing.T) {
	if !tracker.IsTerminal(tracker.StatusRejected) {
		t.Error("IsTerminal(REJECTED) should be true")
	}
	for _, s := range []tracker.JobStatus{
		tracker.StatusSaved,
		tracker.StatusApplied,
		tracker.StatusInterview,
		tracker.StatusOffer,
	} {
		if tracker.IsTerminal(s) {
			t.Errorf("IsTerminal(%s) should be false", s)
		}
	}
}

// SAVED is the mandatory initial state for any tracked job.
// Verify it is never reachable from any other state.
func TestIsTransitionAllowed_SavedIsNeverReachable(t *testing.T) {
	sources := []tracker.JobStatus{
		tracker.StatusApplied,
		tracker.StatusInterview,
		tracker.StatusOffer,
		tracker.StatusRejected,
	}
	for _, from := range sources {
		if tracker.IsTransitionAllowed(from, tracker.StatusSaved) {
			t.Errorf(
				"IsTransitionAllowed(%s → SAVED) must be false: SAVED is only an initial state",
				from,
			)
		}
	}
}
