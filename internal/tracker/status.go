// Package tracker defines the job-application domain model and its
// status state machine.
//
// Valid status graph:
//
//	SAVED ──► APPLIED ──► INTERVIEW ──► OFFER
//	   │          │            │           │
//	   └──────────┴────────────┴───────────┴──► REJECTED
//
// OFFER and REJECTED are terminal states.
package tracker

import "fmt"

// JobStatus values mirror the job_status enum in PostgreSQL.
type JobStatus string

const (
	StatusSaved     JobStatus = "SAVED"
	StatusApplied   JobStatus = "APPLIED"
	StatusInterview JobStatus = "INTERVIEW"
	StatusOffer     JobStatus = "OFFER"
	StatusRejected  JobStatus = "REJECTED"
)

// OfferStatus values mirror the offer_status enum in PostgreSQL.
type OfferStatus string

const (
	OfferPending  OfferStatus = "PENDING"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferRejected OfferStatus = "REJECTED"
	OfferExpired  OfferStatus = "EXPIRED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[JobStatus][]JobStatus{
	StatusSaved:     {StatusApplied, StatusRejected},
	StatusApplied:   {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	StatusOffer:     {StatusRejected},
	// REJECTED is terminal — no outgoing transitions
}

// ParseJobStatus converts a raw string to a JobStatus, returning an error
// for unknown values.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// ParseOfferStatus converts a raw string to an OfferStatus, returning an
// error for unknown values.
func ParseOfferStatus(s string) (OfferStatus, error) {
	st := OfferStatus(s)
	switch st {
	case OfferPending, OfferAccepted, OfferRejected, OfferExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown offer status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to JobStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when status has no outgoing transitions.
func IsTerminal(s JobStatus) bool {
	_, ok := validTransitions[s]
	return !ok
}
