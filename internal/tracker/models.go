package tracker

import "time"

// Job is the JSON shape of a tracked job posting as returned to clients.
type Job struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Title     string    `json:"title"`
	IsRemote  bool      `json:"isRemote"`
	Country   string    `json:"country"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SalaryOffer is one compensation offer tied to exactly one Job.
type SalaryOffer struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	OfferedAt time.Time `json:"offeredAt"`
	CreatedAt time.Time `json:"createdAt"`
}
