package domain

import (
	"math"
	"time"
)

// JobStatus enumerates posting lifecycle states.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusPaused JobStatus = "PAUSED"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusFilled JobStatus = "FILLED"
)

// CommissionType selects how the partner fee is computed.
type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

// Commission is the job-defined fee rule for successful placements.
type Commission struct {
	Type  CommissionType
	Value float64
}

// Amount computes the commission owed for an accepted offer salary. Results
// are rounded half away from zero to 2 decimal places of the currency.
func (c Commission) Amount(salary float64) float64 {
	if c.Type == CommissionPercentage {
		return roundMoney(salary * c.Value / 100)
	}
	return roundMoney(c.Value)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// JobMetrics are monotone funnel counters driven by candidate transitions.
// Each counter is incremented at most once per candidate per status.
type JobMetrics struct {
	Views        int64
	Applications int64
	Shortlisted  int64
	Interviewed  int64
	Offered      int64
	Joined       int64
}

// Job is a posting owned by a Company. Invariants:
// 0 <= FilledPositions <= Vacancies, and Status == FILLED iff
// FilledPositions >= Vacancies.
type Job struct {
	ID              string
	CompanyID       string
	PostedBy        string
	Title           string
	Description     string
	Status          JobStatus
	Vacancies       int
	FilledPositions int
	Commission      Commission
	EligiblePlans   []PlanTier
	Metrics         JobMetrics
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AcceptingApplications reports whether candidates may be submitted.
func (j *Job) AcceptingApplications() bool {
	return j.Status == JobStatusActive
}
