package dto

import (
	"time"

	"github.com/hirebridge/placement-service/internal/domain"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Vacancies       int                   `json:"vacancies"`
	CommissionType  domain.CommissionType `json:"commission_type"`
	CommissionValue float64               `json:"commission_value"`
	EligiblePlans   []domain.PlanTier     `json:"eligible_plans"`
}

// JobResponse is the company view of a posting.
type JobResponse struct {
	ID              string                `json:"id"`
	CompanyID       string                `json:"company_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Status          domain.JobStatus      `json:"status"`
	Vacancies       int                   `json:"vacancies"`
	FilledPositions int                   `json:"filled_positions"`
	CommissionType  domain.CommissionType `json:"commission_type"`
	CommissionValue float64               `json:"commission_value"`
	EligiblePlans   []domain.PlanTier     `json:"eligible_plans,omitempty"`
	Metrics         JobMetricsResponse    `json:"metrics"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// JobMetricsResponse mirrors the funnel counters.
type JobMetricsResponse struct {
	Views        int64 `json:"views"`
	Applications int64 `json:"applications"`
	Shortlisted  int64 `json:"shortlisted"`
	Interviewed  int64 `json:"interviewed"`
	Offered      int64 `json:"offered"`
	Joined       int64 `json:"joined"`
}

// JobListingResponse is the partner view: no funnel internals.
type JobListingResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Vacancies       int                   `json:"vacancies"`
	CommissionType  domain.CommissionType `json:"commission_type"`
	CommissionValue float64               `json:"commission_value"`
	CreatedAt       time.Time             `json:"created_at"`
}
