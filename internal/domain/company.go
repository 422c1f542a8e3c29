package domain

import "time"

// CompanyMetrics are rollup counters mutated by job creation/closure and by
// the lifecycle engine on JOINED transitions.
type CompanyMetrics struct {
	TotalJobsPosted int64
	ActiveJobs      int64
	TotalHires      int64
}

// CompanyProfile is the employer profile owned by exactly one User.
type CompanyProfile struct {
	ID                 string
	UserID             string
	CompanyName        string
	GSTNumber          string
	PANNumber          string
	City               string
	State              string
	VerificationStatus VerificationStatus
	Metrics            CompanyMetrics
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
