package domain

import "time"

// VerificationStatus tracks profile review by platform admins.
type VerificationStatus string

const (
	VerificationPending     VerificationStatus = "PENDING"
	VerificationUnderReview VerificationStatus = "UNDER_REVIEW"
	VerificationApproved    VerificationStatus = "APPROVED"
	VerificationRejected    VerificationStatus = "REJECTED"
)

// PlanTier gates job visibility for partners.
type PlanTier string

const (
	PlanFree         PlanTier = "FREE"
	PlanGrowth       PlanTier = "GROWTH"
	PlanProfessional PlanTier = "PROFESSIONAL"
	PlanPremium      PlanTier = "PREMIUM"
)

// PartnerMetrics are cumulative counters mutated only by the lifecycle
// engine and payout settlement, never by profile editing.
type PartnerMetrics struct {
	TotalSubmissions int64
	TotalPlacements  int64
	TotalEarnings    float64
	PendingPayouts   float64
}

// PartnerProfile is the staffing partner owned by exactly one User.
type PartnerProfile struct {
	ID                 string
	UserID             string
	FirstName          string
	LastName           string
	FirmName           string
	City               string
	State              string
	VerificationStatus VerificationStatus
	Plan               PlanTier
	Metrics            PartnerMetrics
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TeamMemberCapabilities gate sub-account permissions. Team CRUD itself is
// out of core scope; the flags are checked by the authorization gate.
type TeamMemberCapabilities struct {
	CanSubmitCandidates bool
	CanManageCandidates bool
	CanViewEarnings     bool
}
