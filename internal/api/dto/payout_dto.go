package dto

import (
	"time"

	"github.com/hirebridge/placement-service/internal/domain"
)

// PayoutStatusRequest payload for hold/reject actions.
type PayoutStatusRequest struct {
	Reason string `json:"reason"`
}

// CompletePayoutRequest carries the payment trail.
type CompletePayoutRequest struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	TransactionID string `json:"transaction_id"`
	UTRNumber     string `json:"utr_number"`
}

// PayoutResponse is the settlement view.
type PayoutResponse struct {
	ID              string              `json:"id"`
	PartnerID       string              `json:"partner_id"`
	CandidateID     string              `json:"candidate_id"`
	JobID           string              `json:"job_id"`
	CompanyID       string              `json:"company_id"`
	Gross           float64             `json:"gross"`
	TDS             float64             `json:"tds"`
	PlatformFee     float64             `json:"platform_fee"`
	Net             float64             `json:"net"`
	Status          domain.PayoutStatus `json:"status"`
	TransactionID   string              `json:"transaction_id,omitempty"`
	UTRNumber       string              `json:"utr_number,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	ApprovedBy      string              `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
