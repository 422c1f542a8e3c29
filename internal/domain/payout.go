package domain

import "time"

// PayoutStatus enumerates settlement states.
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "PENDING"
	PayoutApproved   PayoutStatus = "APPROVED"
	PayoutProcessing PayoutStatus = "PROCESSING"
	PayoutPaid       PayoutStatus = "PAID"
	PayoutOnHold     PayoutStatus = "ON_HOLD"
	PayoutRejected   PayoutStatus = "REJECTED"
)

// IsTerminal reports whether the payout can no longer change state.
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutPaid || s == PayoutRejected
}

// A pending payout may be settled directly without a prior approval step;
// the approval states exist for operational review, not as prerequisites.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:    {PayoutApproved, PayoutPaid, PayoutRejected, PayoutOnHold},
	PayoutApproved:   {PayoutProcessing, PayoutPaid, PayoutRejected, PayoutOnHold},
	PayoutProcessing: {PayoutPaid, PayoutRejected, PayoutOnHold},
	PayoutOnHold:     {PayoutApproved, PayoutRejected},
	PayoutPaid:       {},
	PayoutRejected:   {},
}

// CanTransitionPayout reports whether the settlement table permits
// current -> next. Completing an already-PAID payout is always rejected so
// earnings cannot be applied twice.
func CanTransitionPayout(current, next PayoutStatus) bool {
	for _, candidate := range payoutTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// PayoutAmount breaks the commission into settlement components.
// Net = Gross - TDS - PlatformFee.
type PayoutAmount struct {
	Gross       float64
	TDS         float64
	PlatformFee float64
	Net         float64
}

// PaymentDetails records the external money movement once completed.
type PaymentDetails struct {
	BankName      string
	AccountNumber string
	IFSCCode      string
	TransactionID string
	UTRNumber     string
	PaidAt        *time.Time
}

// Payout is the settlement record derived from a confirmed joining. It
// weakly references partner, candidate, job and company.
type Payout struct {
	ID              string
	PartnerID       string
	CandidateID     string
	JobID           string
	CompanyID       string
	Amount          PayoutAmount
	Status          PayoutStatus
	PaymentDetails  PaymentDetails
	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectionReason string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
