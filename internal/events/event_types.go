package events

import (
	"time"

	"github.com/hirebridge/placement-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCandidateSubmitted     EventType = "candidate_submitted"
	EventCandidateStatusChanged EventType = "candidate_status_changed"
	EventInterviewScheduled     EventType = "interview_scheduled"
	EventOfferMade              EventType = "offer_made"
	EventOfferResponded         EventType = "offer_responded"
	EventJoiningConfirmed       EventType = "joining_confirmed"
	EventPayoutCreated          EventType = "payout_created"
	EventPayoutStatusChanged    EventType = "payout_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role   domain.Role `json:"role"`
	UserID string      `json:"user_id"`
}

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	CandidateID string      `json:"candidate_id,omitempty"`
	PayoutID    string      `json:"payout_id,omitempty"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// CandidateSubmittedPayload payload.
type CandidateSubmittedPayload struct {
	JobID     string `json:"job_id"`
	CompanyID string `json:"company_id"`
	PartnerID string `json:"partner_id"`
	Email     string `json:"email"`
}

// CandidateStatusChangedPayload payload.
type CandidateStatusChangedPayload struct {
	OldStatus domain.CandidateStatus `json:"old_status"`
	NewStatus domain.CandidateStatus `json:"new_status"`
	Notes     string                 `json:"notes,omitempty"`
	Forced    bool                   `json:"forced,omitempty"`
}

// InterviewScheduledPayload payload.
type InterviewScheduledPayload struct {
	InterviewID string               `json:"interview_id"`
	Round       int                  `json:"round"`
	Type        domain.InterviewType `json:"type"`
	ScheduledAt time.Time            `json:"scheduled_at"`
}

// OfferMadePayload payload.
type OfferMadePayload struct {
	Salary      float64   `json:"salary"`
	JoiningDate time.Time `json:"joining_date"`
}

// OfferRespondedPayload payload.
type OfferRespondedPayload struct {
	Response domain.OfferResponse `json:"response"`
}

// JoiningConfirmedPayload payload.
type JoiningConfirmedPayload struct {
	JoiningDate      time.Time `json:"joining_date"`
	CommissionAmount float64   `json:"commission_amount"`
	JobFilled        bool      `json:"job_filled"`
}

// PayoutCreatedPayload payload.
type PayoutCreatedPayload struct {
	PartnerID string  `json:"partner_id"`
	Gross     float64 `json:"gross"`
	Net       float64 `json:"net"`
}

// PayoutStatusChangedPayload payload.
type PayoutStatusChangedPayload struct {
	OldStatus domain.PayoutStatus `json:"old_status"`
	NewStatus domain.PayoutStatus `json:"new_status"`
	Reason    string              `json:"reason,omitempty"`
}
