package dto

import (
	"time"

	"github.com/hirebridge/placement-service/internal/domain"
)

// SubmitCandidateRequest payload.
type SubmitCandidateRequest struct {
	JobID          string                  `json:"job_id"`
	FirstName      string                  `json:"first_name"`
	LastName       string                  `json:"last_name"`
	Email          string                  `json:"email"`
	Mobile         string                  `json:"mobile"`
	ConsentGiven   bool                    `json:"consent_given"`
	ResumeURL      string                  `json:"resume_url"`
	ResumeFileName string                  `json:"resume_file_name"`
	Profile        domain.CandidateProfile `json:"profile"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ScheduleInterviewRequest payload.
type ScheduleInterviewRequest struct {
	Type             domain.InterviewType `json:"type"`
	ScheduledAt      time.Time            `json:"scheduled_at"`
	InterviewerName  string               `json:"interviewer_name"`
	InterviewerEmail string               `json:"interviewer_email"`
	MeetingLink      string               `json:"meeting_link"`
}

// InterviewFeedbackRequest payload.
type InterviewFeedbackRequest struct {
	Feedback string                 `json:"feedback"`
	Rating   int                    `json:"rating"`
	Result   domain.InterviewResult `json:"result"`
}

// MakeOfferRequest payload.
type MakeOfferRequest struct {
	Salary         float64   `json:"salary"`
	JoiningDate    time.Time `json:"joining_date"`
	OfferLetterURL string    `json:"offer_letter_url"`
}

// OfferResponseRequest payload.
type OfferResponseRequest struct {
	Response         domain.OfferResponse `json:"response"`
	NegotiationNotes string               `json:"negotiation_notes"`
}

// ConfirmJoiningRequest payload.
type ConfirmJoiningRequest struct {
	JoiningDate        time.Time `json:"joining_date"`
	DocumentsSubmitted bool      `json:"documents_submitted"`
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal"`
}

// CandidateSummary response.
type CandidateSummary struct {
	ID          string                 `json:"id"`
	JobID       string                 `json:"job_id"`
	CompanyID   string                 `json:"company_id"`
	SubmittedBy string                 `json:"submitted_by"`
	FirstName   string                 `json:"first_name"`
	LastName    string                 `json:"last_name"`
	Email       string                 `json:"email"`
	Status      domain.CandidateStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// CandidateDetailResponse provides the full aggregate view.
type CandidateDetailResponse struct {
	CandidateSummary
	Mobile     string                  `json:"mobile"`
	Profile    domain.CandidateProfile `json:"profile"`
	ResumeURL  string                  `json:"resume_url,omitempty"`
	Offer      *OfferResponseBody      `json:"offer,omitempty"`
	Joining    *JoiningResponse        `json:"joining,omitempty"`
	Payout     *CommissionResponse     `json:"payout,omitempty"`
	History    []HistoryResponse       `json:"history"`
	Interviews []InterviewResponse     `json:"interviews"`
}

// OfferResponseBody mirrors the offer sub-record.
type OfferResponseBody struct {
	Salary           float64              `json:"salary"`
	JoiningDate      time.Time            `json:"joining_date"`
	OfferLetterURL   string               `json:"offer_letter_url,omitempty"`
	OfferedAt        time.Time            `json:"offered_at"`
	RespondedAt      *time.Time           `json:"responded_at,omitempty"`
	Response         domain.OfferResponse `json:"response"`
	NegotiationNotes string               `json:"negotiation_notes,omitempty"`
}

// JoiningResponse mirrors the joining sub-record.
type JoiningResponse struct {
	JoiningDate        time.Time `json:"joining_date"`
	Confirmed          bool      `json:"confirmed"`
	ConfirmedAt        time.Time `json:"confirmed_at"`
	DocumentsSubmitted bool      `json:"documents_submitted"`
}

// CommissionResponse mirrors the accrued commission sub-record.
type CommissionResponse struct {
	CommissionAmount float64             `json:"commission_amount"`
	Status           domain.PayoutStatus `json:"status"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	TransactionID    string              `json:"transaction_id,omitempty"`
}

// HistoryResponse is one audit row.
type HistoryResponse struct {
	ID        string                 `json:"id"`
	Status    domain.CandidateStatus `json:"status"`
	ChangedBy string                 `json:"changed_by,omitempty"`
	ChangedAt time.Time              `json:"changed_at"`
	Notes     string                 `json:"notes,omitempty"`
}

// InterviewResponse is one scheduled round.
type InterviewResponse struct {
	ID               string                 `json:"id"`
	Round            int                    `json:"round"`
	Type             domain.InterviewType   `json:"type"`
	ScheduledAt      time.Time              `json:"scheduled_at"`
	InterviewerName  string                 `json:"interviewer_name,omitempty"`
	InterviewerEmail string                 `json:"interviewer_email,omitempty"`
	MeetingLink      string                 `json:"meeting_link,omitempty"`
	Feedback         string                 `json:"feedback,omitempty"`
	Rating           int                    `json:"rating,omitempty"`
	Result           domain.InterviewResult `json:"result"`
	CreatedAt        time.Time              `json:"created_at"`
}

// NoteResponse is one commentary row.
type NoteResponse struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AddedBy    string    `json:"added_by,omitempty"`
	AddedAt    time.Time `json:"added_at"`
	IsInternal bool      `json:"is_internal"`
}
