package domain

import (
	"fmt"
	"time"
)

// CandidateStatus enumerates lifecycle states in the hiring funnel.
type CandidateStatus string

const (
	StatusSubmitted          CandidateStatus = "SUBMITTED"
	StatusUnderReview        CandidateStatus = "UNDER_REVIEW"
	StatusShortlisted        CandidateStatus = "SHORTLISTED"
	StatusInterviewScheduled CandidateStatus = "INTERVIEW_SCHEDULED"
	StatusInterviewed        CandidateStatus = "INTERVIEWED"
	StatusOffered            CandidateStatus = "OFFERED"
	StatusOfferAccepted      CandidateStatus = "OFFER_ACCEPTED"
	StatusOfferDeclined      CandidateStatus = "OFFER_DECLINED"
	StatusJoined             CandidateStatus = "JOINED"
	StatusRejected           CandidateStatus = "REJECTED"
	StatusWithdrawn          CandidateStatus = "WITHDRAWN"
	StatusOnHold             CandidateStatus = "ON_HOLD"
)

var candidateStatuses = map[CandidateStatus]struct{}{
	StatusSubmitted:          {},
	StatusUnderReview:        {},
	StatusShortlisted:        {},
	StatusInterviewScheduled: {},
	StatusInterviewed:        {},
	StatusOffered:            {},
	StatusOfferAccepted:      {},
	StatusOfferDeclined:      {},
	StatusJoined:             {},
	StatusRejected:           {},
	StatusWithdrawn:          {},
	StatusOnHold:             {},
}

// ParseCandidateStatus validates a raw status value.
func ParseCandidateStatus(s string) (CandidateStatus, error) {
	status := CandidateStatus(s)
	if _, ok := candidateStatuses[status]; !ok {
		return "", fmt.Errorf("unknown candidate status %q", s)
	}
	return status, nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s CandidateStatus) IsTerminal() bool {
	switch s {
	case StatusJoined, StatusRejected, StatusWithdrawn, StatusOfferDeclined:
		return true
	}
	return false
}

// allowedTransitions is the adjacency table for the normal update-status
// command. Interview, offer and joining commands force their target status
// and do not consult this table; admin ForceStatus bypasses it entirely.
var allowedTransitions = map[CandidateStatus][]CandidateStatus{
	StatusSubmitted:          {StatusUnderReview, StatusShortlisted, StatusRejected, StatusWithdrawn, StatusOnHold},
	StatusUnderReview:        {StatusShortlisted, StatusRejected, StatusWithdrawn, StatusOnHold},
	StatusShortlisted:        {StatusInterviewScheduled, StatusUnderReview, StatusRejected, StatusWithdrawn, StatusOnHold},
	StatusInterviewScheduled: {StatusInterviewed, StatusRejected, StatusWithdrawn, StatusOnHold},
	StatusInterviewed:        {StatusOffered, StatusInterviewScheduled, StatusRejected, StatusWithdrawn, StatusOnHold},
	StatusOffered:            {StatusOfferAccepted, StatusOfferDeclined, StatusRejected, StatusWithdrawn, StatusOnHold},
	StatusOfferAccepted:      {StatusJoined, StatusRejected, StatusWithdrawn},
	StatusOnHold:             {StatusUnderReview, StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusOfferDeclined:      {},
	StatusJoined:             {},
	StatusRejected:           {},
	StatusWithdrawn:          {},
}

// CanTransition reports whether the adjacency table permits current -> next.
func CanTransition(current, next CandidateStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// InterviewResult enumerates interview outcomes.
type InterviewResult string

const (
	InterviewResultPending InterviewResult = "PENDING"
	InterviewResultPassed  InterviewResult = "PASSED"
	InterviewResultFailed  InterviewResult = "FAILED"
)

// InterviewType enumerates interview formats.
type InterviewType string

const (
	InterviewTypePhone     InterviewType = "Phone"
	InterviewTypeVideo     InterviewType = "Video"
	InterviewTypeInPerson  InterviewType = "In-Person"
	InterviewTypeTechnical InterviewType = "Technical"
	InterviewTypeHR        InterviewType = "HR"
)

// Interview is a scheduled round. Rounds are 1-based and gapless: round is
// assigned as the current interview count + 1 at creation.
type Interview struct {
	ID               string
	CandidateID      string
	Round            int
	Type             InterviewType
	ScheduledAt      time.Time
	InterviewerName  string
	InterviewerEmail string
	MeetingLink      string
	Feedback         string
	Rating           int
	Result           InterviewResult
	CreatedAt        time.Time
}

// OfferResponse enumerates candidate answers to an offer.
type OfferResponse string

const (
	OfferResponsePending     OfferResponse = "PENDING"
	OfferResponseAccepted    OfferResponse = "ACCEPTED"
	OfferResponseDeclined    OfferResponse = "DECLINED"
	OfferResponseNegotiating OfferResponse = "NEGOTIATING"
)

// Offer holds the extended offer and its response.
type Offer struct {
	Salary           float64
	JoiningDate      time.Time
	OfferLetterURL   string
	OfferedAt        time.Time
	RespondedAt      *time.Time
	Response         OfferResponse
	NegotiationNotes string
}

// Joining records the confirmed start of employment.
type Joining struct {
	ActualJoiningDate  time.Time
	Confirmed          bool
	ConfirmedAt        time.Time
	DocumentsSubmitted bool
}

// CommissionPayout is the accrued commission sub-record on a candidate,
// created when joining is confirmed.
type CommissionPayout struct {
	CommissionAmount float64
	Status           PayoutStatus
	PaidAt           *time.Time
	TransactionID    string
}

// Consent records the candidate's permission to be submitted.
type Consent struct {
	Given   bool
	GivenAt *time.Time
}

// ResumeRef is a stored artifact reference; storage itself is external.
type ResumeRef struct {
	URL        string
	FileName   string
	UploadedAt *time.Time
}

// CandidateProfile is free-form profile metadata supplied at submission.
type CandidateProfile struct {
	CurrentCompany     string   `json:"current_company,omitempty"`
	CurrentDesignation string   `json:"current_designation,omitempty"`
	TotalExperience    float64  `json:"total_experience,omitempty"`
	CurrentLocation    string   `json:"current_location,omitempty"`
	CurrentSalary      float64  `json:"current_salary,omitempty"`
	ExpectedSalary     float64  `json:"expected_salary,omitempty"`
	NoticePeriod       string   `json:"notice_period,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	LinkedinProfile    string   `json:"linkedin_profile,omitempty"`
}

// QualityCheckStatus enumerates submission screening outcomes.
type QualityCheckStatus string

const (
	QualityCheckPending QualityCheckStatus = "PENDING"
	QualityCheckPassed  QualityCheckStatus = "PASSED"
	QualityCheckFailed  QualityCheckStatus = "FAILED"
)

// QualityCheck is the admin screening sub-record.
type QualityCheck struct {
	Status    QualityCheckStatus
	CheckedBy string
	CheckedAt *time.Time
	Issues    []string
}

// StatusHistoryEntry is an append-only audit record. The latest entry must
// always match the candidate's current status.
type StatusHistoryEntry struct {
	ID          string
	CandidateID string
	Status      CandidateStatus
	ChangedBy   string
	ChangedAt   time.Time
	Notes       string
}

// Note is free-text commentary on a candidate.
type Note struct {
	ID          string
	CandidateID string
	Content     string
	AddedBy     string
	AddedAt     time.Time
	IsInternal  bool
}

// Candidate is the central aggregate: a submission by a partner against one
// job, progressing through the hiring funnel. Status/history mutation is
// guarded by the Version optimistic lock.
type Candidate struct {
	ID              string
	SubmittedBy     string
	JobID           string
	CompanyID       string
	FirstName       string
	LastName        string
	Email           string
	Mobile          string
	Consent         Consent
	Resume          ResumeRef
	Profile         CandidateProfile
	Status          CandidateStatus
	StatusesReached []CandidateStatus
	Offer           *Offer
	Joining         *Joining
	Payout          *CommissionPayout
	QualityCheck    QualityCheck
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasReached reports whether the candidate has ever been in the status.
// Funnel metrics increment only on the first-ever entry, so cycling through
// a status cannot double-count.
func (c *Candidate) HasReached(status CandidateStatus) bool {
	for _, s := range c.StatusesReached {
		if s == status {
			return true
		}
	}
	return false
}

// MarkReached records first entry into a status.
func (c *Candidate) MarkReached(status CandidateStatus) {
	if !c.HasReached(status) {
		c.StatusesReached = append(c.StatusesReached, status)
	}
}
