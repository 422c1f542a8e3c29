package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hirebridge/placement-service/internal/authz"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/events"
	"github.com/hirebridge/placement-service/internal/persistence"
	"github.com/hirebridge/placement-service/internal/repository"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

// CandidateService drives the hiring funnel: submissions, status
// transitions, interviews, offers and joining confirmation.
type CandidateService struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	partners   repository.PartnerRepository
	companies  repository.CompanyRepository
	payouts    repository.PayoutRepository
	tx         persistence.TxManager
	dispatcher events.Dispatcher
	tds        float64
	fee        float64
}

// CandidateDependencies bundles collaborators for the candidate service.
type CandidateDependencies struct {
	CandidateRepo      repository.CandidateRepository
	JobRepo            repository.JobRepository
	PartnerRepo        repository.PartnerRepository
	CompanyRepo        repository.CompanyRepository
	PayoutRepo         repository.PayoutRepository
	TxManager          persistence.TxManager
	Dispatcher         events.Dispatcher
	TDSPercent         float64
	PlatformFeePercent float64
}

// NewCandidateService constructs the service.
func NewCandidateService(deps CandidateDependencies) *CandidateService {
	return &CandidateService{
		candidates: deps.CandidateRepo,
		jobs:       deps.JobRepo,
		partners:   deps.PartnerRepo,
		companies:  deps.CompanyRepo,
		payouts:    deps.PayoutRepo,
		tx:         deps.TxManager,
		dispatcher: deps.Dispatcher,
		tds:        deps.TDSPercent,
		fee:        deps.PlatformFeePercent,
	}
}

// SubmitInput describes a partner submission.
type SubmitInput struct {
	JobID        string
	FirstName    string
	LastName     string
	Email        string
	Mobile       string
	ConsentGiven bool
	Resume       domain.ResumeRef
	Profile      domain.CandidateProfile
}

// InterviewInput describes an interview to schedule.
type InterviewInput struct {
	Type             domain.InterviewType
	ScheduledAt      time.Time
	InterviewerName  string
	InterviewerEmail string
	MeetingLink      string
}

// FeedbackInput describes interview feedback.
type FeedbackInput struct {
	InterviewID string
	Feedback    string
	Rating      int
	Result      domain.InterviewResult
}

// OfferInput describes an offer extension.
type OfferInput struct {
	Salary         float64
	JoiningDate    time.Time
	OfferLetterURL string
}

// funnelMetricStatuses are the statuses whose first-ever entry bumps the
// matching job counter.
var funnelMetricStatuses = map[domain.CandidateStatus]struct{}{
	domain.StatusShortlisted: {},
	domain.StatusInterviewed: {},
	domain.StatusOffered:     {},
	domain.StatusJoined:      {},
}

// dedicatedCommandStatuses cannot be reached through the generic
// status-update command; they carry data only their own command collects.
var dedicatedCommandStatuses = map[domain.CandidateStatus]string{
	domain.StatusInterviewScheduled: "use the interview scheduling operation",
	domain.StatusOffered:            "use the make-offer operation",
	domain.StatusOfferAccepted:      "use the offer response operation",
	domain.StatusOfferDeclined:      "use the offer response operation",
	domain.StatusJoined:             "use the joining confirmation operation",
}

// Submit creates a SUBMITTED candidate against an active job.
func (s *CandidateService) Submit(ctx context.Context, actor authz.Actor, input SubmitInput) (*domain.Candidate, error) {
	if !authz.CanAct(actor, noResource{}, authz.ActionSubmitCandidate) {
		return nil, apperrors.NewForbidden("submission not permitted")
	}
	if !input.ConsentGiven {
		return nil, apperrors.NewValidationError("candidate consent is required", map[string]any{
			"field": "consent_given",
		})
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": input.JobID})
		}
		return nil, err
	}
	if !job.AcceptingApplications() {
		return nil, apperrors.NewInvalidOperation("JOB_NOT_ACCEPTING_APPLICATIONS", "job is not accepting applications")
	}

	partner, err := s.partners.GetByID(ctx, actor.PartnerID)
	if err != nil {
		return nil, err
	}
	if !planEligible(job.EligiblePlans, partner.Plan) {
		return nil, apperrors.NewInvalidOperation("PLAN_NOT_ELIGIBLE", "partner plan is not eligible for this job")
	}

	existing, err := s.candidates.FindByJobAndEmail(ctx, job.ID, input.Email)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewInvalidOperation("DUPLICATE_SUBMISSION", "candidate already submitted for this job")
	}

	now := time.Now()
	candidate := &domain.Candidate{
		SubmittedBy: partner.ID,
		JobID:       job.ID,
		CompanyID:   job.CompanyID,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Mobile:      strings.TrimSpace(input.Mobile),
		Consent:     domain.Consent{Given: true, GivenAt: &now},
		Resume:      input.Resume,
		Profile:     input.Profile,
		Status:      domain.StatusSubmitted,
		QualityCheck: domain.QualityCheck{
			Status: domain.QualityCheckPending,
		},
	}
	candidate.MarkReached(domain.StatusSubmitted)

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.candidates.Create(ctx, candidate); err != nil {
			return err
		}
		entry := &domain.StatusHistoryEntry{
			CandidateID: candidate.ID,
			Status:      domain.StatusSubmitted,
			ChangedBy:   actor.UserID,
			Notes:       "Candidate submitted",
		}
		if err := s.candidates.AppendHistory(ctx, entry); err != nil {
			return err
		}
		if err := s.jobs.IncrementApplications(ctx, job.ID); err != nil {
			return err
		}
		return s.partners.IncrementSubmissions(ctx, partner.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventCandidateSubmitted,
		CandidateID: candidate.ID,
		Actor:       eventActor(actor),
		Payload: events.CandidateSubmittedPayload{
			JobID:     job.ID,
			CompanyID: job.CompanyID,
			PartnerID: partner.ID,
			Email:     candidate.Email,
		},
	})
	return candidate, nil
}

// UpdateStatus moves a candidate along the funnel using the adjacency table.
func (s *CandidateService) UpdateStatus(ctx context.Context, actor authz.Actor, candidateID string, newStatus domain.CandidateStatus, notes string) (*domain.Candidate, error) {
	candidate, err := s.loadForMutation(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if hint, dedicated := dedicatedCommandStatuses[newStatus]; dedicated {
		return nil, apperrors.NewInvalidOperation("REQUIRES_DEDICATED_COMMAND", hint)
	}
	if candidate.Status.IsTerminal() {
		return nil, apperrors.NewInvalidOperation("CANDIDATE_IN_TERMINAL_STATUS",
			fmt.Sprintf("candidate is %s and cannot change status", candidate.Status))
	}
	if !domain.CanTransition(candidate.Status, newStatus) {
		return nil, apperrors.NewInvalidOperation("INVALID_TRANSITION",
			fmt.Sprintf("cannot move candidate from %s to %s", candidate.Status, newStatus))
	}
	if err := s.transition(ctx, actor, candidate, newStatus, notes, false); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ForceStatus sets any status, bypassing the adjacency table. Admin only.
func (s *CandidateService) ForceStatus(ctx context.Context, actor authz.Actor, candidateID string, newStatus domain.CandidateStatus, notes string) (*domain.Candidate, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("status override requires admin")
	}
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("candidate", nil)
		}
		return nil, err
	}
	note := strings.TrimSpace("Status forced by admin. " + notes)
	if err := s.transition(ctx, actor, candidate, newStatus, note, true); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ScheduleInterview books the next round and moves the candidate to
// INTERVIEW_SCHEDULED.
func (s *CandidateService) ScheduleInterview(ctx context.Context, actor authz.Actor, candidateID string, input InterviewInput) (*domain.Candidate, *domain.Interview, error) {
	candidate, err := s.loadForMutation(ctx, actor, candidateID)
	if err != nil {
		return nil, nil, err
	}
	if candidate.Status.IsTerminal() {
		return nil, nil, apperrors.NewInvalidOperation("CANDIDATE_IN_TERMINAL_STATUS",
			fmt.Sprintf("candidate is %s and cannot be interviewed", candidate.Status))
	}

	existing, err := s.candidates.ListInterviews(ctx, candidate.ID)
	if err != nil {
		return nil, nil, err
	}
	interview := &domain.Interview{
		CandidateID:      candidate.ID,
		Round:            len(existing) + 1,
		Type:             input.Type,
		ScheduledAt:      input.ScheduledAt,
		InterviewerName:  input.InterviewerName,
		InterviewerEmail: input.InterviewerEmail,
		MeetingLink:      input.MeetingLink,
		Result:           domain.InterviewResultPending,
	}

	note := fmt.Sprintf("Interview Round %d scheduled for %s", interview.Round, input.ScheduledAt.Format(time.RFC3339))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.candidates.AddInterview(ctx, interview); err != nil {
			return err
		}
		return s.applyTransition(ctx, actor, candidate, domain.StatusInterviewScheduled, note)
	})
	if err != nil {
		return nil, nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventInterviewScheduled,
		CandidateID: candidate.ID,
		Actor:       eventActor(actor),
		Payload: events.InterviewScheduledPayload{
			InterviewID: interview.ID,
			Round:       interview.Round,
			Type:        interview.Type,
			ScheduledAt: interview.ScheduledAt,
		},
	})
	return candidate, interview, nil
}

// RecordInterviewFeedback stores feedback; a decided result moves the
// candidate to INTERVIEWED.
func (s *CandidateService) RecordInterviewFeedback(ctx context.Context, actor authz.Actor, candidateID string, input FeedbackInput) (*domain.Candidate, *domain.Interview, error) {
	candidate, err := s.loadForMutation(ctx, actor, candidateID)
	if err != nil {
		return nil, nil, err
	}
	interview, err := s.candidates.GetInterview(ctx, candidate.ID, input.InterviewID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("interview", nil)
		}
		return nil, nil, err
	}

	interview.Feedback = input.Feedback
	interview.Rating = input.Rating
	interview.Result = input.Result

	decided := input.Result == domain.InterviewResultPassed || input.Result == domain.InterviewResultFailed
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.candidates.UpdateInterview(ctx, interview); err != nil {
			return err
		}
		if !decided || candidate.Status == domain.StatusInterviewed {
			return nil
		}
		note := fmt.Sprintf("Interview Round %d recorded as %s", interview.Round, interview.Result)
		return s.applyTransition(ctx, actor, candidate, domain.StatusInterviewed, note)
	})
	if err != nil {
		return nil, nil, err
	}

	if decided {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventCandidateStatusChanged,
			CandidateID: candidate.ID,
			Actor:       eventActor(actor),
			Payload: events.CandidateStatusChangedPayload{
				OldStatus: domain.StatusInterviewScheduled,
				NewStatus: candidate.Status,
			},
		})
	}
	return candidate, interview, nil
}

// MakeOffer extends an offer and moves the candidate to OFFERED.
func (s *CandidateService) MakeOffer(ctx context.Context, actor authz.Actor, candidateID string, input OfferInput) (*domain.Candidate, error) {
	candidate, err := s.loadForMutation(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Status.IsTerminal() {
		return nil, apperrors.NewInvalidOperation("CANDIDATE_IN_TERMINAL_STATUS",
			fmt.Sprintf("candidate is %s and cannot receive an offer", candidate.Status))
	}
	if input.Salary <= 0 {
		return nil, apperrors.NewValidationError("offer salary must be positive", map[string]any{
			"field": "salary",
		})
	}

	candidate.Offer = &domain.Offer{
		Salary:         input.Salary,
		JoiningDate:    input.JoiningDate,
		OfferLetterURL: input.OfferLetterURL,
		OfferedAt:      time.Now(),
		Response:       domain.OfferResponsePending,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.applyTransition(ctx, actor, candidate, domain.StatusOffered, "Offer extended")
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventOfferMade,
		CandidateID: candidate.ID,
		Actor:       eventActor(actor),
		Payload: events.OfferMadePayload{
			Salary:      input.Salary,
			JoiningDate: input.JoiningDate,
		},
	})
	return candidate, nil
}

// RespondToOffer records the candidate's answer. ACCEPTED and DECLINED move
// the status; NEGOTIATING only annotates the offer.
func (s *CandidateService) RespondToOffer(ctx context.Context, actor authz.Actor, candidateID string, response domain.OfferResponse, negotiationNotes string) (*domain.Candidate, error) {
	candidate, err := s.loadForMutation(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Offer == nil {
		return nil, apperrors.NewInvalidOperation("MISSING_OFFER", "candidate has no offer to respond to")
	}
	if candidate.Status != domain.StatusOffered {
		return nil, apperrors.NewInvalidOperation("INVALID_TRANSITION",
			fmt.Sprintf("candidate is %s, not awaiting an offer response", candidate.Status))
	}

	now := time.Now()
	candidate.Offer.Response = response
	candidate.Offer.RespondedAt = &now
	if negotiationNotes != "" {
		candidate.Offer.NegotiationNotes = negotiationNotes
	}

	var target domain.CandidateStatus
	switch response {
	case domain.OfferResponseAccepted:
		target = domain.StatusOfferAccepted
	case domain.OfferResponseDeclined:
		target = domain.StatusOfferDeclined
	case domain.OfferResponseNegotiating:
		// status unchanged
	default:
		return nil, apperrors.NewValidationError("unknown offer response", map[string]any{
			"field": "response",
		})
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if target == "" {
			return s.candidates.Update(ctx, candidate)
		}
		return s.applyTransition(ctx, actor, candidate, target, "Offer "+strings.ToLower(string(response)))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventOfferResponded,
		CandidateID: candidate.ID,
		Actor:       eventActor(actor),
		Payload:     events.OfferRespondedPayload{Response: response},
	})
	return candidate, nil
}

// ConfirmJoining marks the placement complete: candidate JOINED, commission
// accrued, job fill count advanced, company and partner rollups updated and a
// pending settlement record derived. All of it commits atomically.
func (s *CandidateService) ConfirmJoining(ctx context.Context, actor authz.Actor, candidateID string, joiningDate time.Time, documentsSubmitted bool) (*domain.Candidate, error) {
	candidate, err := s.loadForMutation(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Offer == nil {
		return nil, apperrors.NewInvalidOperation("MISSING_OFFER", "cannot confirm joining without an offer")
	}
	if candidate.Status != domain.StatusOfferAccepted {
		return nil, apperrors.NewInvalidOperation("INVALID_TRANSITION",
			fmt.Sprintf("cannot confirm joining from %s", candidate.Status))
	}

	job, err := s.jobs.GetByID(ctx, candidate.JobID)
	if err != nil {
		return nil, err
	}

	gross := job.Commission.Amount(candidate.Offer.Salary)
	amount := s.settlementAmount(gross)
	now := time.Now()

	candidate.Joining = &domain.Joining{
		ActualJoiningDate:  joiningDate,
		Confirmed:          true,
		ConfirmedAt:        now,
		DocumentsSubmitted: documentsSubmitted,
	}
	candidate.Payout = &domain.CommissionPayout{
		CommissionAmount: gross,
		Status:           domain.PayoutPending,
	}

	payout := &domain.Payout{
		PartnerID:   candidate.SubmittedBy,
		CandidateID: candidate.ID,
		JobID:       candidate.JobID,
		CompanyID:   candidate.CompanyID,
		Amount:      amount,
		Status:      domain.PayoutPending,
	}

	var jobFilled bool
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.applyTransition(ctx, actor, candidate,
			domain.StatusJoined, "Joining confirmed for "+joiningDate.Format("2006-01-02")); err != nil {
			return err
		}
		filled, err := s.jobs.RecordFill(ctx, candidate.JobID)
		if err != nil {
			return err
		}
		jobFilled = filled
		if err := s.companies.IncrementHires(ctx, candidate.CompanyID); err != nil {
			return err
		}
		if err := s.partners.RecordPlacement(ctx, candidate.SubmittedBy, amount.Gross); err != nil {
			return err
		}
		return s.payouts.Create(ctx, payout)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventJoiningConfirmed,
		CandidateID: candidate.ID,
		Actor:       eventActor(actor),
		Payload: events.JoiningConfirmedPayload{
			JoiningDate:      joiningDate,
			CommissionAmount: gross,
			JobFilled:        jobFilled,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:        events.EventPayoutCreated,
		CandidateID: candidate.ID,
		PayoutID:    payout.ID,
		Actor:       eventActor(actor),
		Payload: events.PayoutCreatedPayload{
			PartnerID: payout.PartnerID,
			Gross:     amount.Gross,
			Net:       amount.Net,
		},
	})
	return candidate, nil
}

// AddNote appends commentary to a candidate.
func (s *CandidateService) AddNote(ctx context.Context, actor authz.Actor, candidateID, content string, isInternal bool) (*domain.Note, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("candidate", nil)
		}
		return nil, err
	}
	if !authz.CanAct(actor, candidate, authz.ActionRead) {
		return nil, apperrors.NewForbidden("access denied")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("note content is required", map[string]any{
			"field": "content",
		})
	}
	note := &domain.Note{
		CandidateID: candidate.ID,
		Content:     content,
		AddedBy:     actor.UserID,
		IsInternal:  isInternal,
	}
	if err := s.candidates.AddNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetForActor fetches a candidate with its history and interviews, enforcing
// read access.
func (s *CandidateService) GetForActor(ctx context.Context, actor authz.Actor, candidateID string) (*domain.Candidate, []domain.StatusHistoryEntry, []domain.Interview, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil, apperrors.NewNotFound("candidate", nil)
		}
		return nil, nil, nil, err
	}
	if !authz.CanAct(actor, candidate, authz.ActionRead) {
		return nil, nil, nil, apperrors.NewForbidden("access denied")
	}
	history, err := s.candidates.ListHistory(ctx, candidate.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	interviews, err := s.candidates.ListInterviews(ctx, candidate.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return candidate, history, interviews, nil
}

// ListNotes returns candidate notes; internal notes are hidden from partners.
func (s *CandidateService) ListNotes(ctx context.Context, actor authz.Actor, candidateID string) ([]domain.Note, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("candidate", nil)
		}
		return nil, err
	}
	if !authz.CanAct(actor, candidate, authz.ActionRead) {
		return nil, apperrors.NewForbidden("access denied")
	}
	includeInternal := actor.Role != domain.RolePartner
	return s.candidates.ListNotes(ctx, candidateID, includeInternal)
}

// ListForPartner returns the partner's own submissions.
func (s *CandidateService) ListForPartner(ctx context.Context, partnerID string, statuses []domain.CandidateStatus, limit, offset int) ([]domain.Candidate, error) {
	return s.candidates.ListWithFilter(ctx, repository.CandidateFilter{
		SubmittedBy: &partnerID,
		Statuses:    statuses,
		Limit:       limit,
		Offset:      offset,
	})
}

// ListForCompany returns submissions against the company's jobs.
func (s *CandidateService) ListForCompany(ctx context.Context, companyID string, jobID *string, statuses []domain.CandidateStatus, limit, offset int) ([]domain.Candidate, error) {
	return s.candidates.ListWithFilter(ctx, repository.CandidateFilter{
		CompanyID: &companyID,
		JobID:     jobID,
		Statuses:  statuses,
		Limit:     limit,
		Offset:    offset,
	})
}

// ListAll returns submissions without ownership scoping. Admin only paths.
func (s *CandidateService) ListAll(ctx context.Context, filter repository.CandidateFilter) ([]domain.Candidate, error) {
	return s.candidates.ListWithFilter(ctx, filter)
}

// transition wraps applyTransition in its own transaction and publishes the
// status-changed event.
func (s *CandidateService) transition(ctx context.Context, actor authz.Actor, candidate *domain.Candidate, newStatus domain.CandidateStatus, notes string, forced bool) error {
	oldStatus := candidate.Status
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.applyTransition(ctx, actor, candidate, newStatus, notes)
	})
	if err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventCandidateStatusChanged,
		CandidateID: candidate.ID,
		Actor:       eventActor(actor),
		Payload: events.CandidateStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Notes:     notes,
			Forced:    forced,
		},
	})
	return nil
}

// applyTransition mutates status, bumps first-entry funnel metrics and
// appends the history row. Must run inside a transaction.
func (s *CandidateService) applyTransition(ctx context.Context, actor authz.Actor, candidate *domain.Candidate, newStatus domain.CandidateStatus, notes string) error {
	firstEntry := !candidate.HasReached(newStatus)
	candidate.Status = newStatus
	candidate.MarkReached(newStatus)

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return err
	}
	entry := &domain.StatusHistoryEntry{
		CandidateID: candidate.ID,
		Status:      newStatus,
		ChangedBy:   actor.UserID,
		Notes:       notes,
	}
	if err := s.candidates.AppendHistory(ctx, entry); err != nil {
		return err
	}
	if _, tracked := funnelMetricStatuses[newStatus]; tracked && firstEntry {
		return s.jobs.IncrementFunnelMetric(ctx, candidate.JobID, newStatus)
	}
	return nil
}

// loadForMutation fetches the candidate and checks lifecycle-mutation access.
func (s *CandidateService) loadForMutation(ctx context.Context, actor authz.Actor, candidateID string) (*domain.Candidate, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("candidate", nil)
		}
		return nil, err
	}
	if !authz.CanAct(actor, candidate, authz.ActionMutateLifecycle) {
		return nil, apperrors.NewForbidden("lifecycle changes are not permitted for this actor")
	}
	return candidate, nil
}

func (s *CandidateService) settlementAmount(gross float64) domain.PayoutAmount {
	tds := roundToPaise(gross * s.tds / 100)
	fee := roundToPaise(gross * s.fee / 100)
	return domain.PayoutAmount{
		Gross:       gross,
		TDS:         tds,
		PlatformFee: fee,
		Net:         roundToPaise(gross - tds - fee),
	}
}

func (s *CandidateService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor authz.Actor) events.Actor {
	return events.Actor{Role: actor.Role, UserID: actor.UserID}
}

func planEligible(plans []domain.PlanTier, plan domain.PlanTier) bool {
	if len(plans) == 0 {
		return true
	}
	for _, p := range plans {
		if p == plan {
			return true
		}
	}
	return false
}

// noResource satisfies the gate for actions with no target entity.
type noResource struct{}

func (noResource) OwnerPartnerID() string { return "" }
func (noResource) OwnerCompanyID() string { return "" }
