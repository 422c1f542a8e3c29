package service_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hirebridge/placement-service/internal/authz"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/events"
	"github.com/hirebridge/placement-service/internal/repository"
	"github.com/hirebridge/placement-service/internal/service"
)

// In-memory repository fakes. They mirror the row-level behavior of the
// postgres repositories closely enough for service-level tests: missing rows
// surface pgx.ErrNoRows and counters mutate the stored aggregates in place.

// ── Candidate repository ────────────────────────────────────────────────────

type fakeCandidateRepo struct {
	seq        int
	candidates map[string]*domain.Candidate
	history    []domain.StatusHistoryEntry
	interviews map[string][]*domain.Interview
	notes      []domain.Note
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		candidates: map[string]*domain.Candidate{},
		interviews: map[string][]*domain.Interview{},
	}
}

func (r *fakeCandidateRepo) Create(_ context.Context, candidate *domain.Candidate) error {
	r.seq++
	candidate.ID = fmt.Sprintf("cand-%d", r.seq)
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) Update(_ context.Context, candidate *domain.Candidate) error {
	if _, ok := r.candidates[candidate.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.candidates[candidate.ID] = candidate
	candidate.Version++
	return nil
}

func (r *fakeCandidateRepo) GetByID(_ context.Context, id string) (*domain.Candidate, error) {
	candidate, ok := r.candidates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return candidate, nil
}

func (r *fakeCandidateRepo) FindByJobAndEmail(_ context.Context, jobID, email string) (*domain.Candidate, error) {
	for _, candidate := range r.candidates {
		if candidate.JobID == jobID && candidate.Email == strings.ToLower(email) {
			return candidate, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCandidateRepo) ListWithFilter(_ context.Context, filter repository.CandidateFilter) ([]domain.Candidate, error) {
	var out []domain.Candidate
	for _, candidate := range r.candidates {
		if filter.SubmittedBy != nil && candidate.SubmittedBy != *filter.SubmittedBy {
			continue
		}
		if filter.CompanyID != nil && candidate.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.JobID != nil && candidate.JobID != *filter.JobID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, candidate.Status) {
			continue
		}
		out = append(out, *candidate)
	}
	return out, nil
}

func (r *fakeCandidateRepo) AppendHistory(_ context.Context, entry *domain.StatusHistoryEntry) error {
	entry.ID = fmt.Sprintf("hist-%d", len(r.history)+1)
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeCandidateRepo) ListHistory(_ context.Context, candidateID string) ([]domain.StatusHistoryEntry, error) {
	var out []domain.StatusHistoryEntry
	for _, entry := range r.history {
		if entry.CandidateID == candidateID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) AddInterview(_ context.Context, interview *domain.Interview) error {
	interview.ID = fmt.Sprintf("int-%d", len(r.interviews[interview.CandidateID])+1)
	r.interviews[interview.CandidateID] = append(r.interviews[interview.CandidateID], interview)
	return nil
}

func (r *fakeCandidateRepo) UpdateInterview(_ context.Context, interview *domain.Interview) error {
	for i, existing := range r.interviews[interview.CandidateID] {
		if existing.ID == interview.ID {
			r.interviews[interview.CandidateID][i] = interview
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeCandidateRepo) GetInterview(_ context.Context, candidateID, interviewID string) (*domain.Interview, error) {
	for _, interview := range r.interviews[candidateID] {
		if interview.ID == interviewID {
			return interview, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCandidateRepo) ListInterviews(_ context.Context, candidateID string) ([]domain.Interview, error) {
	var out []domain.Interview
	for _, interview := range r.interviews[candidateID] {
		out = append(out, *interview)
	}
	return out, nil
}

func (r *fakeCandidateRepo) AddNote(_ context.Context, note *domain.Note) error {
	note.ID = fmt.Sprintf("note-%d", len(r.notes)+1)
	r.notes = append(r.notes, *note)
	return nil
}

func (r *fakeCandidateRepo) ListNotes(_ context.Context, candidateID string, includeInternal bool) ([]domain.Note, error) {
	var out []domain.Note
	for _, note := range r.notes {
		if note.CandidateID != candidateID {
			continue
		}
		if note.IsInternal && !includeInternal {
			continue
		}
		out = append(out, note)
	}
	return out, nil
}

func (r *fakeCandidateRepo) historyFor(candidateID string) []domain.StatusHistoryEntry {
	out, _ := r.ListHistory(context.Background(), candidateID)
	return out
}

func containsStatus(statuses []domain.CandidateStatus, status domain.CandidateStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ── Job repository ──────────────────────────────────────────────────────────

type fakeJobRepo struct {
	seq  int
	jobs map[string]*domain.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*domain.Job{}}
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.seq++
	job.ID = fmt.Sprintf("job-%d", r.seq)
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return job, nil
}

func (r *fakeJobRepo) ListWithFilter(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range r.jobs {
		if filter.CompanyID != nil && job.CompanyID != *filter.CompanyID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if job.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *job)
	}
	return out, nil
}

func (r *fakeJobRepo) IncrementApplications(_ context.Context, id string) error {
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	job.Metrics.Applications++
	return nil
}

func (r *fakeJobRepo) IncrementFunnelMetric(_ context.Context, id string, status domain.CandidateStatus) error {
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	switch status {
	case domain.StatusShortlisted:
		job.Metrics.Shortlisted++
	case domain.StatusInterviewed:
		job.Metrics.Interviewed++
	case domain.StatusOffered:
		job.Metrics.Offered++
	case domain.StatusJoined:
		job.Metrics.Joined++
	}
	return nil
}

func (r *fakeJobRepo) IncrementViews(_ context.Context, id string) error {
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	job.Metrics.Views++
	return nil
}

func (r *fakeJobRepo) RecordFill(_ context.Context, id string) (bool, error) {
	job, ok := r.jobs[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	if job.FilledPositions < job.Vacancies {
		job.FilledPositions++
	}
	if job.FilledPositions >= job.Vacancies {
		job.Status = domain.JobStatusFilled
		return true, nil
	}
	return false, nil
}

// ── Partner repository ──────────────────────────────────────────────────────

type fakePartnerRepo struct {
	partners map[string]*domain.PartnerProfile
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: map[string]*domain.PartnerProfile{}}
}

func (r *fakePartnerRepo) Create(_ context.Context, partner *domain.PartnerProfile) error {
	r.partners[partner.ID] = partner
	return nil
}

func (r *fakePartnerRepo) GetByID(_ context.Context, id string) (*domain.PartnerProfile, error) {
	partner, ok := r.partners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return partner, nil
}

func (r *fakePartnerRepo) GetByUserID(_ context.Context, userID string) (*domain.PartnerProfile, error) {
	for _, partner := range r.partners {
		if partner.UserID == userID {
			return partner, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePartnerRepo) IncrementSubmissions(_ context.Context, id string) error {
	partner, ok := r.partners[id]
	if !ok {
		return pgx.ErrNoRows
	}
	partner.Metrics.TotalSubmissions++
	return nil
}

func (r *fakePartnerRepo) RecordPlacement(_ context.Context, id string, pendingGross float64) error {
	partner, ok := r.partners[id]
	if !ok {
		return pgx.ErrNoRows
	}
	partner.Metrics.TotalPlacements++
	partner.Metrics.PendingPayouts += pendingGross
	return nil
}

func (r *fakePartnerRepo) SettleEarnings(_ context.Context, id string, net, gross float64) error {
	partner, ok := r.partners[id]
	if !ok {
		return pgx.ErrNoRows
	}
	partner.Metrics.TotalEarnings += net
	partner.Metrics.PendingPayouts -= gross
	return nil
}

// ── Company repository ──────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*domain.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*domain.CompanyProfile{}}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *domain.CompanyProfile) error {
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.CompanyProfile, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return company, nil
}

func (r *fakeCompanyRepo) GetByUserID(_ context.Context, userID string) (*domain.CompanyProfile, error) {
	for _, company := range r.companies {
		if company.UserID == userID {
			return company, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCompanyRepo) IncrementHires(_ context.Context, id string) error {
	company, ok := r.companies[id]
	if !ok {
		return pgx.ErrNoRows
	}
	company.Metrics.TotalHires++
	return nil
}

func (r *fakeCompanyRepo) RecordJobPosted(_ context.Context, id string) error {
	company, ok := r.companies[id]
	if !ok {
		return pgx.ErrNoRows
	}
	company.Metrics.TotalJobsPosted++
	return nil
}

func (r *fakeCompanyRepo) AdjustActiveJobs(_ context.Context, id string, delta int) error {
	company, ok := r.companies[id]
	if !ok {
		return pgx.ErrNoRows
	}
	company.Metrics.ActiveJobs += int64(delta)
	return nil
}

// ── Payout repository ───────────────────────────────────────────────────────

type fakePayoutRepo struct {
	seq     int
	payouts map[string]*domain.Payout
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{payouts: map[string]*domain.Payout{}}
}

func (r *fakePayoutRepo) Create(_ context.Context, payout *domain.Payout) error {
	r.seq++
	payout.ID = fmt.Sprintf("payout-%d", r.seq)
	r.payouts[payout.ID] = payout
	return nil
}

func (r *fakePayoutRepo) Update(_ context.Context, payout *domain.Payout) error {
	if _, ok := r.payouts[payout.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.payouts[payout.ID] = payout
	return nil
}

func (r *fakePayoutRepo) GetByID(_ context.Context, id string) (*domain.Payout, error) {
	payout, ok := r.payouts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return payout, nil
}

func (r *fakePayoutRepo) ListWithFilter(_ context.Context, filter repository.PayoutFilter) ([]domain.Payout, error) {
	var out []domain.Payout
	for _, payout := range r.payouts {
		if filter.PartnerID != nil && payout.PartnerID != *filter.PartnerID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if payout.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *payout)
	}
	return out, nil
}

// ── Transaction manager and dispatcher ──────────────────────────────────────

// passthroughTx runs the function directly; the fakes mutate shared state so
// there is nothing to commit or roll back.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) lastOfType(t events.EventType) (events.Event, bool) {
	for i := len(d.published) - 1; i >= 0; i-- {
		if d.published[i].Type == t {
			return d.published[i], true
		}
	}
	return events.Event{}, false
}

// ── Fixture ─────────────────────────────────────────────────────────────────

// fixture is a seeded world: one partner, one company, one active job with a
// 10% commission and a single vacancy.
type fixture struct {
	candidates *fakeCandidateRepo
	jobs       *fakeJobRepo
	partners   *fakePartnerRepo
	companies  *fakeCompanyRepo
	payouts    *fakePayoutRepo
	dispatcher *recordingDispatcher

	candidateSvc *service.CandidateService
	payoutSvc    *service.PayoutService
	jobSvc       *service.JobService

	job     *domain.Job
	partner *domain.PartnerProfile
	company *domain.CompanyProfile

	partnerActor authz.Actor
	companyActor authz.Actor
	adminActor   authz.Actor
}

func newFixture() *fixture {
	f := &fixture{
		candidates: newFakeCandidateRepo(),
		jobs:       newFakeJobRepo(),
		partners:   newFakePartnerRepo(),
		companies:  newFakeCompanyRepo(),
		payouts:    newFakePayoutRepo(),
		dispatcher: &recordingDispatcher{},
	}

	f.partner = &domain.PartnerProfile{ID: "p1", UserID: "u-p1", Plan: domain.PlanGrowth}
	f.company = &domain.CompanyProfile{ID: "c1", UserID: "u-c1"}
	f.partners.partners[f.partner.ID] = f.partner
	f.companies.companies[f.company.ID] = f.company

	f.job = &domain.Job{
		ID:         "job-1",
		CompanyID:  f.company.ID,
		Title:      "Backend Engineer",
		Status:     domain.JobStatusActive,
		Vacancies:  1,
		Commission: domain.Commission{Type: domain.CommissionPercentage, Value: 10},
	}
	f.jobs.seq = 1
	f.jobs.jobs[f.job.ID] = f.job

	f.candidateSvc = service.NewCandidateService(service.CandidateDependencies{
		CandidateRepo:      f.candidates,
		JobRepo:            f.jobs,
		PartnerRepo:        f.partners,
		CompanyRepo:        f.companies,
		PayoutRepo:         f.payouts,
		TxManager:          passthroughTx{},
		Dispatcher:         f.dispatcher,
		TDSPercent:         10,
		PlatformFeePercent: 5,
	})
	f.payoutSvc = service.NewPayoutService(service.PayoutDependencies{
		PayoutRepo:    f.payouts,
		PartnerRepo:   f.partners,
		CandidateRepo: f.candidates,
		TxManager:     passthroughTx{},
		Dispatcher:    f.dispatcher,
	})
	f.jobSvc = service.NewJobService(f.jobs, f.companies, passthroughTx{}, nil)

	f.partnerActor = authz.Actor{UserID: f.partner.UserID, Role: domain.RolePartner, PartnerID: f.partner.ID}
	f.companyActor = authz.Actor{UserID: f.company.UserID, Role: domain.RoleCompany, CompanyID: f.company.ID}
	f.adminActor = authz.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
	return f
}
