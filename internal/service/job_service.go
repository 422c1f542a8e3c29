package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hirebridge/placement-service/internal/authz"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/persistence"
	"github.com/hirebridge/placement-service/internal/repository"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

// JobService manages company job postings: the lifecycle is
// DRAFT -> ACTIVE -> PAUSED/CLOSED, with FILLED set by the hiring funnel.
type JobService struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	tx        persistence.TxManager
	redis     *persistence.Redis
}

// NewJobService constructs the service.
func NewJobService(jobs repository.JobRepository, companies repository.CompanyRepository, tx persistence.TxManager, redis *persistence.Redis) *JobService {
	return &JobService{jobs: jobs, companies: companies, tx: tx, redis: redis}
}

// JobCreateInput describes a new posting.
type JobCreateInput struct {
	Title           string
	Description     string
	Vacancies       int
	CommissionType  domain.CommissionType
	CommissionValue float64
	EligiblePlans   []domain.PlanTier
}

// Create stores a DRAFT posting for the company.
func (s *JobService) Create(ctx context.Context, actor authz.Actor, input JobCreateInput) (*domain.Job, error) {
	if actor.Role != domain.RoleCompany || actor.CompanyID == "" {
		return nil, apperrors.NewForbidden("job creation requires a company account")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("job title is required", map[string]any{"field": "title"})
	}
	if input.Vacancies <= 0 {
		return nil, apperrors.NewValidationError("vacancies must be positive", map[string]any{"field": "vacancies"})
	}
	if input.CommissionValue <= 0 {
		return nil, apperrors.NewValidationError("commission value must be positive", map[string]any{"field": "commission_value"})
	}
	if input.CommissionType != domain.CommissionPercentage && input.CommissionType != domain.CommissionFixed {
		return nil, apperrors.NewValidationError("unknown commission type", map[string]any{"field": "commission_type"})
	}

	job := &domain.Job{
		CompanyID:   actor.CompanyID,
		PostedBy:    actor.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.JobStatusDraft,
		Vacancies:   input.Vacancies,
		Commission: domain.Commission{
			Type:  input.CommissionType,
			Value: input.CommissionValue,
		},
		EligiblePlans: input.EligiblePlans,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Activate publishes a draft or paused posting.
func (s *JobService) Activate(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error) {
	job, err := s.loadOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusDraft && job.Status != domain.JobStatusPaused {
		return nil, apperrors.NewInvalidOperation("INVALID_JOB_TRANSITION",
			fmt.Sprintf("cannot activate job in status %s", job.Status))
	}

	fromDraft := job.Status == domain.JobStatusDraft
	job.Status = domain.JobStatusActive
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.jobs.Update(ctx, job); err != nil {
			return err
		}
		if fromDraft {
			if err := s.companies.RecordJobPosted(ctx, job.CompanyID); err != nil {
				return err
			}
		}
		return s.companies.AdjustActiveJobs(ctx, job.CompanyID, 1)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Pause suspends applications without closing the posting.
func (s *JobService) Pause(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error) {
	job, err := s.loadOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperrors.NewInvalidOperation("INVALID_JOB_TRANSITION",
			fmt.Sprintf("cannot pause job in status %s", job.Status))
	}
	job.Status = domain.JobStatusPaused
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.jobs.Update(ctx, job); err != nil {
			return err
		}
		return s.companies.AdjustActiveJobs(ctx, job.CompanyID, -1)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Close retires the posting.
func (s *JobService) Close(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error) {
	job, err := s.loadOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	switch job.Status {
	case domain.JobStatusClosed, domain.JobStatusFilled:
		return nil, apperrors.NewInvalidOperation("INVALID_JOB_TRANSITION",
			fmt.Sprintf("job is already %s", job.Status))
	}
	wasActive := job.Status == domain.JobStatusActive
	job.Status = domain.JobStatusClosed
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.jobs.Update(ctx, job); err != nil {
			return err
		}
		if wasActive {
			return s.companies.AdjustActiveJobs(ctx, job.CompanyID, -1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetForPartner fetches an active posting and counts the view. Redis dedupes
// the counter to one view per viewer per day; when redis is unavailable the
// view simply is not counted.
func (s *JobService) GetForPartner(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
	}
	s.recordView(ctx, job.ID, actor.UserID)
	return job, nil
}

// GetForCompany fetches an owned posting regardless of status.
func (s *JobService) GetForCompany(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, err
	}
	if !authz.CanAct(actor, job, authz.ActionRead) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return job, nil
}

// ListForCompany returns the company's postings.
func (s *JobService) ListForCompany(ctx context.Context, companyID string, statuses []domain.JobStatus, limit, offset int) ([]domain.Job, error) {
	return s.jobs.ListWithFilter(ctx, repository.JobFilter{
		CompanyID: &companyID,
		Statuses:  statuses,
		Limit:     limit,
		Offset:    offset,
	})
}

// ListOpenForPartner returns active postings visible to the partner's plan.
func (s *JobService) ListOpenForPartner(ctx context.Context, plan domain.PlanTier, limit, offset int) ([]domain.Job, error) {
	return s.jobs.ListWithFilter(ctx, repository.JobFilter{
		Statuses: []domain.JobStatus{domain.JobStatusActive},
		Plan:     &plan,
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *JobService) loadOwned(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, err
	}
	if !authz.CanAct(actor, job, authz.ActionMutateLifecycle) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return job, nil
}

func (s *JobService) recordView(ctx context.Context, jobID, viewerID string) {
	if s.redis != nil && s.redis.Client != nil && viewerID != "" {
		key := fmt.Sprintf("job:view:%s:%s:%s", jobID, viewerID, time.Now().Format("2006-01-02"))
		fresh, err := s.redis.Client.SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err != nil || !fresh {
			return
		}
	}
	_ = s.jobs.IncrementViews(ctx, jobID)
}
