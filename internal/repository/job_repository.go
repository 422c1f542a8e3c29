package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/persistence"
)

// JobFilter captures job listing parameters.
type JobFilter struct {
	CompanyID *string
	Statuses  []domain.JobStatus
	Plan      *domain.PlanTier
	Limit     int
	Offset    int
}

// JobRepository encapsulates job persistence. Funnel metrics and fill counts
// are mutated through targeted atomic updates, never read-modify-write.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	IncrementApplications(ctx context.Context, id string) error
	IncrementFunnelMetric(ctx context.Context, id string, status domain.CandidateStatus) error
	IncrementViews(ctx context.Context, id string) error
	RecordFill(ctx context.Context, id string) (filled bool, err error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, company_id, posted_by, title, description, status, vacancies, filled_positions,
               commission_type, commission_value, eligible_plans,
               metrics_views, metrics_applications, metrics_shortlisted,
               metrics_interviewed, metrics_offered, metrics_joined, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (company_id, posted_by, title, description, status, vacancies, commission_type, commission_value, eligible_plans)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	plans := planStrings(job.EligiblePlans)
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		job.CompanyID,
		job.PostedBy,
		job.Title,
		job.Description,
		job.Status,
		job.Vacancies,
		job.Commission.Type,
		job.Commission.Value,
		plans,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, status=$3, vacancies=$4,
            commission_type=$5, commission_value=$6, eligible_plans=$7, updated_at=NOW()
        WHERE id=$8`
	q := persistence.QuerierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query,
		job.Title,
		job.Description,
		job.Status,
		job.Vacancies,
		job.Commission.Type,
		job.Commission.Value,
		planStrings(job.EligiblePlans),
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	q := persistence.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id)
	return scanJob(row)
}

func (r *jobRepository) ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		clauses = append(clauses, fmt.Sprintf("company_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Plan != nil {
		args = append(args, string(*filter.Plan))
		clauses = append(clauses, fmt.Sprintf("(eligible_plans = '{}' OR $%d = ANY(eligible_plans))", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		jobColumns, strings.Join(clauses, " AND "), limit, offset)

	q := persistence.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

func (r *jobRepository) IncrementApplications(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE jobs SET metrics_applications = metrics_applications + 1, updated_at = NOW() WHERE id=$1`, id)
}

var funnelColumns = map[domain.CandidateStatus]string{
	domain.StatusShortlisted: "metrics_shortlisted",
	domain.StatusInterviewed: "metrics_interviewed",
	domain.StatusOffered:     "metrics_offered",
	domain.StatusJoined:      "metrics_joined",
}

// IncrementFunnelMetric bumps the job counter matching a funnel status. The
// caller guards at-most-once per candidate via the statuses-reached set.
func (r *jobRepository) IncrementFunnelMetric(ctx context.Context, id string, status domain.CandidateStatus) error {
	column, ok := funnelColumns[status]
	if !ok {
		return nil
	}
	query := fmt.Sprintf(`UPDATE jobs SET %s = %s + 1, updated_at = NOW() WHERE id=$1`, column, column)
	return r.exec(ctx, query, id)
}

func (r *jobRepository) IncrementViews(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE jobs SET metrics_views = metrics_views + 1 WHERE id=$1`, id)
}

// RecordFill increments filled positions, flipping status to FILLED when
// vacancies are exhausted. Over-filling fails rather than breaking the
// filled <= vacancies invariant.
func (r *jobRepository) RecordFill(ctx context.Context, id string) (bool, error) {
	const query = `
        UPDATE jobs SET filled_positions = filled_positions + 1,
            status = CASE WHEN filled_positions + 1 >= vacancies THEN 'FILLED' ELSE status END,
            updated_at = NOW()
        WHERE id=$1 AND filled_positions < vacancies
        RETURNING status`
	var status domain.JobStatus
	q := persistence.QuerierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query, id).Scan(&status); err != nil {
		return false, err
	}
	return status == domain.JobStatusFilled, nil
}

func (r *jobRepository) exec(ctx context.Context, query string, args ...any) error {
	q := persistence.QuerierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var plans []string
	if err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.PostedBy,
		&job.Title,
		&job.Description,
		&job.Status,
		&job.Vacancies,
		&job.FilledPositions,
		&job.Commission.Type,
		&job.Commission.Value,
		&plans,
		&job.Metrics.Views,
		&job.Metrics.Applications,
		&job.Metrics.Shortlisted,
		&job.Metrics.Interviewed,
		&job.Metrics.Offered,
		&job.Metrics.Joined,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	for _, p := range plans {
		job.EligiblePlans = append(job.EligiblePlans, domain.PlanTier(p))
	}
	return &job, nil
}

func planStrings(plans []domain.PlanTier) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, string(p))
	}
	return out
}
