package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/persistence"
)

// CompanyRepository encapsulates company profile persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.CompanyProfile) error
	GetByID(ctx context.Context, id string) (*domain.CompanyProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error)
	IncrementHires(ctx context.Context, id string) error
	RecordJobPosted(ctx context.Context, id string) error
	AdjustActiveJobs(ctx context.Context, id string, delta int) error
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository instantiates repository.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.CompanyProfile) error {
	const query = `
        INSERT INTO company_profiles (user_id, company_name, gst_number, pan_number, city, state, verification_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		company.UserID,
		company.CompanyName,
		company.GSTNumber,
		company.PANNumber,
		company.City,
		company.State,
		company.VerificationStatus,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

const companyColumns = `id, user_id, company_name, gst_number, pan_number, city, state,
               verification_status, total_jobs_posted, active_jobs, total_hires, created_at, updated_at`

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.CompanyProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE id=$1`, id)
}

func (r *companyRepository) GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE user_id=$1`, userID)
}

func (r *companyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.CompanyProfile, error) {
	var company domain.CompanyProfile
	q := persistence.QuerierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query, arg).Scan(
		&company.ID,
		&company.UserID,
		&company.CompanyName,
		&company.GSTNumber,
		&company.PANNumber,
		&company.City,
		&company.State,
		&company.VerificationStatus,
		&company.Metrics.TotalJobsPosted,
		&company.Metrics.ActiveJobs,
		&company.Metrics.TotalHires,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) IncrementHires(ctx context.Context, id string) error {
	const query = `
        UPDATE company_profiles SET total_hires = total_hires + 1, updated_at = NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id)
}

func (r *companyRepository) RecordJobPosted(ctx context.Context, id string) error {
	const query = `
        UPDATE company_profiles SET total_jobs_posted = total_jobs_posted + 1, updated_at = NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id)
}

func (r *companyRepository) AdjustActiveJobs(ctx context.Context, id string, delta int) error {
	const query = `
        UPDATE company_profiles SET active_jobs = active_jobs + $2, updated_at = NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id, delta)
}

func (r *companyRepository) exec(ctx context.Context, query string, args ...any) error {
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
