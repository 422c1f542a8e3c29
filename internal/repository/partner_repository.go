package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/persistence"
)

// PartnerRepository encapsulates partner profile persistence. Metric columns
// are mutated only through the targeted increment methods so concurrent
// lifecycle commands cannot lose updates.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.PartnerProfile) error
	GetByID(ctx context.Context, id string) (*domain.PartnerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.PartnerProfile, error)
	IncrementSubmissions(ctx context.Context, id string) error
	RecordPlacement(ctx context.Context, id string, pendingGross float64) error
	SettleEarnings(ctx context.Context, id string, net, gross float64) error
}

type partnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository instantiates repository.
func NewPartnerRepository(pool *pgxpool.Pool) PartnerRepository {
	return &partnerRepository{pool: pool}
}

func (r *partnerRepository) Create(ctx context.Context, partner *domain.PartnerProfile) error {
	const query = `
        INSERT INTO partner_profiles (user_id, first_name, last_name, firm_name, city, state, verification_status, plan)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		partner.UserID,
		partner.FirstName,
		partner.LastName,
		partner.FirmName,
		partner.City,
		partner.State,
		partner.VerificationStatus,
		partner.Plan,
	).Scan(&partner.ID, &partner.CreatedAt, &partner.UpdatedAt)
}

const partnerColumns = `id, user_id, first_name, last_name, firm_name, city, state,
               verification_status, plan, total_submissions, total_placements,
               total_earnings, pending_payouts, created_at, updated_at`

func (r *partnerRepository) GetByID(ctx context.Context, id string) (*domain.PartnerProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+partnerColumns+` FROM partner_profiles WHERE id=$1`, id)
}

func (r *partnerRepository) GetByUserID(ctx context.Context, userID string) (*domain.PartnerProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+partnerColumns+` FROM partner_profiles WHERE user_id=$1`, userID)
}

func (r *partnerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.PartnerProfile, error) {
	var partner domain.PartnerProfile
	q := persistence.QuerierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query, arg).Scan(
		&partner.ID,
		&partner.UserID,
		&partner.FirstName,
		&partner.LastName,
		&partner.FirmName,
		&partner.City,
		&partner.State,
		&partner.VerificationStatus,
		&partner.Plan,
		&partner.Metrics.TotalSubmissions,
		&partner.Metrics.TotalPlacements,
		&partner.Metrics.TotalEarnings,
		&partner.Metrics.PendingPayouts,
		&partner.CreatedAt,
		&partner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) IncrementSubmissions(ctx context.Context, id string) error {
	const query = `
        UPDATE partner_profiles SET total_submissions = total_submissions + 1, updated_at = NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id)
}

// RecordPlacement increments placements and accrues the gross commission as
// a pending payout.
func (r *partnerRepository) RecordPlacement(ctx context.Context, id string, pendingGross float64) error {
	const query = `
        UPDATE partner_profiles SET total_placements = total_placements + 1,
            pending_payouts = pending_payouts + $2, updated_at = NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id, pendingGross)
}

// SettleEarnings applies a completed payout: net credited to earnings, gross
// released from pending.
func (r *partnerRepository) SettleEarnings(ctx context.Context, id string, net, gross float64) error {
	const query = `
        UPDATE partner_profiles SET total_earnings = total_earnings + $2,
            pending_payouts = pending_payouts - $3, updated_at = NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id, net, gross)
}

func (r *partnerRepository) exec(ctx context.Context, query string, args ...any) error {
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
