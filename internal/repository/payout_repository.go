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

// PayoutFilter captures listing parameters for settlement records.
type PayoutFilter struct {
	PartnerID *string
	Statuses  []domain.PayoutStatus
	Limit     int
	Offset    int
}

// PayoutRepository encapsulates settlement persistence.
type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) error
	Update(ctx context.Context, payout *domain.Payout) error
	GetByID(ctx context.Context, id string) (*domain.Payout, error)
	ListWithFilter(ctx context.Context, filter PayoutFilter) ([]domain.Payout, error)
}

type payoutRepository struct {
	pool *pgxpool.Pool
}

// NewPayoutRepository instantiates repository.
func NewPayoutRepository(pool *pgxpool.Pool) PayoutRepository {
	return &payoutRepository{pool: pool}
}

func (r *payoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	const query = `
        INSERT INTO payouts (partner_id, candidate_id, job_id, company_id,
            amount_gross, amount_tds, amount_platform_fee, amount_net, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		payout.PartnerID,
		payout.CandidateID,
		payout.JobID,
		payout.CompanyID,
		payout.Amount.Gross,
		payout.Amount.TDS,
		payout.Amount.PlatformFee,
		payout.Amount.Net,
		payout.Status,
		payout.Notes,
	).Scan(&payout.ID, &payout.CreatedAt, &payout.UpdatedAt)
}

func (r *payoutRepository) Update(ctx context.Context, payout *domain.Payout) error {
	const query = `
        UPDATE payouts SET status=$1, bank_name=$2, account_number=$3, ifsc_code=$4,
            transaction_id=$5, utr_number=$6, paid_at=$7, approved_by=$8, approved_at=$9,
            rejection_reason=$10, notes=$11, updated_at=NOW()
        WHERE id=$12`
	q := persistence.QuerierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query,
		payout.Status,
		payout.PaymentDetails.BankName,
		payout.PaymentDetails.AccountNumber,
		payout.PaymentDetails.IFSCCode,
		payout.PaymentDetails.TransactionID,
		payout.PaymentDetails.UTRNumber,
		payout.PaymentDetails.PaidAt,
		payout.ApprovedBy,
		payout.ApprovedAt,
		payout.RejectionReason,
		payout.Notes,
		payout.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const payoutColumns = `id, partner_id, candidate_id, job_id, company_id,
               amount_gross, amount_tds, amount_platform_fee, amount_net, status,
               bank_name, account_number, ifsc_code, transaction_id, utr_number, paid_at,
               approved_by, approved_at, rejection_reason, notes, created_at, updated_at`

func (r *payoutRepository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	q := persistence.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE id=$1`, id)
	var payout domain.Payout
	if err := scanPayout(row, &payout); err != nil {
		return nil, err
	}
	return &payout, nil
}

func (r *payoutRepository) ListWithFilter(ctx context.Context, filter PayoutFilter) ([]domain.Payout, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PartnerID != nil {
		args = append(args, *filter.PartnerID)
		clauses = append(clauses, fmt.Sprintf("partner_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM payouts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		payoutColumns, strings.Join(clauses, " AND "), limit, offset)

	q := persistence.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payout
	for rows.Next() {
		var payout domain.Payout
		if err := scanPayout(rows, &payout); err != nil {
			return nil, err
		}
		result = append(result, payout)
	}
	return result, rows.Err()
}

func scanPayout(row pgx.Row, payout *domain.Payout) error {
	return row.Scan(
		&payout.ID,
		&payout.PartnerID,
		&payout.CandidateID,
		&payout.JobID,
		&payout.CompanyID,
		&payout.Amount.Gross,
		&payout.Amount.TDS,
		&payout.Amount.PlatformFee,
		&payout.Amount.Net,
		&payout.Status,
		&payout.PaymentDetails.BankName,
		&payout.PaymentDetails.AccountNumber,
		&payout.PaymentDetails.IFSCCode,
		&payout.PaymentDetails.TransactionID,
		&payout.PaymentDetails.UTRNumber,
		&payout.PaymentDetails.PaidAt,
		&payout.ApprovedBy,
		&payout.ApprovedAt,
		&payout.RejectionReason,
		&payout.Notes,
		&payout.CreatedAt,
		&payout.UpdatedAt,
	)
}
