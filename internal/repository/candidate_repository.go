package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/persistence"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

// CandidateFilter captures listing parameters for submissions.
type CandidateFilter struct {
	JobID       *string
	SubmittedBy *string
	CompanyID   *string
	Statuses    []domain.CandidateStatus
	Limit       int
	Offset      int
}

// CandidateRepository encapsulates the candidate aggregate and its
// append-only child records.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	Update(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	FindByJobAndEmail(ctx context.Context, jobID, email string) (*domain.Candidate, error)
	ListWithFilter(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, error)

	AppendHistory(ctx context.Context, entry *domain.StatusHistoryEntry) error
	ListHistory(ctx context.Context, candidateID string) ([]domain.StatusHistoryEntry, error)

	AddInterview(ctx context.Context, interview *domain.Interview) error
	UpdateInterview(ctx context.Context, interview *domain.Interview) error
	GetInterview(ctx context.Context, candidateID, interviewID string) (*domain.Interview, error)
	ListInterviews(ctx context.Context, candidateID string) ([]domain.Interview, error)

	AddNote(ctx context.Context, note *domain.Note) error
	ListNotes(ctx context.Context, candidateID string, includeInternal bool) ([]domain.Note, error)
}

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository instantiates repository.
func NewCandidateRepository(pool *pgxpool.Pool) CandidateRepository {
	return &candidateRepository{pool: pool}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	const query = `
        INSERT INTO candidates (submitted_by, job_id, company_id, first_name, last_name, email, mobile,
            consent_given, consent_given_at, resume_url, resume_file_name, resume_uploaded_at,
            profile, status, statuses_reached)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, version, created_at, updated_at`
	profileJSON, err := json.Marshal(candidate.Profile)
	if err != nil {
		return err
	}
	q := persistence.QuerierFrom(ctx, r.pool)
	err = q.QueryRow(ctx, query,
		candidate.SubmittedBy,
		candidate.JobID,
		candidate.CompanyID,
		candidate.FirstName,
		candidate.LastName,
		strings.ToLower(candidate.Email),
		candidate.Mobile,
		candidate.Consent.Given,
		candidate.Consent.GivenAt,
		candidate.Resume.URL,
		candidate.Resume.FileName,
		candidate.Resume.UploadedAt,
		profileJSON,
		candidate.Status,
		statusStrings(candidate.StatusesReached),
	).Scan(&candidate.ID, &candidate.Version, &candidate.CreatedAt, &candidate.UpdatedAt)
	// The service's duplicate check races with concurrent submissions; the
	// loser of that race lands here via the unique index.
	if isUniqueViolation(err, "idx_candidates_job_email") {
		return apperrors.NewInvalidOperation("DUPLICATE_SUBMISSION", "candidate already submitted for this job")
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

// Update persists the aggregate using an optimistic version check. A stale
// version fails with CONFLICT; the caller must reload and re-issue.
func (r *candidateRepository) Update(ctx context.Context, candidate *domain.Candidate) error {
	const query = `
        UPDATE candidates SET status=$1, statuses_reached=$2,
            offer_salary=$3, offer_joining_date=$4, offer_letter_url=$5, offer_made_at=$6,
            offer_responded_at=$7, offer_response=$8, offer_negotiation_notes=$9,
            joining_date=$10, joining_confirmed=$11, joining_confirmed_at=$12, joining_documents_submitted=$13,
            payout_commission_amount=$14, payout_status=$15, payout_paid_at=$16, payout_transaction_id=$17,
            quality_status=$18, quality_checked_by=$19, quality_checked_at=$20, quality_issues=$21,
            resume_url=$22, resume_file_name=$23, resume_uploaded_at=$24,
            version=version+1, updated_at=NOW()
        WHERE id=$25 AND version=$26`

	var (
		offerSalary, payoutAmount                     *float64
		offerJoining, offerMadeAt, offerRespondedAt   *time.Time
		offerLetterURL, offerResponse, offerNotes     *string
		joiningDate, joiningConfirmedAt, payoutPaidAt *time.Time
		joiningConfirmed, joiningDocs                 bool
		payoutStatus, payoutTxnID                     *string
	)
	if offer := candidate.Offer; offer != nil {
		offerSalary = &offer.Salary
		offerJoining = &offer.JoiningDate
		offerLetterURL = &offer.OfferLetterURL
		offerMadeAt = &offer.OfferedAt
		offerRespondedAt = offer.RespondedAt
		response := string(offer.Response)
		offerResponse = &response
		offerNotes = &offer.NegotiationNotes
	}
	if joining := candidate.Joining; joining != nil {
		joiningDate = &joining.ActualJoiningDate
		joiningConfirmed = joining.Confirmed
		joiningConfirmedAt = &joining.ConfirmedAt
		joiningDocs = joining.DocumentsSubmitted
	}
	if payout := candidate.Payout; payout != nil {
		payoutAmount = &payout.CommissionAmount
		status := string(payout.Status)
		payoutStatus = &status
		payoutPaidAt = payout.PaidAt
		payoutTxnID = &payout.TransactionID
	}

	q := persistence.QuerierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query,
		candidate.Status,
		statusStrings(candidate.StatusesReached),
		offerSalary, offerJoining, offerLetterURL, offerMadeAt,
		offerRespondedAt, offerResponse, offerNotes,
		joiningDate, joiningConfirmed, joiningConfirmedAt, joiningDocs,
		payoutAmount, payoutStatus, payoutPaidAt, payoutTxnID,
		candidate.QualityCheck.Status,
		candidate.QualityCheck.CheckedBy,
		candidate.QualityCheck.CheckedAt,
		candidate.QualityCheck.Issues,
		candidate.Resume.URL,
		candidate.Resume.FileName,
		candidate.Resume.UploadedAt,
		candidate.ID,
		candidate.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewConflict("candidate was modified concurrently", map[string]any{
			"candidate_id": candidate.ID,
		})
	}
	candidate.Version++
	return nil
}

const candidateColumns = `id, submitted_by, job_id, company_id, first_name, last_name, email, mobile,
               consent_given, consent_given_at, resume_url, resume_file_name, resume_uploaded_at,
               profile, status, statuses_reached,
               offer_salary, offer_joining_date, offer_letter_url, offer_made_at,
               offer_responded_at, offer_response, offer_negotiation_notes,
               joining_date, joining_confirmed, joining_confirmed_at, joining_documents_submitted,
               payout_commission_amount, payout_status, payout_paid_at, payout_transaction_id,
               quality_status, quality_checked_by, quality_checked_at, quality_issues,
               version, created_at, updated_at`

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	q := persistence.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id=$1`, id)
	return scanCandidate(row)
}

func (r *candidateRepository) FindByJobAndEmail(ctx context.Context, jobID, email string) (*domain.Candidate, error) {
	q := persistence.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE job_id=$1 AND email=$2`,
		jobID, strings.ToLower(email))
	return scanCandidate(row)
}

func (r *candidateRepository) ListWithFilter(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		clauses = append(clauses, fmt.Sprintf("job_id=$%d", len(args)))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		clauses = append(clauses, fmt.Sprintf("submitted_by=$%d", len(args)))
	}
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

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		candidateColumns, strings.Join(clauses, " AND "), limit, offset)

	q := persistence.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *candidate)
	}
	return result, rows.Err()
}

func (r *candidateRepository) AppendHistory(ctx context.Context, entry *domain.StatusHistoryEntry) error {
	const query = `
        INSERT INTO candidate_status_history (candidate_id, status, changed_by, changed_at, notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		entry.CandidateID,
		entry.Status,
		nullableID(entry.ChangedBy),
		entry.ChangedAt,
		entry.Notes,
	).Scan(&entry.ID)
}

// ListHistory returns entries in insertion order. Ordering by seq rather
// than changed_at keeps same-instant writes stable.
func (r *candidateRepository) ListHistory(ctx context.Context, candidateID string) ([]domain.StatusHistoryEntry, error) {
	const query = `
        SELECT id, candidate_id, status, COALESCE(changed_by::text, ''), changed_at, notes
        FROM candidate_status_history WHERE candidate_id=$1 ORDER BY seq ASC`
	q := persistence.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusHistoryEntry
	for rows.Next() {
		var entry domain.StatusHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.CandidateID, &entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *candidateRepository) AddInterview(ctx context.Context, interview *domain.Interview) error {
	const query = `
        INSERT INTO candidate_interviews (candidate_id, round, type, scheduled_at,
            interviewer_name, interviewer_email, meeting_link, result)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		interview.CandidateID,
		interview.Round,
		interview.Type,
		interview.ScheduledAt,
		interview.InterviewerName,
		interview.InterviewerEmail,
		interview.MeetingLink,
		interview.Result,
	).Scan(&interview.ID, &interview.CreatedAt)
}

func (r *candidateRepository) UpdateInterview(ctx context.Context, interview *domain.Interview) error {
	const query = `
        UPDATE candidate_interviews SET feedback=$1, rating=$2, result=$3
        WHERE id=$4 AND candidate_id=$5`
	q := persistence.QuerierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query,
		interview.Feedback,
		interview.Rating,
		interview.Result,
		interview.ID,
		interview.CandidateID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const interviewColumns = `id, candidate_id, round, type, scheduled_at, interviewer_name,
               interviewer_email, meeting_link, feedback, rating, result, created_at`

func (r *candidateRepository) GetInterview(ctx context.Context, candidateID, interviewID string) (*domain.Interview, error) {
	q := persistence.QuerierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `SELECT `+interviewColumns+` FROM candidate_interviews WHERE id=$1 AND candidate_id=$2`,
		interviewID, candidateID)
	var interview domain.Interview
	if err := scanInterview(row, &interview); err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *candidateRepository) ListInterviews(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	q := persistence.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT `+interviewColumns+` FROM candidate_interviews WHERE candidate_id=$1 ORDER BY round ASC`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Interview
	for rows.Next() {
		var interview domain.Interview
		if err := scanInterview(rows, &interview); err != nil {
			return nil, err
		}
		result = append(result, interview)
	}
	return result, rows.Err()
}

func (r *candidateRepository) AddNote(ctx context.Context, note *domain.Note) error {
	const query = `
        INSERT INTO candidate_notes (candidate_id, content, added_by, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, added_at`
	q := persistence.QuerierFrom(ctx, r.pool)
	return q.QueryRow(ctx, query,
		note.CandidateID,
		note.Content,
		nullableID(note.AddedBy),
		note.IsInternal,
	).Scan(&note.ID, &note.AddedAt)
}

func (r *candidateRepository) ListNotes(ctx context.Context, candidateID string, includeInternal bool) ([]domain.Note, error) {
	query := `
        SELECT id, candidate_id, content, COALESCE(added_by::text, ''), added_at, is_internal
        FROM candidate_notes WHERE candidate_id=$1`
	if !includeInternal {
		query += ` AND is_internal = FALSE`
	}
	query += ` ORDER BY added_at ASC`

	q := persistence.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.CandidateID, &note.Content, &note.AddedBy, &note.AddedAt, &note.IsInternal); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var (
		candidate    domain.Candidate
		profileJSON  []byte
		reached      []string
		offerSalary  *float64
		offerJoining *time.Time
		offerLetter  *string
		offerMadeAt  *time.Time
		offerResp    *string
		offerRespAt  *time.Time
		offerNotes   *string
		joinDate     *time.Time
		joinConf     bool
		joinConfAt   *time.Time
		joinDocs     bool
		payoutAmt    *float64
		payoutStat   *string
		payoutPaidAt *time.Time
		payoutTxn    *string
	)
	if err := row.Scan(
		&candidate.ID,
		&candidate.SubmittedBy,
		&candidate.JobID,
		&candidate.CompanyID,
		&candidate.FirstName,
		&candidate.LastName,
		&candidate.Email,
		&candidate.Mobile,
		&candidate.Consent.Given,
		&candidate.Consent.GivenAt,
		&candidate.Resume.URL,
		&candidate.Resume.FileName,
		&candidate.Resume.UploadedAt,
		&profileJSON,
		&candidate.Status,
		&reached,
		&offerSalary, &offerJoining, &offerLetter, &offerMadeAt,
		&offerRespAt, &offerResp, &offerNotes,
		&joinDate, &joinConf, &joinConfAt, &joinDocs,
		&payoutAmt, &payoutStat, &payoutPaidAt, &payoutTxn,
		&candidate.QualityCheck.Status,
		&candidate.QualityCheck.CheckedBy,
		&candidate.QualityCheck.CheckedAt,
		&candidate.QualityCheck.Issues,
		&candidate.Version,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &candidate.Profile); err != nil {
			return nil, err
		}
	}
	for _, s := range reached {
		candidate.StatusesReached = append(candidate.StatusesReached, domain.CandidateStatus(s))
	}
	if offerSalary != nil {
		candidate.Offer = &domain.Offer{
			Salary:      *offerSalary,
			RespondedAt: offerRespAt,
		}
		if offerJoining != nil {
			candidate.Offer.JoiningDate = *offerJoining
		}
		if offerLetter != nil {
			candidate.Offer.OfferLetterURL = *offerLetter
		}
		if offerMadeAt != nil {
			candidate.Offer.OfferedAt = *offerMadeAt
		}
		if offerResp != nil {
			candidate.Offer.Response = domain.OfferResponse(*offerResp)
		}
		if offerNotes != nil {
			candidate.Offer.NegotiationNotes = *offerNotes
		}
	}
	if joinDate != nil {
		candidate.Joining = &domain.Joining{
			ActualJoiningDate:  *joinDate,
			Confirmed:          joinConf,
			DocumentsSubmitted: joinDocs,
		}
		if joinConfAt != nil {
			candidate.Joining.ConfirmedAt = *joinConfAt
		}
	}
	if payoutAmt != nil {
		candidate.Payout = &domain.CommissionPayout{
			CommissionAmount: *payoutAmt,
			PaidAt:           payoutPaidAt,
		}
		if payoutStat != nil {
			candidate.Payout.Status = domain.PayoutStatus(*payoutStat)
		}
		if payoutTxn != nil {
			candidate.Payout.TransactionID = *payoutTxn
		}
	}
	return &candidate, nil
}

func scanInterview(row pgx.Row, interview *domain.Interview) error {
	return row.Scan(
		&interview.ID,
		&interview.CandidateID,
		&interview.Round,
		&interview.Type,
		&interview.ScheduledAt,
		&interview.InterviewerName,
		&interview.InterviewerEmail,
		&interview.MeetingLink,
		&interview.Feedback,
		&interview.Rating,
		&interview.Result,
		&interview.CreatedAt,
	)
}

func statusStrings(statuses []domain.CandidateStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
