package service

import (
	"context"
	"fmt"
	"math"
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

// PayoutService settles partner commissions. Status changes are admin-only;
// partners can list and read their own settlement records.
type PayoutService struct {
	payouts    repository.PayoutRepository
	partners   repository.PartnerRepository
	candidates repository.CandidateRepository
	tx         persistence.TxManager
	dispatcher events.Dispatcher
}

// PayoutDependencies bundles collaborators for the payout service.
type PayoutDependencies struct {
	PayoutRepo    repository.PayoutRepository
	PartnerRepo   repository.PartnerRepository
	CandidateRepo repository.CandidateRepository
	TxManager     persistence.TxManager
	Dispatcher    events.Dispatcher
}

// NewPayoutService constructs the service.
func NewPayoutService(deps PayoutDependencies) *PayoutService {
	return &PayoutService{
		payouts:    deps.PayoutRepo,
		partners:   deps.PartnerRepo,
		candidates: deps.CandidateRepo,
		tx:         deps.TxManager,
		dispatcher: deps.Dispatcher,
	}
}

// CompleteInput carries the external payment evidence for settlement.
type CompleteInput struct {
	BankName      string
	AccountNumber string
	IFSCCode      string
	TransactionID string
	UTRNumber     string
}

// Approve moves a pending or held payout to APPROVED.
func (s *PayoutService) Approve(ctx context.Context, actor authz.Actor, payoutID string) (*domain.Payout, error) {
	return s.changeStatus(ctx, actor, payoutID, domain.PayoutApproved, "", func(payout *domain.Payout) {
		now := time.Now()
		payout.ApprovedBy = actor.UserID
		payout.ApprovedAt = &now
	})
}

// Process marks an approved payout as money-in-flight.
func (s *PayoutService) Process(ctx context.Context, actor authz.Actor, payoutID string) (*domain.Payout, error) {
	return s.changeStatus(ctx, actor, payoutID, domain.PayoutProcessing, "", nil)
}

// Hold parks a payout pending investigation.
func (s *PayoutService) Hold(ctx context.Context, actor authz.Actor, payoutID, reason string) (*domain.Payout, error) {
	return s.changeStatus(ctx, actor, payoutID, domain.PayoutOnHold, reason, nil)
}

// Reject abandons a payout with a reason.
func (s *PayoutService) Reject(ctx context.Context, actor authz.Actor, payoutID, reason string) (*domain.Payout, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required", map[string]any{
			"field": "reason",
		})
	}
	return s.changeStatus(ctx, actor, payoutID, domain.PayoutRejected, reason, func(payout *domain.Payout) {
		payout.RejectionReason = reason
	})
}

// Complete settles the payout: records the payment trail, marks it PAID and
// applies partner earnings exactly once. A replay on an already-PAID payout
// fails the transition check and never touches the partner rollups.
func (s *PayoutService) Complete(ctx context.Context, actor authz.Actor, payoutID string, input CompleteInput) (*domain.Payout, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("payout settlement requires admin")
	}
	payout, err := s.payouts.GetByID(ctx, payoutID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("payout", nil)
		}
		return nil, err
	}
	if !domain.CanTransitionPayout(payout.Status, domain.PayoutPaid) {
		return nil, apperrors.NewInvalidOperation("INVALID_PAYOUT_TRANSITION",
			fmt.Sprintf("cannot complete payout in status %s", payout.Status))
	}

	now := time.Now()
	oldStatus := payout.Status
	payout.Status = domain.PayoutPaid
	payout.PaymentDetails = domain.PaymentDetails{
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		IFSCCode:      input.IFSCCode,
		TransactionID: input.TransactionID,
		UTRNumber:     input.UTRNumber,
		PaidAt:        &now,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.payouts.Update(ctx, payout); err != nil {
			return err
		}
		if err := s.partners.SettleEarnings(ctx, payout.PartnerID, payout.Amount.Net, payout.Amount.Gross); err != nil {
			return err
		}
		return s.syncCandidatePayout(ctx, payout, &now)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventPayoutStatusChanged,
		CandidateID: payout.CandidateID,
		PayoutID:    payout.ID,
		Actor:       eventActor(actor),
		Payload: events.PayoutStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: domain.PayoutPaid,
		},
	})
	return payout, nil
}

// GetForActor fetches a payout enforcing ownership.
func (s *PayoutService) GetForActor(ctx context.Context, actor authz.Actor, payoutID string) (*domain.Payout, error) {
	payout, err := s.payouts.GetByID(ctx, payoutID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("payout", nil)
		}
		return nil, err
	}
	if !authz.CanAct(actor, payout, authz.ActionViewEarnings) && !authz.CanAct(actor, payout, authz.ActionRead) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return payout, nil
}

// ListForPartner returns the partner's own settlement records.
func (s *PayoutService) ListForPartner(ctx context.Context, partnerID string, statuses []domain.PayoutStatus, limit, offset int) ([]domain.Payout, error) {
	return s.payouts.ListWithFilter(ctx, repository.PayoutFilter{
		PartnerID: &partnerID,
		Statuses:  statuses,
		Limit:     limit,
		Offset:    offset,
	})
}

// ListAll returns unscoped settlement records for admin review.
func (s *PayoutService) ListAll(ctx context.Context, filter repository.PayoutFilter) ([]domain.Payout, error) {
	return s.payouts.ListWithFilter(ctx, filter)
}

func (s *PayoutService) changeStatus(ctx context.Context, actor authz.Actor, payoutID string, target domain.PayoutStatus, reason string, mutate func(*domain.Payout)) (*domain.Payout, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("payout management requires admin")
	}
	payout, err := s.payouts.GetByID(ctx, payoutID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("payout", nil)
		}
		return nil, err
	}
	if !domain.CanTransitionPayout(payout.Status, target) {
		return nil, apperrors.NewInvalidOperation("INVALID_PAYOUT_TRANSITION",
			fmt.Sprintf("cannot move payout from %s to %s", payout.Status, target))
	}

	oldStatus := payout.Status
	payout.Status = target
	if mutate != nil {
		mutate(payout)
	}
	if err := s.payouts.Update(ctx, payout); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventPayoutStatusChanged,
		CandidateID: payout.CandidateID,
		PayoutID:    payout.ID,
		Actor:       eventActor(actor),
		Payload: events.PayoutStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: target,
			Reason:    reason,
		},
	})
	return payout, nil
}

// syncCandidatePayout mirrors the settlement onto the candidate's commission
// sub-record so candidate reads show the paid state.
func (s *PayoutService) syncCandidatePayout(ctx context.Context, payout *domain.Payout, paidAt *time.Time) error {
	candidate, err := s.candidates.GetByID(ctx, payout.CandidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	if candidate.Payout == nil {
		candidate.Payout = &domain.CommissionPayout{CommissionAmount: payout.Amount.Gross}
	}
	candidate.Payout.Status = domain.PayoutPaid
	candidate.Payout.PaidAt = paidAt
	candidate.Payout.TransactionID = payout.PaymentDetails.TransactionID
	return s.candidates.Update(ctx, candidate)
}

func (s *PayoutService) publishEvent(ctx context.Context, event events.Event) {
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

func roundToPaise(v float64) float64 {
	return math.Round(v*100) / 100
}
