package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/events"
	"github.com/hirebridge/placement-service/internal/service"
)

// mustCreatePayout drives a placement to JOINED and returns the pending
// settlement record it derived.
func mustCreatePayout(t *testing.T, f *fixture) *domain.Payout {
	t.Helper()
	candidate := mustReachOfferAccepted(t, f)
	if _, err := f.candidateSvc.ConfirmJoining(context.Background(), f.companyActor, candidate.ID, time.Now(), true); err != nil {
		t.Fatalf("ConfirmJoining failed: %v", err)
	}
	for _, payout := range f.payouts.payouts {
		return payout
	}
	t.Fatal("no payout record created")
	return nil
}

func completeInput() service.CompleteInput {
	return service.CompleteInput{
		BankName:      "HDFC",
		AccountNumber: "50100123456789",
		IFSCCode:      "HDFC0001234",
		TransactionID: "TXN-42",
		UTRNumber:     "UTR-42",
	}
}

// ── Status changes ──────────────────────────────────────────────────────────

func TestApprove_MovesPendingToApproved(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)

	approved, err := f.payoutSvc.Approve(context.Background(), f.adminActor, payout.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != domain.PayoutApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
	if approved.ApprovedBy != f.adminActor.UserID || approved.ApprovedAt == nil {
		t.Error("approval trail not recorded")
	}
}

func TestStatusChanges_NonAdminForbidden(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	ctx := context.Background()

	if _, err := f.payoutSvc.Approve(ctx, f.partnerActor, payout.ID); err == nil {
		t.Error("partner Approve should be forbidden")
	} else {
		wantCode(t, err, "FORBIDDEN")
	}
	if _, err := f.payoutSvc.Reject(ctx, f.companyActor, payout.ID, "bad data"); err == nil {
		t.Error("company Reject should be forbidden")
	} else {
		wantCode(t, err, "FORBIDDEN")
	}
	if _, err := f.payoutSvc.Complete(ctx, f.partnerActor, payout.ID, completeInput()); err == nil {
		t.Error("partner Complete should be forbidden")
	} else {
		wantCode(t, err, "FORBIDDEN")
	}
}

func TestReject_RequiresReason(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	_, err := f.payoutSvc.Reject(context.Background(), f.adminActor, payout.ID, "   ")
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestReject_RecordsReason(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	rejected, err := f.payoutSvc.Reject(context.Background(), f.adminActor, payout.ID, "duplicate placement")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != domain.PayoutRejected || rejected.RejectionReason != "duplicate placement" {
		t.Errorf("rejected payout = %+v", rejected)
	}
}

func TestHold_ThenApprove(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	ctx := context.Background()

	held, err := f.payoutSvc.Hold(ctx, f.adminActor, payout.ID, "awaiting invoice")
	if err != nil {
		t.Fatalf("Hold failed: %v", err)
	}
	if held.Status != domain.PayoutOnHold {
		t.Errorf("status = %s, want ON_HOLD", held.Status)
	}
	approved, err := f.payoutSvc.Approve(ctx, f.adminActor, payout.ID)
	if err != nil {
		t.Fatalf("Approve after hold failed: %v", err)
	}
	if approved.Status != domain.PayoutApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
}

func TestComplete_SettlesPendingDirectly(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)

	// No approval step: a pending payout settles straight to PAID.
	paid, err := f.payoutSvc.Complete(context.Background(), f.adminActor, payout.ID, completeInput())
	if err != nil {
		t.Fatalf("Complete from PENDING failed: %v", err)
	}
	if paid.Status != domain.PayoutPaid {
		t.Errorf("status = %s, want PAID", paid.Status)
	}
	if f.partner.Metrics.TotalEarnings != 85000 {
		t.Errorf("partner earnings = %v, want exactly the net 85000", f.partner.Metrics.TotalEarnings)
	}
	if f.partner.Metrics.PendingPayouts != 0 {
		t.Errorf("partner pending payouts = %v, want 0", f.partner.Metrics.PendingPayouts)
	}
}

// ── Settlement ──────────────────────────────────────────────────────────────

func TestComplete_AppliesEarningsExactlyOnce(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	ctx := context.Background()

	if _, err := f.payoutSvc.Approve(ctx, f.adminActor, payout.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	paid, err := f.payoutSvc.Complete(ctx, f.adminActor, payout.ID, completeInput())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if paid.Status != domain.PayoutPaid {
		t.Errorf("status = %s, want PAID", paid.Status)
	}
	if paid.PaymentDetails.TransactionID != "TXN-42" || paid.PaymentDetails.PaidAt == nil {
		t.Errorf("payment trail not recorded: %+v", paid.PaymentDetails)
	}

	// Gross 100000 (10% of 1,000,000), net 85000 after 10% TDS and 5% fee.
	if f.partner.Metrics.TotalEarnings != 85000 {
		t.Errorf("partner earnings = %v, want 85000", f.partner.Metrics.TotalEarnings)
	}
	if f.partner.Metrics.PendingPayouts != 0 {
		t.Errorf("partner pending payouts = %v, want 0", f.partner.Metrics.PendingPayouts)
	}

	// The candidate's commission sub-record mirrors the settlement.
	candidate, err := f.candidates.GetByID(ctx, payout.CandidateID)
	if err != nil {
		t.Fatalf("candidate lookup failed: %v", err)
	}
	if candidate.Payout == nil || candidate.Payout.Status != domain.PayoutPaid {
		t.Errorf("candidate payout = %+v, want PAID mirror", candidate.Payout)
	}
	if candidate.Payout.TransactionID != "TXN-42" || candidate.Payout.PaidAt == nil {
		t.Errorf("candidate payout trail = %+v", candidate.Payout)
	}

	if _, ok := f.dispatcher.lastOfType(events.EventPayoutStatusChanged); !ok {
		t.Error("payout-status-changed event not published")
	}
}

func TestComplete_ReplayDoesNotDoubleApply(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	ctx := context.Background()

	if _, err := f.payoutSvc.Approve(ctx, f.adminActor, payout.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := f.payoutSvc.Complete(ctx, f.adminActor, payout.ID, completeInput()); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	earnings := f.partner.Metrics.TotalEarnings
	pending := f.partner.Metrics.PendingPayouts

	_, err := f.payoutSvc.Complete(ctx, f.adminActor, payout.ID, completeInput())
	wantReason(t, err, "INVALID_PAYOUT_TRANSITION")

	if f.partner.Metrics.TotalEarnings != earnings {
		t.Errorf("earnings moved on replay: %v -> %v", earnings, f.partner.Metrics.TotalEarnings)
	}
	if f.partner.Metrics.PendingPayouts != pending {
		t.Errorf("pending payouts moved on replay: %v -> %v", pending, f.partner.Metrics.PendingPayouts)
	}
}

// ── Reads ───────────────────────────────────────────────────────────────────

func TestGetForActor_OwnerAndForeignPartner(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	ctx := context.Background()

	if _, err := f.payoutSvc.GetForActor(ctx, f.partnerActor, payout.ID); err != nil {
		t.Errorf("owning partner read failed: %v", err)
	}

	foreign := f.partnerActor
	foreign.PartnerID = "p2"
	_, err := f.payoutSvc.GetForActor(ctx, foreign, payout.ID)
	wantCode(t, err, "FORBIDDEN")

	if _, err := f.payoutSvc.GetForActor(ctx, f.adminActor, payout.ID); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}

func TestListForPartner_FiltersByStatus(t *testing.T) {
	f := newFixture()
	payout := mustCreatePayout(t, f)
	ctx := context.Background()

	pending, err := f.payoutSvc.ListForPartner(ctx, f.partner.ID, []domain.PayoutStatus{domain.PayoutPending}, 50, 0)
	if err != nil {
		t.Fatalf("ListForPartner failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != payout.ID {
		t.Errorf("pending list = %+v, want the derived payout", pending)
	}

	paid, err := f.payoutSvc.ListForPartner(ctx, f.partner.ID, []domain.PayoutStatus{domain.PayoutPaid}, 50, 0)
	if err != nil {
		t.Fatalf("ListForPartner failed: %v", err)
	}
	if len(paid) != 0 {
		t.Errorf("paid list has %d records, want 0", len(paid))
	}
}
