package domain_test

import (
	"testing"

	"github.com/hirebridge/placement-service/internal/domain"
)

func TestParseCandidateStatus_ValidValues(t *testing.T) {
	valid := []string{
		"SUBMITTED", "UNDER_REVIEW", "SHORTLISTED", "INTERVIEW_SCHEDULED",
		"INTERVIEWED", "OFFERED", "OFFER_ACCEPTED", "OFFER_DECLINED",
		"JOINED", "REJECTED", "WITHDRAWN", "ON_HOLD",
	}
	for _, s := range valid {
		got, err := domain.ParseCandidateStatus(s)
		if err != nil {
			t.Errorf("ParseCandidateStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseCandidateStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseCandidateStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "HIRED", "submitted"} {
		if _, err := domain.ParseCandidateStatus(s); err == nil {
			t.Errorf("ParseCandidateStatus(%q) expected error, got nil", s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminals := []domain.CandidateStatus{
		domain.StatusJoined, domain.StatusRejected,
		domain.StatusWithdrawn, domain.StatusOfferDeclined,
	}
	for _, s := range terminals {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%s) should be true", s)
		}
	}
	nonTerminals := []domain.CandidateStatus{
		domain.StatusSubmitted, domain.StatusUnderReview, domain.StatusShortlisted,
		domain.StatusInterviewScheduled, domain.StatusInterviewed,
		domain.StatusOffered, domain.StatusOfferAccepted, domain.StatusOnHold,
	}
	for _, s := range nonTerminals {
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%s) should be false", s)
		}
	}
}

func TestCanTransition_ForwardFunnel(t *testing.T) {
	cases := []struct {
		from domain.CandidateStatus
		to   domain.CandidateStatus
	}{
		{domain.StatusSubmitted, domain.StatusUnderReview},
		{domain.StatusUnderReview, domain.StatusShortlisted},
		{domain.StatusShortlisted, domain.StatusInterviewScheduled},
		{domain.StatusInterviewScheduled, domain.StatusInterviewed},
		{domain.StatusInterviewed, domain.StatusOffered},
		{domain.StatusOffered, domain.StatusOfferAccepted},
		{domain.StatusOffered, domain.StatusOfferDeclined},
		{domain.StatusOfferAccepted, domain.StatusJoined},
	}
	for _, c := range cases {
		if !domain.CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%s -> %s) should be true", c.from, c.to)
		}
	}
}

func TestCanTransition_SkippingStagesDenied(t *testing.T) {
	cases := []struct {
		from domain.CandidateStatus
		to   domain.CandidateStatus
	}{
		{domain.StatusSubmitted, domain.StatusOffered},
		{domain.StatusSubmitted, domain.StatusJoined},
		{domain.StatusUnderReview, domain.StatusInterviewed},
		{domain.StatusShortlisted, domain.StatusOfferAccepted},
		{domain.StatusInterviewScheduled, domain.StatusJoined},
	}
	for _, c := range cases {
		if domain.CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%s -> %s) should be false", c.from, c.to)
		}
	}
}

func TestCanTransition_TerminalStatesFrozen(t *testing.T) {
	terminals := []domain.CandidateStatus{
		domain.StatusJoined, domain.StatusRejected,
		domain.StatusWithdrawn, domain.StatusOfferDeclined,
	}
	targets := []domain.CandidateStatus{
		domain.StatusSubmitted, domain.StatusUnderReview, domain.StatusShortlisted,
		domain.StatusOffered, domain.StatusJoined, domain.StatusRejected,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if domain.CanTransition(from, to) {
				t.Errorf("CanTransition(%s -> %s) should be false: %s is terminal", from, to, from)
			}
		}
	}
}

func TestCanTransition_RejectionAndWithdrawal(t *testing.T) {
	active := []domain.CandidateStatus{
		domain.StatusSubmitted, domain.StatusUnderReview, domain.StatusShortlisted,
		domain.StatusInterviewScheduled, domain.StatusInterviewed,
		domain.StatusOffered, domain.StatusOfferAccepted, domain.StatusOnHold,
	}
	for _, from := range active {
		if !domain.CanTransition(from, domain.StatusRejected) {
			t.Errorf("CanTransition(%s -> REJECTED) should be true", from)
		}
		if !domain.CanTransition(from, domain.StatusWithdrawn) {
			t.Errorf("CanTransition(%s -> WITHDRAWN) should be true", from)
		}
	}
}

func TestCanTransition_HoldAndResume(t *testing.T) {
	if !domain.CanTransition(domain.StatusUnderReview, domain.StatusOnHold) {
		t.Error("CanTransition(UNDER_REVIEW -> ON_HOLD) should be true")
	}
	if !domain.CanTransition(domain.StatusOnHold, domain.StatusUnderReview) {
		t.Error("CanTransition(ON_HOLD -> UNDER_REVIEW) should be true")
	}
	if !domain.CanTransition(domain.StatusOnHold, domain.StatusShortlisted) {
		t.Error("CanTransition(ON_HOLD -> SHORTLISTED) should be true")
	}
	if domain.CanTransition(domain.StatusOnHold, domain.StatusOffered) {
		t.Error("CanTransition(ON_HOLD -> OFFERED) should be false")
	}
}

func TestHasReached_TracksFirstEntryOnly(t *testing.T) {
	candidate := &domain.Candidate{Status: domain.StatusSubmitted}
	if candidate.HasReached(domain.StatusShortlisted) {
		t.Error("fresh candidate should not have reached SHORTLISTED")
	}
	candidate.MarkReached(domain.StatusShortlisted)
	if !candidate.HasReached(domain.StatusShortlisted) {
		t.Error("candidate should have reached SHORTLISTED after marking")
	}
	candidate.MarkReached(domain.StatusShortlisted)
	count := 0
	for _, s := range candidate.StatusesReached {
		if s == domain.StatusShortlisted {
			count++
		}
	}
	if count != 1 {
		t.Errorf("SHORTLISTED recorded %d times, want 1", count)
	}
}

func TestCommissionAmount_Percentage(t *testing.T) {
	cases := []struct {
		value  float64
		salary float64
		want   float64
	}{
		{10, 1000000, 100000},
		{8.33, 1200000, 99960},
		{12.5, 800000, 100000},
		{10, 999999.99, 100000},
	}
	for _, c := range cases {
		commission := domain.Commission{Type: domain.CommissionPercentage, Value: c.value}
		if got := commission.Amount(c.salary); got != c.want {
			t.Errorf("Amount(%v%% of %v) = %v, want %v", c.value, c.salary, got, c.want)
		}
	}
}

func TestCommissionAmount_Fixed(t *testing.T) {
	commission := domain.Commission{Type: domain.CommissionFixed, Value: 50000}
	for _, salary := range []float64{0, 400000, 10000000} {
		if got := commission.Amount(salary); got != 50000 {
			t.Errorf("Amount(fixed, salary=%v) = %v, want 50000", salary, got)
		}
	}
}

func TestCommissionAmount_Deterministic(t *testing.T) {
	commission := domain.Commission{Type: domain.CommissionPercentage, Value: 10}
	first := commission.Amount(1000000)
	for i := 0; i < 100; i++ {
		if got := commission.Amount(1000000); got != first {
			t.Fatalf("Amount not deterministic: got %v then %v", first, got)
		}
	}
	if first != 100000 {
		t.Errorf("10%% of 1,000,000 = %v, want 100000", first)
	}
}
