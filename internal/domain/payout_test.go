package domain_test

import (
	"testing"

	"github.com/hirebridge/placement-service/internal/domain"
)

func TestCanTransitionPayout(t *testing.T) {
	cases := []struct {
		from domain.PayoutStatus
		to   domain.PayoutStatus
		want bool
	}{
		{domain.PayoutPending, domain.PayoutApproved, true},
		{domain.PayoutPending, domain.PayoutPaid, true},
		{domain.PayoutPending, domain.PayoutRejected, true},
		{domain.PayoutPending, domain.PayoutOnHold, true},
		{domain.PayoutPending, domain.PayoutProcessing, false},
		{domain.PayoutApproved, domain.PayoutProcessing, true},
		{domain.PayoutApproved, domain.PayoutPaid, true},
		{domain.PayoutApproved, domain.PayoutRejected, true},
		{domain.PayoutApproved, domain.PayoutOnHold, true},
		{domain.PayoutApproved, domain.PayoutPending, false},
		{domain.PayoutProcessing, domain.PayoutPaid, true},
		{domain.PayoutProcessing, domain.PayoutRejected, true},
		{domain.PayoutProcessing, domain.PayoutOnHold, true},
		{domain.PayoutProcessing, domain.PayoutApproved, false},
		{domain.PayoutOnHold, domain.PayoutApproved, true},
		{domain.PayoutOnHold, domain.PayoutRejected, true},
		{domain.PayoutOnHold, domain.PayoutPaid, false},
		{domain.PayoutOnHold, domain.PayoutProcessing, false},
	}
	for _, c := range cases {
		if got := domain.CanTransitionPayout(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionPayout(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransitionPayout_TerminalStatesFrozen(t *testing.T) {
	all := []domain.PayoutStatus{
		domain.PayoutPending, domain.PayoutApproved, domain.PayoutProcessing,
		domain.PayoutPaid, domain.PayoutOnHold, domain.PayoutRejected,
	}
	for _, from := range []domain.PayoutStatus{domain.PayoutPaid, domain.PayoutRejected} {
		for _, to := range all {
			if domain.CanTransitionPayout(from, to) {
				t.Errorf("CanTransitionPayout(%s -> %s) should be false: %s is terminal", from, to, from)
			}
		}
	}
}

func TestPayoutStatusIsTerminal(t *testing.T) {
	cases := []struct {
		status domain.PayoutStatus
		want   bool
	}{
		{domain.PayoutPending, false},
		{domain.PayoutApproved, false},
		{domain.PayoutProcessing, false},
		{domain.PayoutOnHold, false},
		{domain.PayoutPaid, true},
		{domain.PayoutRejected, true},
	}
	for _, c := range cases {
		if got := c.status.IsTerminal(); got != c.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}
