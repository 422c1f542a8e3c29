// Package authz is the pure authorization gate: it resolves an authenticated
// actor and a target resource into an allow/deny decision based on role and
// ownership. It performs no I/O.
package authz

import (
	"github.com/hirebridge/placement-service/internal/domain"
)

// Action enumerates the operations the gate distinguishes.
type Action string

const (
	ActionRead            Action = "read"
	ActionSubmitCandidate Action = "submit_candidate"
	ActionMutateLifecycle Action = "mutate_lifecycle"
	ActionManagePayouts   Action = "manage_payouts"
	ActionViewEarnings    Action = "view_earnings"
)

// Actor is the authenticated caller with its resolved profile IDs. Member is
// non-nil for team sub-accounts, which inherit the owning account's
// permissions subject to capability flags.
type Actor struct {
	UserID    string
	Role      domain.Role
	PartnerID string
	CompanyID string
	Member    *domain.TeamMemberCapabilities
}

// Resource exposes the owning profile IDs of a target entity. Domain
// aggregates implement this; an empty ID means no owner of that kind.
type Resource interface {
	OwnerPartnerID() string
	OwnerCompanyID() string
}

// CanAct decides whether the actor may perform the action on the resource.
// Admins bypass ownership entirely. Companies mutate only candidates they
// own; partners read only their own submissions and never mutate lifecycle
// state.
func CanAct(actor Actor, res Resource, action Action) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}

	switch actor.Role {
	case domain.RoleCompany:
		if actor.CompanyID == "" || res.OwnerCompanyID() != actor.CompanyID {
			return false
		}
		switch action {
		case ActionRead:
			return true
		case ActionMutateLifecycle:
			return actor.Member == nil || actor.Member.CanManageCandidates
		}
		return false

	case domain.RolePartner:
		if action == ActionSubmitCandidate {
			// Submission targets a job the partner does not own; plan
			// eligibility and job status are service preconditions.
			return actor.PartnerID != "" && (actor.Member == nil || actor.Member.CanSubmitCandidates)
		}
		if actor.PartnerID == "" || res.OwnerPartnerID() != actor.PartnerID {
			return false
		}
		switch action {
		case ActionRead:
			return true
		case ActionViewEarnings:
			return actor.Member == nil || actor.Member.CanViewEarnings
		}
		return false
	}

	return false
}
