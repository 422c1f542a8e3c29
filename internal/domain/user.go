package domain

import "time"

// Role enumerates the actor types on the marketplace.
type Role string

const (
	RolePartner Role = "partner"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// UserStatus represents account lifecycle states.
type UserStatus string

const (
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	UserStatusActive              UserStatus = "ACTIVE"
	UserStatusSuspended           UserStatus = "SUSPENDED"
)

// User is the identity record for an authenticated actor. Credential
// issuance and verification flows are handled by an external collaborator;
// the core only needs the role and account status.
type User struct {
	ID           string
	Email        string
	Mobile       string
	Role         Role
	PasswordHash string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
