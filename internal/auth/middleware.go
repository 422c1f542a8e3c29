package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hirebridge/placement-service/internal/authz"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/repository"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller with its resolved profile.
type Principal struct {
	User    *domain.User
	Partner *domain.PartnerProfile
	Company *domain.CompanyProfile
}

// Actor converts the principal into the form the authorization gate takes.
func (p *Principal) Actor() authz.Actor {
	actor := authz.Actor{UserID: p.User.ID, Role: p.User.Role}
	if p.Partner != nil {
		actor.PartnerID = p.Partner.ID
	}
	if p.Company != nil {
		actor.CompanyID = p.Company.ID
	}
	return actor
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	users     repository.UserRepository
	partners  repository.PartnerRepository
	companies repository.CompanyRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, partners repository.PartnerRepository, companies repository.CompanyRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, partners: partners, companies: companies}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.SubjectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	if user.Status == domain.UserStatusSuspended {
		return apperrors.NewForbidden("account suspended")
	}

	principal := &Principal{User: user}

	switch user.Role {
	case domain.RolePartner:
		partner, err := m.partners.GetByUserID(c.Context(), user.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewForbidden("partner profile missing")
			}
			return apperrors.MapError(err)
		}
		principal.Partner = partner
	case domain.RoleCompany:
		company, err := m.companies.GetByUserID(c.Context(), user.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewForbidden("company profile missing")
			}
			return apperrors.MapError(err)
		}
		principal.Company = company
	case domain.RoleAdmin:
		// admins carry no profile
	default:
		return apperrors.NewUnauthorized("unknown role")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
