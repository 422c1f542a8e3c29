package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirebridge/placement-service/internal/api/dto"
	"github.com/hirebridge/placement-service/internal/auth"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/repository"
	"github.com/hirebridge/placement-service/internal/service"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

// AdminHandler serves platform-admin endpoints: payout settlement and the
// status override escape hatch.
type AdminHandler struct {
	candidates *service.CandidateService
	payouts    *service.PayoutService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(candidates *service.CandidateService, payouts *service.PayoutService) *AdminHandler {
	return &AdminHandler{candidates: candidates, payouts: payouts}
}

// ListCandidates GET /admin/candidates.
func (h *AdminHandler) ListCandidates(c *fiber.Ctx) error {
	statuses, err := parseCandidateStatuses(c)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	filter := repository.CandidateFilter{Statuses: statuses}
	if raw := c.Query("job_id"); raw != "" {
		filter.JobID = &raw
	}
	filter.Limit, filter.Offset = parsePagination(c)
	candidates, err := h.candidates.ListAll(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.CandidateSummary, 0, len(candidates))
	for i := range candidates {
		items = append(items, candidateSummary(&candidates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetCandidate GET /admin/candidates/:id.
func (h *AdminHandler) GetCandidate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	candidate, history, interviews, err := h.candidates.GetForActor(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateDetail(candidate, history, interviews)})
}

// ForceCandidateStatus PUT /admin/candidates/:id/status.
func (h *AdminHandler) ForceCandidateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseCandidateStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"field": "status"})
	}
	candidate, err := h.candidates.ForceStatus(c.Context(), principal.Actor(), c.Params("id"), status, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateSummary(candidate)})
}

// ListPayouts GET /admin/payouts.
func (h *AdminHandler) ListPayouts(c *fiber.Ctx) error {
	filter := repository.PayoutFilter{Statuses: parsePayoutStatuses(c)}
	if raw := c.Query("partner_id"); raw != "" {
		filter.PartnerID = &raw
	}
	filter.Limit, filter.Offset = parsePagination(c)
	payouts, err := h.payouts.ListAll(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.PayoutResponse, 0, len(payouts))
	for i := range payouts {
		items = append(items, payoutResponse(&payouts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApprovePayout POST /admin/payouts/:id/approve.
func (h *AdminHandler) ApprovePayout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	payout, err := h.payouts.Approve(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payoutResponse(payout)})
}

// ProcessPayout POST /admin/payouts/:id/process.
func (h *AdminHandler) ProcessPayout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	payout, err := h.payouts.Process(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payoutResponse(payout)})
}

// HoldPayout POST /admin/payouts/:id/hold.
func (h *AdminHandler) HoldPayout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.PayoutStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	payout, err := h.payouts.Hold(c.Context(), principal.Actor(), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payoutResponse(payout)})
}

// RejectPayout POST /admin/payouts/:id/reject.
func (h *AdminHandler) RejectPayout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.PayoutStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	payout, err := h.payouts.Reject(c.Context(), principal.Actor(), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payoutResponse(payout)})
}

// CompletePayout POST /admin/payouts/:id/complete.
func (h *AdminHandler) CompletePayout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.CompletePayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TransactionID == "" {
		return apperrors.NewValidationError("transaction_id required", nil)
	}
	payout, err := h.payouts.Complete(c.Context(), principal.Actor(), c.Params("id"), service.CompleteInput{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		TransactionID: req.TransactionID,
		UTRNumber:     req.UTRNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payoutResponse(payout)})
}
