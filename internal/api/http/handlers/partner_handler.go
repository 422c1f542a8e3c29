package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirebridge/placement-service/internal/api/dto"
	"github.com/hirebridge/placement-service/internal/auth"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/service"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

// PartnerHandler serves staffing-partner endpoints: open jobs, submissions
// and settlement records.
type PartnerHandler struct {
	candidates *service.CandidateService
	jobs       *service.JobService
	payouts    *service.PayoutService
}

// NewPartnerHandler constructs handler.
func NewPartnerHandler(candidates *service.CandidateService, jobs *service.JobService, payouts *service.PayoutService) *PartnerHandler {
	return &PartnerHandler{candidates: candidates, jobs: jobs, payouts: payouts}
}

// ListJobs GET /partner/jobs.
func (h *PartnerHandler) ListJobs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	limit, offset := parsePagination(c)
	jobs, err := h.jobs.ListOpenForPartner(c.Context(), principal.Partner.Plan, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.JobListingResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobListing(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetJob GET /partner/jobs/:id.
func (h *PartnerHandler) GetJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	job, err := h.jobs.GetForPartner(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobListing(job)})
}

// SubmitCandidate POST /partner/candidates.
func (h *PartnerHandler) SubmitCandidate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	var req dto.SubmitCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.JobID == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("job_id, first_name, email required", nil)
	}

	input := service.SubmitInput{
		JobID:        req.JobID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Mobile:       req.Mobile,
		ConsentGiven: req.ConsentGiven,
		Resume: domain.ResumeRef{
			URL:      req.ResumeURL,
			FileName: req.ResumeFileName,
		},
		Profile: req.Profile,
	}
	candidate, err := h.candidates.Submit(c.Context(), principal.Actor(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": candidateSummary(candidate)})
}

// ListCandidates GET /partner/candidates.
func (h *PartnerHandler) ListCandidates(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	statuses, err := parseCandidateStatuses(c)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	limit, offset := parsePagination(c)
	candidates, err := h.candidates.ListForPartner(c.Context(), principal.Partner.ID, statuses, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.CandidateSummary, 0, len(candidates))
	for i := range candidates {
		items = append(items, candidateSummary(&candidates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetCandidate GET /partner/candidates/:id.
func (h *PartnerHandler) GetCandidate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	candidate, history, interviews, err := h.candidates.GetForActor(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateDetail(candidate, history, interviews)})
}

// ListCandidateNotes GET /partner/candidates/:id/notes.
func (h *PartnerHandler) ListCandidateNotes(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	notes, err := h.candidates.ListNotes(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noteResponses(notes)})
}

// ListPayouts GET /partner/payouts.
func (h *PartnerHandler) ListPayouts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	limit, offset := parsePagination(c)
	payouts, err := h.payouts.ListForPartner(c.Context(), principal.Partner.ID, parsePayoutStatuses(c), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.PayoutResponse, 0, len(payouts))
	for i := range payouts {
		items = append(items, payoutResponse(&payouts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetPayout GET /partner/payouts/:id.
func (h *PartnerHandler) GetPayout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Partner == nil {
		return apperrors.NewUnauthorized("partner required")
	}
	payout, err := h.payouts.GetForActor(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payoutResponse(payout)})
}
