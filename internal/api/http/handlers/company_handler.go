package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hirebridge/placement-service/internal/api/dto"
	"github.com/hirebridge/placement-service/internal/auth"
	"github.com/hirebridge/placement-service/internal/authz"
	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/service"
	apperrors "github.com/hirebridge/placement-service/pkg/errorutil"
)

// CompanyHandler serves employer endpoints: job postings and the candidate
// lifecycle commands.
type CompanyHandler struct {
	candidates *service.CandidateService
	jobs       *service.JobService
}

// NewCompanyHandler constructs handler.
func NewCompanyHandler(candidates *service.CandidateService, jobs *service.JobService) *CompanyHandler {
	return &CompanyHandler{candidates: candidates, jobs: jobs}
}

// CreateJob POST /company/jobs.
func (h *CompanyHandler) CreateJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	job, err := h.jobs.Create(c.Context(), principal.Actor(), service.JobCreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Vacancies:       req.Vacancies,
		CommissionType:  req.CommissionType,
		CommissionValue: req.CommissionValue,
		EligiblePlans:   req.EligiblePlans,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": jobResponse(job)})
}

// ListJobs GET /company/jobs.
func (h *CompanyHandler) ListJobs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var statuses []domain.JobStatus
	if raw := c.Query("status"); raw != "" {
		statuses = append(statuses, domain.JobStatus(raw))
	}
	limit, offset := parsePagination(c)
	jobs, err := h.jobs.ListForCompany(c.Context(), principal.Company.ID, statuses, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetJob GET /company/jobs/:id.
func (h *CompanyHandler) GetJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	job, err := h.jobs.GetForCompany(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// ActivateJob POST /company/jobs/:id/activate.
func (h *CompanyHandler) ActivateJob(c *fiber.Ctx) error {
	return h.jobAction(c, h.jobs.Activate)
}

// PauseJob POST /company/jobs/:id/pause.
func (h *CompanyHandler) PauseJob(c *fiber.Ctx) error {
	return h.jobAction(c, h.jobs.Pause)
}

// CloseJob POST /company/jobs/:id/close.
func (h *CompanyHandler) CloseJob(c *fiber.Ctx) error {
	return h.jobAction(c, h.jobs.Close)
}

// ListCandidates GET /company/candidates.
func (h *CompanyHandler) ListCandidates(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	statuses, err := parseCandidateStatuses(c)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	var jobID *string
	if raw := c.Query("job_id"); raw != "" {
		jobID = &raw
	}
	limit, offset := parsePagination(c)
	candidates, err := h.candidates.ListForCompany(c.Context(), principal.Company.ID, jobID, statuses, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.CandidateSummary, 0, len(candidates))
	for i := range candidates {
		items = append(items, candidateSummary(&candidates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetCandidate GET /company/candidates/:id.
func (h *CompanyHandler) GetCandidate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	candidate, history, interviews, err := h.candidates.GetForActor(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateDetail(candidate, history, interviews)})
}

// UpdateCandidateStatus PATCH /company/candidates/:id/status.
func (h *CompanyHandler) UpdateCandidateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseCandidateStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"field": "status"})
	}
	candidate, err := h.candidates.UpdateStatus(c.Context(), principal.Actor(), c.Params("id"), status, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateSummary(candidate)})
}

// ScheduleInterview POST /company/candidates/:id/interviews.
func (h *CompanyHandler) ScheduleInterview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.ScheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ScheduledAt.IsZero() {
		return apperrors.NewValidationError("scheduled_at required", nil)
	}
	candidate, interview, err := h.candidates.ScheduleInterview(c.Context(), principal.Actor(), c.Params("id"), service.InterviewInput{
		Type:             req.Type,
		ScheduledAt:      req.ScheduledAt,
		InterviewerName:  req.InterviewerName,
		InterviewerEmail: req.InterviewerEmail,
		MeetingLink:      req.MeetingLink,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"candidate": candidateSummary(candidate),
		"interview": interviewResponse(interview),
	}})
}

// RecordInterviewFeedback PATCH /company/candidates/:id/interviews/:interviewId.
func (h *CompanyHandler) RecordInterviewFeedback(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.InterviewFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	candidate, interview, err := h.candidates.RecordInterviewFeedback(c.Context(), principal.Actor(), c.Params("id"), service.FeedbackInput{
		InterviewID: c.Params("interviewId"),
		Feedback:    req.Feedback,
		Rating:      req.Rating,
		Result:      req.Result,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"candidate": candidateSummary(candidate),
		"interview": interviewResponse(interview),
	}})
}

// MakeOffer POST /company/candidates/:id/offer.
func (h *CompanyHandler) MakeOffer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.MakeOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	candidate, err := h.candidates.MakeOffer(c.Context(), principal.Actor(), c.Params("id"), service.OfferInput{
		Salary:         req.Salary,
		JoiningDate:    req.JoiningDate,
		OfferLetterURL: req.OfferLetterURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateSummary(candidate)})
}

// RespondToOffer POST /company/candidates/:id/offer/response.
func (h *CompanyHandler) RespondToOffer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.OfferResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	candidate, err := h.candidates.RespondToOffer(c.Context(), principal.Actor(), c.Params("id"), req.Response, req.NegotiationNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateSummary(candidate)})
}

// ConfirmJoining POST /company/candidates/:id/joining.
func (h *CompanyHandler) ConfirmJoining(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.ConfirmJoiningRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.JoiningDate.IsZero() {
		return apperrors.NewValidationError("joining_date required", nil)
	}
	candidate, err := h.candidates.ConfirmJoining(c.Context(), principal.Actor(), c.Params("id"), req.JoiningDate, req.DocumentsSubmitted)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateSummary(candidate)})
}

// AddNote POST /company/candidates/:id/notes.
func (h *CompanyHandler) AddNote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	note, err := h.candidates.AddNote(c.Context(), principal.Actor(), c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": noteResponses([]domain.Note{*note})[0]})
}

// ListCandidateNotes GET /company/candidates/:id/notes.
func (h *CompanyHandler) ListCandidateNotes(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	notes, err := h.candidates.ListNotes(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noteResponses(notes)})
}

func (h *CompanyHandler) jobAction(c *fiber.Ctx, action func(ctx context.Context, actor authz.Actor, jobID string) (*domain.Job, error)) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Company == nil {
		return apperrors.NewUnauthorized("company required")
	}
	job, err := action(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}