package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirebridge/placement-service/internal/api/dto"
	"github.com/hirebridge/placement-service/internal/domain"
)

func candidateSummary(candidate *domain.Candidate) dto.CandidateSummary {
	return dto.CandidateSummary{
		ID:          candidate.ID,
		JobID:       candidate.JobID,
		CompanyID:   candidate.CompanyID,
		SubmittedBy: candidate.SubmittedBy,
		FirstName:   candidate.FirstName,
		LastName:    candidate.LastName,
		Email:       candidate.Email,
		Status:      candidate.Status,
		CreatedAt:   candidate.CreatedAt,
		UpdatedAt:   candidate.UpdatedAt,
	}
}

func candidateDetail(candidate *domain.Candidate, history []domain.StatusHistoryEntry, interviews []domain.Interview) dto.CandidateDetailResponse {
	detail := dto.CandidateDetailResponse{
		CandidateSummary: candidateSummary(candidate),
		Mobile:           candidate.Mobile,
		Profile:          candidate.Profile,
		ResumeURL:        candidate.Resume.URL,
		History:          historyResponses(history),
		Interviews:       interviewResponses(interviews),
	}
	if offer := candidate.Offer; offer != nil {
		detail.Offer = &dto.OfferResponseBody{
			Salary:           offer.Salary,
			JoiningDate:      offer.JoiningDate,
			OfferLetterURL:   offer.OfferLetterURL,
			OfferedAt:        offer.OfferedAt,
			RespondedAt:      offer.RespondedAt,
			Response:         offer.Response,
			NegotiationNotes: offer.NegotiationNotes,
		}
	}
	if joining := candidate.Joining; joining != nil {
		detail.Joining = &dto.JoiningResponse{
			JoiningDate:        joining.ActualJoiningDate,
			Confirmed:          joining.Confirmed,
			ConfirmedAt:        joining.ConfirmedAt,
			DocumentsSubmitted: joining.DocumentsSubmitted,
		}
	}
	if payout := candidate.Payout; payout != nil {
		detail.Payout = &dto.CommissionResponse{
			CommissionAmount: payout.CommissionAmount,
			Status:           payout.Status,
			PaidAt:           payout.PaidAt,
			TransactionID:    payout.TransactionID,
		}
	}
	return detail
}

func historyResponses(entries []domain.StatusHistoryEntry) []dto.HistoryResponse {
	resp := make([]dto.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.HistoryResponse{
			ID:        entry.ID,
			Status:    entry.Status,
			ChangedBy: entry.ChangedBy,
			ChangedAt: entry.ChangedAt,
			Notes:     entry.Notes,
		})
	}
	return resp
}

func interviewResponses(interviews []domain.Interview) []dto.InterviewResponse {
	resp := make([]dto.InterviewResponse, 0, len(interviews))
	for _, interview := range interviews {
		resp = append(resp, interviewResponse(&interview))
	}
	return resp
}

func interviewResponse(interview *domain.Interview) dto.InterviewResponse {
	return dto.InterviewResponse{
		ID:               interview.ID,
		Round:            interview.Round,
		Type:             interview.Type,
		ScheduledAt:      interview.ScheduledAt,
		InterviewerName:  interview.InterviewerName,
		InterviewerEmail: interview.InterviewerEmail,
		MeetingLink:      interview.MeetingLink,
		Feedback:         interview.Feedback,
		Rating:           interview.Rating,
		Result:           interview.Result,
		CreatedAt:        interview.CreatedAt,
	}
}

func noteResponses(notes []domain.Note) []dto.NoteResponse {
	resp := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, dto.NoteResponse{
			ID:         note.ID,
			Content:    note.Content,
			AddedBy:    note.AddedBy,
			AddedAt:    note.AddedAt,
			IsInternal: note.IsInternal,
		})
	}
	return resp
}

func jobResponse(job *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:              job.ID,
		CompanyID:       job.CompanyID,
		Title:           job.Title,
		Description:     job.Description,
		Status:          job.Status,
		Vacancies:       job.Vacancies,
		FilledPositions: job.FilledPositions,
		CommissionType:  job.Commission.Type,
		CommissionValue: job.Commission.Value,
		EligiblePlans:   job.EligiblePlans,
		Metrics: dto.JobMetricsResponse{
			Views:        job.Metrics.Views,
			Applications: job.Metrics.Applications,
			Shortlisted:  job.Metrics.Shortlisted,
			Interviewed:  job.Metrics.Interviewed,
			Offered:      job.Metrics.Offered,
			Joined:       job.Metrics.Joined,
		},
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

func jobListing(job *domain.Job) dto.JobListingResponse {
	return dto.JobListingResponse{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		Vacancies:       job.Vacancies,
		CommissionType:  job.Commission.Type,
		CommissionValue: job.Commission.Value,
		CreatedAt:       job.CreatedAt,
	}
}

func payoutResponse(payout *domain.Payout) dto.PayoutResponse {
	return dto.PayoutResponse{
		ID:              payout.ID,
		PartnerID:       payout.PartnerID,
		CandidateID:     payout.CandidateID,
		JobID:           payout.JobID,
		CompanyID:       payout.CompanyID,
		Gross:           payout.Amount.Gross,
		TDS:             payout.Amount.TDS,
		PlatformFee:     payout.Amount.PlatformFee,
		Net:             payout.Amount.Net,
		Status:          payout.Status,
		TransactionID:   payout.PaymentDetails.TransactionID,
		UTRNumber:       payout.PaymentDetails.UTRNumber,
		PaidAt:          payout.PaymentDetails.PaidAt,
		ApprovedBy:      payout.ApprovedBy,
		ApprovedAt:      payout.ApprovedAt,
		RejectionReason: payout.RejectionReason,
		CreatedAt:       payout.CreatedAt,
		UpdatedAt:       payout.UpdatedAt,
	}
}

func parseCandidateStatuses(c *fiber.Ctx) ([]domain.CandidateStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	var statuses []domain.CandidateStatus
	for _, part := range strings.Split(raw, ",") {
		status, err := domain.ParseCandidateStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func parsePayoutStatuses(c *fiber.Ctx) []domain.PayoutStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	var statuses []domain.PayoutStatus
	for _, part := range strings.Split(raw, ",") {
		statuses = append(statuses, domain.PayoutStatus(strings.TrimSpace(part)))
	}
	return statuses
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
