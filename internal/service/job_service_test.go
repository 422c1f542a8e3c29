package service_test

import (
	"context"
	"testing"

	"github.com/hirebridge/placement-service/internal/domain"
	"github.com/hirebridge/placement-service/internal/service"
)

func createInput() service.JobCreateInput {
	return service.JobCreateInput{
		Title:           "Data Engineer",
		Description:     "Pipelines and warehousing",
		Vacancies:       2,
		CommissionType:  domain.CommissionPercentage,
		CommissionValue: 8.33,
	}
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestJobCreate_StartsAsDraft(t *testing.T) {
	f := newFixture()
	job, err := f.jobSvc.Create(context.Background(), f.companyActor, createInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if job.Status != domain.JobStatusDraft {
		t.Errorf("status = %s, want DRAFT", job.Status)
	}
	if job.CompanyID != f.company.ID || job.PostedBy != f.companyActor.UserID {
		t.Errorf("ownership = company %q postedBy %q", job.CompanyID, job.PostedBy)
	}
	// Drafts do not count as posted until activation.
	if f.company.Metrics.TotalJobsPosted != 0 {
		t.Errorf("jobs posted = %d, want 0 for draft", f.company.Metrics.TotalJobsPosted)
	}
}

func TestJobCreate_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*service.JobCreateInput)
	}{
		{"empty title", func(in *service.JobCreateInput) { in.Title = "  " }},
		{"zero vacancies", func(in *service.JobCreateInput) { in.Vacancies = 0 }},
		{"zero commission", func(in *service.JobCreateInput) { in.CommissionValue = 0 }},
		{"unknown commission type", func(in *service.JobCreateInput) { in.CommissionType = "bonus" }},
	}
	for _, c := range cases {
		input := createInput()
		c.mutate(&input)
		if _, err := f.jobSvc.Create(ctx, f.companyActor, input); err == nil {
			t.Errorf("%s: expected validation error, got nil", c.name)
		} else {
			wantCode(t, err, "VALIDATION_FAILED")
		}
	}
}

func TestJobCreate_RequiresCompanyActor(t *testing.T) {
	f := newFixture()
	_, err := f.jobSvc.Create(context.Background(), f.partnerActor, createInput())
	wantCode(t, err, "FORBIDDEN")
}

// ── Lifecycle ───────────────────────────────────────────────────────────────

func TestJobActivate_CountsPostingOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job, err := f.jobSvc.Create(ctx, f.companyActor, createInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	activated, err := f.jobSvc.Activate(ctx, f.companyActor, job.ID)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if activated.Status != domain.JobStatusActive {
		t.Errorf("status = %s, want ACTIVE", activated.Status)
	}
	if f.company.Metrics.TotalJobsPosted != 1 || f.company.Metrics.ActiveJobs != 1 {
		t.Errorf("metrics = %+v, want posted 1 active 1", f.company.Metrics)
	}

	// Activating an active job is invalid.
	_, err = f.jobSvc.Activate(ctx, f.companyActor, job.ID)
	wantReason(t, err, "INVALID_JOB_TRANSITION")

	// Pause and reactivate: the posted counter must not move again.
	if _, err := f.jobSvc.Pause(ctx, f.companyActor, job.ID); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if f.company.Metrics.ActiveJobs != 0 {
		t.Errorf("active jobs = %d after pause, want 0", f.company.Metrics.ActiveJobs)
	}
	if _, err := f.jobSvc.Activate(ctx, f.companyActor, job.ID); err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}
	if f.company.Metrics.TotalJobsPosted != 1 || f.company.Metrics.ActiveJobs != 1 {
		t.Errorf("metrics = %+v after reactivate, want posted 1 active 1", f.company.Metrics)
	}
}

func TestJobPause_RequiresActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job, err := f.jobSvc.Create(ctx, f.companyActor, createInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = f.jobSvc.Pause(ctx, f.companyActor, job.ID)
	wantReason(t, err, "INVALID_JOB_TRANSITION")
}

func TestJobClose_AdjustsActiveCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job, err := f.jobSvc.Create(ctx, f.companyActor, createInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := f.jobSvc.Activate(ctx, f.companyActor, job.ID); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	closed, err := f.jobSvc.Close(ctx, f.companyActor, job.ID)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closed.Status != domain.JobStatusClosed {
		t.Errorf("status = %s, want CLOSED", closed.Status)
	}
	if f.company.Metrics.ActiveJobs != 0 {
		t.Errorf("active jobs = %d, want 0", f.company.Metrics.ActiveJobs)
	}

	_, err = f.jobSvc.Close(ctx, f.companyActor, job.ID)
	wantReason(t, err, "INVALID_JOB_TRANSITION")
}

func TestJobLifecycle_ForeignCompanyForbidden(t *testing.T) {
	f := newFixture()
	foreign := f.companyActor
	foreign.CompanyID = "c2"
	_, err := f.jobSvc.Activate(context.Background(), foreign, f.job.ID)
	wantCode(t, err, "FORBIDDEN")
}

// ── Partner visibility ──────────────────────────────────────────────────────

func TestGetForPartner_OnlyActiveVisible(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	job, err := f.jobSvc.GetForPartner(ctx, f.partnerActor, f.job.ID)
	if err != nil {
		t.Fatalf("GetForPartner failed: %v", err)
	}
	if job.ID != f.job.ID {
		t.Errorf("job = %q, want %q", job.ID, f.job.ID)
	}

	// A draft is indistinguishable from a missing job.
	draft, err := f.jobSvc.Create(ctx, f.companyActor, createInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = f.jobSvc.GetForPartner(ctx, f.partnerActor, draft.ID)
	wantCode(t, err, "NOT_FOUND")
}

func TestGetForPartner_CountsViews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.jobSvc.GetForPartner(ctx, f.partnerActor, f.job.ID); err != nil {
		t.Fatalf("GetForPartner failed: %v", err)
	}
	if f.job.Metrics.Views != 1 {
		t.Errorf("views = %d, want 1", f.job.Metrics.Views)
	}
}

func TestGetForCompany_OwnershipEnforced(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.jobSvc.GetForCompany(ctx, f.companyActor, f.job.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}

	foreign := f.companyActor
	foreign.CompanyID = "c2"
	_, err := f.jobSvc.GetForCompany(ctx, foreign, f.job.ID)
	wantCode(t, err, "FORBIDDEN")
}

func TestListOpenForPartner_ReturnsActiveOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.jobSvc.Create(ctx, f.companyActor, createInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	jobs, err := f.jobSvc.ListOpenForPartner(ctx, f.partner.Plan, 50, 0)
	if err != nil {
		t.Fatalf("ListOpenForPartner failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != f.job.ID {
		t.Errorf("open jobs = %+v, want only the seeded active job", jobs)
	}
}
