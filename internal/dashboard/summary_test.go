package dashboard

import (
	"fmt"
	"testing"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

func TestSummarize(t *testing.T) {
	jobs := []models.Job{
		{ID: "j1", PostedDate: "2024-01-01"},
		{ID: "j2", PostedDate: "2024-03-01"},
		{ID: "j3", PostedDate: ""},
		{ID: "j4", PostedDate: "2024-02-01"},
		{ID: "j5", PostedDate: "2023-12-01"},
		{ID: "j6", PostedDate: "2024-04-01"},
	}
	applicants := []models.Applicant{
		{JobID: "j1", Status: models.StatusHired},
		{JobID: "j1"},
		{JobID: "j4", Status: models.StatusRejected},
		{JobID: "j4"},
		{JobID: "j4", Status: models.StatusInterview},
		{JobID: "gone"},
	}

	s := Summarize(jobs, applicants)

	if s.TotalJobs != 6 || s.TotalApplicants != 6 {
		t.Errorf("Totals = %d jobs, %d applicants", s.TotalJobs, s.TotalApplicants)
	}
	want := models.StatusCounts{Applied: 3, Interview: 1, Hired: 1, Rejected: 1}
	if s.ByStatus != want {
		t.Errorf("ByStatus = %+v, want %+v", s.ByStatus, want)
	}

	if got := ids(s.RecentJobs); got != "[j6 j2 j4 j1 j5]" {
		t.Errorf("RecentJobs = %s", got)
	}
	// Ties keep catalog order.
	if got := ids(s.TopJobs); got != "[j4 j1 j2 j3 j5]" {
		t.Errorf("TopJobs = %s", got)
	}
	if s.TopJobs[0].ApplicantCount != 3 {
		t.Errorf("Top job count = %d, want 3", s.TopJobs[0].ApplicantCount)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.TotalJobs != 0 || s.ByStatus.Total() != 0 {
		t.Errorf("Expected empty summary, got %+v", s)
	}
	if len(s.RecentJobs) != 0 || len(s.TopJobs) != 0 {
		t.Error("Expected no job lists")
	}
}

func ids(activity []JobActivity) string {
	out := make([]string, len(activity))
	for i, a := range activity {
		out[i] = a.Job.ID
	}
	return fmt.Sprint(out)
}
