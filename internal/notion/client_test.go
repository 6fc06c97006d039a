package notion

import (
	"testing"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

func TestBuildShortlistProperties(t *testing.T) {
	job := models.Job{Title: "Backend Engineer"}
	a := models.ScoredApplicant{
		Applicant: models.Applicant{
			Name:      "Ada",
			Email:     "ada@example.com",
			Status:    models.StatusInterview,
			ResumeURL: "https://example.com/ada.pdf",
		},
		MatchScore: 87,
	}

	props := buildShortlistProperties(job, a)

	if got := props["Name"].Title[0].Text.Content; got != "Ada" {
		t.Errorf("Name = %q, want Ada", got)
	}
	if got := props["Job"].RichText[0].Text.Content; got != "Backend Engineer" {
		t.Errorf("Job = %q", got)
	}
	if got := props["Match"].RichText[0].Text.Content; got != "87% (high)" {
		t.Errorf("Match = %q, want 87%% (high)", got)
	}
	if got := props["Status"].Select.Name; got != "Interview" {
		t.Errorf("Status = %q, want Interview", got)
	}
	if got := *props["Resume"].URL; got != a.ResumeURL {
		t.Errorf("Resume = %q", got)
	}
}

func TestBuildShortlistProperties_OmitsEmptyFields(t *testing.T) {
	props := buildShortlistProperties(models.Job{}, models.ScoredApplicant{Applicant: models.Applicant{Name: "Kim"}})

	for _, key := range []string{"Job", "Email", "Resume"} {
		if _, ok := props[key]; ok {
			t.Errorf("Expected %s to be omitted", key)
		}
	}
	if got := props["Status"].Select.Name; got != "Applied" {
		t.Errorf("Status = %q, want Applied", got)
	}
}
