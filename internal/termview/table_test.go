package termview

import (
	"strings"
	"testing"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

func TestRender(t *testing.T) {
	job := models.Job{Title: "Backend Engineer", Company: "Acme", Keywords: []string{"go", "sql"}}
	applicants := []models.ScoredApplicant{
		{Applicant: models.Applicant{Name: "Bea", Status: models.StatusInterview, Experience: 6, AppliedDate: "2024-03-01T10:00:00Z"}, MatchScore: 100},
		{Applicant: models.Applicant{Name: "Ada", Experience: 2}, MatchScore: 48},
	}

	out := Render(job, applicants)

	for _, want := range []string{"Backend Engineer", "Acme", "Skills: go, sql", "Bea", "100%", "Interview", "2024-03-01", "Ada", "48%", "Applied 1", "Hired 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Bea") > strings.Index(out, "Ada") {
		t.Error("Expected rows in the given order")
	}
}

func TestRender_NoApplicants(t *testing.T) {
	out := Render(models.Job{Title: "Designer"}, nil)
	if !strings.Contains(out, "No applicants") {
		t.Errorf("Expected empty marker:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Ada", 10, "Ada"},
		{"Bartholomew", 5, "Bart…"},
		{"Zoë", 3, "Zoë"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}
