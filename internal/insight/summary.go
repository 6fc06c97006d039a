// Package insight asks a language model for a short recruiter-facing
// summary of a job's best matching applicants.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/scoring"
)

// Generator produces text for a prompt
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Summarizer writes shortlist summaries with a Generator
type Summarizer struct {
	gen Generator
}

// NewSummarizer creates a new summarizer
func NewSummarizer(gen Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize describes the shortlist. The match scores are computed locally and
// passed in; the model only narrates them.
func (s *Summarizer) Summarize(ctx context.Context, job models.Job, shortlist []models.ScoredApplicant) (string, error) {
	if len(shortlist) == 0 {
		return "", fmt.Errorf("no applicants to summarize")
	}

	response, err := s.gen.GenerateContent(ctx, buildPrompt(job, shortlist))
	if err != nil {
		return "", fmt.Errorf("failed to get LLM response: %w", err)
	}

	summary := strings.TrimSpace(response)
	if summary == "" {
		return "", fmt.Errorf("empty summary returned")
	}
	return summary, nil
}

func buildPrompt(job models.Job, shortlist []models.ScoredApplicant) string {
	var sb strings.Builder

	sb.WriteString("You are a recruiting assistant. Summarize the shortlisted applicants for a hiring manager.\n\n")

	sb.WriteString("## JOB\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", job.Title))
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company: %s\n", job.Company))
	}
	if len(job.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Required skills: %s\n", strings.Join(job.Keywords, ", ")))
	}
	if job.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", job.Description))
	}

	sb.WriteString("\n## SHORTLIST (already ranked, do not re-score)\n")
	for i, a := range shortlist {
		terms := scoring.Breakdown(job, a.Applicant)
		sb.WriteString(fmt.Sprintf("%d. %s: match %d%%, %g years experience, %d of %d skills matched, status %s\n",
			i+1, a.Name, a.MatchScore, a.Experience, terms.Matched, len(job.Keywords), a.Status))
		if len(a.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("   Skills: %s\n", strings.Join(a.Skills, ", ")))
		}
	}

	sb.WriteString("\nWrite 3-5 sentences of plain text: who stands out and why, and any skill gaps to explore in interviews.\n")
	return sb.String()
}
