// Package ranking scores a job's applicants and orders them best match first.
package ranking

import (
	"sort"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/scoring"
)

// Rank scores every applicant against the job and returns new scored values
// sorted by match score, highest first. Applicants with equal scores keep
// their input order. The input slice is not modified.
func Rank(job models.Job, applicants []models.Applicant) []models.ScoredApplicant {
	ranked := make([]models.ScoredApplicant, len(applicants))
	for i, applicant := range applicants {
		ranked[i] = models.ScoredApplicant{
			Applicant:  applicant,
			MatchScore: scoring.Score(job, applicant),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	return ranked
}

// Unscored wraps applicants without scoring them, in input order.
// Used when the job record is not available; every score reads as 0.
func Unscored(applicants []models.Applicant) []models.ScoredApplicant {
	out := make([]models.ScoredApplicant, len(applicants))
	for i, applicant := range applicants {
		out[i] = models.ScoredApplicant{Applicant: applicant}
	}
	return out
}
