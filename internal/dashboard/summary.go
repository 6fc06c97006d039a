// Package dashboard aggregates the catalog for the recruiter landing page.
package dashboard

import (
	"sort"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/pipeline"
)

// ListLimit caps the recent and top job lists
const ListLimit = 5

// JobActivity pairs a job with how many applicants it has
type JobActivity struct {
	Job            models.Job `json:"job"`
	ApplicantCount int        `json:"applicantCount"`
}

// Summary is the dashboard payload
type Summary struct {
	TotalJobs       int                 `json:"totalJobs"`
	TotalApplicants int                 `json:"totalApplicants"`
	ByStatus        models.StatusCounts `json:"byStatus"`
	RecentJobs      []JobActivity       `json:"recentJobs"`
	TopJobs         []JobActivity       `json:"topJobs"`
}

// Summarize builds the dashboard from every job and applicant.
// Applicants whose job is not in jobs still count toward the totals.
func Summarize(jobs []models.Job, applicants []models.Applicant) Summary {
	perJob := make(map[string]int, len(jobs))
	for _, a := range applicants {
		perJob[a.JobID]++
	}

	activity := make([]JobActivity, len(jobs))
	for i, j := range jobs {
		activity[i] = JobActivity{Job: j, ApplicantCount: perJob[j.ID]}
	}

	return Summary{
		TotalJobs:       len(jobs),
		TotalApplicants: len(applicants),
		ByStatus:        models.CountByStatus(applicants),
		RecentJobs:      recentJobs(activity),
		TopJobs:         topJobs(activity),
	}
}

func recentJobs(activity []JobActivity) []JobActivity {
	out := make([]JobActivity, len(activity))
	copy(out, activity)

	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := pipeline.ParseAppliedDate(out[i].Job.PostedDate)
		tj, okJ := pipeline.ParseAppliedDate(out[j].Job.PostedDate)
		if okI != okJ {
			return okI
		}
		return okI && ti.After(tj)
	})
	return limit(out)
}

func topJobs(activity []JobActivity) []JobActivity {
	out := make([]JobActivity, len(activity))
	copy(out, activity)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ApplicantCount > out[j].ApplicantCount
	})
	return limit(out)
}

func limit(activity []JobActivity) []JobActivity {
	if len(activity) > ListLimit {
		return activity[:ListLimit]
	}
	return activity
}
