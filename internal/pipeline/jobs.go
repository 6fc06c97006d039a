package pipeline

import (
	"strings"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

// AnyChoice disables the location or type filter of a job search
const AnyChoice = "all"

// JobQuery filters the job board. Empty or "all" fields match everything.
type JobQuery struct {
	Text     string `json:"q"`
	Location string `json:"location"`
	Type     string `json:"type"`
}

// SearchJobs returns the jobs matching every field of the query, in input order.
// Text matches title, company or description case-insensitively; location and
// type must match exactly.
func SearchJobs(jobs []models.Job, q JobQuery) []models.Job {
	text := strings.ToLower(q.Text)
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if text != "" &&
			!strings.Contains(strings.ToLower(job.Title), text) &&
			!strings.Contains(strings.ToLower(job.Company), text) &&
			!strings.Contains(strings.ToLower(job.Description), text) {
			continue
		}
		if !matchesChoice(q.Location, job.Location) || !matchesChoice(q.Type, job.Type) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchesChoice(want, got string) bool {
	return want == "" || want == AnyChoice || want == got
}

// Facets lists the distinct locations and types across jobs, first-seen order
func Facets(jobs []models.Job) (locations, types []string) {
	locations = []string{}
	types = []string{}
	seenLoc := make(map[string]bool)
	seenType := make(map[string]bool)
	for _, job := range jobs {
		if !seenLoc[job.Location] {
			seenLoc[job.Location] = true
			locations = append(locations, job.Location)
		}
		if !seenType[job.Type] {
			seenType[job.Type] = true
			types = append(types, job.Type)
		}
	}
	return locations, types
}
