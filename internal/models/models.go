package models

import "strings"

// Job represents a job posting. Only Keywords take part in scoring.
type Job struct {
	ID               string   `json:"_id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Level            string   `json:"level"`
	Description      string   `json:"description"`
	Salary           float64  `json:"salary"`
	Experience       float64  `json:"experience"`
	Keywords         []string `json:"keywords"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	PostedDate       string   `json:"postedDate"`
	Deadline         string   `json:"deadline,omitempty"`
}

// Note is a free-text remark left on an applicant by a reviewer
type Note struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Applicant is a candidate who applied to exactly one job
type Applicant struct {
	ID          string   `json:"_id"`
	JobID       string   `json:"jobId"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Status      Status   `json:"status"`
	AppliedDate string   `json:"appliedDate,omitempty"` // ISO-8601, optional
	Experience  float64  `json:"experience"`            // years
	Skills      []string `json:"skills,omitempty"`
	ResumeURL   string   `json:"resumeUrl,omitempty"`
	Notes       []Note   `json:"notes,omitempty"`
}

// ScoredApplicant is an applicant with a match score computed for one job.
// It is a transient projection; the score is never written back to the record.
type ScoredApplicant struct {
	Applicant
	MatchScore int `json:"matchScore"`
}

// Tier buckets a match score for display
type Tier string

const (
	TierHigh Tier = "high"
	TierMid  Tier = "mid"
	TierLow  Tier = "low"
)

// TierFor maps a match score onto high (70+), mid (40+) or low
func TierFor(score int) Tier {
	switch {
	case score >= 70:
		return TierHigh
	case score >= 40:
		return TierMid
	default:
		return TierLow
	}
}

// ParseKeywords splits a comma separated keyword list, trimming whitespace
// and dropping empty entries.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
