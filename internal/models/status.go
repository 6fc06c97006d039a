package models

import (
	"fmt"
	"strings"
)

// Status is an applicant's stage in the hiring pipeline.
// The zero value is StatusApplied, so records without a status default to applied.
type Status uint8

const (
	StatusApplied Status = iota
	StatusReviewing
	StatusInterview
	StatusHired
	StatusRejected
)

var statusNames = [...]string{
	StatusApplied:   "applied",
	StatusReviewing: "reviewing",
	StatusInterview: "interview",
	StatusHired:     "hired",
	StatusRejected:  "rejected",
}

// Statuses returns every pipeline status in pipeline order
func Statuses() []Status {
	return []Status{StatusApplied, StatusReviewing, StatusInterview, StatusHired, StatusRejected}
}

// ParseStatus converts a status word (case-insensitive) into a Status.
// An empty string yields StatusApplied.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusApplied, nil
	}
	for i, name := range statusNames {
		if name == s {
			return Status(i), nil
		}
	}
	return StatusApplied, fmt.Errorf("unknown applicant status %q", s)
}

// Valid reports whether s is one of the five pipeline statuses
func (s Status) Valid() bool {
	return int(s) < len(statusNames)
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
	return statusNames[s]
}

// Label returns the capitalized display form, e.g. "Interview"
func (s Status) Label() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// MarshalText encodes the status as its lower case word
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid applicant status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText decodes a status word; an empty value decodes to StatusApplied
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusCounts holds the number of applicants in each pipeline status.
// Every status is always present, zero when no applicant is in it.
type StatusCounts struct {
	Applied   int `json:"applied"`
	Reviewing int `json:"reviewing"`
	Interview int `json:"interview"`
	Hired     int `json:"hired"`
	Rejected  int `json:"rejected"`
}

// Get returns the count for one status
func (c StatusCounts) Get(s Status) int {
	switch s {
	case StatusReviewing:
		return c.Reviewing
	case StatusInterview:
		return c.Interview
	case StatusHired:
		return c.Hired
	case StatusRejected:
		return c.Rejected
	default:
		return c.Applied
	}
}

// Total returns the sum over all statuses
func (c StatusCounts) Total() int {
	return c.Applied + c.Reviewing + c.Interview + c.Hired + c.Rejected
}

func (c *StatusCounts) add(s Status) {
	switch s {
	case StatusReviewing:
		c.Reviewing++
	case StatusInterview:
		c.Interview++
	case StatusHired:
		c.Hired++
	case StatusRejected:
		c.Rejected++
	default:
		c.Applied++
	}
}

// CountByStatus tallies applicants per status. Applicants without a status count as applied.
func CountByStatus(applicants []Applicant) StatusCounts {
	var counts StatusCounts
	for _, a := range applicants {
		counts.add(a.Status)
	}
	return counts
}

// CountScoredByStatus is CountByStatus over a ranked view
func CountScoredByStatus(applicants []ScoredApplicant) StatusCounts {
	var counts StatusCounts
	for _, a := range applicants {
		counts.add(a.Status)
	}
	return counts
}
