// Package pipeline turns a ranked applicant list into the list shown to a
// recruiter: status filter, then either best-match truncation or a sort key.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

const (
	// StatusAll disables the status filter
	StatusAll = "all"

	// SortDatePosted orders by applied date, newest first
	SortDatePosted = "date-posted"
	// SortName orders by applicant name, A to Z
	SortName = "name"

	// BestMatchLimit is how many applicants best-match mode keeps
	BestMatchLimit = 3
)

// Options selects how a ranked list is presented
type Options struct {
	Status    string `json:"status"`
	SortKey   string `json:"sort"`
	BestMatch bool   `json:"best"`
}

// DefaultOptions mirrors the initial recruiter view: every status, newest applications first
func DefaultOptions() Options {
	return Options{Status: StatusAll, SortKey: SortDatePosted}
}

// Present filters and orders a ranked list. It always returns a new slice.
func Present(ranked []models.ScoredApplicant, opts Options) []models.ScoredApplicant {
	filtered := filterStatus(ranked, opts.Status)

	if opts.BestMatch {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].MatchScore > filtered[j].MatchScore
		})
		if len(filtered) > BestMatchLimit {
			filtered = filtered[:BestMatchLimit]
		}
		return filtered
	}

	switch opts.SortKey {
	case SortDatePosted:
		sortByAppliedDate(filtered)
	case SortName:
		sortByName(filtered)
	}

	return filtered
}

func filterStatus(ranked []models.ScoredApplicant, status string) []models.ScoredApplicant {
	if status == "" || strings.EqualFold(status, StatusAll) {
		out := make([]models.ScoredApplicant, len(ranked))
		copy(out, ranked)
		return out
	}

	out := make([]models.ScoredApplicant, 0, len(ranked))
	for _, a := range ranked {
		if strings.EqualFold(a.Status.String(), status) {
			out = append(out, a)
		}
	}
	return out
}

func sortByAppliedDate(applicants []models.ScoredApplicant) {
	type dated struct {
		applicant models.ScoredApplicant
		at        time.Time
		ok        bool
	}
	rows := make([]dated, len(applicants))
	for i, a := range applicants {
		at, ok := ParseAppliedDate(a.AppliedDate)
		rows[i] = dated{applicant: a, at: at, ok: ok}
	}

	// Missing or unparseable dates sort after every real date.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return rows[i].ok
		}
		return rows[i].ok && rows[i].at.After(rows[j].at)
	})

	for i, row := range rows {
		applicants[i] = row.applicant
	}
}

func sortByName(applicants []models.ScoredApplicant) {
	// Collators are not safe for concurrent use; build one per call.
	c := collate.New(language.English)
	sort.SliceStable(applicants, func(i, j int) bool {
		return c.CompareString(applicants[i].Name, applicants[j].Name) < 0
	})
}

var appliedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseAppliedDate parses an ISO-8601 applied date. ok is false when the
// value is empty or not a recognised ISO-8601 form.
func ParseAppliedDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range appliedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
