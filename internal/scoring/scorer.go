package scoring

import (
	"math"
	"strings"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

const (
	// SkillWeight is the maximum contribution of keyword overlap
	SkillWeight = 60.0
	// ExperienceWeight is the maximum contribution of years of experience
	ExperienceWeight = 20.0
	// SkillCountWeight is the maximum contribution of the number of listed skills
	SkillCountWeight = 20.0
	// SeniorYears is the experience at which the experience term saturates
	SeniorYears = 5.0
	// MaxScore caps the final score
	MaxScore = 100
)

// Terms is the per-term breakdown of a match score
type Terms struct {
	SkillOverlap float64 `json:"skill_overlap"` // 0-60
	Experience   float64 `json:"experience"`    // 0-20
	SkillCount   float64 `json:"skill_count"`   // 0-20
	Matched      int     `json:"matched_keywords"`
	Total        int     `json:"total"` // 0-100
}

// Score returns how well an applicant matches a job, as an integer in [0,100]
func Score(job models.Job, applicant models.Applicant) int {
	return Breakdown(job, applicant).Total
}

// Breakdown computes the individual score terms and the rounded, capped total
func Breakdown(job models.Job, applicant models.Applicant) Terms {
	keywords := lowerAll(job.Keywords)
	skills := lowerAll(applicant.Skills)

	var terms Terms
	terms.Matched = matchedKeywords(keywords, skills)
	if len(keywords) > 0 {
		terms.SkillOverlap = float64(terms.Matched) / float64(len(keywords)) * SkillWeight
	}

	if applicant.Experience >= SeniorYears {
		terms.Experience = ExperienceWeight
	} else {
		terms.Experience = applicant.Experience / SeniorYears * ExperienceWeight
	}

	// No keywords means nothing to count skills against.
	switch {
	case len(keywords) == 0:
		terms.SkillCount = 0
	case len(skills) >= len(keywords):
		terms.SkillCount = SkillCountWeight
	default:
		terms.SkillCount = float64(len(skills)) / float64(len(keywords)) * SkillCountWeight
	}

	sum := terms.SkillOverlap + terms.Experience + terms.SkillCount
	terms.Total = min(roundHalfUp(sum), MaxScore)
	return terms
}

// matchedKeywords counts keywords that contain, or are contained in, at least one skill.
// Each keyword counts once no matter how many skills match it.
func matchedKeywords(keywords, skills []string) int {
	matched := 0
	for _, keyword := range keywords {
		for _, skill := range skills {
			if strings.Contains(skill, keyword) || strings.Contains(keyword, skill) {
				matched++
				break
			}
		}
	}
	return matched
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
