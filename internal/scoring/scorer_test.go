package scoring

import (
	"testing"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

func TestScore_Examples(t *testing.T) {
	tests := []struct {
		name      string
		job       models.Job
		applicant models.Applicant
		want      int
	}{
		{
			name:      "Partial overlap with senior experience",
			job:       models.Job{Keywords: []string{"react", "node"}},
			applicant: models.Applicant{Skills: []string{"react.js"}, Experience: 5},
			want:      60,
		},
		{
			name:      "No keywords scores experience only",
			job:       models.Job{Keywords: []string{}},
			applicant: models.Applicant{Skills: []string{"python"}, Experience: 2.5},
			want:      10,
		},
		{
			name:      "Skill count saturates regardless of overlap",
			job:       models.Job{Keywords: []string{"go", "rust"}},
			applicant: models.Applicant{Skills: []string{"excel", "word", "powerpoint"}},
			want:      20,
		},
		{
			name:      "Perfect match",
			job:       models.Job{Keywords: []string{"Go", "Kubernetes", "SQL"}},
			applicant: models.Applicant{Skills: []string{"go", "kubernetes", "postgresql"}, Experience: 8},
			want:      100,
		},
		{
			name:      "Keyword contains skill",
			job:       models.Job{Keywords: []string{"react.js"}},
			applicant: models.Applicant{Skills: []string{"React"}, Experience: 0},
			want:      80,
		},
		{
			name:      "Nil skills",
			job:       models.Job{Keywords: []string{"java"}},
			applicant: models.Applicant{Experience: 1},
			want:      4,
		},
		{
			name:      "Empty job and applicant",
			job:       models.Job{},
			applicant: models.Applicant{},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.job, tt.applicant); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBreakdown_Example1Terms(t *testing.T) {
	job := models.Job{Keywords: []string{"react", "node"}}
	applicant := models.Applicant{Skills: []string{"react.js"}, Experience: 5}

	terms := Breakdown(job, applicant)

	if terms.SkillOverlap != 30 {
		t.Errorf("SkillOverlap = %v, want 30", terms.SkillOverlap)
	}
	if terms.Experience != 20 {
		t.Errorf("Experience = %v, want 20", terms.Experience)
	}
	if terms.SkillCount != 10 {
		t.Errorf("SkillCount = %v, want 10", terms.SkillCount)
	}
	if terms.Matched != 1 {
		t.Errorf("Matched = %d, want 1", terms.Matched)
	}
}

func TestBreakdown_EmptyKeywordsOnlyExperience(t *testing.T) {
	applicants := []models.Applicant{
		{Skills: nil, Experience: 0},
		{Skills: []string{"a", "b", "c"}, Experience: 1.25},
		{Skills: []string{"python"}, Experience: 4},
		{Skills: []string{"python"}, Experience: 12},
	}

	for _, a := range applicants {
		terms := Breakdown(models.Job{}, a)
		if terms.SkillOverlap != 0 || terms.SkillCount != 0 {
			t.Errorf("Expected zero skill terms for empty keywords, got %+v", terms)
		}
		if terms.Total != roundHalfUp(terms.Experience) {
			t.Errorf("Total = %d, want experience term %v", terms.Total, terms.Experience)
		}
	}
}

func TestBreakdown_SeniorExperienceSaturates(t *testing.T) {
	for _, years := range []float64{5, 5.5, 10, 40} {
		terms := Breakdown(models.Job{}, models.Applicant{Experience: years})
		if terms.Experience != ExperienceWeight {
			t.Errorf("Experience term for %v years = %v, want %v", years, terms.Experience, ExperienceWeight)
		}
	}
}

func TestBreakdown_KeywordCountedOnce(t *testing.T) {
	job := models.Job{Keywords: []string{"java", "go"}}
	applicant := models.Applicant{Skills: []string{"java", "javascript", "java ee"}}

	terms := Breakdown(job, applicant)
	if terms.Matched != 1 {
		t.Errorf("Matched = %d, want 1", terms.Matched)
	}
	if terms.SkillOverlap != 30 {
		t.Errorf("SkillOverlap = %v, want 30", terms.SkillOverlap)
	}
}

func TestBreakdown_DuplicateKeywords(t *testing.T) {
	job := models.Job{Keywords: []string{"SQL", "sql", "docker"}}
	applicant := models.Applicant{Skills: []string{"MySQL"}}

	terms := Breakdown(job, applicant)
	if terms.Matched != 2 {
		t.Errorf("Matched = %d, want 2", terms.Matched)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	keywordSets := [][]string{
		nil,
		{"go"},
		{"go", "python", "aws"},
		{"a", "b", "c", "d", "e", "f", "g"},
	}
	skillSets := [][]string{
		nil,
		{""},
		{"go"},
		{"golang", "py", "aws lambda", "terraform"},
		{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
	}
	experiences := []float64{0, 0.3, 1, 2.5, 4.99, 5, 30}

	for _, keywords := range keywordSets {
		for _, skills := range skillSets {
			for _, exp := range experiences {
				score := Score(models.Job{Keywords: keywords}, models.Applicant{Skills: skills, Experience: exp})
				if score < 0 || score > MaxScore {
					t.Errorf("Score(%v, %v, %v) = %d outside [0,100]", keywords, skills, exp, score)
				}
			}
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 10.5, want: 11},
		{in: 10.49, want: 10},
		{in: 0, want: 0},
		{in: -2.5, want: -2},
	}

	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
