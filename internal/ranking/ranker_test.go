package ranking

import (
	"reflect"
	"testing"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

func names(ranked []models.ScoredApplicant) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Name
	}
	return out
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	job := models.Job{Keywords: []string{"go", "sql"}}
	applicants := []models.Applicant{
		{ID: "1", Name: "Alice", Skills: []string{"excel"}, Experience: 1},
		{ID: "2", Name: "Bob", Skills: []string{"go", "sql"}, Experience: 6},
		{ID: "3", Name: "Carol", Skills: []string{"golang"}, Experience: 3},
	}

	ranked := Rank(job, applicants)

	want := []string{"Bob", "Carol", "Alice"}
	if got := names(ranked); !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() order = %v, want %v", got, want)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].MatchScore < ranked[i].MatchScore {
			t.Errorf("Scores not descending at %d: %d < %d", i, ranked[i-1].MatchScore, ranked[i].MatchScore)
		}
	}
	if ranked[0].MatchScore != 100 {
		t.Errorf("Bob's score = %d, want 100", ranked[0].MatchScore)
	}
}

func TestRank_StableOnTies(t *testing.T) {
	job := models.Job{Keywords: []string{"react"}}
	applicants := []models.Applicant{
		{ID: "b", Name: "B", Skills: []string{"react"}, Experience: 0},
		{ID: "x", Name: "X", Skills: nil, Experience: 0},
		{ID: "a", Name: "A", Skills: []string{"React.js"}, Experience: 0},
		{ID: "c", Name: "C", Skills: []string{"reactjs"}, Experience: 0},
	}

	ranked := Rank(job, applicants)

	want := []string{"B", "A", "C", "X"}
	if got := names(ranked); !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() order = %v, want %v", got, want)
	}
	if ranked[0].MatchScore != 80 || ranked[1].MatchScore != 80 {
		t.Errorf("Expected tied scores of 80, got %d and %d", ranked[0].MatchScore, ranked[1].MatchScore)
	}

	// Long runs of ties must keep input order too.
	many := make([]models.Applicant, 50)
	for i := range many {
		many[i] = models.Applicant{ID: string(rune('A' + i%26)), Experience: 5}
	}
	for i, r := range Rank(job, many) {
		if r.ID != many[i].ID {
			t.Fatalf("Tie order changed at %d", i)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	job := models.Job{Keywords: []string{"go"}}
	applicants := []models.Applicant{
		{ID: "1", Name: "Low", Experience: 0},
		{ID: "2", Name: "High", Skills: []string{"go"}, Experience: 5},
	}
	original := make([]models.Applicant, len(applicants))
	copy(original, applicants)

	ranked := Rank(job, applicants)
	ranked[0].Name = "changed"

	if !reflect.DeepEqual(applicants, original) {
		t.Errorf("Rank() mutated its input: %+v", applicants)
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(models.Job{}, nil); len(got) != 0 {
		t.Errorf("Rank(nil) returned %d applicants", len(got))
	}
}

func TestUnscored(t *testing.T) {
	applicants := []models.Applicant{{ID: "1"}, {ID: "2"}}
	got := Unscored(applicants)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("Unscored() = %+v", got)
	}
	for _, g := range got {
		if g.MatchScore != 0 {
			t.Errorf("Unscored() score = %d, want 0", g.MatchScore)
		}
	}
}
