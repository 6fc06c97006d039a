package board

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/pipeline"
	"github.com/fmuoria/applicant-pipeline/internal/store"
)

// fakeStore is an in-memory store.Store for tests
type fakeStore struct {
	jobs       map[string]models.Job
	applicants []models.Applicant
	updateErr  error
	fetchErr   error
	updates    int
}

func (f *fakeStore) FetchJob(ctx context.Context, jobID string) (models.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return models.Job{}, fmt.Errorf("job %s: %w", jobID, store.ErrNotFound)
	}
	return job, nil
}

func (f *fakeStore) FetchApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := []models.Applicant{}
	for _, a := range f.applicants {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateApplicantStatus(ctx context.Context, applicantID string, status models.Status) (models.Applicant, error) {
	f.updates++
	if f.updateErr != nil {
		return models.Applicant{}, f.updateErr
	}
	for i := range f.applicants {
		if f.applicants[i].ID == applicantID {
			f.applicants[i].Status = status
			f.applicants[i].Notes = append(f.applicants[i].Notes, models.Note{ID: "n", Text: "status changed", Author: "store"})
			return f.applicants[i], nil
		}
	}
	return models.Applicant{}, store.ErrNotFound
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs: map[string]models.Job{
			"j1": {ID: "j1", Title: "Backend Engineer", Keywords: []string{"go", "sql"}},
		},
		applicants: []models.Applicant{
			{ID: "a1", JobID: "j1", Name: "Ada", Skills: []string{"go"}, Experience: 2, AppliedDate: "2024-01-01"},
			{ID: "a2", JobID: "j1", Name: "Bea", Skills: []string{"go", "sql"}, Experience: 6, AppliedDate: "2024-02-01"},
			{ID: "a3", JobID: "j1", Name: "Cal", Experience: 0, Status: models.StatusRejected},
			{ID: "x1", JobID: "j2", Name: "Other"},
		},
	}
}

func TestBoard_LoadAndView(t *testing.T) {
	b := New(newFakeStore())

	if _, ok := b.Job(); ok {
		t.Fatal("Expected no job before Load")
	}
	if err := b.Load(context.Background(), "j1"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ranked := b.Ranked()
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 applicants, got %d", len(ranked))
	}
	if ranked[0].ID != "a2" || ranked[0].MatchScore != 100 {
		t.Errorf("Expected Bea first with 100, got %s with %d", ranked[0].ID, ranked[0].MatchScore)
	}

	view := b.View(pipeline.Options{Status: "applied", SortKey: pipeline.SortDatePosted})
	if len(view) != 2 || view[0].ID != "a2" || view[1].ID != "a1" {
		t.Errorf("Unexpected view %+v", view)
	}

	best := b.View(pipeline.Options{Status: pipeline.StatusAll, BestMatch: true})
	if len(best) != 3 || best[0].MatchScore < best[1].MatchScore || best[1].MatchScore < best[2].MatchScore {
		t.Errorf("Best match view not sorted by score: %+v", best)
	}
}

func TestBoard_LoadFailureKeepsPreviousView(t *testing.T) {
	st := newFakeStore()
	b := New(st)
	if err := b.Load(context.Background(), "j1"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := b.Load(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	st.fetchErr = store.ErrUnavailable
	if err := b.Load(context.Background(), "j1"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}

	job, ok := b.Job()
	if !ok || job.ID != "j1" {
		t.Errorf("Previous job lost after failed load: %+v", job)
	}
	if len(b.Applicants()) != 3 {
		t.Errorf("Previous applicants lost after failed load")
	}
}

func TestBoard_UnloadedJobIsUnscored(t *testing.T) {
	b := New(newFakeStore())
	if got := b.View(pipeline.DefaultOptions()); len(got) != 0 {
		t.Errorf("Expected empty view before load, got %d", len(got))
	}
}

func TestBoard_SetStatus(t *testing.T) {
	st := newFakeStore()
	b := New(st)
	if err := b.Load(context.Background(), "j1"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Rejected straight to hired is allowed.
	updated, err := b.SetStatus(context.Background(), "a3", models.StatusHired)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != models.StatusHired {
		t.Errorf("Returned status = %v, want hired", updated.Status)
	}

	var local models.Applicant
	for _, a := range b.Applicants() {
		if a.ID == "a3" {
			local = a
		}
	}
	if local.Status != models.StatusHired || len(local.Notes) != 1 {
		t.Errorf("Local record not replaced with store copy: %+v", local)
	}

	counts := b.Counts()
	if counts.Hired != 1 || counts.Rejected != 0 || counts.Total() != 3 {
		t.Errorf("Unexpected counts %+v", counts)
	}
}

func TestBoard_SetStatusFailureLeavesViewUnchanged(t *testing.T) {
	st := newFakeStore()
	b := New(st)
	if err := b.Load(context.Background(), "j1"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before := b.Counts()

	st.updateErr = store.ErrConflict
	if _, err := b.SetStatus(context.Background(), "a1", models.StatusInterview); !errors.Is(err, store.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}

	if b.Counts() != before {
		t.Errorf("Counts changed after failed update: %+v vs %+v", b.Counts(), before)
	}
	if st.updates != 1 {
		t.Errorf("Expected exactly one store call, got %d", st.updates)
	}
}
