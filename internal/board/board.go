// Package board holds the loaded applicant view of one job and applies
// status changes to it once the store has accepted them.
package board

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/pipeline"
	"github.com/fmuoria/applicant-pipeline/internal/ranking"
	"github.com/fmuoria/applicant-pipeline/internal/store"
)

// Board is the in-memory view of one job and its applicants
type Board struct {
	store      store.Store
	job        *models.Job
	applicants []models.Applicant
	mu         sync.RWMutex
}

// New creates an empty board backed by st
func New(st store.Store) *Board {
	return &Board{
		store: st,
	}
}

// Load fetches the job and its applicants. On failure the previous view is kept.
func (b *Board) Load(ctx context.Context, jobID string) error {
	job, err := b.store.FetchJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	applicants, err := b.store.FetchApplicants(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}

	b.mu.Lock()
	b.job = &job
	b.applicants = applicants
	b.mu.Unlock()

	return nil
}

// Job returns the loaded job, if any
func (b *Board) Job() (models.Job, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.job == nil {
		return models.Job{}, false
	}
	return *b.job, true
}

// Applicants returns a copy of the loaded applicant records
func (b *Board) Applicants() []models.Applicant {
	b.mu.RLock()
	defer b.mu.RUnlock()

	applicantsCopy := make([]models.Applicant, len(b.applicants))
	copy(applicantsCopy, b.applicants)
	return applicantsCopy
}

// Ranked scores the loaded applicants against the job, best match first.
// Without a loaded job the applicants come back unscored in stored order.
func (b *Board) Ranked() []models.ScoredApplicant {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.job == nil {
		return ranking.Unscored(b.applicants)
	}
	return ranking.Rank(*b.job, b.applicants)
}

// View recomputes the presented list from scratch for the given options
func (b *Board) View(opts pipeline.Options) []models.ScoredApplicant {
	return pipeline.Present(b.Ranked(), opts)
}

// Counts tallies the loaded applicants per status
func (b *Board) Counts() models.StatusCounts {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return models.CountByStatus(b.applicants)
}

// SetStatus asks the store to move an applicant to a new status. Any status
// may follow any other. Only when the store accepts the change is the local
// record replaced with the store's copy; on failure the view is untouched.
func (b *Board) SetStatus(ctx context.Context, applicantID string, status models.Status) (models.Applicant, error) {
	updated, err := b.store.UpdateApplicantStatus(ctx, applicantID, status)
	if err != nil {
		log.Printf("Failed to set status of applicant %s to %s: %v", applicantID, status, err)
		return models.Applicant{}, fmt.Errorf("failed to update status: %w", err)
	}

	b.mu.Lock()
	for i := range b.applicants {
		if b.applicants[i].ID == applicantID {
			b.applicants[i] = updated
			break
		}
	}
	b.mu.Unlock()

	return updated, nil
}
