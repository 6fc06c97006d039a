// Package store defines the job and applicant collaborators the pipeline
// reads from and writes status changes to.
package store

import (
	"context"
	"errors"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

var (
	// ErrNotFound is returned when no job or applicant has the requested id
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the store rejects a status change
	ErrConflict = errors.New("conflict")
	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the collaborator a job's applicant board is loaded from
type Store interface {
	// FetchJob returns ErrNotFound when no job has the id.
	FetchJob(ctx context.Context, jobID string) (models.Job, error)
	// FetchApplicants returns an empty slice, not an error, when the job has no applicants.
	FetchApplicants(ctx context.Context, jobID string) ([]models.Applicant, error)
	// UpdateApplicantStatus persists a status change and returns the stored record.
	UpdateApplicantStatus(ctx context.Context, applicantID string, status models.Status) (models.Applicant, error)
}

// Catalog lists every job and applicant, for dashboards and job search
type Catalog interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListApplicants(ctx context.Context) ([]models.Applicant, error)
}

// Backend is a store that can also list its whole catalog
type Backend interface {
	Store
	Catalog
}
