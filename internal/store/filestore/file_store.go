// Package filestore is a store.Backend over two JSON files in a directory,
// jobs.json and applicants.json, for offline review of exported data.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/store"
)

const (
	jobsFile       = "jobs.json"
	applicantsFile = "applicants.json"
)

// FileStore reads and writes job and applicant JSON files
type FileStore struct {
	dataDir string
	mu      sync.Mutex
}

// NewFileStore creates a new file store rooted at dataDir
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{
		dataDir: dataDir,
	}
}

// SaveUploadedFile stores an uploaded jobs.json or applicants.json export
func (fs *FileStore) SaveUploadedFile(filename string, content io.Reader) (string, error) {
	if filename != jobsFile && filename != applicantsFile {
		return "", fmt.Errorf("unsupported data file %q", filename)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := validateUpload(filename, data); err != nil {
		return "", err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := filepath.Join(fs.dataDir, filename)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (fs *FileStore) FetchJob(ctx context.Context, jobID string) (models.Job, error) {
	jobs, err := fs.ListJobs(ctx)
	if err != nil {
		return models.Job{}, err
	}
	for _, job := range jobs {
		if job.ID == jobID {
			return job, nil
		}
	}
	return models.Job{}, fmt.Errorf("job %s: %w", jobID, store.ErrNotFound)
}

func (fs *FileStore) FetchApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	all, err := fs.ListApplicants(ctx)
	if err != nil {
		return nil, err
	}
	applicants := []models.Applicant{}
	for _, a := range all {
		if a.JobID == jobID {
			applicants = append(applicants, a)
		}
	}
	return applicants, nil
}

// UpdateApplicantStatus rewrites applicants.json with the new status
func (fs *FileStore) UpdateApplicantStatus(ctx context.Context, applicantID string, status models.Status) (models.Applicant, error) {
	if !status.Valid() {
		return models.Applicant{}, fmt.Errorf("status %v: %w", status, store.ErrConflict)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	var applicants []models.Applicant
	if err := fs.readLocked(applicantsFile, &applicants); err != nil {
		return models.Applicant{}, err
	}

	idx := -1
	for i := range applicants {
		if applicants[i].ID == applicantID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Applicant{}, fmt.Errorf("applicant %s: %w", applicantID, store.ErrNotFound)
	}
	applicants[idx].Status = status

	data, err := json.MarshalIndent(applicants, "", "  ")
	if err != nil {
		return models.Applicant{}, fmt.Errorf("failed to marshal applicants: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(fs.dataDir, applicantsFile), data); err != nil {
		return models.Applicant{}, err
	}
	return applicants[idx], nil
}

func (fs *FileStore) ListJobs(ctx context.Context) ([]models.Job, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	jobs := []models.Job{}
	if err := fs.readLocked(jobsFile, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (fs *FileStore) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	applicants := []models.Applicant{}
	if err := fs.readLocked(applicantsFile, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

// readLocked decodes one data file; a missing file leaves dst unchanged
func (fs *FileStore) readLocked(name string, dst any) error {
	data, err := os.ReadFile(filepath.Join(fs.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: failed to read %s: %v", store.ErrUnavailable, name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// validateUpload decodes an upload into its record type so a file that
// would break later reads is never written.
func validateUpload(filename string, data []byte) error {
	var err error
	if filename == jobsFile {
		var jobs []models.Job
		err = json.Unmarshal(data, &jobs)
	} else {
		var applicants []models.Applicant
		err = json.Unmarshal(data, &applicants)
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", filename, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
