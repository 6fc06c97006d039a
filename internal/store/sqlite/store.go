// Package sqlite is a store.Backend persisted in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/store"
)

type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store { return &Store{DB: db} }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	title TEXT,
	company TEXT,
	location TEXT,
	type TEXT,
	level TEXT,
	description TEXT,
	salary REAL,
	experience REAL,
	keywords TEXT,
	responsibilities TEXT,
	requirements TEXT,
	posted_date TEXT,
	deadline TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS applicants (
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL,
	name TEXT,
	email TEXT,
	phone TEXT,
	status TEXT,
	applied_date TEXT,
	experience REAL,
	skills TEXT,
	resume_url TEXT,
	notes TEXT,
	FOREIGN KEY(job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_applicants_job ON applicants(job_id);
`)
	return err
}

const jobColumns = `id, title, company, location, type, level, description, salary, experience,
	keywords, responsibilities, requirements, posted_date, deadline`

const applicantColumns = `id, job_id, name, email, phone, status, applied_date, experience,
	skills, resume_url, notes`

// UpsertJob inserts a job or replaces the stored copy with the same id
func (s *Store) UpsertJob(ctx context.Context, job models.Job) error {
	keywords, _ := json.Marshal(job.Keywords)
	responsibilities, _ := json.Marshal(job.Responsibilities)
	requirements, _ := json.Marshal(job.Requirements)

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			type = excluded.type,
			level = excluded.level,
			description = excluded.description,
			salary = excluded.salary,
			experience = excluded.experience,
			keywords = excluded.keywords,
			responsibilities = excluded.responsibilities,
			requirements = excluded.requirements,
			posted_date = excluded.posted_date,
			deadline = excluded.deadline`,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		job.Level,
		job.Description,
		job.Salary,
		job.Experience,
		string(keywords),
		string(responsibilities),
		string(requirements),
		job.PostedDate,
		job.Deadline,
	)
	return err
}

// UpsertApplicant inserts an applicant or replaces the stored copy with the same id
func (s *Store) UpsertApplicant(ctx context.Context, a models.Applicant) error {
	skills, _ := json.Marshal(a.Skills)
	notes, _ := json.Marshal(a.Notes)

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO applicants (`+applicantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			status = excluded.status,
			applied_date = excluded.applied_date,
			experience = excluded.experience,
			skills = excluded.skills,
			resume_url = excluded.resume_url,
			notes = excluded.notes`,
		a.ID,
		a.JobID,
		a.Name,
		a.Email,
		a.Phone,
		a.Status.String(),
		a.AppliedDate,
		a.Experience,
		string(skills),
		a.ResumeURL,
		string(notes),
	)
	return err
}

func (s *Store) FetchJob(ctx context.Context, jobID string) (models.Job, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, jobID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, fmt.Errorf("job %s: %w", jobID, store.ErrNotFound)
	}
	return job, err
}

func (s *Store) FetchApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE job_id = ? ORDER BY rowid`, jobID)
	if err != nil {
		return nil, err
	}
	return collectApplicants(rows)
}

// UpdateApplicantStatus changes the stored status and returns the updated row
func (s *Store) UpdateApplicantStatus(ctx context.Context, applicantID string, status models.Status) (models.Applicant, error) {
	if !status.Valid() {
		return models.Applicant{}, fmt.Errorf("status %v: %w", status, store.ErrConflict)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Applicant{}, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE applicants SET status = ? WHERE id = ?`, status.String(), applicantID)
	if err != nil {
		return models.Applicant{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Applicant{}, err
	}
	if n == 0 {
		return models.Applicant{}, fmt.Errorf("applicant %s: %w", applicantID, store.ErrNotFound)
	}

	row := tx.QueryRowContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE id = ?`, applicantID)
	updated, err := scanApplicant(row)
	if err != nil {
		return models.Applicant{}, err
	}

	committed = true
	if err := tx.Commit(); err != nil {
		return models.Applicant{}, err
	}
	return updated, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *Store) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+applicantColumns+` FROM applicants ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	return collectApplicants(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (models.Job, error) {
	var (
		job                                       models.Job
		keywords, responsibilities, requirements sql.NullString
		title, company, location, jobType, level sql.NullString
		description, postedDate, deadline        sql.NullString
		salary, experience                       sql.NullFloat64
	)
	err := row.Scan(&job.ID, &title, &company, &location, &jobType, &level, &description,
		&salary, &experience, &keywords, &responsibilities, &requirements, &postedDate, &deadline)
	if err != nil {
		return models.Job{}, err
	}

	job.Title = title.String
	job.Company = company.String
	job.Location = location.String
	job.Type = jobType.String
	job.Level = level.String
	job.Description = description.String
	job.Salary = salary.Float64
	job.Experience = experience.Float64
	job.PostedDate = postedDate.String
	job.Deadline = deadline.String

	if err := decodeList(keywords, &job.Keywords); err != nil {
		return models.Job{}, fmt.Errorf("job %s keywords: %w", job.ID, err)
	}
	if err := decodeList(responsibilities, &job.Responsibilities); err != nil {
		return models.Job{}, fmt.Errorf("job %s responsibilities: %w", job.ID, err)
	}
	if err := decodeList(requirements, &job.Requirements); err != nil {
		return models.Job{}, fmt.Errorf("job %s requirements: %w", job.ID, err)
	}
	return job, nil
}

func scanApplicant(row scanner) (models.Applicant, error) {
	var (
		a                                        models.Applicant
		name, email, phone, status, appliedDate sql.NullString
		skills, resumeURL, notes                sql.NullString
		experience                              sql.NullFloat64
	)
	err := row.Scan(&a.ID, &a.JobID, &name, &email, &phone, &status, &appliedDate,
		&experience, &skills, &resumeURL, &notes)
	if err != nil {
		return models.Applicant{}, err
	}

	a.Name = name.String
	a.Email = email.String
	a.Phone = phone.String
	a.AppliedDate = appliedDate.String
	a.Experience = experience.Float64
	a.ResumeURL = resumeURL.String

	if a.Status, err = models.ParseStatus(status.String); err != nil {
		return models.Applicant{}, fmt.Errorf("applicant %s: %w", a.ID, err)
	}
	if err := decodeList(skills, &a.Skills); err != nil {
		return models.Applicant{}, fmt.Errorf("applicant %s skills: %w", a.ID, err)
	}
	if err := decodeList(notes, &a.Notes); err != nil {
		return models.Applicant{}, fmt.Errorf("applicant %s notes: %w", a.ID, err)
	}
	return a, nil
}

func collectApplicants(rows *sql.Rows) ([]models.Applicant, error) {
	defer rows.Close()

	applicants := []models.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

// decodeList reads a JSON array column; NULL and "null" leave dst untouched
func decodeList(col sql.NullString, dst any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

// Import upserts every job and then every applicant listed by src.
// Applicants whose job is missing fail the foreign key and abort the import.
func (s *Store) Import(ctx context.Context, src store.Catalog) (jobs, applicants int, err error) {
	jobList, err := src.ListJobs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list source jobs: %w", err)
	}
	for _, job := range jobList {
		if err := s.UpsertJob(ctx, job); err != nil {
			return jobs, 0, fmt.Errorf("failed to import job %s: %w", job.ID, err)
		}
		jobs++
	}

	applicantList, err := src.ListApplicants(ctx)
	if err != nil {
		return jobs, 0, fmt.Errorf("failed to list source applicants: %w", err)
	}
	for _, a := range applicantList {
		if err := s.UpsertApplicant(ctx, a); err != nil {
			return jobs, applicants, fmt.Errorf("failed to import applicant %s: %w", a.ID, err)
		}
		applicants++
	}

	return jobs, applicants, nil
}
