package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type JobService struct {
	jobs store.JobStore
}

func NewJobService(jobs store.JobStore) *JobService {
	return &JobService{jobs: jobs}
}

type CreateJobInput struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Branch         string     `json:"branch"`
	Region         string     `json:"region"`
	EmploymentType string     `json:"employment_type"`
	Deadline       *time.Time `json:"deadline"`
}

func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*models.JobPosting, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("job title is required")
	}
	job := &models.JobPosting{
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Branch:         in.Branch,
		Region:         in.Region,
		EmploymentType: in.EmploymentType,
		Deadline:       in.Deadline,
		Status:         models.JobActive,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	log.WithField("job_id", job.ID).Info("job posting created")
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	return s.jobs.Get(ctx, id)
}

func (s *JobService) List(ctx context.Context) ([]models.JobPosting, error) {
	return s.jobs.List(ctx)
}

func (s *JobService) Close(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	job, err := s.jobs.Close(ctx, id)
	if err != nil {
		return nil, err
	}
	log.WithField("job_id", id).Info("job posting closed")
	return job, nil
}
