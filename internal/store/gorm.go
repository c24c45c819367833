package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
)

// New wires every repository onto the same gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{
		Jobs:         &gormJobs{db: db},
		RuleSets:     &gormRuleSets{db: db},
		Applications: &gormApplications{db: db},
		Pipelines:    &gormPipelines{db: db},
		Interviews:   &gormInterviews{db: db},
		Offers:       &gormOffers{db: db},
		Onboarding:   &gormOnboarding{db: db},
	}
}

// Migrate creates or updates the schema for every entity the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.JobPosting{},
		&models.RuleSet{},
		&models.Application{},
		&models.Pipeline{},
		&models.PipelineStage{},
		&models.Interview{},
		&models.Offer{},
		&models.OnboardingTask{},
		&models.OnboardingItem{},
	)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type gormJobs struct {
	db *gorm.DB
}

func (s *gormJobs) Create(ctx context.Context, job *models.JobPosting) error {
	ensureID(&job.ID)
	if job.Status == "" {
		job.Status = models.JobActive
	}
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *gormJobs) Get(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("job posting")
		}
		return nil, err
	}
	return &job, nil
}

func (s *gormJobs) List(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (s *gormJobs) Close(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	res := s.db.WithContext(ctx).Model(&models.JobPosting{}).
		Where("id = ? AND status = ?", id, models.JobActive).
		Update("status", models.JobClosed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("job posting already closed")
	}
	return s.Get(ctx, id)
}

type gormRuleSets struct {
	db *gorm.DB
}

func (s *gormRuleSets) Upsert(ctx context.Context, rules *models.RuleSet) error {
	ensureID(&rules.ID)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"must_have", "preferred", "shortlist_threshold", "reject_threshold", "auto_regret", "updated_at",
		}),
	}).Create(rules).Error
}

func (s *gormRuleSets) GetByJob(ctx context.Context, jobID uuid.UUID) (*models.RuleSet, error) {
	var rules models.RuleSet
	if err := s.db.WithContext(ctx).First(&rules, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("rule set")
		}
		return nil, err
	}
	return &rules, nil
}

type gormPipelines struct {
	db *gorm.DB
}

func (s *gormPipelines) Create(ctx context.Context, p *models.Pipeline) error {
	ensureID(&p.ID)
	for i := range p.Stages {
		ensureID(&p.Stages[i].ID)
		p.Stages[i].PipelineID = p.ID
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormPipelines) Get(ctx context.Context, id uuid.UUID) (*models.Pipeline, error) {
	var p models.Pipeline
	err := s.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("stage_order ASC") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pipeline")
		}
		return nil, err
	}
	return &p, nil
}

func (s *gormPipelines) GetStage(ctx context.Context, id uuid.UUID) (*models.PipelineStage, error) {
	var st models.PipelineStage
	if err := s.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pipeline stage")
		}
		return nil, err
	}
	return &st, nil
}

func (s *gormPipelines) ReorderStages(ctx context.Context, pipelineID uuid.UUID, orders map[uuid.UUID]int) (*models.Pipeline, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for stageID, order := range orders {
			res := tx.Model(&models.PipelineStage{}).
				Where("id = ? AND pipeline_id = ?", stageID, pipelineID).
				Update("stage_order", order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("pipeline stage")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, pipelineID)
}

type gormInterviews struct {
	db *gorm.DB
}

func (s *gormInterviews) Create(ctx context.Context, iv *models.Interview) error {
	ensureID(&iv.ID)
	if iv.Status == "" {
		iv.Status = models.InterviewScheduled
	}
	return s.db.WithContext(ctx).Create(iv).Error
}

func (s *gormInterviews) Get(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	var iv models.Interview
	if err := s.db.WithContext(ctx).First(&iv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("interview")
		}
		return nil, err
	}
	return &iv, nil
}

func (s *gormInterviews) ListByApplication(ctx context.Context, appID uuid.UUID) ([]models.Interview, error) {
	var ivs []models.Interview
	err := s.db.WithContext(ctx).Where("application_id = ?", appID).Order("starts_at ASC").Find(&ivs).Error
	return ivs, err
}

func (s *gormInterviews) TransitionStatus(ctx context.Context, id uuid.UUID, expected, next models.InterviewStatus, feedback string) (*models.Interview, error) {
	updates := map[string]interface{}{"status": next, "updated_at": time.Now().UTC()}
	if feedback != "" {
		updates["feedback"] = feedback
	}
	res := s.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("interview is " + string(current.Status) + ", expected " + string(expected))
	}
	return s.Get(ctx, id)
}
