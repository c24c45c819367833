package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
)

type gormApplications struct {
	db *gorm.DB
}

func (s *gormApplications) Create(ctx context.Context, app *models.Application) error {
	ensureID(&app.ID)
	if app.LastActivityAt.IsZero() {
		app.LastActivityAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(app).Error
}

func (s *gormApplications) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("application")
		}
		return nil, err
	}
	return &app, nil
}

func (s *gormApplications) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).Where("job_id = ?", jobID).Order("created_at ASC").Find(&apps).Error
	return apps, err
}

func (s *gormApplications) ListByJobAndStatus(ctx context.Context, jobID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND status = ?", jobID, status).
		Order("created_at ASC").Find(&apps).Error
	return apps, err
}

func (s *gormApplications) TransitionStatus(ctx context.Context, id uuid.UUID, expected, next models.ApplicationStatus, upd ApplicationUpdate) (*models.Application, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":           next,
		"last_activity_at": now,
		"updated_at":       now,
	}
	if upd.RejectReason != nil {
		updates["reject_reason"] = *upd.RejectReason
	}
	res := s.db.WithContext(ctx).Model(&models.Application{}).
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
		return nil, apperr.Conflict("application is " + string(current.Status) + ", expected " + string(expected))
	}
	return s.Get(ctx, id)
}

func (s *gormApplications) MoveStage(ctx context.Context, id uuid.UUID, expected, target *uuid.UUID) (*models.Application, error) {
	now := time.Now().UTC()
	q := s.db.WithContext(ctx).Model(&models.Application{})
	if expected == nil {
		q = q.Where("id = ? AND current_stage_id IS NULL", id)
	} else {
		q = q.Where("id = ? AND current_stage_id = ?", id, *expected)
	}
	res := q.Updates(map[string]interface{}{
		"current_stage_id": target,
		"last_activity_at": now,
		"updated_at":       now,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("application stage changed since it was read")
	}
	return s.Get(ctx, id)
}
