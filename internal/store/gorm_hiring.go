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

type gormOffers struct {
	db *gorm.DB
}

func (s *gormOffers) Create(ctx context.Context, o *models.Offer) error {
	ensureID(&o.ID)
	if o.Status == "" {
		o.Status = models.OfferPending
	}
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *gormOffers) Get(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var o models.Offer
	if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("offer")
		}
		return nil, err
	}
	return &o, nil
}

func (s *gormOffers) GetByApplication(ctx context.Context, appID uuid.UUID) (*models.Offer, error) {
	var o models.Offer
	err := s.db.WithContext(ctx).
		Where("application_id = ?", appID).
		Order("created_at DESC").First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("offer")
		}
		return nil, err
	}
	return &o, nil
}

func (s *gormOffers) TransitionStatus(ctx context.Context, id uuid.UUID, allowed []models.OfferStatus, next models.OfferStatus, upd OfferUpdate) (*models.Offer, error) {
	updates := map[string]interface{}{
		"status":     next,
		"updated_at": time.Now().UTC(),
	}
	if upd.IssuedAt != nil {
		updates["issued_at"] = *upd.IssuedAt
	}
	if upd.RespondedAt != nil {
		updates["responded_at"] = *upd.RespondedAt
	}
	res := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ? AND status IN ?", id, allowed).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("offer is " + string(current.Status) + ", cannot move to " + string(next))
	}
	return s.Get(ctx, id)
}

func (s *gormOffers) AttachSignature(ctx context.Context, id uuid.UUID, signatureRef string) (*models.Offer, error) {
	res := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"signature_ref": signatureRef, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("offer")
	}
	return s.Get(ctx, id)
}

type gormOnboarding struct {
	db *gorm.DB
}

func (s *gormOnboarding) CreateTask(ctx context.Context, t *models.OnboardingTask) error {
	ensureID(&t.ID)
	t.Active = true
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *gormOnboarding) ListTasks(ctx context.Context, activeOnly bool) ([]models.OnboardingTask, error) {
	var tasks []models.OnboardingTask
	q := s.db.WithContext(ctx).Order("created_at ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&tasks).Error
	return tasks, err
}

func (s *gormOnboarding) DeactivateTask(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.OnboardingTask{}).
		Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("onboarding task")
	}
	return nil
}

func (s *gormOnboarding) EnsureItem(ctx context.Context, item *models.OnboardingItem) (*models.OnboardingItem, error) {
	ensureID(&item.ID)
	// The unique index on (application_id, task_id) turns a concurrent
	// double-insert into a no-op for the loser.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}, {Name: "task_id"}},
		DoNothing: true,
	}).Create(item).Error
	if err != nil {
		return nil, err
	}
	var existing models.OnboardingItem
	err = s.db.WithContext(ctx).
		Where("application_id = ? AND task_id = ?", item.ApplicationID, item.TaskID).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *gormOnboarding) ListItems(ctx context.Context, appID uuid.UUID) ([]models.OnboardingItem, error) {
	var items []models.OnboardingItem
	err := s.db.WithContext(ctx).
		Where("application_id = ?", appID).
		Order("created_at ASC").Find(&items).Error
	return items, err
}

func (s *gormOnboarding) GetItem(ctx context.Context, id uuid.UUID) (*models.OnboardingItem, error) {
	var item models.OnboardingItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("onboarding item")
		}
		return nil, err
	}
	return &item, nil
}

func (s *gormOnboarding) CompleteItem(ctx context.Context, id uuid.UUID, evidenceRef string, at time.Time) (*models.OnboardingItem, error) {
	res := s.db.WithContext(ctx).Model(&models.OnboardingItem{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
			"evidence_ref": evidenceRef,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetItem(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("onboarding item already completed")
	}
	return s.GetItem(ctx, id)
}
