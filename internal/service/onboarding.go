package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type OnboardingService struct {
	applications store.ApplicationStore
	offers       store.OfferStore
	onboarding   store.OnboardingStore
	now          Clock
}

func NewOnboardingService(st *store.Store, now Clock) *OnboardingService {
	return &OnboardingService{
		applications: st.Applications,
		offers:       st.Offers,
		onboarding:   st.Onboarding,
		now:          now,
	}
}

type CreateTaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *OnboardingService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.OnboardingTask, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("task title is required")
	}
	task := &models.OnboardingTask{Title: strings.TrimSpace(in.Title), Description: in.Description}
	if err := s.onboarding.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *OnboardingService) ListTasks(ctx context.Context) ([]models.OnboardingTask, error) {
	return s.onboarding.ListTasks(ctx, false)
}

func (s *OnboardingService) DeactivateTask(ctx context.Context, id uuid.UUID) error {
	return s.onboarding.DeactivateTask(ctx, id)
}

// InitChecklist materializes one item per active task template for the
// application. It refuses to run before the offer is accepted, and calling
// it again is a no-op for items that already exist: exactly one item per
// template survives regardless of call count.
func (s *OnboardingService) InitChecklist(ctx context.Context, appID uuid.UUID) ([]models.OnboardingItem, error) {
	if _, err := s.applications.Get(ctx, appID); err != nil {
		return nil, err
	}
	offer, err := s.offers.GetByApplication(ctx, appID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.PreconditionFailed("application has no accepted offer")
		}
		return nil, err
	}
	if offer.Status != models.OfferAccepted {
		return nil, apperr.PreconditionFailed("offer is " + string(offer.Status) + ", onboarding requires an accepted offer")
	}

	tasks, err := s.onboarding.ListTasks(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		item := &models.OnboardingItem{ApplicationID: appID, TaskID: task.ID}
		if _, err := s.onboarding.EnsureItem(ctx, item); err != nil {
			return nil, err
		}
	}
	items, err := s.onboarding.ListItems(ctx, appID)
	if err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{"application_id": appID, "items": len(items)}).Info("onboarding checklist ready")
	return items, nil
}

// Complete flips an item to done exactly once. There is no way back; a
// correction means issuing a new item, not un-completing this one.
func (s *OnboardingService) Complete(ctx context.Context, itemID uuid.UUID, evidenceRef string) (*models.OnboardingItem, error) {
	return s.onboarding.CompleteItem(ctx, itemID, evidenceRef, s.now())
}

func (s *OnboardingService) ListItems(ctx context.Context, appID uuid.UUID) ([]models.OnboardingItem, error) {
	return s.onboarding.ListItems(ctx, appID)
}
