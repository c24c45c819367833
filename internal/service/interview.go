package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type InterviewService struct {
	applications store.ApplicationStore
	interviews   store.InterviewStore
}

func NewInterviewService(st *store.Store) *InterviewService {
	return &InterviewService{applications: st.Applications, interviews: st.Interviews}
}

type ScheduleInterviewInput struct {
	ApplicationID uuid.UUID            `json:"application_id" binding:"required"`
	Panel         []string             `json:"panel"`
	Mode          models.InterviewMode `json:"mode" binding:"required"`
	Location      string               `json:"location"`
	StartsAt      time.Time            `json:"starts_at" binding:"required"`
	EndsAt        time.Time            `json:"ends_at" binding:"required"`
}

func (s *InterviewService) Schedule(ctx context.Context, in ScheduleInterviewInput) (*models.Interview, error) {
	if in.Mode != models.InterviewOnline && in.Mode != models.InterviewPhysical {
		return nil, apperr.Validation("mode must be ONLINE or PHYSICAL")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, apperr.Validation("interview must end after it starts")
	}
	app, err := s.applications.Get(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status == models.AppRejected {
		return nil, apperr.Conflict("cannot schedule an interview for a rejected application")
	}
	iv := &models.Interview{
		ApplicationID: in.ApplicationID,
		Panel:         in.Panel,
		Mode:          in.Mode,
		Location:      in.Location,
		StartsAt:      in.StartsAt,
		EndsAt:        in.EndsAt,
		Status:        models.InterviewScheduled,
	}
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{"interview_id": iv.ID, "application_id": app.ID}).Info("interview scheduled")
	return iv, nil
}

func (s *InterviewService) Get(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	return s.interviews.Get(ctx, id)
}

func (s *InterviewService) ListByApplication(ctx context.Context, appID uuid.UUID) ([]models.Interview, error) {
	return s.interviews.ListByApplication(ctx, appID)
}

// Complete records the outcome; legal only while SCHEDULED.
func (s *InterviewService) Complete(ctx context.Context, id uuid.UUID, feedback string) (*models.Interview, error) {
	return s.interviews.TransitionStatus(ctx, id, models.InterviewScheduled, models.InterviewCompleted, feedback)
}

func (s *InterviewService) Cancel(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	return s.interviews.TransitionStatus(ctx, id, models.InterviewScheduled, models.InterviewCancelled, "")
}

func (s *InterviewService) NoShow(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	return s.interviews.TransitionStatus(ctx, id, models.InterviewScheduled, models.InterviewNoShow, "")
}
