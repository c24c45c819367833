package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
)

func newInterviewFixture(t *testing.T) (*InterviewService, *models.Application, *fixedClock) {
	st, mailer, clock := newFixture(t)
	appSvc := newApplicationService(st, mailer, clock)
	job := seedJob(t, st)
	app := applyReceived(t, st, appSvc, job)
	return NewInterviewService(st), app, clock
}

func TestScheduleInterview(t *testing.T) {
	svc, app, clock := newInterviewFixture(t)

	iv, err := svc.Schedule(context.Background(), ScheduleInterviewInput{
		ApplicationID: app.ID,
		Panel:         []string{"hr-lead@kechita.co.ke", "branch-manager@kechita.co.ke"},
		Mode:          models.InterviewOnline,
		Location:      "https://meet.example.com/abc",
		StartsAt:      clock.Now().Add(24 * time.Hour),
		EndsAt:        clock.Now().Add(25 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewScheduled, iv.Status)
	assert.Len(t, iv.Panel, 2)
}

func TestScheduleInterviewValidation(t *testing.T) {
	svc, app, clock := newInterviewFixture(t)

	_, err := svc.Schedule(context.Background(), ScheduleInterviewInput{
		ApplicationID: app.ID,
		Mode:          "HYBRID",
		StartsAt:      clock.Now(),
		EndsAt:        clock.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Schedule(context.Background(), ScheduleInterviewInput{
		ApplicationID: app.ID,
		Mode:          models.InterviewPhysical,
		StartsAt:      clock.Now().Add(time.Hour),
		EndsAt:        clock.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestInterviewTransitionsOnlyFromScheduled(t *testing.T) {
	svc, app, clock := newInterviewFixture(t)
	iv, err := svc.Schedule(context.Background(), ScheduleInterviewInput{
		ApplicationID: app.ID,
		Mode:          models.InterviewPhysical,
		Location:      "Nakuru branch",
		StartsAt:      clock.Now().Add(time.Hour),
		EndsAt:        clock.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	done, err := svc.Complete(context.Background(), iv.ID, "strong communication, hire")
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, done.Status)
	assert.Equal(t, "strong communication, hire", done.Feedback)

	_, err = svc.Cancel(context.Background(), iv.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	_, err = svc.NoShow(context.Background(), iv.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}
