package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/notify"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/screening"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type ApplicationService struct {
	jobs         store.JobStore
	ruleSets     store.RuleSetStore
	applications store.ApplicationStore
	pipelines    store.PipelineStore
	mailer       notify.Mailer
	renderer     notify.Renderer
	regretTmpl   string
	now          Clock
}

func NewApplicationService(st *store.Store, mailer notify.Mailer, renderer notify.Renderer, regretTmpl string, now Clock) *ApplicationService {
	if regretTmpl == "" {
		regretTmpl = defaultRegretTemplate
	}
	return &ApplicationService{
		jobs:         st.Jobs,
		ruleSets:     st.RuleSets,
		applications: st.Applications,
		pipelines:    st.Pipelines,
		mailer:       mailer,
		renderer:     renderer,
		regretTmpl:   regretTmpl,
		now:          now,
	}
}

const defaultRegretTemplate = "Dear {{firstName}}, thank you for your interest in the {{jobTitle}} role at our {{branch}} branch. We will not be progressing your application this time."

type ApplyInput struct {
	JobID      uuid.UUID `json:"job_id" binding:"required"`
	FirstName  string    `json:"first_name" binding:"required"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email" binding:"required,email"`
	Phone      string    `json:"phone"`
	ResumeText string    `json:"resume_text"`
	ResumeURL  string    `json:"-"`
}

// ApplyResult is what the intake endpoint returns: the created application
// together with the scoring verdict that produced its initial status.
type ApplyResult struct {
	Application *models.Application `json:"application"`
	Score       float64             `json:"score"`
	Decision    screening.Decision  `json:"decision"`
	Reasons     []string            `json:"reasons"`
}

// Apply ingests a candidate, scores them against the job's rule set and
// classifies the initial status. Jobs that are closed, or past deadline,
// reject new applications.
func (s *ApplicationService) Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error) {
	job, err := s.jobs.Get(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if job.Status == models.JobClosed {
		return nil, apperr.Validation("job posting is closed")
	}
	if job.Deadline != nil && job.Deadline.Before(now) {
		return nil, apperr.Validation("job posting deadline has passed")
	}

	rules, err := s.ruleSets.GetByJob(ctx, in.JobID)
	if err != nil {
		if !apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		fallback := screening.DefaultRuleSet()
		rules = &fallback
	}

	jobText := job.Title + " " + job.Description
	score, reasons := screening.Score(in.ResumeText, jobText, *rules)
	decision := screening.Classify(score, *rules)

	app := &models.Application{
		JobID:          in.JobID,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          in.Phone,
		ResumeText:     in.ResumeText,
		ResumeURL:      in.ResumeURL,
		Status:         screening.InitialStatus(decision),
		Score:          &score,
		Reasons:        reasons,
		LastActivityAt: now,
	}
	if decision == screening.DecisionAutoReject {
		app.RejectReason = "below reject threshold"
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{
		"application_id": app.ID,
		"job_id":         job.ID,
		"score":          score,
		"decision":       decision,
	}).Info("application received")

	// Regret mail is a courtesy, never part of the transaction: a delivery
	// failure must not undo the stored application.
	if decision == screening.DecisionAutoReject && rules.AutoRegret {
		if err := s.sendRegret(ctx, app, job); err != nil {
			log.WithError(err).WithField("application_id", app.ID).Warn("auto-regret mail failed")
		}
	}

	return &ApplyResult{Application: app, Score: score, Decision: decision, Reasons: reasons}, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.applications.Get(ctx, id)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}

// nextStatus is the forward edge of the application machine.
var nextStatus = map[models.ApplicationStatus]models.ApplicationStatus{
	models.AppReceived:     models.AppReviewed,
	models.AppReviewed:     models.AppShortlisted,
	models.AppShortlisted:  models.AppInterviewing,
	models.AppInterviewing: models.AppOffered,
	models.AppOffered:      models.AppAccepted,
}

func isTerminal(st models.ApplicationStatus) bool {
	return st == models.AppAccepted || st == models.AppRejected
}

// Advance moves the application one step forward. The caller names the
// status it believes the application is in; a stale expectation fails with
// Conflict and changes nothing.
func (s *ApplicationService) Advance(ctx context.Context, id uuid.UUID, expected models.ApplicationStatus) (*models.Application, error) {
	next, ok := nextStatus[expected]
	if !ok {
		return nil, apperr.Conflict(fmt.Sprintf("no forward transition from %s", expected))
	}
	return s.applications.TransitionStatus(ctx, id, expected, next, store.ApplicationUpdate{})
}

func (s *ApplicationService) Review(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.applications.TransitionStatus(ctx, id, models.AppReceived, models.AppReviewed, store.ApplicationUpdate{})
}

func (s *ApplicationService) Shortlist(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.applications.TransitionStatus(ctx, id, models.AppReviewed, models.AppShortlisted, store.ApplicationUpdate{})
}

// Reject is legal from any non-terminal state and requires a reason.
func (s *ApplicationService) Reject(ctx context.Context, id uuid.UUID, expected models.ApplicationStatus, reason string) (*models.Application, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("reject reason is required")
	}
	if isTerminal(expected) {
		return nil, apperr.Conflict(fmt.Sprintf("application is already %s", expected))
	}
	return s.applications.TransitionStatus(ctx, id, expected, models.AppRejected, store.ApplicationUpdate{RejectReason: &reason})
}

// MoveStage repositions the application on the kanban board. Stage position
// is orthogonal to status: moving never forces a status transition.
func (s *ApplicationService) MoveStage(ctx context.Context, id uuid.UUID, expected, target *uuid.UUID) (*models.Application, error) {
	if target != nil {
		if _, err := s.pipelines.GetStage(ctx, *target); err != nil {
			return nil, err
		}
	}
	return s.applications.MoveStage(ctx, id, expected, target)
}

// RegretResult reports a batch send: each recipient is handled
// independently and one failure never aborts the rest.
type RegretResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendRegrets mails every rejected applicant of the job.
func (s *ApplicationService) SendRegrets(ctx context.Context, jobID uuid.UUID) (*RegretResult, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJobAndStatus(ctx, jobID, models.AppRejected)
	if err != nil {
		return nil, err
	}
	res := &RegretResult{}
	for i := range apps {
		if err := s.sendRegret(ctx, &apps[i], job); err != nil {
			log.WithError(err).WithField("application_id", apps[i].ID).Warn("regret mail failed")
			res.Failed++
			continue
		}
		res.Sent++
	}
	log.WithFields(map[string]interface{}{"job_id": jobID, "sent": res.Sent, "failed": res.Failed}).Info("regret batch finished")
	return res, nil
}

func (s *ApplicationService) sendRegret(ctx context.Context, app *models.Application, job *models.JobPosting) error {
	body := s.renderer.Render(s.regretTmpl, map[string]string{
		"firstName": app.FirstName,
		"lastName":  app.LastName,
		"jobTitle":  job.Title,
		"branch":    job.Branch,
		"region":    job.Region,
	})
	return s.mailer.SendMessage(ctx, app.Email, "Your application for "+job.Title, body)
}
