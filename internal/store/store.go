// Package store defines the repository interfaces the services depend on
// and their gorm-backed implementation. Every state transition is a
// conditional write: the caller names the state it expects, and a mismatch
// comes back as a Conflict instead of a silent overwrite.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
)

type JobStore interface {
	Create(ctx context.Context, job *models.JobPosting) error
	Get(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
	List(ctx context.Context) ([]models.JobPosting, error)
	Close(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
}

type RuleSetStore interface {
	Upsert(ctx context.Context, rules *models.RuleSet) error
	GetByJob(ctx context.Context, jobID uuid.UUID) (*models.RuleSet, error)
}

// ApplicationUpdate is the mutable slice of an application a transition may
// touch alongside the status write.
type ApplicationUpdate struct {
	RejectReason *string
}

type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	ListByJobAndStatus(ctx context.Context, jobID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error)
	// TransitionStatus writes next only if the persisted status still equals
	// expected. Returns the updated row, or Conflict/NotFound.
	TransitionStatus(ctx context.Context, id uuid.UUID, expected, next models.ApplicationStatus, upd ApplicationUpdate) (*models.Application, error)
	// MoveStage writes the target stage only if the persisted stage still
	// equals expected (nil means "not yet on a stage").
	MoveStage(ctx context.Context, id uuid.UUID, expected, target *uuid.UUID) (*models.Application, error)
}

type PipelineStore interface {
	Create(ctx context.Context, p *models.Pipeline) error
	Get(ctx context.Context, id uuid.UUID) (*models.Pipeline, error)
	GetStage(ctx context.Context, id uuid.UUID) (*models.PipelineStage, error)
	// ReorderStages rewrites StageOrder for every stage of the pipeline.
	ReorderStages(ctx context.Context, pipelineID uuid.UUID, orders map[uuid.UUID]int) (*models.Pipeline, error)
}

type InterviewStore interface {
	Create(ctx context.Context, iv *models.Interview) error
	Get(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	ListByApplication(ctx context.Context, appID uuid.UUID) ([]models.Interview, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, expected, next models.InterviewStatus, feedback string) (*models.Interview, error)
}

// OfferUpdate carries the timestamp columns a lifecycle transition sets.
// Nil fields are left untouched, so respondedAt is never overwritten.
type OfferUpdate struct {
	IssuedAt    *time.Time
	RespondedAt *time.Time
}

type OfferStore interface {
	Create(ctx context.Context, o *models.Offer) error
	Get(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	GetByApplication(ctx context.Context, appID uuid.UUID) (*models.Offer, error)
	// TransitionStatus writes next only if the persisted status is one of
	// the allowed source states.
	TransitionStatus(ctx context.Context, id uuid.UUID, allowed []models.OfferStatus, next models.OfferStatus, upd OfferUpdate) (*models.Offer, error)
	AttachSignature(ctx context.Context, id uuid.UUID, signatureRef string) (*models.Offer, error)
}

type OnboardingStore interface {
	CreateTask(ctx context.Context, t *models.OnboardingTask) error
	ListTasks(ctx context.Context, activeOnly bool) ([]models.OnboardingTask, error)
	DeactivateTask(ctx context.Context, id uuid.UUID) error
	// EnsureItem inserts the item unless one already exists for its
	// (application, task) pair; the unique index makes this safe under
	// concurrent callers. The existing or inserted row is returned.
	EnsureItem(ctx context.Context, item *models.OnboardingItem) (*models.OnboardingItem, error)
	ListItems(ctx context.Context, appID uuid.UUID) ([]models.OnboardingItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.OnboardingItem, error)
	// CompleteItem flips completed to true exactly once.
	CompleteItem(ctx context.Context, id uuid.UUID, evidenceRef string, at time.Time) (*models.OnboardingItem, error)
}

// Store bundles the per-entity repositories a fully wired service needs.
type Store struct {
	Jobs         JobStore
	RuleSets     RuleSetStore
	Applications ApplicationStore
	Pipelines    PipelineStore
	Interviews   InterviewStore
	Offers       OfferStore
	Onboarding   OnboardingStore
}
