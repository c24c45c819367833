package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type InterviewMode string

const (
	InterviewOnline   InterviewMode = "ONLINE"
	InterviewPhysical InterviewMode = "PHYSICAL"
)

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "SCHEDULED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
	InterviewNoShow    InterviewStatus = "NO_SHOW"
)

type Interview struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"application_id"`
	Application   Application     `gorm:"foreignKey:ApplicationID" json:"-"`
	Panel         pq.StringArray  `gorm:"type:text[]" json:"panel"`
	Mode          InterviewMode   `gorm:"type:varchar(20);not null" json:"mode"`
	Location      string          `gorm:"type:varchar(255)" json:"location"`
	StartsAt      time.Time       `gorm:"not null" json:"starts_at"`
	EndsAt        time.Time       `gorm:"not null" json:"ends_at"`
	Status        InterviewStatus `gorm:"type:varchar(20);not null" json:"status"`
	Feedback      string          `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type OfferStatus string

const (
	OfferPending  OfferStatus = "PENDING"
	OfferSent     OfferStatus = "SENT"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferRejected OfferStatus = "REJECTED"
	// OfferExpired is never persisted; it is computed at read time from
	// ExpiresAt. See Offer.EffectiveStatus.
	OfferExpired OfferStatus = "EXPIRED"
)

type Offer struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"application_id"`
	Application   Application `gorm:"foreignKey:ApplicationID" json:"-"`
	Title         string      `gorm:"type:varchar(255);not null" json:"title"`
	Salary        float64     `gorm:"not null" json:"salary"`
	Currency      string      `gorm:"type:varchar(10);not null" json:"currency"`
	Status        OfferStatus `gorm:"type:varchar(20);not null" json:"status"`
	ContractText  string      `gorm:"type:text" json:"contract_text,omitempty"`
	SignatureRef  string      `gorm:"type:text" json:"signature_ref,omitempty"`
	IssuedAt      *time.Time  `json:"issued_at,omitempty"`
	RespondedAt   *time.Time  `json:"responded_at,omitempty"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// EffectiveStatus reports the offer status as seen by readers: an offer
// still open (PENDING or SENT) past its expiry reads as EXPIRED. The
// persisted Status column is never rewritten by expiry.
func (o Offer) EffectiveStatus(now time.Time) OfferStatus {
	if (o.Status == OfferPending || o.Status == OfferSent) &&
		o.ExpiresAt != nil && o.ExpiresAt.Before(now) {
		return OfferExpired
	}
	return o.Status
}

// OnboardingTask is a global checklist template.
type OnboardingTask struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// OnboardingItem is a per-application instance of a task template. The
// unique index on (application_id, task_id) is what makes checklist
// generation idempotent under concurrent callers.
type OnboardingItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_onboarding_app_task" json:"application_id"`
	TaskID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_onboarding_app_task" json:"task_id"`
	Task          OnboardingTask `gorm:"foreignKey:TaskID" json:"-"`
	Completed     bool           `gorm:"not null;default:false" json:"completed"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	EvidenceRef   string         `gorm:"type:text" json:"evidence_ref,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
