package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type JobStatus string

const (
	JobActive JobStatus = "ACTIVE"
	JobClosed JobStatus = "CLOSED"
)

type JobPosting struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Branch         string     `gorm:"type:varchar(120)" json:"branch"`
	Region         string     `gorm:"type:varchar(120)" json:"region"`
	EmploymentType string     `gorm:"type:varchar(60)" json:"employment_type"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Status         JobStatus  `gorm:"type:varchar(20);not null;default:ACTIVE" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RuleSet is one-to-one with its JobPosting and cascade-deleted with it.
type RuleSet struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	JobID              uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"job_id"`
	Job                JobPosting     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	MustHave           pq.StringArray `gorm:"type:text[]" json:"must_have"`
	Preferred          pq.StringArray `gorm:"type:text[]" json:"preferred"`
	ShortlistThreshold float64        `gorm:"not null" json:"shortlist_threshold"`
	RejectThreshold    float64        `gorm:"not null" json:"reject_threshold"`
	AutoRegret         bool           `json:"auto_regret"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type ApplicationStatus string

const (
	AppReceived     ApplicationStatus = "RECEIVED"
	AppReviewed     ApplicationStatus = "REVIEWED"
	AppShortlisted  ApplicationStatus = "SHORTLISTED"
	AppInterviewing ApplicationStatus = "INTERVIEWING"
	AppOffered      ApplicationStatus = "OFFERED"
	AppAccepted     ApplicationStatus = "ACCEPTED"
	AppRejected     ApplicationStatus = "REJECTED"
)

type Application struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	JobID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	Job            JobPosting        `gorm:"foreignKey:JobID" json:"-"`
	FirstName      string            `gorm:"type:varchar(120);not null" json:"first_name"`
	LastName       string            `gorm:"type:varchar(120)" json:"last_name"`
	Email          string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string            `gorm:"type:varchar(60)" json:"phone"`
	ResumeText     string            `gorm:"type:text" json:"-"`
	ResumeURL      string            `gorm:"type:text" json:"resume_url,omitempty"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Score          *float64          `json:"score,omitempty"`
	Reasons        pq.StringArray    `gorm:"type:text[]" json:"reasons"`
	RejectReason   string            `gorm:"type:text" json:"reject_reason,omitempty"`
	CurrentStageID *uuid.UUID        `gorm:"type:uuid" json:"current_stage_id,omitempty"`
	LastActivityAt time.Time         `json:"last_activity_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type Pipeline struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(120);not null" json:"name"`
	Stages    []PipelineStage `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE" json:"stages"`
	CreatedAt time.Time       `json:"created_at"`
}

// PipelineStage ordering is an explicit strictly increasing integer,
// reassigned on reorder rather than inferred from slice position.
type PipelineStage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PipelineID uuid.UUID `gorm:"type:uuid;not null;index" json:"pipeline_id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	StageOrder int       `gorm:"not null" json:"order"`
	Color      string    `gorm:"type:varchar(20)" json:"color"`
}
