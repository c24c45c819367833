package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type RuleSetService struct {
	jobs     store.JobStore
	ruleSets store.RuleSetStore
}

func NewRuleSetService(jobs store.JobStore, ruleSets store.RuleSetStore) *RuleSetService {
	return &RuleSetService{jobs: jobs, ruleSets: ruleSets}
}

type UpsertRuleSetInput struct {
	MustHave           []string `json:"must_have"`
	Preferred          []string `json:"preferred"`
	ShortlistThreshold float64  `json:"shortlist_threshold"`
	RejectThreshold    float64  `json:"reject_threshold"`
	AutoRegret         bool     `json:"auto_regret"`
}

// Upsert stores the job's rule set. A malformed threshold ordering is
// rejected here, at configuration time, so scoring never has to cope with
// it.
func (s *RuleSetService) Upsert(ctx context.Context, jobID uuid.UUID, in UpsertRuleSetInput) (*models.RuleSet, error) {
	if in.RejectThreshold >= in.ShortlistThreshold {
		return nil, apperr.ValidationFields("invalid thresholds", map[string]string{
			"reject_threshold": "must be strictly below shortlist_threshold",
		})
	}
	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		return nil, err
	}
	rules := &models.RuleSet{
		JobID:              jobID,
		MustHave:           in.MustHave,
		Preferred:          in.Preferred,
		ShortlistThreshold: in.ShortlistThreshold,
		RejectThreshold:    in.RejectThreshold,
		AutoRegret:         in.AutoRegret,
	}
	if err := s.ruleSets.Upsert(ctx, rules); err != nil {
		return nil, err
	}
	saved, err := s.ruleSets.GetByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	log.WithField("job_id", jobID).Info("rule set saved")
	return saved, nil
}

func (s *RuleSetService) GetByJob(ctx context.Context, jobID uuid.UUID) (*models.RuleSet, error) {
	return s.ruleSets.GetByJob(ctx, jobID)
}
