package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type PipelineService struct {
	pipelines store.PipelineStore
}

func NewPipelineService(pipelines store.PipelineStore) *PipelineService {
	return &PipelineService{pipelines: pipelines}
}

type CreatePipelineInput struct {
	Name   string            `json:"name" binding:"required"`
	Stages []StageDefinition `json:"stages" binding:"required,min=1"`
}

type StageDefinition struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// Create builds a pipeline whose stages get explicit, strictly increasing
// order values. Order is never inferred from slice position after this
// point; reordering reassigns the integers.
func (s *PipelineService) Create(ctx context.Context, in CreatePipelineInput) (*models.Pipeline, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("pipeline name is required")
	}
	if len(in.Stages) == 0 {
		return nil, apperr.Validation("pipeline needs at least one stage")
	}
	p := &models.Pipeline{Name: strings.TrimSpace(in.Name)}
	for i, def := range in.Stages {
		if strings.TrimSpace(def.Name) == "" {
			return nil, apperr.Validation("stage name is required")
		}
		p.Stages = append(p.Stages, models.PipelineStage{
			Name:       strings.TrimSpace(def.Name),
			StageOrder: i + 1,
			Color:      def.Color,
		})
	}
	if err := s.pipelines.Create(ctx, p); err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{"pipeline_id": p.ID, "stages": len(p.Stages)}).Info("pipeline created")
	return p, nil
}

func (s *PipelineService) Get(ctx context.Context, id uuid.UUID) (*models.Pipeline, error) {
	return s.pipelines.Get(ctx, id)
}

// Reorder takes the complete stage id list in its new order and recomputes
// every StageOrder. The list must name each stage of the pipeline exactly
// once.
func (s *PipelineService) Reorder(ctx context.Context, pipelineID uuid.UUID, orderedStageIDs []uuid.UUID) (*models.Pipeline, error) {
	p, err := s.pipelines.Get(ctx, pipelineID)
	if err != nil {
		return nil, err
	}
	if len(orderedStageIDs) != len(p.Stages) {
		return nil, apperr.Validation("reorder must list every stage exactly once")
	}
	existing := make(map[uuid.UUID]bool, len(p.Stages))
	for _, st := range p.Stages {
		existing[st.ID] = true
	}
	orders := make(map[uuid.UUID]int, len(orderedStageIDs))
	for i, id := range orderedStageIDs {
		if !existing[id] {
			return nil, apperr.Validation("unknown stage in reorder: " + id.String())
		}
		if _, dup := orders[id]; dup {
			return nil, apperr.Validation("duplicate stage in reorder: " + id.String())
		}
		orders[id] = i + 1
	}
	return s.pipelines.ReorderStages(ctx, pipelineID, orders)
}
