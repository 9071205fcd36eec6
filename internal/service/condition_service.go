package service

import (
	"context"
	"errors"

	"paperdeck/internal/cache"
	"paperdeck/internal/engine"
	"paperdeck/internal/model"
	"paperdeck/internal/repository"
)

var ErrQuestionNotFound = errors.New("question not found")

// ConditionService runs the dependency engine against fresh paper snapshots.
// Each call loads the full question set for the paper, hands it to the
// engine, and discards it; nothing is kept between calls except the redis
// analytics cache, which is invalidated whenever a condition changes.
type ConditionService struct {
	questionRepo repository.QuestionRepo
	graphCache   cache.GraphCache
}

// NewConditionService creates a new condition service
func NewConditionService(questionRepo repository.QuestionRepo, graphCache cache.GraphCache) *ConditionService {
	return &ConditionService{
		questionRepo: questionRepo,
		graphCache:   graphCache,
	}
}

// Validate checks a candidate condition for a question without persisting it
func (s *ConditionService) Validate(ctx context.Context, paperID, questionID string, cond *model.Condition) (*model.ValidationResult, error) {
	snapshot, err := s.snapshotWithQuestion(ctx, paperID, questionID)
	if err != nil {
		return nil, err
	}
	return engine.ValidateCondition(questionID, cond, snapshot), nil
}

// Dependencies answers what a question depends on, directly and transitively
func (s *ConditionService) Dependencies(ctx context.Context, paperID, questionID string) (*model.DependencyInfo, error) {
	snapshot, err := s.snapshotWithQuestion(ctx, paperID, questionID)
	if err != nil {
		return nil, err
	}
	return engine.QueryDependencies(engine.BuildGraph(snapshot), questionID), nil
}

// Analytics returns the paper's graph inspection snapshot, cached until the
// next condition change.
func (s *ConditionService) Analytics(ctx context.Context, paperID string) (*model.GraphAnalytics, error) {
	if cached, err := s.graphCache.GetAnalytics(ctx, paperID); err == nil && cached != nil {
		return cached, nil
	}

	snapshot, err := s.questionRepo.GetByPaperID(ctx, paperID)
	if err != nil {
		return nil, err
	}

	analytics := engine.BuildAnalytics(snapshot, engine.BuildGraph(snapshot))
	if err := s.graphCache.SetAnalytics(ctx, paperID, analytics); err != nil {
		// Serving the computed result matters more than caching it.
		return analytics, nil
	}
	return analytics, nil
}

// InvalidateGraph drops the cached analytics for a paper
func (s *ConditionService) InvalidateGraph(ctx context.Context, paperID string) error {
	return s.graphCache.Invalidate(ctx, paperID)
}

func (s *ConditionService) snapshotWithQuestion(ctx context.Context, paperID, questionID string) ([]*model.Question, error) {
	snapshot, err := s.questionRepo.GetByPaperID(ctx, paperID)
	if err != nil {
		return nil, err
	}
	for _, q := range snapshot {
		if q.ID == questionID {
			return snapshot, nil
		}
	}
	return nil, ErrQuestionNotFound
}
