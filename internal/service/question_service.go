package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"paperdeck/internal/engine"
	"paperdeck/internal/model"
	"paperdeck/internal/repository"
)

var ErrConditionRejected = errors.New("condition failed validation")

// QuestionService manages the questions of a paper. Any create or update
// carrying a condition goes through the engine first; a rejected condition
// is never persisted.
type QuestionService struct {
	questionRepo repository.QuestionRepo
	paperRepo    repository.PaperRepo
	conditionSvc *ConditionService
	broadcaster  Broadcaster
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo repository.QuestionRepo, paperRepo repository.PaperRepo, conditionSvc *ConditionService) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		paperRepo:    paperRepo,
		conditionSvc: conditionSvc,
	}
}

// SetBroadcaster wires live editor updates (wsHub implements Broadcaster)
func (s *QuestionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// List returns a paper's questions in authored order
func (s *QuestionService) List(ctx context.Context, authorID, paperID string) ([]*model.Question, error) {
	if err := s.checkOwnership(ctx, authorID, paperID); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByPaperID(ctx, paperID)
}

// Create adds a question to a paper. The condition, if any, is validated
// against the snapshot including the new question.
func (s *QuestionService) Create(ctx context.Context, authorID string, q *model.Question) (*model.ValidationResult, error) {
	if err := s.checkOwnership(ctx, authorID, q.PaperID); err != nil {
		return nil, err
	}

	if q.ID == "" {
		q.ID = primitive.NewObjectID().Hex()
	}

	if q.Condition != nil {
		snapshot, err := s.questionRepo.GetByPaperID(ctx, q.PaperID)
		if err != nil {
			return nil, err
		}
		verdict := engine.ValidateCondition(q.ID, q.Condition, append(snapshot, q))
		if !verdict.IsValid {
			return verdict, ErrConditionRejected
		}
	}

	if _, err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.notifyGraphChanged(ctx, q.PaperID)
	return nil, nil
}

// Update replaces a question. Condition changes are validated first.
func (s *QuestionService) Update(ctx context.Context, authorID string, q *model.Question) (*model.ValidationResult, error) {
	if err := s.checkOwnership(ctx, authorID, q.PaperID); err != nil {
		return nil, err
	}

	snapshot, err := s.questionRepo.GetByPaperID(ctx, q.PaperID)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, existing := range snapshot {
		if existing.ID == q.ID {
			snapshot[i] = q
			replaced = true
			break
		}
	}
	if !replaced {
		return nil, ErrQuestionNotFound
	}

	if q.Condition != nil {
		verdict := engine.ValidateCondition(q.ID, q.Condition, snapshot)
		if !verdict.IsValid {
			return verdict, ErrConditionRejected
		}
	}

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	s.notifyGraphChanged(ctx, q.PaperID)
	return nil, nil
}

// SetCondition validates and persists a condition for one question. The
// verdict is returned either way so the caller can surface warnings and
// errors; only a valid one is stored.
func (s *QuestionService) SetCondition(ctx context.Context, authorID, paperID, questionID string, cond *model.Condition) (*model.ValidationResult, error) {
	if err := s.checkOwnership(ctx, authorID, paperID); err != nil {
		return nil, err
	}

	verdict, err := s.conditionSvc.Validate(ctx, paperID, questionID, cond)
	if err != nil {
		return nil, err
	}
	if !verdict.IsValid {
		return verdict, nil
	}

	if err := s.questionRepo.UpdateCondition(ctx, questionID, cond); err != nil {
		return nil, err
	}
	s.notifyGraphChanged(ctx, paperID)
	return verdict, nil
}

// Delete removes a question. Questions whose conditions reference it keep
// their trees; the dangling reference surfaces on their next validation.
func (s *QuestionService) Delete(ctx context.Context, authorID, paperID, questionID string) error {
	if err := s.checkOwnership(ctx, authorID, paperID); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return err
	}
	s.notifyGraphChanged(ctx, paperID)
	return nil
}

func (s *QuestionService) checkOwnership(ctx context.Context, authorID, paperID string) error {
	paper, err := s.paperRepo.GetByID(ctx, paperID)
	if err != nil {
		return err
	}
	if paper == nil {
		return ErrPaperNotFound
	}
	if paper.AuthorID != authorID {
		return ErrNotPaperOwner
	}
	return nil
}

func (s *QuestionService) notifyGraphChanged(ctx context.Context, paperID string) {
	_ = s.conditionSvc.InvalidateGraph(ctx, paperID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToPaper(paperID, "graph_updated", map[string]string{"paperId": paperID})
	}
}
