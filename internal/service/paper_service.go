package service

import (
	"context"
	"errors"

	"paperdeck/internal/model"
	"paperdeck/internal/repository"
)

var (
	ErrPaperNotFound = errors.New("paper not found")
	ErrNotPaperOwner = errors.New("paper belongs to another author")
)

// PaperService manages paper templates
type PaperService struct {
	paperRepo    repository.PaperRepo
	questionRepo repository.QuestionRepo
}

// NewPaperService creates a new paper service
func NewPaperService(paperRepo repository.PaperRepo, questionRepo repository.QuestionRepo) *PaperService {
	return &PaperService{
		paperRepo:    paperRepo,
		questionRepo: questionRepo,
	}
}

// Create stores a new paper for an author
func (s *PaperService) Create(ctx context.Context, paper *model.Paper) (string, error) {
	return s.paperRepo.Create(ctx, paper)
}

// Get returns a paper owned by the author
func (s *PaperService) Get(ctx context.Context, authorID, paperID string) (*model.Paper, error) {
	paper, err := s.paperRepo.GetByID(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}
	if paper.AuthorID != authorID {
		return nil, ErrNotPaperOwner
	}
	return paper, nil
}

// List returns all papers for an author
func (s *PaperService) List(ctx context.Context, authorID string) ([]*model.Paper, error) {
	return s.paperRepo.GetByAuthorID(ctx, authorID)
}

// Update replaces a paper's metadata
func (s *PaperService) Update(ctx context.Context, authorID string, paper *model.Paper) error {
	existing, err := s.Get(ctx, authorID, paper.ID)
	if err != nil {
		return err
	}
	paper.AuthorID = existing.AuthorID
	paper.CreatedAt = existing.CreatedAt
	return s.paperRepo.Update(ctx, paper)
}

// Delete removes a paper and all of its questions
func (s *PaperService) Delete(ctx context.Context, authorID, paperID string) error {
	if _, err := s.Get(ctx, authorID, paperID); err != nil {
		return err
	}
	if err := s.questionRepo.DeleteByPaperID(ctx, paperID); err != nil {
		return err
	}
	return s.paperRepo.Delete(ctx, paperID)
}
