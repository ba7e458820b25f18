package services

import (
	"context"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

// VocabularyService manages a learner's word list and recall strength.
type VocabularyService struct {
	repo  *repository.Repository
	clock Clock
	log   *utils.Logger
}

func NewVocabularyService(repo *repository.Repository, clock Clock, baseLog *utils.Logger) *VocabularyService {
	return &VocabularyService{repo: repo, clock: clock, log: baseLog.With("service", "VocabularyService")}
}

func (s *VocabularyService) List(ctx context.Context, userID uint) ([]models.UserVocabularyItem, error) {
	return s.repo.Vocabulary.List(ctx, nil, userID)
}

// Add puts a word on the user's list. Adding it again returns the existing entry.
func (s *VocabularyService) Add(ctx context.Context, userID, vocabularyID uint) (*models.UserVocabularyItem, error) {
	if _, err := s.repo.Content.GetVocabulary(ctx, nil, vocabularyID); err != nil {
		return nil, err
	}
	return s.repo.Vocabulary.Add(ctx, nil, userID, vocabularyID, true)
}

func (s *VocabularyService) Remove(ctx context.Context, userID, vocabularyID uint) error {
	return s.repo.Vocabulary.Remove(ctx, nil, userID, vocabularyID)
}

// Review records one recall: strength moves by one within [0, 5].
func (s *VocabularyService) Review(ctx context.Context, userID, vocabularyID uint, correct bool) (*models.UserVocabularyItem, error) {
	item, err := s.repo.Vocabulary.Review(ctx, nil, userID, vocabularyID, correct, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.log.Debug("vocabulary reviewed", "user_id", userID, "vocabulary_id", vocabularyID, "correct", correct, "strength", item.Strength)
	return item, nil
}
