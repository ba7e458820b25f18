package repository

import (
	"context"
	"time"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VocabularyRepo interface {
	List(ctx context.Context, tx *gorm.DB, userID uint) ([]models.UserVocabularyItem, error)
	Get(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint) (*models.UserVocabularyItem, error)
	// Add is idempotent: adding a word twice keeps the first row.
	Add(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint, manual bool) (*models.UserVocabularyItem, error)
	Remove(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint) error
	// Review applies one recall result to strength, clamped to [0, 5].
	Review(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint, correct bool, at time.Time) (*models.UserVocabularyItem, error)
}

type vocabularyRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewVocabularyRepo(db *gorm.DB, baseLog *utils.Logger) VocabularyRepo {
	return &vocabularyRepo{db: db, log: baseLog.With("repo", "VocabularyRepo")}
}

func (r *vocabularyRepo) List(ctx context.Context, tx *gorm.DB, userID uint) ([]models.UserVocabularyItem, error) {
	items := []models.UserVocabularyItem{}
	err := conn(r.db, tx).WithContext(ctx).
		Preload("VocabularyItem").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, wrap("list user vocabulary", "user vocabulary", userID, err)
	}
	return items, nil
}

func (r *vocabularyRepo) Get(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint) (*models.UserVocabularyItem, error) {
	var item models.UserVocabularyItem
	err := conn(r.db, tx).WithContext(ctx).
		Preload("VocabularyItem").
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).
		First(&item).Error
	if err != nil {
		return nil, wrap("get user vocabulary", "vocabulary item", vocabularyID, err)
	}
	return &item, nil
}

func (r *vocabularyRepo) Add(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint, manual bool) (*models.UserVocabularyItem, error) {
	item := &models.UserVocabularyItem{
		UserID:        userID,
		VocabularyID:  vocabularyID,
		AddedManually: manual,
	}
	err := conn(r.db, tx).WithContext(ctx).
		Omit("VocabularyItem").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
	if err != nil {
		return nil, wrap("add user vocabulary", "vocabulary item", vocabularyID, err)
	}
	return r.Get(ctx, tx, userID, vocabularyID)
}

func (r *vocabularyRepo) Remove(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint) error {
	res := conn(r.db, tx).WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).
		Delete(&models.UserVocabularyItem{})
	if res.Error != nil {
		return wrap("remove user vocabulary", "vocabulary item", vocabularyID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NotFound("vocabulary item", vocabularyID)
	}
	return nil
}

func (r *vocabularyRepo) Review(ctx context.Context, tx *gorm.DB, userID, vocabularyID uint, correct bool, at time.Time) (*models.UserVocabularyItem, error) {
	strength := gorm.Expr("CASE WHEN strength <= 0 THEN 0 ELSE strength - 1 END")
	if correct {
		strength = gorm.Expr("CASE WHEN strength >= ? THEN ? ELSE strength + 1 END", models.MaxVocabularyStrength, models.MaxVocabularyStrength)
	}
	res := conn(r.db, tx).WithContext(ctx).
		Model(&models.UserVocabularyItem{}).
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).
		Updates(map[string]interface{}{
			"strength":     strength,
			"last_seen_at": at,
		})
	if res.Error != nil {
		return nil, wrap("review user vocabulary", "vocabulary item", vocabularyID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NotFound("vocabulary item", vocabularyID)
	}
	return r.Get(ctx, tx, userID, vocabularyID)
}
