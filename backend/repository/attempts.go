package repository

import (
	"context"
	"time"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
)

type AttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.LessonAttempt) error
	// GetForUser only finds attempts owned by userID.
	GetForUser(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.LessonAttempt, error)
	// Complete moves a STARTED attempt to COMPLETED. It fails with
	// models.ErrAttemptCompleted if the attempt is already completed.
	Complete(ctx context.Context, tx *gorm.DB, id uint, result models.AttemptResult, at time.Time) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.LessonAttempt, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]models.LessonAttempt, error)
	// CompletedLessonIDs returns the distinct lessons userID has completed at least once.
	CompletedLessonIDs(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *utils.Logger) AttemptRepo {
	return &attemptRepo{db: db, log: baseLog.With("repo", "AttemptRepo")}
}

func (r *attemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *models.LessonAttempt) error {
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = time.Now()
	}
	err := conn(r.db, tx).WithContext(ctx).Create(attempt).Error
	return wrap("create lesson attempt", "lesson attempt", nil, err)
}

func (r *attemptRepo) GetForUser(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.LessonAttempt, error) {
	var attempt models.LessonAttempt
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, wrap("get lesson attempt", "lesson attempt", id, err)
	}
	return &attempt, nil
}

func (r *attemptRepo) Complete(ctx context.Context, tx *gorm.DB, id uint, result models.AttemptResult, at time.Time) error {
	res := conn(r.db, tx).WithContext(ctx).
		Model(&models.LessonAttempt{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"completed_at":    at,
			"score_percent":   result.ScorePercent,
			"total_questions": result.TotalQuestions,
			"correct_answers": result.CorrectAnswers,
			"xp_earned":       result.XPEarned,
		})
	if res.Error != nil {
		return wrap("complete lesson attempt", "lesson attempt", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrAttemptCompleted
	}
	return nil
}

func (r *attemptRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.LessonAttempt, error) {
	attempts := []models.LessonAttempt{}
	err := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, wrap("list lesson attempts", "lesson attempt", userID, err)
	}
	return attempts, nil
}

func (r *attemptRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]models.LessonAttempt, error) {
	attempts := []models.LessonAttempt{}
	if err := conn(r.db, tx).WithContext(ctx).Order("id ASC").Find(&attempts).Error; err != nil {
		return nil, wrap("list lesson attempts", "lesson attempt", nil, err)
	}
	return attempts, nil
}

func (r *attemptRepo) CompletedLessonIDs(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error) {
	ids := []uint{}
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.LessonAttempt{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Distinct().
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, wrap("list completed lessons", "lesson attempt", userID, err)
	}
	return ids, nil
}
