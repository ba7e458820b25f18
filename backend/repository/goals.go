package repository

import (
	"context"
	"errors"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepo interface {
	// Get returns nil, nil when the user never stored a goal.
	Get(ctx context.Context, tx *gorm.DB, userID uint) (*models.DailyGoal, error)
	Upsert(ctx context.Context, tx *gorm.DB, goal *models.DailyGoal) error
}

type goalRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *utils.Logger) GoalRepo {
	return &goalRepo{db: db, log: baseLog.With("repo", "GoalRepo")}
}

func (r *goalRepo) Get(ctx context.Context, tx *gorm.DB, userID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := conn(r.db, tx).WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get daily goal", "daily goal", userID, err)
	}
	return &goal, nil
}

func (r *goalRepo) Upsert(ctx context.Context, tx *gorm.DB, goal *models.DailyGoal) error {
	err := conn(r.db, tx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_xp_per_day", "target_lessons_per_day", "updated_at"}),
	}).Create(goal).Error
	return wrap("upsert daily goal", "daily goal", goal.UserID, err)
}
