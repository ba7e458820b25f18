package repository

import (
	"context"
	"time"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatRepo interface {
	// Accumulate adds the deltas to the (userID, day) row, creating it if
	// needed, and recomputes goal_met against targetXP in the same statement.
	Accumulate(ctx context.Context, tx *gorm.DB, userID uint, day models.CalendarDay, xpDelta, lessonsDelta, targetXP int) (*models.DailyStat, error)
	RecomputeGoalMet(ctx context.Context, tx *gorm.DB, userID uint, day models.CalendarDay, targetXP int) error
	Get(ctx context.Context, tx *gorm.DB, userID uint, day models.CalendarDay) (*models.DailyStat, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.DailyStat, error)
	// ListSince returns every row on or after since; a zero since means all rows.
	ListSince(ctx context.Context, tx *gorm.DB, since models.CalendarDay) ([]models.DailyStat, error)
}

type dailyStatRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewDailyStatRepo(db *gorm.DB, baseLog *utils.Logger) DailyStatRepo {
	return &dailyStatRepo{db: db, log: baseLog.With("repo", "DailyStatRepo")}
}

func (r *dailyStatRepo) Accumulate(ctx context.Context, tx *gorm.DB, userID uint, day models.CalendarDay, xpDelta, lessonsDelta, targetXP int) (*models.DailyStat, error) {
	db := conn(r.db, tx).WithContext(ctx)

	row := &models.DailyStat{
		UserID:           userID,
		Day:              day,
		XPEarned:         xpDelta,
		LessonsCompleted: lessonsDelta,
		GoalMet:          xpDelta >= targetXP,
	}
	// upsert with increment: concurrent writers serialize on the unique key
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"xp_earned":         gorm.Expr("user_daily_stats.xp_earned + ?", xpDelta),
			"lessons_completed": gorm.Expr("user_daily_stats.lessons_completed + ?", lessonsDelta),
			"goal_met":          gorm.Expr("user_daily_stats.xp_earned + ? >= ?", xpDelta, targetXP),
			"updated_at":        time.Now(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, wrap("accumulate daily stat", "daily stat", userID, err)
	}

	return r.Get(ctx, tx, userID, day)
}

func (r *dailyStatRepo) RecomputeGoalMet(ctx context.Context, tx *gorm.DB, userID uint, day models.CalendarDay, targetXP int) error {
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.DailyStat{}).
		Where("user_id = ? AND day = ?", userID, day).
		Updates(map[string]interface{}{
			"goal_met":   gorm.Expr("xp_earned >= ?", targetXP),
			"updated_at": time.Now(),
		}).Error
	return wrap("recompute goal", "daily stat", userID, err)
}

func (r *dailyStatRepo) Get(ctx context.Context, tx *gorm.DB, userID uint, day models.CalendarDay) (*models.DailyStat, error) {
	var stat models.DailyStat
	err := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&stat).Error
	if err != nil {
		return nil, wrap("get daily stat", "daily stat", day.String(), err)
	}
	return &stat, nil
}

func (r *dailyStatRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.DailyStat, error) {
	stats := []models.DailyStat{}
	err := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Find(&stats).Error
	if err != nil {
		return nil, wrap("list daily stats", "daily stat", userID, err)
	}
	return stats, nil
}

func (r *dailyStatRepo) ListSince(ctx context.Context, tx *gorm.DB, since models.CalendarDay) ([]models.DailyStat, error) {
	stats := []models.DailyStat{}
	q := conn(r.db, tx).WithContext(ctx).Model(&models.DailyStat{})
	if !since.IsZero() {
		q = q.Where("day >= ?", since)
	}
	if err := q.Order("day DESC, user_id ASC").Find(&stats).Error; err != nil {
		return nil, wrap("list daily stats", "daily stat", nil, err)
	}
	return stats, nil
}
