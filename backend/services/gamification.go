package services

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

// GoalDefaults apply to users that never saved a goal.
type GoalDefaults struct {
	XPPerDay      int
	LessonsPerDay int
}

// GamificationService owns the daily stat accumulator, goals and the stats view.
type GamificationService struct {
	repo        *repository.Repository
	leaderboard *LeaderboardService
	clock       Clock
	defaults    GoalDefaults
	log         *utils.Logger
}

func NewGamificationService(repo *repository.Repository, leaderboard *LeaderboardService, clock Clock, defaults GoalDefaults, baseLog *utils.Logger) *GamificationService {
	if defaults.XPPerDay <= 0 {
		defaults.XPPerDay = 50
	}
	if defaults.LessonsPerDay <= 0 {
		defaults.LessonsPerDay = 1
	}
	return &GamificationService{
		repo:        repo,
		leaderboard: leaderboard,
		clock:       clock,
		defaults:    defaults,
		log:         baseLog.With("service", "GamificationService"),
	}
}

// AddXP adds delta to today's row of userID.
func (s *GamificationService) AddXP(ctx context.Context, userID uint, delta int) (*models.DailyStat, error) {
	return s.accumulate(ctx, nil, userID, delta, 0)
}

// CompleteLesson counts one completed lesson today.
func (s *GamificationService) CompleteLesson(ctx context.Context, userID uint) (*models.DailyStat, error) {
	return s.accumulate(ctx, nil, userID, 0, 1)
}

// Accumulate is AddXP and CompleteLesson in one step, running inside tx when
// given. Callers that pass a tx must call AfterCommit once it commits.
func (s *GamificationService) Accumulate(ctx context.Context, tx *gorm.DB, userID uint, xpDelta, lessonsDelta int) (*models.DailyStat, error) {
	return s.accumulate(ctx, tx, userID, xpDelta, lessonsDelta)
}

func (s *GamificationService) AfterCommit(ctx context.Context) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
}

func (s *GamificationService) accumulate(ctx context.Context, tx *gorm.DB, userID uint, xpDelta, lessonsDelta int) (*models.DailyStat, error) {
	if xpDelta < 0 {
		return nil, models.Invalid("xp", "must not be negative")
	}
	if lessonsDelta < 0 {
		return nil, models.Invalid("lessons", "must not be negative")
	}
	if _, err := s.repo.Users.GetByID(ctx, tx, userID); err != nil {
		return nil, err
	}

	goal, err := s.Goal(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()

	stat, err := s.repo.DailyStats.Accumulate(ctx, tx, userID, today, xpDelta, lessonsDelta, goal.TargetXPPerDay)
	if err != nil {
		s.log.Error("daily stat accumulation failed", "user_id", userID, "day", today.String(), "error", err)
		return nil, err
	}
	if tx == nil && xpDelta > 0 {
		s.AfterCommit(ctx)
	}
	return stat, nil
}

// Goal returns the stored goal of userID or the configured defaults.
func (s *GamificationService) Goal(ctx context.Context, tx *gorm.DB, userID uint) (*models.DailyGoal, error) {
	goal, err := s.repo.Goals.Get(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return &models.DailyGoal{
			UserID:              userID,
			TargetXPPerDay:      s.defaults.XPPerDay,
			TargetLessonsPerDay: s.defaults.LessonsPerDay,
		}, nil
	}
	return goal, nil
}

// CreateDefaultGoal stores the default goal for a new user.
func (s *GamificationService) CreateDefaultGoal(ctx context.Context, tx *gorm.DB, userID uint) error {
	return s.repo.Goals.Upsert(ctx, tx, &models.DailyGoal{
		UserID:              userID,
		TargetXPPerDay:      s.defaults.XPPerDay,
		TargetLessonsPerDay: s.defaults.LessonsPerDay,
	})
}

// UpdateGoal saves new targets and re-evaluates today's goalMet against them.
func (s *GamificationService) UpdateGoal(ctx context.Context, userID uint, xpPerDay, lessonsPerDay int) (*models.DailyGoal, error) {
	if xpPerDay <= 0 {
		return nil, models.Invalid("targetXpPerDay", "must be greater than 0")
	}
	if lessonsPerDay <= 0 {
		return nil, models.Invalid("targetLessonsPerDay", "must be greater than 0")
	}

	var saved *models.DailyGoal
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		goal := &models.DailyGoal{
			UserID:              userID,
			TargetXPPerDay:      xpPerDay,
			TargetLessonsPerDay: lessonsPerDay,
		}
		if err := s.repo.Goals.Upsert(ctx, tx, goal); err != nil {
			return err
		}
		if err := s.repo.DailyStats.RecomputeGoalMet(ctx, tx, userID, s.clock.Today(), xpPerDay); err != nil {
			return err
		}
		var err error
		saved, err = s.repo.Goals.Get(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("daily goal updated", "user_id", userID, "xp", xpPerDay, "lessons", lessonsPerDay)
	return saved, nil
}

// Stats is the dashboard summary of userID.
func (s *GamificationService) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	stats, err := s.repo.DailyStats.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	goal, err := s.Goal(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	streaks := ComputeStreaks(stats, today)

	out := &models.UserStats{
		TotalXP:               lo.SumBy(stats, func(d models.DailyStat) int { return d.XPEarned }),
		TotalLessonsCompleted: lo.SumBy(stats, func(d models.DailyStat) int { return d.LessonsCompleted }),
		CurrentStreak:         streaks.CurrentStreak,
		LongestStreak:         streaks.LongestStreak,
	}
	if row, ok := lo.Find(stats, func(d models.DailyStat) bool { return d.Day == today }); ok {
		out.TodayXP = row.XPEarned
		out.TodayLessonsCompleted = row.LessonsCompleted
		out.GoalMet = row.GoalMet
	}
	out.LessonGoalMet = out.TodayLessonsCompleted >= goal.TargetLessonsPerDay
	return out, nil
}

// History returns the user's daily rows, newest first.
func (s *GamificationService) History(ctx context.Context, userID uint) ([]models.DailyStat, error) {
	return s.repo.DailyStats.ListByUser(ctx, nil, userID)
}
