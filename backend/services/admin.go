package services

import (
	"context"
	"math"

	"github.com/samber/lo"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

const activitySeriesDays = 7

// BuildAdminStats summarizes every daily row. averageStreak is the mean
// current streak of users that have any rows, to one decimal.
func BuildAdminStats(totalUsers int, stats []models.DailyStat, today models.CalendarDay) models.AdminStats {
	out := models.AdminStats{
		TotalUsers:            totalUsers,
		TotalLessonsCompleted: lo.SumBy(stats, func(s models.DailyStat) int { return s.LessonsCompleted }),
		Last7Days:             make([]models.DailyActivity, 0, activitySeriesDays),
	}

	byDay := lo.GroupBy(stats, func(s models.DailyStat) models.CalendarDay { return s.Day })
	out.ActiveToday = len(lo.Uniq(lo.Map(byDay[today], func(s models.DailyStat, _ int) uint { return s.UserID })))

	for i := activitySeriesDays - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		rows := byDay[day]
		out.Last7Days = append(out.Last7Days, models.DailyActivity{
			Date:    day,
			Users:   len(lo.Uniq(lo.Map(rows, func(s models.DailyStat, _ int) uint { return s.UserID }))),
			Lessons: lo.SumBy(rows, func(s models.DailyStat) int { return s.LessonsCompleted }),
		})
	}

	byUser := lo.GroupBy(stats, func(s models.DailyStat) uint { return s.UserID })
	if len(byUser) > 0 {
		total := 0
		for _, rows := range byUser {
			total += ComputeStreaks(rows, today).CurrentStreak
		}
		out.AverageStreak = math.Round(float64(total)/float64(len(byUser))*10) / 10
	}
	return out
}

// AdminService backs the admin panel.
type AdminService struct {
	repo  *repository.Repository
	clock Clock
	log   *utils.Logger
}

func NewAdminService(repo *repository.Repository, clock Clock, baseLog *utils.Logger) *AdminService {
	return &AdminService{repo: repo, clock: clock, log: baseLog.With("service", "AdminService")}
}

func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	count, err := s.repo.Users.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.DailyStats.ListSince(ctx, nil, models.CalendarDay{})
	if err != nil {
		return nil, err
	}
	out := BuildAdminStats(int(count), stats, s.clock.Today())
	return &out, nil
}

func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	return s.repo.Users.List(ctx, nil)
}

func (s *AdminService) SetRole(ctx context.Context, actorID, userID uint, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, models.Invalid("role", "must be user, teacher or admin")
	}
	if actorID == userID && role != models.RoleAdmin {
		return nil, models.Invalid("role", "admins cannot demote themselves")
	}
	user, err := s.repo.Users.UpdateRole(ctx, nil, userID, role)
	if err != nil {
		return nil, err
	}
	s.log.Info("role changed", "actor_id", actorID, "user_id", userID, "role", role)
	return user, nil
}
