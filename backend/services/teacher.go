package services

import (
	"context"

	"github.com/samber/lo"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

// TeacherService loads everything the teacher dashboard aggregates.
type TeacherService struct {
	repo  *repository.Repository
	clock Clock
	log   *utils.Logger
}

func NewTeacherService(repo *repository.Repository, clock Clock, baseLog *utils.Logger) *TeacherService {
	return &TeacherService{repo: repo, clock: clock, log: baseLog.With("service", "TeacherService")}
}

// Dashboard covers every registered user and every published course.
func (s *TeacherService) Dashboard(ctx context.Context) (*models.TeacherDashboard, error) {
	users, err := s.repo.Users.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.Content.ListCourses(ctx, nil, repository.CourseFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	var lessons []models.Lesson
	if len(courses) > 0 {
		lessons, err = s.repo.Content.ListLessons(ctx, nil, lo.Map(courses, func(c models.Course, _ int) uint { return c.ID })...)
		if err != nil {
			return nil, err
		}
	}
	attempts, err := s.repo.Attempts.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.DailyStats.ListSince(ctx, nil, models.CalendarDay{})
	if err != nil {
		return nil, err
	}

	dashboard := BuildTeacherDashboard(DashboardInput{
		Students:   users,
		Courses:    courses,
		Lessons:    lessons,
		Attempts:   attempts,
		DailyStats: stats,
		Today:      s.clock.Today(),
	})
	return &dashboard, nil
}
