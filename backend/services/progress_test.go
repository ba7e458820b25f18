package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

func course(id uint, title string, lessonsCount int) models.Course {
	return models.Course{Model: gorm.Model{ID: id}, Title: title, LessonsCount: lessonsCount}
}

func TestComputeCourseProgress(t *testing.T) {
	lessons := []uint{1, 2, 3, 4, 5}

	t.Run("three of five lessons", func(t *testing.T) {
		// lesson 2 completed twice, lesson 9 belongs to another course
		got := ComputeCourseProgress(course(1, "Office", 5), lessons, []uint{1, 2, 2, 4, 9})
		assert.Equal(t, 3, got.CompletedLessons)
		assert.Equal(t, 5, got.TotalLessons)
		assert.Equal(t, 60, got.ProgressPercent)
		assert.True(t, got.IsStarted)
		assert.False(t, got.IsCompleted)
	})

	t.Run("lessons count falls back to lesson set", func(t *testing.T) {
		got := ComputeCourseProgress(course(1, "Office", 0), lessons[:3], []uint{1})
		assert.Equal(t, 3, got.TotalLessons)
		assert.Equal(t, 33, got.ProgressPercent)
	})

	t.Run("empty course", func(t *testing.T) {
		got := ComputeCourseProgress(course(1, "Empty", 0), nil, []uint{1, 2})
		assert.Equal(t, 0, got.TotalLessons)
		assert.Equal(t, 0, got.ProgressPercent)
		assert.False(t, got.IsStarted)
		assert.False(t, got.IsCompleted)
	})

	t.Run("all lessons completed", func(t *testing.T) {
		got := ComputeCourseProgress(course(1, "Office", 5), lessons, lessons)
		assert.True(t, got.IsCompleted)
		assert.Equal(t, 100, got.ProgressPercent)
	})

	t.Run("stale lessons count never exceeds 100 percent", func(t *testing.T) {
		got := ComputeCourseProgress(course(1, "Office", 2), lessons, lessons)
		assert.True(t, got.IsCompleted)
		assert.Equal(t, 100, got.ProgressPercent)
	})

	t.Run("not started", func(t *testing.T) {
		got := ComputeCourseProgress(course(1, "Office", 5), lessons, nil)
		assert.False(t, got.IsStarted)
		assert.Equal(t, 0, got.ProgressPercent)
	})
}

func TestBuildTeacherDashboard(t *testing.T) {
	today := models.NewCalendarDay(2024, time.March, 10)
	at := func(day int, hour int) time.Time {
		return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
	}
	done := func(day int) *time.Time {
		ts := at(day, 12)
		return &ts
	}

	students := []models.User{
		{Model: gorm.Model{ID: 1}, Name: "Bartek", Email: "b@example.com"},
		{Model: gorm.Model{ID: 2}, Name: "Anna", Email: "a@example.com"},
		{Model: gorm.Model{ID: 3}, Name: "Celina", Email: "c@example.com"},
	}
	courses := []models.Course{course(10, "IT English", 2), course(20, "Finance", 0)}
	lessons := []models.Lesson{
		{Model: gorm.Model{ID: 101}, CourseID: 10},
		{Model: gorm.Model{ID: 102}, CourseID: 10},
		{Model: gorm.Model{ID: 201}, CourseID: 20},
		{Model: gorm.Model{ID: 202}, CourseID: 20},
		{Model: gorm.Model{ID: 203}, CourseID: 20},
	}
	attempts := []models.LessonAttempt{
		// Anna finishes IT English
		{UserID: 2, LessonID: 101, StartedAt: at(8, 9), CompletedAt: done(8), ScorePercent: 80},
		{UserID: 2, LessonID: 102, StartedAt: at(9, 9), CompletedAt: done(9), ScorePercent: 91},
		// Anna only opened a finance lesson
		{UserID: 2, LessonID: 201, StartedAt: at(10, 8)},
		// Bartek did one finance lesson twice
		{UserID: 1, LessonID: 201, StartedAt: at(7, 9), CompletedAt: done(7), ScorePercent: 50},
		{UserID: 1, LessonID: 201, StartedAt: at(9, 9), CompletedAt: done(9), ScorePercent: 100},
	}
	stats := []models.DailyStat{
		{UserID: 1, Day: today.AddDays(-1), XPEarned: 40, GoalMet: false},
		{UserID: 1, Day: today, XPEarned: 50, GoalMet: true},
		{UserID: 2, Day: today.AddDays(-2), XPEarned: 60, GoalMet: true},
		{UserID: 2, Day: today.AddDays(-1), XPEarned: 60, GoalMet: true},
	}

	dash := BuildTeacherDashboard(DashboardInput{
		Students:   students,
		Courses:    courses,
		Lessons:    lessons,
		Attempts:   attempts,
		DailyStats: stats,
		Today:      today,
	})

	require.Len(t, dash.Students, 3)
	assert.Equal(t, uint(2), dash.Students[0].ID, "sorted by xp")
	assert.Equal(t, 120, dash.Students[0].TotalXP)
	assert.Equal(t, 2, dash.Students[0].LessonsCompleted)
	assert.Equal(t, 1, dash.Students[0].CoursesStarted)
	assert.Equal(t, 1, dash.Students[0].CoursesCompleted)
	assert.Equal(t, 2, dash.Students[0].CurrentStreak)
	assert.Equal(t, today.AddDays(-1), dash.Students[0].LastActive)

	assert.Equal(t, uint(1), dash.Students[1].ID)
	assert.Equal(t, 90, dash.Students[1].TotalXP)
	assert.Equal(t, 1, dash.Students[1].LessonsCompleted)
	assert.Equal(t, 1, dash.Students[1].CurrentStreak)

	assert.Equal(t, uint(3), dash.Students[2].ID)
	assert.True(t, dash.Students[2].LastActive.IsZero())

	require.Len(t, dash.CourseStats, 2)
	for _, cs := range dash.CourseStats {
		switch cs.CourseID {
		case 10:
			assert.Equal(t, 1, cs.TotalStudents)
			assert.Equal(t, 1, cs.CompletedStudents)
			assert.Equal(t, 100, cs.AvgProgress)
			assert.Equal(t, 2, cs.TotalLessons)
		case 20:
			assert.Equal(t, 1, cs.TotalStudents)
			assert.Equal(t, 0, cs.CompletedStudents)
			assert.Equal(t, 33, cs.AvgProgress)
			assert.Equal(t, 3, cs.TotalLessons)
		}
	}

	require.Len(t, dash.StudentProgress, 3)
	anna := dash.StudentProgress[0]
	assert.Equal(t, "Anna", anna.StudentName)
	assert.Equal(t, uint(10), anna.CourseID, "higher progress first")
	assert.Equal(t, 100, anna.ProgressPercent)
	assert.Equal(t, 86, anna.AvgScore)

	annaFinance := dash.StudentProgress[1]
	assert.Equal(t, uint(20), annaFinance.CourseID)
	assert.Equal(t, 0, annaFinance.CompletedLessons)
	assert.Equal(t, 0, annaFinance.AvgScore)
	require.NotNil(t, annaFinance.LastAttempt)
	assert.Equal(t, at(10, 8), *annaFinance.LastAttempt, "started-only attempts count for last attempt")

	bartek := dash.StudentProgress[2]
	assert.Equal(t, "Bartek", bartek.StudentName)
	assert.Equal(t, 1, bartek.CompletedLessons)
	assert.Equal(t, 75, bartek.AvgScore)
	assert.Equal(t, at(9, 9), *bartek.LastAttempt)
}
