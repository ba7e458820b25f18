package testutil

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// DB opens an in-memory sqlite database private to t, migrated like production.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeName.ReplaceAllString(t.Name(), "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, utils.Migrate(db))
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:                       name,
		Email:                      fmt.Sprintf("%s@example.com", unsafeName.ReplaceAllString(name, "")),
		PasswordHash:               string(hash),
		Role:                       role,
		PreferredInterfaceLanguage: "pl",
		IndustryContext:            "general",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedGoal(t *testing.T, db *gorm.DB, userID uint, xp, lessons int) {
	t.Helper()
	require.NoError(t, db.Create(&models.DailyGoal{
		UserID:              userID,
		TargetXPPerDay:      xp,
		TargetLessonsPerDay: lessons,
	}).Error)
}

// SeedCourse creates a published course with lessonCount lessons of tasksPerLesson
// multiple choice tasks each. Correct answers are "right".
func SeedCourse(t *testing.T, db *gorm.DB, title string, lessonCount, tasksPerLesson int) (*models.Course, []models.Lesson) {
	t.Helper()
	course := &models.Course{
		Title:        title,
		IndustryTag:  "it",
		Level:        "B1",
		LessonsCount: lessonCount,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(course).Error)

	lessons := make([]models.Lesson, 0, lessonCount)
	for i := 1; i <= lessonCount; i++ {
		lesson := models.Lesson{
			CourseID:      course.ID,
			Title:         fmt.Sprintf("%s lesson %d", title, i),
			OrderInCourse: i,
			TasksCount:    tasksPerLesson,
		}
		require.NoError(t, db.Create(&lesson).Error)
		for j := 1; j <= tasksPerLesson; j++ {
			require.NoError(t, db.Create(&models.Task{
				LessonID:         lesson.ID,
				Type:             models.TaskMultipleChoice,
				QuestionText:     fmt.Sprintf("question %d", j),
				CorrectAnswer:    "right",
				IncorrectAnswers: []string{"wrong", "nope", "never"},
				OrderInLesson:    j,
			}).Error)
		}
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func SeedDailyStat(t *testing.T, db *gorm.DB, userID uint, day models.CalendarDay, xp int, goalMet bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.DailyStat{
		UserID:   userID,
		Day:      day,
		XPEarned: xp,
		GoalMet:  goalMet,
	}).Error)
}

// FixedNow returns a clock function stuck at t.
func FixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
