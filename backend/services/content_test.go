package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/testutil"
)

func TestCoursesWithProgress(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	svc := NewContentService(repo, utils.NopLogger())
	user := testutil.SeedUser(t, db, "ola", models.RoleUser)

	course, lessons := testutil.SeedCourse(t, db, "Finance basics", 5, 1)
	draft := &models.Course{Title: "Draft", IsPublished: false}
	require.NoError(t, db.Create(draft).Error)

	done := time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)
	for _, l := range []models.Lesson{lessons[0], lessons[1], lessons[1], lessons[3]} {
		require.NoError(t, db.Create(&models.LessonAttempt{
			UserID: user.ID, LessonID: l.ID, StartedAt: done, CompletedAt: &done, ScorePercent: 100,
		}).Error)
	}
	// started but never finished
	require.NoError(t, db.Create(&models.LessonAttempt{UserID: user.ID, LessonID: lessons[4].ID, StartedAt: done}).Error)

	courses, err := svc.Courses(ctx, user.ID, "", "")
	require.NoError(t, err)
	require.Len(t, courses, 1, "drafts are hidden")
	assert.Equal(t, course.ID, courses[0].ID)
	assert.Equal(t, 3, courses[0].Progress.CompletedLessons)
	assert.Equal(t, 60, courses[0].Progress.ProgressPercent)

	filtered, err := svc.Courses(ctx, user.ID, "C2", "")
	require.NoError(t, err)
	assert.Empty(t, filtered)

	detail, err := svc.Course(ctx, user.ID, models.RoleUser, course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lessons, 5)
	assert.True(t, detail.Lessons[0].Completed)
	assert.False(t, detail.Lessons[2].Completed)
	assert.False(t, detail.Lessons[4].Completed)
	assert.Equal(t, 60, detail.Progress.ProgressPercent)

	_, err = svc.Course(ctx, user.ID, models.RoleUser, draft.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.Course(ctx, user.ID, models.RoleTeacher, draft.ID)
	assert.NoError(t, err)
}

func TestAuthoringMaintainsCounts(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	svc := NewContentService(repo, utils.NopLogger())
	teacher := testutil.SeedUser(t, db, "nauczyciel", models.RoleTeacher)

	course, err := svc.CreateCourse(ctx, teacher.ID, CourseInput{Title: "Office English", Level: "A2"})
	require.NoError(t, err)
	assert.Equal(t, "general", course.IndustryTag)
	assert.Equal(t, teacher.ID, course.CreatedBy)

	first, err := svc.CreateLesson(ctx, course.ID, LessonInput{Title: "Emails"})
	require.NoError(t, err)
	second, err := svc.CreateLesson(ctx, course.ID, LessonInput{Title: "Meetings"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.OrderInCourse)
	assert.Equal(t, 2, second.OrderInCourse)

	_, err = svc.CreateLesson(ctx, 999, LessonInput{Title: "Orphan"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	task, err := svc.CreateTask(ctx, first.ID, TaskInput{
		Type: models.TaskMultipleChoice, QuestionText: "Dear ...", CorrectAnswer: "Sir", IncorrectAnswers: []string{"Mate"},
	})
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, first.ID, TaskInput{Type: models.TaskFlashcard, QuestionText: "attachment", CorrectAnswer: "załącznik"})
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, first.ID, TaskInput{Type: models.TaskMultipleChoice, QuestionText: "q", CorrectAnswer: "a"})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	reloaded, err := repo.Content.GetCourse(ctx, nil, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.LessonsCount)

	lesson, err := repo.Content.GetLesson(ctx, nil, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, lesson.TasksCount)

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	lesson, err = repo.Content.GetLesson(ctx, nil, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, lesson.TasksCount)
	assert.ErrorIs(t, svc.DeleteTask(ctx, task.ID), models.ErrNotFound)

	updated, err := svc.UpdateCourse(ctx, course.ID, CourseInput{Title: "Office English 2", Level: "B1", IsPublished: true})
	require.NoError(t, err)
	assert.Equal(t, "Office English 2", updated.Title)
	assert.True(t, updated.IsPublished)

	_, err = svc.UpdateLesson(ctx, 999, LessonInput{Title: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	item, err := svc.CreateVocabularyItem(ctx, VocabularyInput{EnglishWordOrPhrase: "deadline", Translation: "termin", IndustryTag: "office"})
	require.NoError(t, err)
	items, err := svc.VocabularyItems(ctx, "office")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}

func TestTeacherDashboardService(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	clock := NewClockFunc(testutil.FixedNow(time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)), time.UTC)
	svc := NewTeacherService(repo, clock, utils.NopLogger())

	student := testutil.SeedUser(t, db, "uczen", models.RoleUser)
	_, lessons := testutil.SeedCourse(t, db, "IT", 2, 1)
	started := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.LessonAttempt{UserID: student.ID, LessonID: lessons[0].ID, StartedAt: started, CompletedAt: &started, ScorePercent: 90}).Error)
	testutil.SeedDailyStat(t, db, student.ID, clock.Today(), 46, false)

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, dash.Students, 1)
	assert.Equal(t, 46, dash.Students[0].TotalXP)
	require.Len(t, dash.StudentProgress, 1)
	assert.Equal(t, 50, dash.StudentProgress[0].ProgressPercent)
	assert.Equal(t, 90, dash.StudentProgress[0].AvgScore)
	require.Len(t, dash.CourseStats, 1)
	assert.Equal(t, 1, dash.CourseStats[0].TotalStudents)
}

func TestImportVocabularyIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := NewContentService(repository.New(db, utils.NopLogger()), utils.NopLogger())

	_, err := svc.ImportVocabulary(ctx, []models.VocabularyItem{
		{EnglishWordOrPhrase: "ledger", Translation: "księga", IndustryTag: "finance"},
		{EnglishWordOrPhrase: "bug", Translation: "błąd", IndustryTag: "gardening"},
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	items, err := svc.VocabularyItems(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	n, err := svc.ImportVocabulary(ctx, []models.VocabularyItem{
		{EnglishWordOrPhrase: "ledger", Translation: "księga", IndustryTag: "finance"},
		{EnglishWordOrPhrase: "bug", Translation: "błąd", IndustryTag: "it"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err = svc.VocabularyItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ImportVocabulary(ctx, nil)
	assert.ErrorAs(t, err, &verr)
}
