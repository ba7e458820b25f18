package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

const (
	baseLessonXP  = 10
	bonusLessonXP = 40
)

// AnswerSubmission is one learner answer sent when finishing a lesson.
// Flashcards send Known instead of Answer.
type AnswerSubmission struct {
	TaskID uint   `json:"taskId" validate:"required"`
	Answer string `json:"answer"`
	Known  bool   `json:"known"`
}

// AnswersMatch compares answers ignoring surrounding whitespace and letter case.
func AnswersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

// XPForScore maps a 0..100 score onto 10..50 xp.
func XPForScore(scorePercent int) int {
	return int(math.Round(baseLessonXP + float64(scorePercent)*bonusLessonXP/100))
}

// ScoreAttempt grades every task of a lesson. Tasks without a submission
// count as wrong; when a task is answered twice the last answer wins.
func ScoreAttempt(tasks []models.Task, answers []AnswerSubmission) models.AttemptResult {
	byTask := lo.SliceToMap(answers, func(a AnswerSubmission) (uint, AnswerSubmission) { return a.TaskID, a })

	correct := 0
	for _, task := range tasks {
		answer, ok := byTask[task.ID]
		if !ok {
			continue
		}
		if isCorrect(task, answer) {
			correct++
		}
	}

	score := percent(correct, len(tasks))
	return models.AttemptResult{
		ScorePercent:   score,
		TotalQuestions: len(tasks),
		CorrectAnswers: correct,
		XPEarned:       XPForScore(score),
	}
}

func isCorrect(task models.Task, answer AnswerSubmission) bool {
	if task.Type == models.TaskFlashcard {
		return answer.Known
	}
	return AnswersMatch(answer.Answer, task.CorrectAnswer)
}

// LessonService runs the lesson player: attempts, tasks and answer checks.
type LessonService struct {
	repo         *repository.Repository
	gamification *GamificationService
	clock        Clock
	log          *utils.Logger
}

func NewLessonService(repo *repository.Repository, gamification *GamificationService, clock Clock, baseLog *utils.Logger) *LessonService {
	return &LessonService{
		repo:         repo,
		gamification: gamification,
		clock:        clock,
		log:          baseLog.With("service", "LessonService"),
	}
}

// playableLesson loads a lesson whose course role may see. Lessons of
// unpublished courses look missing to learners.
func (s *LessonService) playableLesson(ctx context.Context, tx *gorm.DB, role string, lessonID uint) (*models.Lesson, error) {
	lesson, err := s.repo.Content.GetLesson(ctx, tx, lessonID)
	if err != nil {
		return nil, err
	}
	if models.HasRole(role, models.RoleTeacher) {
		return lesson, nil
	}
	course, err := s.repo.Content.GetCourse(ctx, tx, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, models.NotFound("lesson", lessonID)
	}
	return lesson, nil
}

func (s *LessonService) playableTask(ctx context.Context, role string, taskID uint) (*models.Task, error) {
	task, err := s.repo.Content.GetTask(ctx, nil, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.playableLesson(ctx, nil, role, task.LessonID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("task", taskID)
		}
		return nil, err
	}
	return task, nil
}

// Tasks returns the lesson's tasks in order, without answers.
func (s *LessonService) Tasks(ctx context.Context, role string, lessonID uint) ([]models.LearnerTask, error) {
	if _, err := s.playableLesson(ctx, nil, role, lessonID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.Content.ListTasks(ctx, nil, lessonID)
	if err != nil {
		return nil, err
	}
	return lo.Map(tasks, func(t models.Task, _ int) models.LearnerTask { return t.ForLearner() }), nil
}

// TaskOptions returns the correct and incorrect answers in random order.
func (s *LessonService) TaskOptions(ctx context.Context, role string, taskID uint) ([]string, error) {
	task, err := s.playableTask(ctx, role, taskID)
	if err != nil {
		return nil, err
	}
	options := make([]string, 0, len(task.IncorrectAnswers)+1)
	options = append(options, task.CorrectAnswer)
	options = append(options, task.IncorrectAnswers...)
	return lo.Shuffle(options), nil
}

func (s *LessonService) CheckAnswer(ctx context.Context, role string, taskID uint, answer string) (*models.AnswerCheck, error) {
	task, err := s.playableTask(ctx, role, taskID)
	if err != nil {
		return nil, err
	}
	return &models.AnswerCheck{
		IsCorrect:     AnswersMatch(answer, task.CorrectAnswer),
		CorrectAnswer: task.CorrectAnswer,
	}, nil
}

func (s *LessonService) StartAttempt(ctx context.Context, userID uint, role string, lessonID uint) (*models.LessonAttempt, error) {
	if _, err := s.playableLesson(ctx, nil, role, lessonID); err != nil {
		return nil, err
	}
	attempt := &models.LessonAttempt{
		UserID:    userID,
		LessonID:  lessonID,
		StartedAt: s.clock.Now(),
	}
	if err := s.repo.Attempts.Create(ctx, nil, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// CompleteAttempt grades the submitted answers, closes the attempt and
// credits xp plus one lesson to today's stats, all in one transaction.
// A course unpublished after the attempt started can no longer be completed.
func (s *LessonService) CompleteAttempt(ctx context.Context, userID uint, role string, attemptID uint, answers []AnswerSubmission) (*models.LessonAttempt, error) {
	var completed *models.LessonAttempt
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		attempt, err := s.repo.Attempts.GetForUser(ctx, tx, attemptID, userID)
		if err != nil {
			return err
		}
		if attempt.Status() == models.AttemptCompleted {
			return models.ErrAttemptCompleted
		}
		if _, err := s.playableLesson(ctx, tx, role, attempt.LessonID); err != nil {
			return err
		}

		tasks, err := s.repo.Content.ListTasks(ctx, tx, attempt.LessonID)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			return models.Invalid("lessonId", "lesson has no tasks")
		}
		lessonTasks := lo.SliceToMap(tasks, func(t models.Task) (uint, struct{}) { return t.ID, struct{}{} })
		for _, a := range answers {
			if _, ok := lessonTasks[a.TaskID]; !ok {
				return models.Invalid("answers", fmt.Sprintf("task %d is not part of lesson %d", a.TaskID, attempt.LessonID))
			}
		}

		result := ScoreAttempt(tasks, answers)
		if err := s.repo.Attempts.Complete(ctx, tx, attempt.ID, result, s.clock.Now()); err != nil {
			return err
		}
		if _, err := s.gamification.Accumulate(ctx, tx, userID, result.XPEarned, 1); err != nil {
			return err
		}

		completed, err = s.repo.Attempts.GetForUser(ctx, tx, attemptID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.gamification.AfterCommit(ctx)

	s.log.Info("lesson attempt completed",
		"user_id", userID,
		"attempt_id", attemptID,
		"lesson_id", completed.LessonID,
		"score", completed.ScorePercent,
		"xp", completed.XPEarned,
	)
	return completed, nil
}
