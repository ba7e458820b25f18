package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type CourseWithProgress struct {
	models.Course
	Progress models.CourseProgress `json:"progress"`
}

type LessonWithStatus struct {
	models.Lesson
	Completed bool `json:"completed"`
}

type CourseDetail struct {
	models.Course
	Lessons  []LessonWithStatus    `json:"lessons"`
	Progress models.CourseProgress `json:"progress"`
}

// ContentService serves courses to learners and lets teachers author them.
type ContentService struct {
	repo *repository.Repository
	log  *utils.Logger
}

func NewContentService(repo *repository.Repository, baseLog *utils.Logger) *ContentService {
	return &ContentService{repo: repo, log: baseLog.With("service", "ContentService")}
}

// Courses lists published courses, newest first, each with userID's progress.
func (s *ContentService) Courses(ctx context.Context, userID uint, level, industry string) ([]CourseWithProgress, error) {
	courses, err := s.repo.Content.ListCourses(ctx, nil, repository.CourseFilter{
		Level:         level,
		IndustryTag:   industry,
		PublishedOnly: true,
	})
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return []CourseWithProgress{}, nil
	}

	lessons, err := s.repo.Content.ListLessons(ctx, nil, lo.Map(courses, func(c models.Course, _ int) uint { return c.ID })...)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.Attempts.CompletedLessonIDs(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	lessonIDsByCourse := lo.MapValues(
		lo.GroupBy(lessons, func(l models.Lesson) uint { return l.CourseID }),
		func(ls []models.Lesson, _ uint) []uint {
			return lo.Map(ls, func(l models.Lesson, _ int) uint { return l.ID })
		},
	)

	return lo.Map(courses, func(c models.Course, _ int) CourseWithProgress {
		return CourseWithProgress{
			Course:   c,
			Progress: ComputeCourseProgress(c, lessonIDsByCourse[c.ID], completed),
		}
	}), nil
}

// Course returns a course with its ordered lessons flagged as completed or not.
// Unpublished courses are only visible to staff.
func (s *ContentService) Course(ctx context.Context, userID uint, role string, courseID uint) (*CourseDetail, error) {
	course, err := s.repo.Content.GetCourse(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished && !models.HasRole(role, models.RoleTeacher) {
		return nil, models.NotFound("course", courseID)
	}
	completed, err := s.repo.Attempts.CompletedLessonIDs(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	done := lo.SliceToMap(completed, func(id uint) (uint, bool) { return id, true })

	lessons := lo.Map(course.Lessons, func(l models.Lesson, _ int) LessonWithStatus {
		return LessonWithStatus{Lesson: l, Completed: done[l.ID]}
	})
	lessonIDs := lo.Map(course.Lessons, func(l models.Lesson, _ int) uint { return l.ID })

	detail := &CourseDetail{
		Course:   *course,
		Lessons:  lessons,
		Progress: ComputeCourseProgress(*course, lessonIDs, completed),
	}
	detail.Course.Lessons = nil
	return detail, nil
}

func (s *ContentService) VocabularyItems(ctx context.Context, industry string) ([]models.VocabularyItem, error) {
	return s.repo.Content.ListVocabulary(ctx, nil, industry)
}

type CourseInput struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description"`
	IndustryTag      string `json:"industryTag" validate:"omitempty,oneof=it finance office general"`
	Level            string `json:"level" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
	EstimatedMinutes int    `json:"estimatedMinutes" validate:"gte=0"`
	ImageURL         string `json:"imageUrl" validate:"omitempty,url"`
	IsPublished      bool   `json:"isPublished"`
}

func (s *ContentService) CreateCourse(ctx context.Context, authorID uint, in CourseInput) (*models.Course, error) {
	course := &models.Course{
		Title:            in.Title,
		Description:      in.Description,
		IndustryTag:      lo.Ternary(in.IndustryTag == "", "general", in.IndustryTag),
		Level:            in.Level,
		CreatedBy:        authorID,
		EstimatedMinutes: in.EstimatedMinutes,
		ImageURL:         in.ImageURL,
		IsPublished:      in.IsPublished,
	}
	if err := s.repo.Content.CreateCourse(ctx, nil, course); err != nil {
		return nil, err
	}
	s.log.Info("course created", "course_id", course.ID, "author_id", authorID)
	return course, nil
}

func (s *ContentService) UpdateCourse(ctx context.Context, courseID uint, in CourseInput) (*models.Course, error) {
	return s.repo.Content.UpdateCourse(ctx, nil, courseID, map[string]interface{}{
		"title":             in.Title,
		"description":       in.Description,
		"industry_tag":      lo.Ternary(in.IndustryTag == "", "general", in.IndustryTag),
		"level":             in.Level,
		"estimated_minutes": in.EstimatedMinutes,
		"image_url":         in.ImageURL,
		"is_published":      in.IsPublished,
	})
}

type LessonInput struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description"`
	OrderInCourse    int    `json:"orderInCourse" validate:"gte=0"`
	EstimatedMinutes int    `json:"estimatedMinutes" validate:"gte=0"`
}

func (s *ContentService) CreateLesson(ctx context.Context, courseID uint, in LessonInput) (*models.Lesson, error) {
	lesson := &models.Lesson{
		CourseID:         courseID,
		Title:            in.Title,
		Description:      in.Description,
		OrderInCourse:    in.OrderInCourse,
		EstimatedMinutes: in.EstimatedMinutes,
	}
	if err := s.repo.Content.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) UpdateLesson(ctx context.Context, lessonID uint, in LessonInput) (*models.Lesson, error) {
	updates := map[string]interface{}{
		"title":             in.Title,
		"description":       in.Description,
		"estimated_minutes": in.EstimatedMinutes,
	}
	if in.OrderInCourse > 0 {
		updates["order_in_course"] = in.OrderInCourse
	}
	return s.repo.Content.UpdateLesson(ctx, nil, lessonID, updates)
}

type TaskInput struct {
	Type             string   `json:"type" validate:"required,oneof=FLASHCARD MULTIPLE_CHOICE GAP_FILL"`
	QuestionText     string   `json:"questionText" validate:"required"`
	QuestionExtra    string   `json:"questionExtra"`
	CorrectAnswer    string   `json:"correctAnswer" validate:"required"`
	IncorrectAnswers []string `json:"incorrectAnswers" validate:"dive,required"`
	VocabularyID     *uint    `json:"vocabularyId"`
	OrderInLesson    int      `json:"orderInLesson" validate:"gte=0"`
}

func (s *ContentService) CreateTask(ctx context.Context, lessonID uint, in TaskInput) (*models.Task, error) {
	if in.Type == models.TaskMultipleChoice && len(in.IncorrectAnswers) == 0 {
		return nil, models.Invalid("incorrectAnswers", "multiple choice needs at least one distractor")
	}
	if in.VocabularyID != nil {
		if _, err := s.repo.Content.GetVocabulary(ctx, nil, *in.VocabularyID); err != nil {
			return nil, err
		}
	}
	task := &models.Task{
		LessonID:         lessonID,
		Type:             in.Type,
		QuestionText:     in.QuestionText,
		QuestionExtra:    in.QuestionExtra,
		CorrectAnswer:    in.CorrectAnswer,
		IncorrectAnswers: lo.Ternary(in.IncorrectAnswers == nil, []string{}, in.IncorrectAnswers),
		VocabularyID:     in.VocabularyID,
		OrderInLesson:    in.OrderInLesson,
	}
	if err := s.repo.Content.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *ContentService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.repo.Content.DeleteTask(ctx, taskID)
}

type VocabularyInput struct {
	EnglishWordOrPhrase string `json:"englishWordOrPhrase" validate:"required"`
	Translation         string `json:"translation" validate:"required"`
	ExampleSentence     string `json:"exampleSentence"`
	IndustryTag         string `json:"industryTag" validate:"omitempty,oneof=it finance office general"`
	AudioURL            string `json:"audioUrl" validate:"omitempty,url"`
}

func (s *ContentService) CreateVocabularyItem(ctx context.Context, in VocabularyInput) (*models.VocabularyItem, error) {
	item := &models.VocabularyItem{
		EnglishWordOrPhrase: in.EnglishWordOrPhrase,
		Translation:         in.Translation,
		ExampleSentence:     in.ExampleSentence,
		IndustryTag:         in.IndustryTag,
		AudioURL:            in.AudioURL,
	}
	if err := s.repo.Content.CreateVocabulary(ctx, nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ImportVocabulary stores a batch of items; either all of them or none.
func (s *ContentService) ImportVocabulary(ctx context.Context, items []models.VocabularyItem) (int, error) {
	if len(items) == 0 {
		return 0, models.Invalid("file", "no vocabulary rows found")
	}
	for i := range items {
		if items[i].IndustryTag != "" && !lo.Contains(industryTags, items[i].IndustryTag) {
			return 0, models.Invalid("industryTag", fmt.Sprintf("%q is not a known industry", items[i].IndustryTag))
		}
	}
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		for i := range items {
			if err := s.repo.Content.CreateVocabulary(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("vocabulary imported", "count", len(items))
	return len(items), nil
}

var industryTags = []string{"it", "finance", "office", "general"}
