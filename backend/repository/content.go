package repository

import (
	"context"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
)

type CourseFilter struct {
	Level         string
	IndustryTag   string
	PublishedOnly bool
}

type ContentRepo interface {
	ListCourses(ctx context.Context, tx *gorm.DB, filter CourseFilter) ([]models.Course, error)
	GetCourse(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	CreateCourse(ctx context.Context, tx *gorm.DB, course *models.Course) error
	UpdateCourse(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*models.Course, error)

	// ListLessons returns lessons ordered by course then order_in_course.
	// No course ids means every lesson.
	ListLessons(ctx context.Context, tx *gorm.DB, courseIDs ...uint) ([]models.Lesson, error)
	GetLesson(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	UpdateLesson(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*models.Lesson, error)

	ListTasks(ctx context.Context, tx *gorm.DB, lessonID uint) ([]models.Task, error)
	GetTask(ctx context.Context, tx *gorm.DB, id uint) (*models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id uint) error

	ListVocabulary(ctx context.Context, tx *gorm.DB, industryTag string) ([]models.VocabularyItem, error)
	GetVocabulary(ctx context.Context, tx *gorm.DB, id uint) (*models.VocabularyItem, error)
	CreateVocabulary(ctx context.Context, tx *gorm.DB, item *models.VocabularyItem) error
}

type contentRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *utils.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) ListCourses(ctx context.Context, tx *gorm.DB, filter CourseFilter) ([]models.Course, error) {
	query := conn(r.db, tx).WithContext(ctx).Model(&models.Course{})
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.IndustryTag != "" {
		query = query.Where("industry_tag = ?", filter.IndustryTag)
	}

	courses := []models.Course{}
	if err := query.Order("created_at DESC, id DESC").Find(&courses).Error; err != nil {
		return nil, wrap("list courses", "course", nil, err)
	}
	return courses, nil
}

func (r *contentRepo) GetCourse(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_in_course ASC, id ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, wrap("get course", "course", id, err)
	}
	return &course, nil
}

func (r *contentRepo) CreateCourse(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	err := conn(r.db, tx).WithContext(ctx).Omit("Lessons").Create(course).Error
	return wrap("create course", "course", nil, err)
}

func (r *contentRepo) UpdateCourse(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*models.Course, error) {
	db := conn(r.db, tx).WithContext(ctx)
	res := db.Model(&models.Course{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, wrap("update course", "course", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NotFound("course", id)
	}
	return r.GetCourse(ctx, tx, id)
}

func (r *contentRepo) ListLessons(ctx context.Context, tx *gorm.DB, courseIDs ...uint) ([]models.Lesson, error) {
	query := conn(r.db, tx).WithContext(ctx).Model(&models.Lesson{})
	if len(courseIDs) > 0 {
		query = query.Where("course_id IN ?", courseIDs)
	}
	lessons := []models.Lesson{}
	if err := query.Order("course_id ASC, order_in_course ASC, id ASC").Find(&lessons).Error; err != nil {
		return nil, wrap("list lessons", "lesson", nil, err)
	}
	return lessons, nil
}

func (r *contentRepo) GetLesson(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := conn(r.db, tx).WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, wrap("get lesson", "lesson", id, err)
	}
	return &lesson, nil
}

// CreateLesson appends the lesson to its course and bumps lessons_count.
func (r *contentRepo) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, lesson.CourseID).Error; err != nil {
			return wrap("get course", "course", lesson.CourseID, err)
		}
		if lesson.OrderInCourse == 0 {
			var count int64
			if err := tx.Model(&models.Lesson{}).Where("course_id = ?", lesson.CourseID).Count(&count).Error; err != nil {
				return err
			}
			lesson.OrderInCourse = int(count) + 1
		}
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).
			Where("id = ?", lesson.CourseID).
			Update("lessons_count", gorm.Expr("lessons_count + 1")).Error
	})
	return wrap("create lesson", "lesson", nil, err)
}

func (r *contentRepo) UpdateLesson(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*models.Lesson, error) {
	res := conn(r.db, tx).WithContext(ctx).Model(&models.Lesson{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, wrap("update lesson", "lesson", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NotFound("lesson", id)
	}
	return r.GetLesson(ctx, tx, id)
}

func (r *contentRepo) ListTasks(ctx context.Context, tx *gorm.DB, lessonID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	err := conn(r.db, tx).WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("order_in_lesson ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, wrap("list tasks", "task", nil, err)
	}
	return tasks, nil
}

func (r *contentRepo) GetTask(ctx context.Context, tx *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	if err := conn(r.db, tx).WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, wrap("get task", "task", id, err)
	}
	return &task, nil
}

func (r *contentRepo) CreateTask(ctx context.Context, task *models.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, task.LessonID).Error; err != nil {
			return wrap("get lesson", "lesson", task.LessonID, err)
		}
		if task.OrderInLesson == 0 {
			var count int64
			if err := tx.Model(&models.Task{}).Where("lesson_id = ?", task.LessonID).Count(&count).Error; err != nil {
				return err
			}
			task.OrderInLesson = int(count) + 1
		}
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lesson{}).
			Where("id = ?", task.LessonID).
			Update("tasks_count", gorm.Expr("tasks_count + 1")).Error
	})
	return wrap("create task", "task", nil, err)
}

func (r *contentRepo) DeleteTask(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, id).Error; err != nil {
			return wrap("get task", "task", id, err)
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lesson{}).
			Where("id = ? AND tasks_count > 0", task.LessonID).
			Update("tasks_count", gorm.Expr("tasks_count - 1")).Error
	})
	return wrap("delete task", "task", id, err)
}

func (r *contentRepo) ListVocabulary(ctx context.Context, tx *gorm.DB, industryTag string) ([]models.VocabularyItem, error) {
	query := conn(r.db, tx).WithContext(ctx).Model(&models.VocabularyItem{})
	if industryTag != "" {
		query = query.Where("industry_tag = ?", industryTag)
	}
	items := []models.VocabularyItem{}
	if err := query.Order("english_word_or_phrase ASC").Find(&items).Error; err != nil {
		return nil, wrap("list vocabulary", "vocabulary item", nil, err)
	}
	return items, nil
}

func (r *contentRepo) GetVocabulary(ctx context.Context, tx *gorm.DB, id uint) (*models.VocabularyItem, error) {
	var item models.VocabularyItem
	if err := conn(r.db, tx).WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, wrap("get vocabulary item", "vocabulary item", id, err)
	}
	return &item, nil
}

func (r *contentRepo) CreateVocabulary(ctx context.Context, tx *gorm.DB, item *models.VocabularyItem) error {
	err := conn(r.db, tx).WithContext(ctx).Create(item).Error
	return wrap("create vocabulary item", "vocabulary item", nil, err)
}
