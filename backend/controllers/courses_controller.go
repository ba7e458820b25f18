package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/reports"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

const maxImportSize = 5 << 20

type CoursesController struct {
	Content *services.ContentService
	Cfg     *config.Config
}

func NewCoursesController(content *services.ContentService, cfg *config.Config) *CoursesController {
	return &CoursesController{Content: content, Cfg: cfg}
}

// GetCourses godoc
// @Summary Published courses with the caller's progress
// @Tags Courses
// @Produce json
// @Security ApiKeyAuth
// @Param level query string false "CEFR level"
// @Param industry query string false "Industry tag"
// @Success 200 {object} utils.SuccessResponse
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	courses, err := cc.Content.Courses(c.UserContext(), middleware.Session(c).UserID, c.Query("level"), c.Query("industry"))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses, fiber.Map{"count": len(courses)})
}

// GetCourseDetails godoc
// @Summary Course with ordered lessons and completion flags
// @Tags Courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid course ID")
	}

	session := middleware.Session(c)
	course, err := cc.Content.Course(c.UserContext(), session.UserID, session.Role, courseID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// GetVocabularyItems godoc
// @Summary Vocabulary catalogue
// @Tags Courses
// @Produce json
// @Security ApiKeyAuth
// @Param industry query string false "Industry tag"
// @Success 200 {object} utils.SuccessResponse
// @Router /vocabulary/items [get]
func (cc *CoursesController) GetVocabularyItems(c *fiber.Ctx) error {
	items, err := cc.Content.VocabularyItems(c.UserContext(), c.Query("industry"))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, items)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body services.CourseInput true "Course"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /teacher/courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input services.CourseInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	course, err := cc.Content.CreateCourse(c.UserContext(), middleware.Session(c).UserID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, course)
}

// UpdateCourse godoc
// @Summary Replace course fields
// @Tags Authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param input body services.CourseInput true "Course"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /teacher/courses/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var input services.CourseInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	course, err := cc.Content.UpdateCourse(c.UserContext(), courseID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// AddLesson godoc
// @Summary Append a lesson to a course
// @Tags Authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param input body services.LessonInput true "Lesson"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /teacher/courses/{id}/lessons [post]
func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var input services.LessonInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	lesson, err := cc.Content.CreateLesson(c.UserContext(), courseID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, lesson)
}

// UpdateLesson godoc
// @Summary Change a lesson
// @Tags Authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param input body services.LessonInput true "Lesson"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /teacher/lessons/{id} [put]
func (cc *CoursesController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	var input services.LessonInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	lesson, err := cc.Content.UpdateLesson(c.UserContext(), lessonID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

// AddTask godoc
// @Summary Add a task to a lesson
// @Tags Authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param input body services.TaskInput true "Task"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /teacher/lessons/{id}/tasks [post]
func (cc *CoursesController) AddTask(c *fiber.Ctx) error {
	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	var input services.TaskInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	task, err := cc.Content.CreateTask(c.UserContext(), lessonID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, task)
}

// DeleteTask godoc
// @Summary Remove a task
// @Tags Authoring
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /teacher/tasks/{id} [delete]
func (cc *CoursesController) DeleteTask(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid task ID")
	}

	if err := cc.Content.DeleteTask(c.UserContext(), taskID); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.NoContent(c)
}

// AddVocabularyItem godoc
// @Summary Add a word to the catalogue
// @Tags Authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body services.VocabularyInput true "Word"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /teacher/vocabulary [post]
func (cc *CoursesController) AddVocabularyItem(c *fiber.Ctx) error {
	var input services.VocabularyInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	item, err := cc.Content.CreateVocabularyItem(c.UserContext(), input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, item)
}

// ImportVocabulary godoc
// @Summary Bulk import words from an XLSX sheet
// @Description Columns: word, translation, example, industry, audio. First row is a header.
// @Tags Authoring
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Workbook"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /teacher/vocabulary/import [post]
func (cc *CoursesController) ImportVocabulary(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}
	if header.Size > maxImportSize {
		return utils.BadRequest(c, "File too large")
	}

	file, err := header.Open()
	if err != nil {
		return utils.BadRequest(c, "Could not read file")
	}
	defer file.Close()

	items, skipped, err := reports.ReadVocabulary(file)
	if err != nil {
		return utils.BadRequest(c, "File is not a valid XLSX workbook")
	}

	imported, err := cc.Content.ImportVocabulary(c.UserContext(), items)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, fiber.Map{"imported": imported, "skipped": skipped})
}
