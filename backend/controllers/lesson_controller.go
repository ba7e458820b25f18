package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type LessonController struct {
	Lessons *services.LessonService
	Cfg     *config.Config
}

func NewLessonController(lessons *services.LessonService, cfg *config.Config) *LessonController {
	return &LessonController{Lessons: lessons, Cfg: cfg}
}

type checkAnswerRequest struct {
	Answer string `json:"answer"`
}

type completeAttemptRequest struct {
	Answers []services.AnswerSubmission `json:"answers" validate:"dive"`
}

// GetLessonTasks godoc
// @Summary Ordered tasks of a lesson, without answers
// @Tags Lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /lessons/{id}/tasks [get]
func (lc *LessonController) GetLessonTasks(c *fiber.Ctx) error {
	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	tasks, err := lc.Lessons.Tasks(c.UserContext(), middleware.Session(c).Role, lessonID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, tasks)
}

// GetTaskOptions godoc
// @Summary Shuffled answer options of a task
// @Tags Lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tasks/{id}/options [get]
func (lc *LessonController) GetTaskOptions(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid task ID")
	}

	options, err := lc.Lessons.TaskOptions(c.UserContext(), middleware.Session(c).Role, taskID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, options)
}

// CheckAnswer godoc
// @Summary Check one answer
// @Tags Lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Param input body checkAnswerRequest true "Answer"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tasks/{id}/check [post]
func (lc *LessonController) CheckAnswer(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid task ID")
	}
	var input checkAnswerRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	check, err := lc.Lessons.CheckAnswer(c.UserContext(), middleware.Session(c).Role, taskID, input.Answer)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, check)
}

// StartAttempt godoc
// @Summary Start a lesson attempt
// @Tags Lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /lessons/{id}/attempts [post]
func (lc *LessonController) StartAttempt(c *fiber.Ctx) error {
	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	session := middleware.Session(c)
	attempt, err := lc.Lessons.StartAttempt(c.UserContext(), session.UserID, session.Role, lessonID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, attempt)
}

// CompleteAttempt godoc
// @Summary Grade and close an attempt
// @Description Scores every task of the lesson and credits XP to today's stats
// @Tags Lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Attempt ID"
// @Param input body completeAttemptRequest true "Answers"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /attempts/{id}/complete [post]
func (lc *LessonController) CompleteAttempt(c *fiber.Ctx) error {
	attemptID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid attempt ID")
	}
	var input completeAttemptRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	session := middleware.Session(c)
	attempt, err := lc.Lessons.CompleteAttempt(c.UserContext(), session.UserID, session.Role, attemptID, input.Answers)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, attempt)
}
