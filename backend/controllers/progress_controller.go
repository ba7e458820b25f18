package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type ProgressController struct {
	Gamification *services.GamificationService
	Cfg          *config.Config
}

func NewProgressController(gamification *services.GamificationService, cfg *config.Config) *ProgressController {
	return &ProgressController{Gamification: gamification, Cfg: cfg}
}

type goalRequest struct {
	TargetXPPerDay      int `json:"targetXpPerDay"`
	TargetLessonsPerDay int `json:"targetLessonsPerDay"`
}

type xpRequest struct {
	Amount int `json:"amount" validate:"gt=0"`
}

// GetStats godoc
// @Summary Totals, streaks and today's goal state
// @Tags Progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /user/stats [get]
func (pc *ProgressController) GetStats(c *fiber.Ctx) error {
	stats, err := pc.Gamification.Stats(c.UserContext(), middleware.Session(c).UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// GetHistory godoc
// @Summary Daily stat rows of the caller, newest first
// @Tags Progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /user/history [get]
func (pc *ProgressController) GetHistory(c *fiber.Ctx) error {
	history, err := pc.Gamification.History(c.UserContext(), middleware.Session(c).UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, history)
}

// GetGoal godoc
// @Summary Daily goal of the caller
// @Tags Progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /user/goal [get]
func (pc *ProgressController) GetGoal(c *fiber.Ctx) error {
	goal, err := pc.Gamification.Goal(c.UserContext(), nil, middleware.Session(c).UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, goal)
}

// UpdateGoal godoc
// @Summary Change daily targets
// @Description Today's goalMet is recomputed against the new targets
// @Tags Progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body goalRequest true "Targets, both > 0"
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /user/goal [put]
func (pc *ProgressController) UpdateGoal(c *fiber.Ctx) error {
	var input goalRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	goal, err := pc.Gamification.UpdateGoal(c.UserContext(), middleware.Session(c).UserID,
		input.TargetXPPerDay, input.TargetLessonsPerDay)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, goal)
}

// GrantXP godoc
// @Summary Grant bonus XP to a learner for today
// @Description Admin only. Lesson completion stays the only way learners earn XP themselves
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param input body xpRequest true "XP amount"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/users/{id}/xp [post]
func (pc *ProgressController) GrantXP(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid user ID")
	}
	var input xpRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	stat, err := pc.Gamification.AddXP(c.UserContext(), userID, input.Amount)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stat)
}
