package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type LeaderboardController struct {
	Leaderboard *services.LeaderboardService
	Cfg         *config.Config
}

func NewLeaderboardController(leaderboard *services.LeaderboardService, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{Leaderboard: leaderboard, Cfg: cfg}
}

// GetLeaderboard godoc
// @Summary Top learners by XP
// @Tags Leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param period query string false "week or all" default(week)
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := lc.Leaderboard.Top(c.UserContext(), c.Query("period", services.PeriodWeek))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, entries, fiber.Map{"count": len(entries)})
}

// GetMyRank godoc
// @Summary Caller's rank, null when the caller has no XP in the period
// @Tags Leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param period query string false "week or all" default(week)
// @Success 200 {object} utils.SuccessResponse
// @Router /leaderboard/me [get]
func (lc *LeaderboardController) GetMyRank(c *fiber.Ctx) error {
	entry, err := lc.Leaderboard.MyRank(c.UserContext(), middleware.Session(c).UserID, c.Query("period", services.PeriodWeek))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, entry)
}
