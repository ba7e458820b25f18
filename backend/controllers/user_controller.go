package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type UserController struct {
	Accounts *services.AccountService
	Cfg      *config.Config
}

func NewUserController(accounts *services.AccountService, cfg *config.Config) *UserController {
	return &UserController{Accounts: accounts, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags User
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Accounts.Profile(c.UserContext(), middleware.Session(c).UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags User
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body services.ProfileInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var input services.ProfileInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	user, err := uc.Accounts.UpdateProfile(c.UserContext(), middleware.Session(c).UserID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
