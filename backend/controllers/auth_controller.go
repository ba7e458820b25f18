package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type AuthController struct {
	Accounts *services.AccountService
	Cfg      *config.Config
}

func NewAuthController(accounts *services.AccountService, cfg *config.Config) *AuthController {
	return &AuthController{Accounts: accounts, Cfg: cfg}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register godoc
// @Summary Register a new learner
// @Description Creates a user with the default daily goal and returns a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body services.RegisterInput true "Registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	user, err := ac.Accounts.Register(c.UserContext(), input)
	if err != nil {
		return utils.DomainError(c, err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Created(c, authResponse{Token: token, User: user})
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	user, err := ac.Accounts.Login(c.UserContext(), input)
	if err != nil {
		return utils.DomainError(c, err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, authResponse{Token: token, User: user})
}
