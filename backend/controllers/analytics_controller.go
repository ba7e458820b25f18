package controllers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/reports"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type AnalyticsController struct {
	Teacher *services.TeacherService
	Admin   *services.AdminService
	Cfg     *config.Config
}

func NewAnalyticsController(teacher *services.TeacherService, admin *services.AdminService, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{Teacher: teacher, Admin: admin, Cfg: cfg}
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// GetTeacherDashboard godoc
// @Summary Student activity, course stats and per-course progress
// @Tags Teacher
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /teacher/dashboard [get]
func (ac *AnalyticsController) GetTeacherDashboard(c *fiber.Ctx) error {
	dashboard, err := ac.Teacher.Dashboard(c.UserContext())
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, dashboard)
}

// ExportStudentProgress godoc
// @Summary Student progress table as an XLSX workbook
// @Tags Teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Router /teacher/dashboard/export [get]
func (ac *AnalyticsController) ExportStudentProgress(c *fiber.Ctx) error {
	dashboard, err := ac.Teacher.Dashboard(c.UserContext())
	if err != nil {
		return utils.DomainError(c, err)
	}

	var buf bytes.Buffer
	if err := reports.WriteStudentProgress(&buf, dashboard.StudentProgress); err != nil {
		return utils.InternalServerError(c, "Could not build report")
	}

	c.Set(fiber.HeaderContentType, reports.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="student-progress.xlsx"`)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// GetAdminStats godoc
// @Summary Platform totals and the last seven days of activity
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/stats [get]
func (ac *AnalyticsController) GetAdminStats(c *fiber.Ctx) error {
	stats, err := ac.Admin.Stats(c.UserContext())
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// GetUsers godoc
// @Summary All users
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/users [get]
func (ac *AnalyticsController) GetUsers(c *fiber.Ctx) error {
	users, err := ac.Admin.Users(c.UserContext())
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, users, fiber.Map{"count": len(users)})
}

// SetUserRole godoc
// @Summary Change a user's role
// @Description Takes effect at the user's next login
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param input body roleRequest true "New role"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (ac *AnalyticsController) SetUserRole(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid user ID")
	}
	var input roleRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	user, err := ac.Admin.SetRole(c.UserContext(), middleware.Session(c).UserID, userID, input.Role)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
