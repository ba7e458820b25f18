package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/controllers"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

// NewApp builds the fiber app with global middleware and every route.
func NewApp(svc *services.Services, cfg *config.Config, logger *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "langify",
		BodyLimit: 8 << 20,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	SetupRoutes(app, svc, cfg)
	return app
}

func SetupRoutes(app *fiber.App, svc *services.Services, cfg *config.Config) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(svc.Accounts, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	teacherOnly := middleware.RequireRole(models.RoleTeacher)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := app.Group("/api", authMiddleware)

	// User routes
	userController := controllers.NewUserController(svc.Accounts, cfg)
	api.Get("/user/profile", userController.GetProfile)
	api.Put("/user/profile", userController.UpdateProfile)

	// Progress routes
	progressController := controllers.NewProgressController(svc.Gamification, cfg)
	api.Get("/user/stats", progressController.GetStats)
	api.Get("/user/history", progressController.GetHistory)
	api.Get("/user/goal", progressController.GetGoal)
	api.Put("/user/goal", progressController.UpdateGoal)

	// Courses routes
	coursesController := controllers.NewCoursesController(svc.Content, cfg)
	api.Get("/courses", coursesController.GetCourses)
	api.Get("/courses/:id", coursesController.GetCourseDetails)
	api.Get("/vocabulary/items", coursesController.GetVocabularyItems)

	// Lesson player routes
	lessonController := controllers.NewLessonController(svc.Lessons, cfg)
	api.Get("/lessons/:id/tasks", lessonController.GetLessonTasks)
	api.Post("/lessons/:id/attempts", lessonController.StartAttempt)
	api.Get("/tasks/:id/options", lessonController.GetTaskOptions)
	api.Post("/tasks/:id/check", lessonController.CheckAnswer)
	api.Post("/attempts/:id/complete", lessonController.CompleteAttempt)

	// Vocabulary routes
	vocabularyController := controllers.NewVocabularyController(svc.Vocabulary, cfg)
	api.Get("/vocabulary", vocabularyController.GetVocabulary)
	api.Post("/vocabulary", vocabularyController.AddWord)
	api.Delete("/vocabulary/:vocabularyId", vocabularyController.RemoveWord)
	api.Post("/vocabulary/:vocabularyId/review", vocabularyController.ReviewWord)

	// Leaderboard routes
	leaderboardController := controllers.NewLeaderboardController(svc.Leaderboard, cfg)
	api.Get("/leaderboard", leaderboardController.GetLeaderboard)
	api.Get("/leaderboard/me", leaderboardController.GetMyRank)

	analyticsController := controllers.NewAnalyticsController(svc.Teacher, svc.Admin, cfg)

	// Teacher routes
	teacher := api.Group("/teacher", teacherOnly)
	teacher.Get("/dashboard", analyticsController.GetTeacherDashboard)
	teacher.Get("/dashboard/export", analyticsController.ExportStudentProgress)
	teacher.Post("/courses", coursesController.CreateCourse)
	teacher.Put("/courses/:id", coursesController.UpdateCourse)
	teacher.Post("/courses/:id/lessons", coursesController.AddLesson)
	teacher.Put("/lessons/:id", coursesController.UpdateLesson)
	teacher.Post("/lessons/:id/tasks", coursesController.AddTask)
	teacher.Delete("/tasks/:id", coursesController.DeleteTask)
	teacher.Post("/vocabulary", coursesController.AddVocabularyItem)
	teacher.Post("/vocabulary/import", coursesController.ImportVocabulary)

	// Admin routes
	admin := api.Group("/admin", adminOnly)
	admin.Get("/stats", analyticsController.GetAdminStats)
	admin.Get("/users", analyticsController.GetUsers)
	admin.Put("/users/:id/role", analyticsController.SetUserRole)
	admin.Post("/users/:id/xp", progressController.GrantXP)
}
