package routes

import (
	"oabplanner/backend/config"
	"oabplanner/backend/controllers"
	"oabplanner/backend/gate"
	"oabplanner/backend/mailer"
	"oabplanner/backend/middleware"
	"oabplanner/backend/provision"
	"oabplanner/backend/quiz"
	"oabplanner/backend/repository"
	"oabplanner/backend/services"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Store  *repository.Store
	Cache  repository.StatsCache
	Mailer mailer.Sender
	Cfg    *config.Config
	Logger *zap.Logger

	// QuizOptions tune the session registry, tests use them to speed up
	// countdowns.
	QuizOptions []quiz.RegistryOption
}

// NewApp builds the Fiber app with the shared middleware and every route.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "oab-planner",
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(deps.Logger))

	SetupRoutes(app, deps)
	return app
}

func SetupRoutes(app *fiber.App, deps Deps) {
	store, cfg, logger := deps.Store, deps.Cfg, deps.Logger
	g := gate.New(store.Profiles)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Webhook
	provisioner := provision.New(store.Accounts, store.Sales, deps.Mailer, cfg.AppURL+"/login", logger)
	webhookController := controllers.NewWebhookController(provisioner, logger)
	app.All("/api/webhook", webhookController.Handle)

	// Auth routes
	authController := controllers.NewAuthController(store, g, cfg, logger)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/session", authController.Session)

	authMiddleware := middleware.AuthMiddleware(cfg)
	api := app.Group("/api", authMiddleware)

	// Profile routes
	profileController := controllers.NewProfileController(services.NewProfileService(store, deps.Cache, logger), g)
	api.Get("/profile", profileController.GetProfile)
	api.Put("/profile", profileController.UpdateProfile)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(services.NewDashboardService(store, deps.Cache, logger), store)
	api.Get("/dashboard", dashboardController.GetStats)
	api.Get("/dashboard/menu", dashboardController.GetMenu)
	api.Get("/dashboard/history", dashboardController.GetHistory)

	// Quiz routes
	quizController := controllers.NewQuizController(services.NewStudyService(store, deps.Cache, logger, deps.QuizOptions...))
	api.Get("/quiz", quizController.Current)
	api.Post("/quiz/start", quizController.Start)
	api.Post("/quiz/actions/:action", quizController.Action)

	// Notebook routes
	notebookController := controllers.NewNotebookController(store, deps.Cache, logger)
	api.Get("/notebook/:outcome", notebookController.List)
	api.Delete("/notebook/:outcome", notebookController.Clear)

	// Notes routes
	notesController := controllers.NewNotesController(store)
	api.Get("/notes", notesController.ListNotes)
	api.Get("/notes/:subject", notesController.GetNote)
	api.Put("/notes/:subject", notesController.SaveNote)
}
