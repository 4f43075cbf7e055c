package routes

import (
	"autocatalog/auth"
	"autocatalog/metrics"
	"autocatalog/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

var validate = validator.New()

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	catalog *services.CatalogService
	users   *services.UserService
	tokens  *auth.Tokens
	log     *zap.Logger
}

func NewHandler(catalog *services.CatalogService, users *services.UserService, tokens *auth.Tokens, log *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		users:   users,
		tokens:  tokens,
		log:     log,
	}
}

// NewApp builds the fiber application with middleware and all routes mounted.
// m may be nil, in which case no metrics are collected or exposed.
func NewApp(h *Handler, m *metrics.Metrics, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "autocatalog",
		ErrorHandler:          h.errorHandler,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	if accessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} [ACCESS] ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	if m != nil {
		app.Use(m.Middleware())
	}
	app.Use(cors.New())

	SetupRoutes(app, h, m)
	return app
}

func SetupRoutes(app *fiber.App, h *Handler, m *metrics.Metrics) {
	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	authRoutes := app.Group("/auth/jwt")
	authRoutes.Post("/login", h.login)
	authRoutes.Post("/logout", h.RequireUser(), h.logout)

	// /me must be registered before /:id
	users := app.Group("/users", h.RequireUser())
	users.Get("/me", h.me)
	users.Patch("/me", h.updateMe)
	users.Get("/:id", h.RequireSuperuser(), h.getUser)
	users.Patch("/:id", h.RequireSuperuser(), h.updateUser)
	users.Delete("/:id", h.RequireSuperuser(), h.deleteUser)

	// Every /api route requires a valid bearer token, including unknown paths.
	api := app.Group("/api", h.RequireUser())

	// Brand routes
	brands := api.Group("/brand")
	brands.Post("/", h.createBrand)
	brands.Get("/:id", h.getBrand)
	brands.Get("/:id/vehicles", h.getBrandVehicles)
	brands.Patch("/:id", h.updateBrand)
	brands.Delete("/:id", h.deleteBrand)

	// Vehicle routes
	vehicles := api.Group("/vehicle")
	vehicles.Post("/", h.createVehicle)
	vehicles.Get("/:id", h.getVehicle)
	vehicles.Patch("/:id", h.updateVehicle)
	vehicles.Delete("/:id", h.deleteVehicle)
}
