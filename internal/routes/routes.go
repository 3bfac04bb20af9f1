package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"skillmap/portfolio-api/internal/handlers"
)

type AppConfig struct {
	BodyLimit    int
	AllowOrigins string
	AccessLog    bool
}

type Handlers struct {
	SkillMap  *handlers.SkillMapHandler
	Rubric    *handlers.RubricHandler
	Skill     *handlers.SkillHandler
	Level     *handlers.LevelHandler
	Criteria  *handlers.CriteriaHandler
	Portfolio *handlers.PortfolioHandler
}

// NewApp creates the fiber app with the shared middleware stack and every route.
func NewApp(cfg AppConfig, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Skill Map API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	// Credentials may only be shared with an explicit origin list
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: cfg.AllowOrigins != "*",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	Register(app, h)

	return app
}

func Register(app *fiber.App, h Handlers) {
	// Liveness
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON("hello")
	})

	app.Post("/map/", h.SkillMap.HandleCreate)
	app.Get("/map/", h.SkillMap.HandleList)
	app.Get("/map/export", h.SkillMap.HandleExport)

	app.Post("/rubric/", h.Rubric.HandleCreate)
	app.Get("/rubric/", h.Rubric.HandleList)
	app.Get("/rubric/:id", h.Rubric.HandleGet)
	app.Delete("/rubric/:id", h.Rubric.HandleDelete)
	app.Get("/rubric/:id/export", h.Rubric.HandleExport)

	app.Post("/skill/", h.Skill.HandleCreate)
	app.Get("/skill/", h.Skill.HandleList)

	app.Post("/level/", h.Level.HandleCreate)
	app.Get("/level/", h.Level.HandleList)

	app.Post("/criteria/", h.Criteria.HandleCreate)
	app.Get("/criteria/", h.Criteria.HandleList)

	app.Post("/portfolio/import", h.Portfolio.HandleImport)
	app.Get("/portfolio/search", h.Portfolio.HandleSearch)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
