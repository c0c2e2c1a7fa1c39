package bootstrap

import (
	"strings"

	"agent_server/adapter/in/http"
	"agent_server/config"
	"agent_server/infra/middleware"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
)

// NewAPI builds the Fiber application with the full route surface. The
// returned cleanup function releases the dependency graph.
func NewAPI(cfg *config.Config, log zerolog.Logger) (*fiber.App, func(), error) {
	deps, cleanup, err := NewDependencies(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(log),
		DisableStartupMessage: cfg.IsProduction(),
		StrictRouting:         false,
		CaseSensitive:         false,

		// go-json is drop-in and noticeably faster than encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 1 * 1024 * 1024,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover(log))
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
		MaxAge:        86400,
	}))

	// Health check
	healthHandler := http.NewHealthHandler(deps.DB, deps.EnrichPool)
	healthHandler.Register(app)

	// API routes
	api := app.Group("/api/v1")

	emailHandler := http.NewEmailHandler(deps.MailboxService, deps.EnrichService, deps.EnrichPool)
	emailHandler.Register(api)

	draftHandler := http.NewDraftHandler(deps.MailboxService)
	draftHandler.Register(api)

	promptHandler := http.NewPromptHandler(deps.PromptService)
	promptHandler.Register(api)

	chatHandler := http.NewChatHandler(deps.ChatService)
	chatHandler.Register(api)

	return app, cleanup, nil
}
