package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"novalink-bot/config"
	"novalink-bot/handlers"
	"novalink-bot/middleware"
	"novalink-bot/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration
	cfg := config.LoadConfig()

	keywords, err := config.LoadKeywords(cfg.KeywordFile)
	if err != nil {
		slog.Error("Failed to load keyword configuration", "error", err)
		os.Exit(1)
	}

	// Initialize MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Disconnect(ctx)

	services.InitServices(db, cfg.DatabaseName)

	// Knowledge cache, warmed before the server starts
	knowledge := services.NewKnowledgeCache(
		services.NewHTTPKnowledgeFetcher(cfg.KnowledgeURL, cfg.KnowledgeAPIKey),
		cfg.KnowledgeTTL,
	)
	if err := knowledge.Refresh(ctx); err != nil {
		slog.Error("Initial knowledge fetch failed", "error", err)
		// Continue anyway - the cache retries on the next request
	}

	// Gemini provider; a failed init degrades to canned strategies only
	var generator services.TextGenerator
	if gemini, err := services.NewGeminiClient(ctx, cfg); err != nil {
		slog.Warn("Gemini unavailable, generative replies disabled", "error", err)
	} else {
		generator = gemini
	}

	engine := services.NewEngine(
		generator,
		knowledge,
		keywords,
		cfg.PrimaryLanguage,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	chatHandler := handlers.NewChatHandler(engine, keywords, cfg)
	adminHandler := handlers.NewAdminHandler(knowledge)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Admin-Key",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Chat API
	api := app.Group("/api")
	api.Post("/chat", chatHandler.Handle)

	// Admin endpoints (admin key required)
	admin := app.Group("/admin", middleware.RequireAdminKey(cfg.AdminKeyHash))
	admin.Post("/knowledge/refresh", adminHandler.RefreshKnowledge)
	admin.Get("/leads", adminHandler.ListLeads)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "novalink-bot",
		})
	})

	slog.Info("Server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
