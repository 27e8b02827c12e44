// Package main provides the entry point for the OCR-to-speech server
package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Shravanisawant28/PDF/internal/api"
	"github.com/Shravanisawant28/PDF/internal/config"
	"github.com/Shravanisawant28/PDF/pkg/extractor"
	"github.com/Shravanisawant28/PDF/pkg/logging"
	"github.com/Shravanisawant28/PDF/pkg/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.SetupLogger(cfg.Logging); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// Extraction engine with the real poppler/tesseract backends.
	engine := extractor.NewEngine(
		extractor.NewPopplerRasterizer(cfg.PopplerPath),
		extractor.NewTesseractRecognizer(cfg.TessdataPrefix),
		cfg.RasterDPI,
	)

	store, err := speech.NewStore(
		cfg.AudioDir,
		"/static/audio",
		speech.KeepLatest{N: cfg.AudioKeep},
		speech.NewGoogleSynthesizer(cfg.TTSEndpoint),
	)
	if err != nil {
		log.Fatalf("Failed to initialize audio store: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   "PDF Voice API",
		BodyLimit: int(cfg.MaxUploadSize),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				// Internal detail stays in the logs.
				serverLog := logging.GetLogger("server")
				serverLog.Error().Err(err).Msg("Unexpected error")
				return c.Status(code).JSON(fiber.Map{
					"error": "Internal Server Error",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "UTC",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	h := api.NewHandlers(engine, store, cfg.MaxUploadSize, cfg.ExtractionTimeout, cfg.SynthesisTimeout)
	setupRoutes(app, h, cfg)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRoutes configures all routes
func setupRoutes(app *fiber.App, h *api.Handlers, cfg *config.Config) {
	app.Get("/healthz", h.Health)
	app.Post("/extract-text", h.ExtractText)

	// Generated audio lives under the static directory.
	app.Static("/static", cfg.StaticDir)

	app.Get("/", func(c *fiber.Ctx) error {
		index := filepath.Join(cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			return c.SendFile(index)
		}
		return c.JSON(fiber.Map{
			"service": "PDF Voice",
			"version": "0.1.0",
		})
	})
}
