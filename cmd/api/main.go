package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hirelens/resume-analyzer/internal/config"
	"hirelens/resume-analyzer/internal/handlers"
	"hirelens/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storage := services.NewResumeStorage(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	inspector := services.NewPDFInspector(cfg.Storage.MaxFileSize)
	jobPostings := services.NewJobPostingFetcher(cfg.Analyzer.JobPostTimeout)
	analyzer := services.NewAnalyzerClient(cfg.Analyzer.URL, cfg.Analyzer.Timeout)
	store := services.NewViewStore()
	forms := services.NewFormRegistry(analyzer, store, storage, cfg.ValidationPolicy())
	log.Printf("✅ Services initialized (analyzer: %s, policy: %s)\n", cfg.Analyzer.URL, cfg.ValidationPolicy())

	// Initialize Handlers
	formHandler := handlers.NewFormHandler(
		forms,
		storage,
		inspector,
		jobPostings,
		cfg.Storage.MaxFileSize,
	)
	submitHandler := handlers.NewSubmitHandler(forms)
	viewHandler := handlers.NewViewHandler(store)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireLens Resume Analyzer",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	handlers.RegisterRoutes(api, formHandler, submitHandler, viewHandler)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HireLens Resume Analyzer",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/roles",
				"GET /api/v1/view",
				"GET /api/v1/view/chart.png",
				"POST /api/v1/forms",
				"POST /api/v1/forms/:id/resume",
				"PUT /api/v1/forms/:id/role",
				"PUT /api/v1/forms/:id/job-description",
				"POST /api/v1/forms/:id/job-description/fetch",
				"POST /api/v1/forms/:id/submit",
				"DELETE /api/v1/forms/:id/draft",
				"GET /api/v1/forms/:id",
				"DELETE /api/v1/forms/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
