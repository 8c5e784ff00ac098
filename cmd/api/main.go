// @title TextQuiz API
// @version 1.0
// @description Turns photographed pages into fill-in-the-blank quizzes.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "textquiz/cmd/api/docs"
	"textquiz/internal/adapter"
	"textquiz/internal/cache"
	"textquiz/internal/config"
	"textquiz/internal/database"
	"textquiz/internal/domain"
	"textquiz/internal/handler"
	"textquiz/internal/imageproc"
	"textquiz/internal/logger"
	"textquiz/internal/middleware"
	"textquiz/internal/repository"
	"textquiz/internal/service"
	"textquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Connect to database
	db, err := database.Connect(startupCtx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	applied, err := database.RunMigrations(startupCtx, db)
	if err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Database ready", zap.String("driver", cfg.DB.Driver), zap.Int("migrationsApplied", applied))

	// The OCR cache is optional; the service runs uncached without Redis.
	var ocrCache domain.Cache
	redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Failed to connect to Redis, OCR results will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		ocrCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
	}

	// Core pipeline
	preprocessor, err := imageproc.NewPreprocessor(preprocessOptions(cfg.Preprocess))
	if err != nil {
		appLogger.Fatal("Invalid preprocess configuration", zap.Error(err))
	}
	generator, err := newGenerator(cfg.Quiz)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	recognizer, err := newRecognizer(cfg.OCR)
	if err != nil {
		appLogger.Fatal("Failed to create OCR engine", zap.Error(err))
	}
	appLogger.Info("OCR engine initialized", zap.String("engine", recognizer.Name()))

	// Initialize repositories
	quizResultRepository := repository.NewQuizResultRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	validator := validation.NewValidator(cfg.Quiz.MaxQuestions)
	quizService := service.NewQuizService(generator, quizResultRepository, txManager, validator, cfg.Quiz)
	imageService := service.NewImageService(preprocessor, recognizer, ocrCache, cfg.Redis.OCRCacheTTL)
	healthService := service.NewHealthService(quizResultRepository, ocrCache)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	imageHandler := handler.NewImageHandler(imageService)
	healthHandler := handler.NewHealthHandler(healthService)
	validationMiddleware := middleware.NewValidationMiddleware(validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	apiGroup := app.Group("/api")
	apiGroup.Post("/preprocess", quizHandler.CleanText)
	apiGroup.Post("/generate_quiz", quizHandler.GenerateQuiz)
	apiGroup.Post("/process_image", imageHandler.ProcessImage)
	apiGroup.Post("/preprocess_image", imageHandler.PreprocessImage)
	apiGroup.Post("/quiz_results", quizHandler.SaveQuizResult)
	apiGroup.Get("/quiz_results", validationMiddleware.ValidateUserIDQuery(), quizHandler.GetQuizHistory)
	apiGroup.Get("/quiz_details/:id", validationMiddleware.ValidateSessionIDParam(), quizHandler.GetQuizDetails)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
