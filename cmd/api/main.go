package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/interview-assessor/internal/config"
	"alfredoptarigan/interview-assessor/internal/handlers"
	"alfredoptarigan/interview-assessor/internal/logger"
	"alfredoptarigan/interview-assessor/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.LoggerOptions("api", "stdout"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	generator, err := services.NewGenerator(ctx, cfg.GenerationConfig(), zlog)
	if err != nil {
		zlog.Fatal("failed to initialize generation client", zap.Error(err))
	}

	resumeService := services.NewResumeService(services.NewDocumentParserService(), zlog)
	interviewService := services.NewInterviewService(generator, zlog)
	uploadReader := services.NewUploadReader(cfg.Storage.MaxFileSize)
	zlog.Info("services initialized", zap.String("llm_provider", cfg.LLM.Provider))

	uploadHandler := handlers.NewUploadHandler(resumeService, uploadReader)
	interviewHandler := handlers.NewInterviewHandler(interviewService)

	app := fiber.New(fiber.Config{
		AppName:      "Interview Assessor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.LLM.Timeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowCredentials: cfg.Server.CORSAllowOrigins != "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.Register(app, uploadHandler, interviewHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
