package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RP1999/healthcare-application/internal/config"
	"github.com/RP1999/healthcare-application/internal/database"
	"github.com/RP1999/healthcare-application/internal/handlers"
	"github.com/RP1999/healthcare-application/internal/middleware"
	"github.com/RP1999/healthcare-application/internal/repository"
	"github.com/RP1999/healthcare-application/internal/routes"
	"github.com/RP1999/healthcare-application/internal/services"
	"github.com/RP1999/healthcare-application/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()
	sugar.Infof("Starting MediLink API in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	tokens, err := token.NewManager(cfg.JWT.Secret, cfg.TokenTTL)
	if err != nil {
		sugar.Fatalf("token manager init: %v", err)
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.UserCollection)
	patientRepo := repository.NewMongoPatientRepo(db, cfg.Mongo.PatientCollection)

	authSvc := services.NewAuthService(userRepo, tokens, logger)
	patientSvc := services.NewPatientService(patientRepo, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.App.BodyLimitBytes,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigin,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(middleware.RequestLogger(logger))

	routes.Register(app, routes.Deps{
		Env:     cfg.App.Env,
		Tokens:  tokens,
		Users:   userRepo,
		Auth:    handlers.NewAuthHandler(authSvc, logger),
		Patient: handlers.NewPatientHandler(patientSvc, logger),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	sugar.Info("Graceful shutdown complete")
}
