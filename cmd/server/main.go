package main

import (
	"context"

	apicontrollers "github.com/toolbelt/toolbelt/internal/api/controllers"
	"github.com/toolbelt/toolbelt/internal/domain/services"
	"github.com/toolbelt/toolbelt/internal/impl/config"
	"github.com/toolbelt/toolbelt/internal/impl/defaults"
	repositoriesJson "github.com/toolbelt/toolbelt/internal/impl/repositories/json"
	"github.com/toolbelt/toolbelt/internal/impl/tools"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.InitConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	registry, err := tools.NewToolRegistry()
	if err != nil {
		logger.Fatal("Failed to initialize tool registry", zap.Error(err))
	}

	toolRepo, err := repositoriesJson.NewJSONToolRepository(cfg.DataDir, registry, nil, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tool repository", zap.Error(err))
	}

	if err := defaults.EnsureSeeded(context.Background(), toolRepo, cfg, logger); err != nil {
		logger.Fatal("Failed to seed default tools", zap.Error(err))
	}

	toolService := services.NewToolService(toolRepo, logger)
	toolController := apicontrollers.NewToolController(logger, toolService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	api := e.Group("/api")
	toolController.RegisterRoutes(api)

	logger.Info("Starting server", zap.String("address", cfg.ListenAddress))
	if err := e.Start(cfg.ListenAddress); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
