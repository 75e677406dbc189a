package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	_ "dispatch/docs"
	"dispatch/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

//	@title			Dispatch API
//	@version		1.0
//	@description	Order dispatch service: place delivery orders, claim them, list the backlog.
//	@BasePath		/
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	config, err := cmd.NewConfig()
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	appLogger, err := logger.NewLogger(config.LogLevel, config.AppMode)
	if err != nil {
		log.Fatalf("error building logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	gormDB, err := cmd.NewGormDB(config, appLogger)
	if err != nil {
		appLogger.Fatal("database setup failed", zap.Error(err))
	}

	app := cmd.NewCompositionRoot(config, gormDB, appLogger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		appLogger.Fatal("jobs failed to start", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(&app, config.HTTPPort, appLogger)
}

func startWebServer(app *cmd.CompositionRoot, port string, appLogger *zap.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			appLogger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.String("request_id", v.RequestID),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	app.CreateHTTPServer().RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("web server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		appLogger.Error("shutdown failed", zap.Error(err))
	}
}
