package cmd

import (
	"fmt"
	"net/http"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/routeapi"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/logger"

	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	uowFactory postgres.GormUnitOfWorkFactory
	resolver   *routeapi.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:   routeapi.NewClient(http.DefaultClient, config.RouteAPIHost, config.RouteAPIKey),
	}
}

// NewGormDB opens the postgres connection, verifies connectivity and syncs
// the schema. SQL statements are logged in development mode only.
func NewGormDB(config Config, appLogger *zap.Logger) (*gorm.DB, error) {
	logMode := gormlogger.Silent
	if config.AppMode != logger.ModeProduction {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	appLogger.Info("database connected")

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return nil, fmt.Errorf("error syncing schema: %w", err)
	}
	appLogger.Info("schema synced")

	return db, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.resolver)
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTakeOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBacklogStatsQueryHandler() queries.GetBacklogStatsQueryHandler {
	return queries.NewGetBacklogStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateTakeOrderCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetBacklogStatsQueryHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
