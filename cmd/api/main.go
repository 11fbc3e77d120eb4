package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shubhamc1947/company-data/controllers"
	"github.com/shubhamc1947/company-data/core"
	"github.com/shubhamc1947/company-data/service"
	"github.com/shubhamc1947/company-data/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := core.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger, err := core.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// connect to the database
	db, err := core.InitDB(cfg.Database, cfg.Environment)
	if err != nil {
		logger.Fatalf("Unable to connect to the database: %v", err)
	}

	// auto migrate the database
	if err := core.Migrate(db); err != nil {
		logger.Fatalf("Unable to migrate the database: %v", err)
	}

	locker, closeLocker, err := core.NewLocker(context.Background(), cfg.Redis, logger.With("component", "lock"))
	if err != nil {
		logger.Fatal(err)
	}
	defer closeLocker()

	st := store.New(db)

	registry, err := service.BuildRegistry(cfg, st, locker, logger)
	if err != nil {
		logger.Fatal(err)
	}

	server := createServer(cfg, st, registry, logger)

	logger.Infof("Serving %v on port %v", registry.Countries(), cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal(err)
	}
}

func createServer(cfg *core.Config, st *store.Store, registry *service.Registry, logger *zap.SugaredLogger) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// set up http server
	engine := gin.New()
	if err := engine.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	engine.Use(
		gin.Recovery(),
		controllers.RequestID,
		controllers.RequestLogger(logger.With("component", "http")),
		controllers.CORS(cfg.Server.UIDomain),
	)

	router := controllers.Router{
		HealthController: &controllers.HealthController{
			Store:  st,
			Logger: logger.With("controller", "health"),
		},
		InfoController: &controllers.InfoController{
			Registry: registry,
			Logger:   logger.With("controller", "info"),
		},
		CompaniesController: &controllers.CompaniesController{
			Registry: registry,
			Logger:   logger.With("controller", "companies"),
		},
		SearchController: &controllers.SearchController{
			Registry: registry,
			Logger:   logger.With("controller", "search"),
		},
	}

	router.RegisterRoutes(engine)
	return engine
}
