package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/D-z-V/oppia/internal/handlers"
	"github.com/D-z-V/oppia/internal/languages"
	"github.com/D-z-V/oppia/internal/opportunities"
	"github.com/D-z-V/oppia/internal/translation"
	"github.com/D-z-V/oppia/pkg/config"
	"github.com/D-z-V/oppia/pkg/database"
	"github.com/D-z-V/oppia/pkg/logging"
	"github.com/D-z-V/oppia/pkg/monitoring"
	"github.com/D-z-V/oppia/pkg/server"
	"github.com/D-z-V/oppia/pkg/version"
)

func main() {
	logger := logging.NewLoggerWithService("dashboard")
	config.LoadEnv(logger)

	databaseURL := config.RequireEnv("DATABASE_URL")
	jwtSecret := []byte(config.RequireEnv("JWT_SECRET"))
	androidSecret := config.GetEnv("ANDROID_BUILD_SECRET", "")

	dbConfig := database.DefaultConfig()
	dbConfig.URL = databaseURL
	db := database.MustConnect(dbConfig, logger)
	defer db.Close()

	var redisClient *goredis.Client
	if redisURL := config.GetEnv("REDIS_URL", ""); redisURL != "" {
		opts, err := goredis.ParseURL(redisURL)
		if err != nil {
			logger.WithError(err).Fatal("Invalid REDIS_URL")
		}
		redisClient = goredis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable, translation cache degrades to in-process tier")
		}
	}

	healthChecker := monitoring.NewHealthChecker("dashboard", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("dashboard", version.Version, version.GitCommit)

	healthChecker.AddCheck("database", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL": databaseURL,
		"JWT_SECRET":   string(jwtSecret),
	}))
	if redisClient != nil {
		healthChecker.AddCheck("redis", monitoring.RedisHealthCheck(redisClient))
	}

	store := opportunities.NewSQLStore(db)
	aggregator := opportunities.New(store, languages.IsSupported)
	translations := translation.NewCache(translation.Unavailable(), redisClient, logger)

	dashboardMetrics := &handlers.DashboardMetrics{}
	dashboardMetrics.PagesServed, dashboardMetrics.EntitiesSkipped, dashboardMetrics.PageFetches = metricsCollector.CreateOpportunityMetrics()

	app := server.SetupServiceRouter(logger, "dashboard", healthChecker, metricsCollector)

	handlers.Init(db, logger, aggregator, store, translations, dashboardMetrics)
	handlers.RegisterRoutes(app, jwtSecret, androidSecret)

	serverConfig := server.DefaultConfig("dashboard", "18040")
	if err := server.Start(serverConfig, app, logger); err != nil {
		logger.Fatal(err.Error())
	}
}
