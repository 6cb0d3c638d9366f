// Package handlers implements the contributor dashboard HTTP endpoints.
package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/D-z-V/oppia/internal/opportunities"
	"github.com/D-z-V/oppia/internal/translation"
	"github.com/D-z-V/oppia/pkg/logging"
)

var (
	db      *sql.DB
	logger  logging.Logger
	agg     *opportunities.Aggregator
	store   *opportunities.SQLStore
	mtCache *translation.Cache
	metrics *DashboardMetrics
)

// DashboardMetrics holds the Prometheus metrics the handlers record.
type DashboardMetrics struct {
	PagesServed     *prometheus.CounterVec
	EntitiesSkipped *prometheus.CounterVec
	PageFetches     *prometheus.HistogramVec
}

// Init sets up the handler dependencies. dashboardMetrics may be nil.
func Init(database *sql.DB, log logging.Logger, aggregator *opportunities.Aggregator, sqlStore *opportunities.SQLStore, translations *translation.Cache, dashboardMetrics *DashboardMetrics) {
	db = database
	logger = log
	agg = aggregator
	store = sqlStore
	mtCache = translations
	metrics = dashboardMetrics
}

func recordPage(category string, page opportunities.Page) {
	if metrics == nil {
		return
	}
	metrics.PagesServed.WithLabelValues(category, "success").Inc()
	metrics.EntitiesSkipped.WithLabelValues(category).Add(float64(page.Skipped))
	metrics.PageFetches.WithLabelValues(category).Observe(float64(page.FetchRounds))
}

func internalError(c *gin.Context, err error, msg string) {
	logger.WithError(err).Error(msg)
	c.JSON(500, gin.H{"error": "Internal server error"})
}
