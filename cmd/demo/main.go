// Command demo is a thin HTTP collaborator around the timetable generator:
// it exposes POST /timetables for ad-hoc generation requests and GET
// /metrics for Prometheus scraping. It is not part of the core generation
// pipeline — a read-only consumer exercising the engine's public API over
// a network boundary, grounded on noah-isme-sma-adp-api/cmd/api-gateway's
// gin+viper+zap wiring.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	timetable "github.com/latticeforge/hybrid-timetable"
)

func main() {
	cfg := loadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metricsSink := timetable.NewMetricsSink()

	gaParams := timetable.DefaultGAParams()
	gaParams.Generations = cfg.GAGenerations
	gaParams.PopSize = cfg.GAPopSize

	gen := timetable.NewGenerator(
		timetable.WithLogger(logger),
		timetable.WithMetrics(metricsSink),
		timetable.WithGAParams(gaParams),
		timetable.WithSolverMaxTime(cfg.SolverTimeout),
	)

	h := newTimetableHandler(gen, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	r.GET("/health", h.Health)
	r.POST("/timetables", h.Generate)
	r.GET("/metrics", gin.WrapH(metricsSink.Handler()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting demo server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
