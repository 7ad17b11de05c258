package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogicum-backend/pkg/container"
)

type namedCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices verifies dependencies then exposes the worker health endpoint
func startServices(c *container.Container) error {
	log.Info().Msg("============================================")
	log.Info().Msg("🚀 Blogicum Worker Starting...")
	log.Info().Msg("============================================")

	checks := []namedCheck{
		{"Redis Connection", c.Redis.HealthCheck},
		{"Database", c.DB.HealthCheck},
		{"Object Storage", c.Storage.HealthCheck},
	}
	if err := checkAll(checks); err != nil {
		return err
	}

	go startHealthCheckServer(c.Config.Worker.HealthPort)
	return nil
}

// checkAll runs all health checks, dừng ở check lỗi đầu tiên
func checkAll(checks []namedCheck) error {
	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()

		if err != nil {
			log.Error().Err(err).Msgf("❌ %s", check.name)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Msgf("✓ %s: OK", check.name)
	}
	return nil
}

func healthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "blogicum-worker"})
	})
	// Kubernetes readiness probe
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return router
}

func startHealthCheckServer(port string) {
	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(":"+port, healthRouter()); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
