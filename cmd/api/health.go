package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogicum-backend/internal/config"
	"blogicum-backend/internal/infrastructure/database"
	"blogicum-backend/pkg/container"
)

// dependencyCheck - critical=true thì lỗi trả 503, còn lại chỉ báo "degraded"
type dependencyCheck struct {
	name     string
	critical bool
	ping     func(ctx context.Context) error
}

func containerChecks(c *container.Container) []dependencyCheck {
	return []dependencyCheck{
		{name: "database", critical: true, ping: c.DB.HealthCheck},
		{name: "redis", ping: c.Redis.HealthCheck},
		{name: "storage", ping: c.Storage.HealthCheck},
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
// poolStats có thể nil (tests)
func healthCheckHandler(checks []dependencyCheck, poolStats func() *database.PoolStats) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		statusCode := http.StatusOK
		services := gin.H{}

		for _, check := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := check.ping(ctx)
			cancel()

			if err == nil {
				services[check.name] = "ok"
				continue
			}

			services[check.name] = fmt.Sprintf("error: %v", err)
			status = "degraded"
			if check.critical {
				statusCode = http.StatusServiceUnavailable
			}
		}

		body := gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   config.GetEnv("APP_VERSION", "1.0.0"),
			"services":  services,
		}
		if poolStats != nil {
			if stats := poolStats(); stats != nil {
				body["database_pool"] = stats
			}
		}

		c.JSON(statusCode, body)
	}
}
