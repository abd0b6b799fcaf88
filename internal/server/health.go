package server

import (
	"context"
	"net/http"
	"time"

	"go.inout.gg/bastion/db/driver"
	"go.inout.gg/bastion/internal/config"
)

const healthCheckTimeout = 2 * time.Second

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	databaseConnected    = "connected"
	databaseDisconnected = "disconnected"
)

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

func healthHandler(drv driver.Driver, cfg *config.ApplicationConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := HealthResponse{
			Status:      statusHealthy,
			Version:     cfg.APIVersion,
			Environment: cfg.Environment,
			Database:    databaseConnected,
		}
		status := http.StatusOK

		if err := drv.Ping(ctx); err != nil {
			d("health check failed: %v", err)

			resp.Status = statusUnhealthy
			resp.Database = databaseDisconnected
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
