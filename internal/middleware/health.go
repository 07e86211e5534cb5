package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker defines interface for health checking
type HealthChecker interface {
	Check(ctx context.Context) error
}

// DatabaseHealthChecker checks database health
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// HealthHandler reports overall status plus one entry per named checker.
// Inference readiness is reported as configured/unconfigured only; probing
// the model would trigger a cold-start load on every health poll.
func HealthHandler(checkers map[string]HealthChecker, inferenceConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		results := make(map[string]string, len(checkers))
		for name, c := range checkers {
			if err := c.Check(r.Context()); err != nil {
				results[name] = "down"
				status = "degraded"
			} else {
				results[name] = "up"
			}
		}

		body := map[string]any{
			"status":               status,
			"checks":               results,
			"inference_configured": inferenceConfigured,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}
