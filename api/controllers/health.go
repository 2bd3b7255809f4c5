package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/lumina-accesorios/lumina-backend/api/responses"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

// Pinger is the dependency health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Lumina-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks every dependency the API cannot serve without.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Lumina-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = err.Error()
			} else {
				checks[name] = "ok"
			}
		}

		for name, state := range checks {
			if state != "ok" {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeDependency, name+" unavailable").WithDetails(checks))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
