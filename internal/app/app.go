package app

import (
	"context"

	"github.com/netobserve/location-audit/internal/core/ports"
)

// Application ties the audit engine to its logger for the CLI entrypoint.
type Application struct {
	Engine ports.AuditEngine
	Logger ports.Logger
}

func NewApplication(engine ports.AuditEngine, logger ports.Logger) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
	}
}

func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting location audit...")

	if err := a.Engine.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, err, "Location audit failed")
		return err
	}

	a.Logger.Infof(ctx, "Location audit completed successfully")
	return nil
}
