package workers

import (
	"context"
	"log/slog"

	"clipcast/contexts/community/session-service/application"
)

// SessionExpirer sweeps REQUESTED sessions whose start time has passed.
type SessionExpirer struct {
	Service application.Service
	Logger  *slog.Logger
}

func (e SessionExpirer) RunOnce(ctx context.Context) error {
	if _, err := e.Service.ExpireOverdue(ctx); err != nil {
		logger := e.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("session expiry sweep failed",
			"event", "session_expiry_sweep_failed",
			"module", "community/session-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	return nil
}
