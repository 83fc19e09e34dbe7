package cron

import (
	"context"
	"log/slog"
	"time"
)

const (
	revokedTokenPurgeInterval = 15 * time.Minute
	limiterPruneInterval      = 10 * time.Minute
	limiterIdleTimeout        = 30 * time.Minute
)

// ResetTokenPurger clears password reset tokens past their expiry.
type ResetTokenPurger interface {
	PurgeExpiredResetTokens(ctx context.Context) (int64, error)
}

type RevokedTokenPurger interface {
	PurgeRevoked(now time.Time) int
}

type LimiterPruner interface {
	Prune(idle time.Duration) int
}

// MaintenanceJobs keeps expiring state from piling up.
type MaintenanceJobs struct {
	resetTokens        ResetTokenPurger
	revokedTokens      RevokedTokenPurger
	limiter            LimiterPruner
	resetTokenInterval time.Duration
	now                func() time.Time
}

func NewMaintenanceJobs(resetTokens ResetTokenPurger, revokedTokens RevokedTokenPurger, limiter LimiterPruner, resetTokenInterval time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		resetTokens:        resetTokens,
		revokedTokens:      revokedTokens,
		limiter:            limiter,
		resetTokenInterval: resetTokenInterval,
		now:                time.Now,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{Name: "purge_expired_reset_tokens", Interval: j.resetTokenInterval, Timeout: time.Minute, Fn: j.PurgeExpiredResetTokens})
	scheduler.AddJob(Job{Name: "purge_revoked_tokens", Interval: revokedTokenPurgeInterval, Fn: j.PurgeRevokedTokens})
	if j.limiter != nil {
		scheduler.AddJob(Job{Name: "prune_rate_limiters", Interval: limiterPruneInterval, Fn: j.PruneLimiters})
	}
}

func (j *MaintenanceJobs) PurgeExpiredResetTokens(ctx context.Context) error {
	cleared, err := j.resetTokens.PurgeExpiredResetTokens(ctx)
	if err != nil {
		return err
	}
	if cleared > 0 {
		slog.Info("Cron: Cleared expired password reset tokens", "count", cleared)
	}
	return nil
}

func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	if purged := j.revokedTokens.PurgeRevoked(j.now()); purged > 0 {
		slog.Debug("Cron: Purged revoked tokens", "count", purged)
	}
	return nil
}

func (j *MaintenanceJobs) PruneLimiters(ctx context.Context) error {
	if pruned := j.limiter.Prune(limiterIdleTimeout); pruned > 0 {
		slog.Debug("Cron: Pruned idle rate limiters", "count", pruned)
	}
	return nil
}
