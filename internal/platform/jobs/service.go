package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kyronix/internal/platform/config"
)

// Service runs periodic housekeeping: purging expired password-reset tokens
// and pruning audit-log rows past the retention window.
type Service struct {
	DB  *pgxpool.Pool
	Cfg config.Config
}

func New(db *pgxpool.Pool, cfg config.Config) *Service {
	return &Service{DB: db, Cfg: cfg}
}

func (s *Service) Start(ctx context.Context) {
	if s.Cfg.MaintenanceInterval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.Cfg.MaintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes every maintenance task; failures are logged, not fatal.
func (s *Service) RunOnce(ctx context.Context) {
	if purged, err := s.purgeExpiredResetTokens(ctx); err != nil {
		slog.Warn("reset token purge failed", "err", err)
	} else if purged > 0 {
		slog.Info("reset tokens purged", "count", purged)
	}

	if s.Cfg.AuditRetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -s.Cfg.AuditRetentionDays)
		if pruned, err := s.pruneAuditLogs(ctx, cutoff); err != nil {
			slog.Warn("audit log prune failed", "err", err)
		} else if pruned > 0 {
			slog.Info("audit logs pruned", "count", pruned, "cutoff", cutoff.Format("2006-01-02"))
		}
	}
}

func (s *Service) purgeExpiredResetTokens(ctx context.Context) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM password_resets WHERE expires_at < now() OR used_at IS NOT NULL")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Service) pruneAuditLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM audit_logs WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
