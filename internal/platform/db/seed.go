package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kyronix/internal/domain/auth"
	"kyronix/internal/platform/config"
)

// Seed guarantees an administrator account exists so the portal is usable on
// first boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (
      email, password_hash, role, employment_status,
      legal_first_name, legal_last_name, job_title, department
    )
    VALUES ($1, $2, $3, 'active', 'Portal', 'Admin', 'Administrator', 'Operations')
  `, email, hash, auth.RoleAdmin)
	return err
}
