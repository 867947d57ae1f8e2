package builder

import (
	"context"
	"fmt"

	"github.com/MVVYSHNAV/idea-generator/internal/config"
	pkgRetry "github.com/MVVYSHNAV/idea-generator/internal/pkg/retry"
	"github.com/MVVYSHNAV/idea-generator/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// setupStore picks the document store backend. The pool is nil for the memory store.
func setupStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, *pgxpool.Pool, error) {
	if cfg.StoreBackend != config.StorePostgres {
		logger.Info("using in-memory store")
		return repository.NewMemoryStore(), nil, nil
	}

	var db *pgxpool.Pool
	err := pkgRetry.Do(ctxzap.ToContext(ctx, logger), &cfg.DBConnectRetry, "connect database", func(ctx context.Context) error {
		pool, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
		db = pool
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed successfully")

	return repository.NewPostgresStore(db), db, nil
}

// setupDatabase creates a new database connection pool
func setupDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
		zap.Duration("health_check_period", poolConfig.HealthCheckPeriod),
	)

	return pool, nil
}
