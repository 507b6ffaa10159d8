package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
	"github.com/alkias2/SolunarBase/internal/infra/astro"
	"github.com/alkias2/SolunarBase/internal/infra/config"
	"github.com/alkias2/SolunarBase/internal/infra/forecastcache"
	"github.com/alkias2/SolunarBase/internal/infra/forecastrepo"
)

func provideSolunarConfig(cfg *config.Config) solunar.Config {
	return solunar.Config{
		DefaultResolution: solunar.Resolution(cfg.Solunar.DefaultResolution),
		CacheTTL:          cfg.Solunar.CacheTTL,
		Weights:           cfg.Solunar.Weights,
	}
}

func provideAstroProvider() *astro.Provider {
	return astro.NewProvider()
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) solunar.HistoryRepository {
	fallback := forecastrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Storage.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory history repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory history repository", "error", err)
		return fallback
	}
	if cfg.Storage.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.MaxConns
	}
	if cfg.Storage.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory history repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory history repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres history repository enabled")
	return forecastrepo.NewPostgresRepository(pool)
}

func provideForecastCache(cfg *config.Config, logger *slog.Logger) solunar.Cache {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return forecastcache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return forecastcache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey forecast cache enabled", "addr", cfg.Cache.Addr)
			return forecastcache.NewValkeyCache(client, "solunar")
		}
	}
	return forecastcache.NewMemoryCache()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
