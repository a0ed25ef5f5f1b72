package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/backend"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/brasilapi"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/config"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/enrichcache"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/reconcile"
)

// app holds the wired components of one CLI invocation.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *procimport.Pipeline
	redis    *redis.Client
}

func newApp(ctx context.Context, path, levelOverride string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if levelOverride != "" {
		cfg.Log.Level = levelOverride
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(cfg.API.BaseURL, logger,
		backend.WithToken(cfg.API.Token),
		backend.WithTimeout(cfg.API.Timeout))

	var (
		enricher reconcile.Enricher = brasilapi.NewClient(cfg.Enrich.BaseURL, cfg.Enrich.Timeout, logger)
		rdb      *redis.Client
	)
	if cfg.Redis.Enabled() {
		rdb, err = enrichcache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			// The cache is optional; lookups go straight to the registry.
			logger.Warn("Redis unavailable, CNPJ lookups will not be cached", zap.Error(err))
		} else {
			enricher = enrichcache.New(rdb, enricher, cfg.Enrich.CacheTTL, logger)
		}
	}

	reconciler := reconcile.NewReconciler(client, enricher, logger,
		reconcile.WithPageSize(cfg.API.SupplierPageSize))

	opts := procimport.Options{
		ImportSheet:   cfg.Import.ImportSheet,
		SupplierSheet: cfg.Import.SupplierSheet,
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: procimport.NewPipeline(opts, reconciler, client, logger),
		redis:    rdb,
	}, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	syncLogger(a.logger)
}
