package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-manager/core/config"
	"listing-manager/core/database"
	"listing-manager/core/listingapi"
	"listing-manager/core/logger"
	"listing-manager/core/reconcile"
	"listing-manager/core/schema"
	"listing-manager/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds the components shared by the server and the CLI commands.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	storage storage.Client
	schema  *schema.Store
	client  *listingapi.HTTPClient
}

// bootstrap loads configuration and connects the optional backends.
// The database stays optional unless the schema is loaded from it.
func bootstrap(logCfg *logger.Config) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logCfg == nil {
		logCfg = &cfg.Log
	}

	logg, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &deps{cfg: cfg, logger: logg}

	if !cfg.Schema.IsValidSource() {
		return nil, fmt.Errorf("unsupported schema source %q", cfg.Schema.Source)
	}

	if conn, err := database.Connect(cfg.Database); err != nil {
		if cfg.Schema.Source == schema.SourceDatabase {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		rt.db = conn
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	rt.storage, err = storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	rt.schema = schema.NewStore(rt.schemaLoader(), time.Duration(cfg.Schema.TTLSeconds)*time.Second)

	rt.client, err = listingapi.NewClient(cfg.Manager, cfg.Listings.SteamID, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing service client: %w", err)
	}

	return rt, nil
}

func (rt *deps) schemaLoader() schema.LoadFunc {
	cfg := rt.cfg
	return func(ctx context.Context) (*schema.Catalog, error) {
		switch cfg.Schema.Source {
		case schema.SourceDatabase:
			if rt.db == nil {
				return nil, errors.New("schema source is database but no database is connected")
			}
			return schema.LoadFromDB(ctx, rt.db)
		default:
			return schema.LoadFromStorage(ctx, rt.storage, cfg.Storage.Bucket, cfg.Schema.Object)
		}
	}
}

// engine builds the listing engine around the runtime's client and schema.
func (rt *deps) engine(metrics *reconcile.Metrics) *reconcile.Engine {
	return reconcile.NewEngine(rt.cfg.Listings, rt.client, rt.schema, rt.logger, metrics)
}
