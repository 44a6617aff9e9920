package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listing-manager/core/logger"
	"listing-manager/core/loader"
	"listing-manager/core/middleware/auth"
	"listing-manager/core/middleware/rayid"
	"listing-manager/core/reconcile"
	"listing-manager/feature/listings"
	"listing-manager/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "listing-manager/docs/swagger"
)

// @title Listing Manager API
// @version 1.0
// @description API for managing the desired listings of a trading account.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 30 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the listing manager server",
	Long:  `Initializes the listing engine against the listing service and starts the HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and backends
		rt, err := bootstrap(nil)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger.With(zap.String("steamid", rt.cfg.Listings.SteamID))
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := cmd.Context()

		// 2. Item schema
		if catalog, err := rt.schema.Ensure(ctx); err != nil {
			logg.Error("Initial schema load failed, listings will be dropped until it is reloaded", zap.Error(err))
		} else {
			logg.Info("Item schema loaded", zap.String("source", rt.cfg.Schema.Source), zap.Int("items", catalog.Len()))
		}

		// 3. Metrics
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics, err := reconcile.NewMetrics(registry)
		if err != nil {
			logg.Fatal("Failed to register metrics", zap.Error(err))
		}

		// 4. Listing engine
		engine := rt.engine(metrics)
		if err := engine.Init(ctx); err != nil {
			logg.Fatal("Failed to initialize listing engine", zap.Error(err))
		}

		var schemaRefresh *reconcile.Trigger
		if rt.cfg.Schema.TTLSeconds > 0 {
			schemaRefresh = reconcile.NewTrigger("schema_refresh",
				time.Duration(rt.cfg.Schema.TTLSeconds)*time.Second,
				func(ctx context.Context) error {
					_, err := rt.schema.Ensure(ctx)
					return err
				}, logg, metrics)
			_ = schemaRefresh.Start()
		}

		// 5. HTTP server
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Skip:   []string{"/swagger", "/metrics"},
		}))

		mgr := loader.NewManager()
		mgr.Register(listings.NewFeature(engine, rt.schema, logg))
		mgr.Register(status.NewFeature(engine, rt.client, rt.schema, rt.client.SteamID(), logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		_ = app.ShutdownWithTimeout(shutdownTimeout)
		if schemaRefresh != nil {
			_ = schemaRefresh.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := engine.Shutdown(shutdownCtx); err != nil {
			logg.Error("Listing engine shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
