// Command server runs the credit/token ledger HTTP API.
//
// Startup order:
//  1. Load .env (best effort) and environment configuration.
//  2. Configure zerolog (level, optional pretty console output).
//  3. Initialize OpenTelemetry tracing (no-op unless OTEL_ENABLED).
//  4. Open SQLite, migrate the ledger schema, seed pricing if requested.
//  5. Load the pricing table into an immutable catalog.
//  6. Wire the Gin engine, serve, and shut down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	_ "github.com/tbourn/go-credits-backend/docs"
	"github.com/tbourn/go-credits-backend/internal/config"
	"github.com/tbourn/go-credits-backend/internal/domain"
	httpapi "github.com/tbourn/go-credits-backend/internal/http"
	"github.com/tbourn/go-credits-backend/internal/observability"
	"github.com/tbourn/go-credits-backend/internal/pricing"
	"github.com/tbourn/go-credits-backend/internal/repo"
	"github.com/tbourn/go-credits-backend/internal/sysutil"
)

// version is set via -ldflags "-X main.version=..." at build time.
var version = "dev"

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting go-credits-backend")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Fatal().Err(err).Msg("gorm otel plugin failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	if cfg.SeedPricing {
		seeded, err := repo.SeedPricing(ctx, db, defaultPricingRows())
		if err != nil {
			log.Fatal().Err(err).Msg("seed pricing failed")
		}
		if seeded {
			log.Info().Msg("pricing table seeded with default entries")
		}
	}

	catalog, err := loadCatalog(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("load pricing catalog failed")
	}
	ids := make([]string, 0, len(catalog.Models()))
	for _, e := range catalog.Models() {
		ids = append(ids, e.ModelID)
	}
	log.Info().Strs("models", ids).Msg("pricing catalog loaded")

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	httpapi.RegisterRoutes(r, db, catalog, cfg)

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}

// defaultPricingRows maps the built-in catalog entries onto pricing table rows
// for first-boot seeding.
func defaultPricingRows() []domain.Pricing {
	entries := pricing.DefaultEntries()
	rows := make([]domain.Pricing, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.Pricing{
			ModelID:               e.ModelID,
			PricePerMillionTokens: e.PricePerMillionTokens,
			Category:              e.Category,
		})
	}
	return rows
}

// loadCatalog reads the pricing table and builds the immutable in-memory
// catalog every request consults. Prices changed in the DB take effect on the
// next process start.
func loadCatalog(ctx context.Context, db *gorm.DB) (*pricing.Catalog, error) {
	rows, err := repo.ListPricing(ctx, db)
	if err != nil {
		return nil, err
	}
	entries := make([]pricing.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, pricing.Entry{
			ModelID:               row.ModelID,
			PricePerMillionTokens: row.PricePerMillionTokens,
			Category:              row.Category,
		})
	}
	return pricing.NewCatalog(entries)
}
