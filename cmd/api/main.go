package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	"github.com/BruksfildServices01/escape-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/escape-booking/internal/db"
	"github.com/BruksfildServices01/escape-booking/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/escape-booking/internal/infra/repository"
	"github.com/BruksfildServices01/escape-booking/internal/infra/storage"
	"github.com/BruksfildServices01/escape-booking/internal/lock"
	"github.com/BruksfildServices01/escape-booking/internal/logger"
	"github.com/BruksfildServices01/escape-booking/internal/routes"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
	ucAuth "github.com/BruksfildServices01/escape-booking/internal/usecase/auth"
)

func main() {

	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	if !timezone.IsValid(cfg.Timezone) {
		log.Fatal().Str("timezone", cfg.Timezone).Msg("invalid SITE_TIMEZONE")
	}
	timezone.SetSite(cfg.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg)

	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	// --------------------------------------------------
	// Optional integrations
	// --------------------------------------------------
	deps := routes.Deps{Audit: dispatcher}

	if cfg.RedisURL != "" {
		locker, err := lock.NewFromURL(ctx, cfg.RedisURL, time.Duration(cfg.RoomLockTTL)*time.Second)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		deps.Locker = locker
		log.Info().Msg("room locks through redis")
	}

	if cfg.StorageEnabled() {
		deps.Photos = storage.NewS3PhotoStore(cfg)
		log.Info().Str("bucket", cfg.S3Bucket).Msg("room photos in s3")
	}

	if cfg.PaymentsEnabled() {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure payments")
		}
		deps.Payments = mp
	}

	if cfg.AdminEmail != "" {
		staff := ucAuth.NewCreateStaff(infraRepo.NewUserGormRepository(db), dispatcher)
		if err := staff.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to create admin account")
		}
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
