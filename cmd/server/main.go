package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/database"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/logger"
	"utsavdarshan/internal/middleware"
	"utsavdarshan/internal/router"
	"utsavdarshan/internal/seed"
	"utsavdarshan/internal/service"
	"utsavdarshan/pkg/cloudinary"
	"utsavdarshan/pkg/geocode"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Log, cfg.IsProduction())

	ctx := context.Background()
	store, err := database.OpenStore(ctx, &cfg.Store)
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.Store.Driver).Fatal("store")
	}
	if cfg.Store.Driver == domain.StoreMemory && cfg.Store.SeedDemo {
		dir := service.NewDirectoryService(cfg.Directory, store, store, store)
		report, err := seed.Load(ctx, service.NewImporter(dir))
		if err != nil {
			logrus.WithError(err).Fatal("seed demo pandals")
		}
		logrus.WithField("inserted", report.Inserted).Info("demo pandals loaded")
	}

	cloud, err := cloudinary.NewClient(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		logrus.WithError(err).Warn("cloudinary disabled: pandal image upload unavailable")
	}

	var geo *geocode.Client
	if cfg.Geocoder.APIKey != "" {
		geo = geocode.NewClient(geocode.Config{
			APIKey:   cfg.Geocoder.APIKey,
			BaseURL:  cfg.Geocoder.BaseURL,
			Region:   cfg.Geocoder.Region,
			Timeout:  cfg.Geocoder.Timeout,
			CacheTTL: cfg.Geocoder.CacheTTL,
		}, nil)
	} else {
		logrus.Warn("geocoder disabled: set GOOGLE_MAPS_API_KEY to resolve addresses")
	}

	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	engine := router.Setup(cfg, store, limiter, cloud, geo)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown")
	}
	limiter.Stop()
	if err := store.Close(shutdownCtx); err != nil {
		logrus.WithError(err).Error("store close")
	}
	logrus.Info("server stopped")
}
