package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaswdr/faker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fleet_desk/internal/config"
	"fleet_desk/internal/controllers"
	"fleet_desk/internal/demo"
	"fleet_desk/internal/events"
	"fleet_desk/internal/logger"
	"fleet_desk/internal/metrics"
	"fleet_desk/internal/middleware"
	"fleet_desk/internal/models"
	"fleet_desk/internal/repository"
	"fleet_desk/internal/routes"
	"fleet_desk/internal/storage"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile, cfg.LogLevel)
	middleware.SetSecret(cfg.JWTSecret)

	ctx := context.Background()
	uploads, uploadDir := newUploader(ctx, cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis unreachable, login throttling fails open")
		}
		cancel()
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	hub := events.NewHub()
	defer hub.Close()

	ctl := &controllers.Controller{
		Uploads:  uploads,
		Events:   hub,
		Hub:      hub,
		Metrics:  metrics.NewMetrics("fleet_desk", reg),
		TokenTTL: cfg.TokenTTL,
	}
	closeStore := wireStores(ctl, cfg)
	defer closeStore()

	// Setup Gin router
	r := routes.SetupRouter(ctl, routes.Options{
		UploadDir:     uploadDir,
		Gatherer:      reg,
		Redis:         rdb,
		LoginAttempts: cfg.LoginAttempts,
		LoginWindow:   cfg.LoginWindow,
		RequestLog:    true,
	})

	// Wrap with CORS
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: middleware.EnableCORS(r, cfg.AllowedOrigins),
	}

	go func() {
		log.Printf("🚀 Server running at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	log.Println("✅ Server stopped gracefully")
}

// wireStores attaches Postgres repositories, or in-memory ones when
// STORE_BACKEND=memory. The memory backend starts with an admin account
// taken from ADMIN_USER / ADMIN_PASSWORD and DEMO_RECORDS generated records.
func wireStores(ctl *controllers.Controller, cfg config.AppConfig) func() {
	if cfg.StoreBackend == "memory" {
		logrus.Warn("Using in-memory store; data is lost on restart")
		set := demo.NewGenerator(faker.New(), time.Now()).Generate(cfg.DemoRecords)
		ctl.Users = repository.NewMemoryUsers(bootstrapAdmin()...)
		ctl.Technicians = repository.NewMemoryTechnicians(set.Technicians...)
		ctl.Vehicles = repository.NewMemoryVehicles(set.Vehicles...)
		ctl.Bookings = repository.NewMemoryBookings(set.Bookings...)
		return func() {}
	}

	// Connect to the database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctl.Users = repository.NewUserRepository(db)
	ctl.Technicians = repository.NewTechnicianRepository(db)
	ctl.Vehicles = repository.NewVehicleRepository(db)
	ctl.Bookings = repository.NewPackageBookingRepository(db)
	return func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func bootstrapAdmin() []models.User {
	name, password := os.Getenv("ADMIN_USER"), os.Getenv("ADMIN_PASSWORD")
	if name == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	return []models.User{{UserName: name, Password: string(hash), Role: models.RoleAdmin}}
}

// newUploader picks S3 when a bucket is configured and the local upload
// directory otherwise. The returned dir is empty for S3.
func newUploader(ctx context.Context, cfg config.AppConfig) (storage.Uploader, string) {
	if cfg.S3Bucket != "" {
		u, err := storage.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Fatalf("s3 uploads: %v", err)
		}
		return u, ""
	}
	u, err := storage.NewLocalUploader(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("local uploads: %v", err)
	}
	return u, cfg.UploadDir
}
