package main

import (
	"context"
	"log"

	"github.com/utkarshshahi0/crud-assesment/config"
	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"
	"github.com/utkarshshahi0/crud-assesment/internal/handler"
	"github.com/utkarshshahi0/crud-assesment/internal/redis"
	"github.com/utkarshshahi0/crud-assesment/internal/repository"
	"github.com/utkarshshahi0/crud-assesment/internal/server"
	"github.com/utkarshshahi0/crud-assesment/internal/services"
	"github.com/utkarshshahi0/crud-assesment/internal/storage"
	"github.com/utkarshshahi0/crud-assesment/pkg/database"
	"github.com/utkarshshahi0/crud-assesment/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)

	if err := database.ApplyRawMigrations("migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}

	if err := database.DB.AutoMigrate(&application.Application{}); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	store, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	authService, err := services.NewAuthService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	repo := repository.NewApplicationRepository(database.DB)
	appService := services.NewApplicationService(repo)
	uploadService := services.NewUploadService(store)

	var limiter *redis.RateLimiter
	if cfg.RedisHost != "" {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err := redis.Ping(context.Background(), client); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		limiter = redis.NewRateLimiter(client, redis.DefaultRateLimitConfig())
	}

	handlers := &server.Handlers{
		Applications: handler.NewApplicationHandler(appService, uploadService, l),
		Auth:         handler.NewAuthHandler(authService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Store(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			KeyPrefix:  "uploads",
		})
	}
	return storage.NewLocalStore(cfg.UploadDir)
}
