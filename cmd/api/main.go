package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"influpromo/internal/config"
	"influpromo/internal/db"
	apihttp "influpromo/internal/http"
	"influpromo/internal/repository"
	"influpromo/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool, logger); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	userRepo := repository.NewPgUserRepository(pool)
	promoRepo := repository.NewPgPromoRepository(pool)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	var verifier service.GoogleVerifier
	if cfg.GoogleClientID != "" {
		verifier = service.NewGoogleIDTokenVerifier(cfg.GoogleClientID)
	} else {
		logger.Warn("google client id not configured, google login disabled")
	}

	authSvc := service.NewAuthService(logger, userRepo, service.NewPasswordHasher(), jwtSvc, verifier)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	promoHandler := apihttp.NewPromoHandler(logger, promoRepo)
	userHandler := apihttp.NewUserHandler(logger, userRepo, promoRepo)
	router := apihttp.NewRouter(logger, jwtSvc, authHandler, promoHandler, userHandler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
