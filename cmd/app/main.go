package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"earnhub_backend/internal/api"
	"earnhub_backend/internal/middleware"
	"earnhub_backend/internal/repository"
	"earnhub_backend/internal/service"
	"earnhub_backend/pkg/auth"
	"earnhub_backend/pkg/logger"
	"earnhub_backend/pkg/mailer"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	withdrawRateLimit  = 5
	withdrawRateWindow = time.Hour
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	identityAuth := auth.NewIdentityAuth(cfg.IdentityAuth.Secret, cfg.IdentityAuth.DebugMode)
	notifier := mailer.NewMailgun(cfg.Mailer.Domain, cfg.Mailer.APIKey, cfg.Mailer.Sender, cfg.Mailer.OperatorEmail)

	allocator := service.NewHandleAllocator(repo)
	profileService := service.NewProfileService(repo, repo, allocator)
	referralService := service.NewReferralService(repo, cfg.Referral.BaseURL)
	withdrawService := service.NewWithdrawService(repo, notifier)
	taskService := service.NewTaskService(repo, repo)

	authz := middleware.NewAuthorization(cfg.Admin.Subjects)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewProfileRoutes(a, profileService, identityAuth)
	api.NewUserRoutes(a, profileService, identityAuth)
	api.NewReferralRoutes(a, referralService, identityAuth)
	api.NewWithdrawRoutes(a, withdrawService, identityAuth,
		middleware.RateLimit(rdb, withdrawRateLimit, withdrawRateWindow))
	api.NewAdminRoutes(a, taskService, identityAuth, authz)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
