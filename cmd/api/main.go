package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sociopedia/internal/config"
	"sociopedia/internal/db"
	apihttp "sociopedia/internal/http"
	"sociopedia/internal/repository"
	"sociopedia/internal/service"
	"sociopedia/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("load config", zap.Error(err))
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	var loginLimiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, login rate limiting disabled", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, cfg.LoginRateWindow, cfg.LoginRateMax)
		}
		cancel()
	}

	routerCfg := apihttp.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:       cfg.MaxBodyBytes(),
		ClientBuildDir:     cfg.ClientBuildDir,
	}

	var images storage.ImageStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3ImageStore(ctx, storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			logger.Fatal("s3 image store", zap.Error(err))
		}
		images = s3Store
	} else {
		localStore, err := storage.NewLocalImageStore(cfg.AssetsDir)
		if err != nil {
			logger.Fatal("local image store", zap.Error(err))
		}
		images = localStore
		routerCfg.AssetsDir = localStore.Dir()
	}

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)

	userRepo := repository.NewPgUserRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)

	authSvc := service.NewAuthService(logger, userRepo, hasher, tokenSvc, loginLimiter)
	userSvc := service.NewUserService(logger, userRepo)
	postSvc := service.NewPostService(logger, userRepo, postRepo)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, images, apihttp.CookieConfig{
		MaxAge: tokenSvc.TTL(),
		Secure: cfg.CookieSecure,
	})
	userHandler := apihttp.NewUserHandler(logger, userSvc)
	postHandler := apihttp.NewPostHandler(logger, postSvc, images)
	router := apihttp.NewRouter(logger, routerCfg, pool, tokenSvc, authHandler, userHandler, postHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLogger usa el logger de desarrollo para debug y el de producción con el
// nivel indicado para el resto. Un nivel desconocido cae en info.
func newLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}

	zapCfg := zap.NewProductionConfig()
	if atomic, err := zap.ParseAtomicLevel(level); err == nil {
		zapCfg.Level = atomic
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
