package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"usermanagement/docs"
	"usermanagement/internal/auth"
	"usermanagement/internal/cache"
	"usermanagement/internal/config"
	"usermanagement/internal/db"
	"usermanagement/internal/handler"
	"usermanagement/internal/logger"
	"usermanagement/internal/repository"
	"usermanagement/internal/router"
	"usermanagement/internal/service"
)

// @title User Management API
// @version 1.0
// @description CRUD API for user records behind bearer-token authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	log := logger.NewLogger("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing without cache")
		}
	}
	defer cacheClient.Close()

	userRepo, gormDB, err := newUserRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store init failed")
	}
	if gormDB != nil {
		defer db.Close(gormDB)
	}

	authority := newAuthority(cfg, auth.NewTokenStore(cacheClient))

	userService := service.NewUserService(userRepo, userCache(cfg, cacheClient))
	authService := service.NewAuthService(authority)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, log, authority, userHandler, authHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("store", cfg.StoreDriver).
			Str("auth", cfg.AuthMode).
			Bool("cache", cacheClient.Enabled()).
			Msg("server starting")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newUserRepository(cfg *config.Config) (repository.UserRepository, *gorm.DB, error) {
	if cfg.StoreDriver != config.StoreMySQL {
		return repository.NewMemoryUserRepository(), nil, nil
	}
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewUserRepository(gormDB), gormDB, nil
}

// userCache returns the cache placed in front of the user store. The memory
// store restarts empty and reuses ids from 1, so entries left by an earlier
// process would resurface as its records; only MySQL is cached.
func userCache(cfg *config.Config, client *cache.Client) *cache.Client {
	if cfg.StoreDriver != config.StoreMySQL {
		return nil
	}
	return client
}

func newAuthority(cfg *config.Config, store auth.TokenStoreInterface) auth.Authority {
	if cfg.AuthMode == config.AuthStatic {
		return auth.NewStaticAuthority(cfg.StaticToken)
	}
	return auth.NewJWTAuthority(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL, store)
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
