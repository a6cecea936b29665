package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffdesk/employee-system/internal/api"
	"github.com/staffdesk/employee-system/internal/core/ports"
	"github.com/staffdesk/employee-system/internal/core/service"
	"github.com/staffdesk/employee-system/internal/infrastructure/config"
	mongodb "github.com/staffdesk/employee-system/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdesk/employee-system/internal/infrastructure/db/redis"
	"github.com/staffdesk/employee-system/internal/storage/jsonfile"
	"github.com/staffdesk/employee-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	ctx := context.Background()

	var (
		userRepo     ports.UserRepository
		employeeRepo ports.EmployeeRepository
		deps         api.Deps
	)

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(ctx) }()

		users := mongodb.NewUserRepository(db)
		employees := mongodb.NewEmployeeRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("user indexes failed")
		}
		if err := employees.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("employee indexes failed")
		}
		if err := users.EnsureSeed(ctx); err != nil {
			log.Fatal().Err(err).Msg("user seed failed")
		}

		userRepo, employeeRepo = users, employees
		deps.Mongo = db

	default:
		users, err := jsonfile.NewUserRepository(cfg.DataDir, log)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("users store failed")
		}
		employees, err := jsonfile.NewEmployeeRepository(cfg.DataDir, log)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("employees store failed")
		}
		userRepo, employeeRepo = users, employees
	}

	var limiter service.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		limiter = redisdb.NewLoginLimiter(rdb, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
		deps.Redis = rdb
	}

	deps.AuthService = service.NewAuthService(userRepo, limiter, cfg.JWTSecret, cfg.JWTTTL, log)
	deps.EmployeeService = service.NewEmployeeService(employeeRepo, log)
	deps.JWTSecret = cfg.JWTSecret
	deps.CORSOrigin = cfg.CORSOrigin
	deps.Production = cfg.Production()
	deps.Logger = log

	e := api.NewRouter(deps)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
