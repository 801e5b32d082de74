package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/markorv.net/isaharness/internal/adapter/crypto"
	"gitlab.com/markorv.net/isaharness/internal/adapter/postgres/runrepository"
	"gitlab.com/markorv.net/isaharness/internal/adapter/redis/progressport"
	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	auth2 "gitlab.com/markorv.net/isaharness/internal/core/services/auth"
	"gitlab.com/markorv.net/isaharness/internal/core/services/results"
	logger2 "gitlab.com/markorv.net/isaharness/internal/global/logger"
	http2 "gitlab.com/markorv.net/isaharness/internal/http"
)

func main() {
	env := flag.String("env", "", "load <env>.env before reading the configuration")
	flag.Parse()
	if err := config.LoadEnv(*env); err != nil {
		log.Fatal(err)
	}

	sysCfg := config.NewSystemConfig()
	logger2.Init(sysCfg.LogLevel)
	logger := logger2.Logger
	defer logger.Sync()
	logger2.Info("Starting results service")

	if !sysCfg.PostgresConfig.Enabled() {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if sysCfg.JwtConfig.Secret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.ConnectContext(ctx, "postgres", sysCfg.PostgresConfig.Url)
	if err != nil {
		logger.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// SECONDARY PORTS
	runRepo := runrepository.NewRunRepository(db, logger, "public")
	if err := runRepo.Migrate(ctx); err != nil {
		os.Exit(1)
	}

	var progressRepo secondary.ProgressRepository
	if sysCfg.RedisConfig.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     sysCfg.RedisConfig.Url,
			Password: sysCfg.RedisConfig.Password,
			DB:       sysCfg.RedisConfig.DB,
		})
		defer redisClient.Close()
		progressRepo = progressport.NewProgressRepository(redisClient, logger)
	}

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	resultSvc := results.NewResultService(runRepo, progressRepo, logger)
	localAuth := auth2.NewLocalAuthService(sysCfg.AuthConfig, jwtProvider, logger)
	serviceProvider := http2.NewServiceProvider(resultSvc, localAuth, jwtProvider)

	//server
	httpServer := http2.NewServer(sysCfg.HTTPConfig, "resultsd", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	errc := make(chan error, 1)
	httpServer.Start(errc)

	select {
	case <-ctx.Done():
	case err := <-errc:
		logger.Error("Server stopped", "error", err)
	}
	logger.Info("Shutting down server...")

	if err := httpServer.Stop(context.Background()); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		fmt.Fprintln(os.Stderr, err)
	}
	logger.Info("successfully shutdown server")
}
