package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/term"

	"gitlab.com/markorv.net/isaharness/internal/adapter/elfsignal"
	"gitlab.com/markorv.net/isaharness/internal/adapter/postgres/runrepository"
	"gitlab.com/markorv.net/isaharness/internal/adapter/ramdump"
	"gitlab.com/markorv.net/isaharness/internal/adapter/redis/progressport"
	"gitlab.com/markorv.net/isaharness/internal/adapter/simulator"
	"gitlab.com/markorv.net/isaharness/internal/catalog"
	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/core/services/harness"
	logger2 "gitlab.com/markorv.net/isaharness/internal/global/logger"
	"gitlab.com/markorv.net/isaharness/internal/schedulerengine"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		jobs      = flag.Int("j", runtime.NumCPU(), "number of test cases run in parallel")
		env       = flag.String("env", "", "load <env>.env before reading the configuration")
		timeout   = flag.Duration("timeout", 0, "per case simulator timeout, 0 waits forever")
		groups    = flag.String("group", "", "comma separated extensions to run, e.g. I,M")
		keepDumps = flag.Bool("keep-dumps", false, "keep the ram dumps after decoding")
	)
	flag.Parse()

	if err := config.LoadEnv(*env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sysCfg := config.NewSystemConfig()
	logger2.Init(sysCfg.LogLevel)
	logger := logger2.Logger
	defer logger.Sync()

	cfg := sysCfg.HarnessConfig
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "j":
			cfg.Jobs = *jobs
		case "timeout":
			cfg.CaseTimeout = *timeout
		case "group":
			cfg.Groups = *groups
		case "keep-dumps":
			cfg.KeepDumps = *keepDumps
		}
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	suite := catalog.Default()
	selected, err := suite.ParseGroups(cfg.Groups)
	if err != nil {
		logger.Error("Invalid test group filter", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	suite = suite.Filter(selected...)
	if suite.Len() == 0 {
		err := fmt.Errorf("%w: no test cases selected by %q", errs.ErrConfiguration, cfg.Groups)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// SECONDARY PORTS
	var runRepo secondary.RunRepository
	if sysCfg.PostgresConfig.Enabled() {
		db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
		if err != nil {
			logger.Error("Run persistence disabled", "error", err)
		} else {
			defer db.Close()
			repo := runrepository.NewRunRepository(db, logger, "public")
			if err := repo.Migrate(ctx); err != nil {
				logger.Error("Run persistence disabled", "error", err)
			} else {
				runRepo = repo
			}
		}
	}

	var progressRepo secondary.ProgressRepository
	if sysCfg.RedisConfig.Enabled() {
		redisClient, err := setupRedis(ctx, sysCfg.RedisConfig)
		if err != nil {
			logger.Error("Progress publishing disabled", "error", err)
		} else {
			defer redisClient.Close()
			progressRepo = progressport.NewProgressRepository(redisClient, logger)
		}
	}

	//services
	harnessSvc := harness.NewHarnessService(
		cfg,
		elfsignal.NewLocator(),
		simulator.NewInvokerFromConfig(cfg, logger),
		ramdump.NewReader(),
		logger,
	)
	engine := schedulerengine.NewSchedulerEngine(harnessSvc, logger)
	color := term.IsTerminal(int(os.Stdout.Fd()))
	batchSvc := harness.NewBatchService(engine, runRepo, progressRepo, os.Stdout, color, logger)

	logger.Info("Running conformance suite", "cases", suite.Len(), "groups", suite.Groups(), "jobs", cfg.Jobs)
	started := time.Now()
	result, err := batchSvc.Execute(ctx, suite.Cases(), cfg.Jobs)
	if err != nil {
		logger.Error("Run aborted", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("Run complete", "runId", result.ID, "status", result.Status, "elapsed", time.Since(started).Round(time.Millisecond))
	return 0
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
