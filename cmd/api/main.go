package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/modemobile/todo-rewards/internal/adapter"
	"github.com/modemobile/todo-rewards/internal/api/server"
	"github.com/modemobile/todo-rewards/internal/api/shared/executor"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/block"
	"github.com/modemobile/todo-rewards/internal/config"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/providers/ethereum"
	"github.com/modemobile/todo-rewards/internal/ratelimit"
	"github.com/modemobile/todo-rewards/internal/rewards"
	"github.com/modemobile/todo-rewards/internal/store"
	"github.com/modemobile/todo-rewards/internal/todo"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Service:         "api-server",
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting todo rewards API", zap.String("chain_id", cfg.Ethereum.ChainID.String()))

	contracts, err := cfg.Ethereum.Contracts()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to resolve reward contracts", zap.Error(err))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}

	blockProvider := block.NewBlockProvider(
		ethereum.NewEthereumBlockFetcher(adapterEthClient, clockAdapter),
		block.Config{
			TTL:         cfg.Ethereum.BlockHeadTTL,
			StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
		},
		clockAdapter,
	)
	ethereumClient := ethereum.NewClient(ethereum.Config{
		ChainID:        cfg.Ethereum.ChainID,
		LogRangeSize:   cfg.Ethereum.LogRangeSize,
		LogConcurrency: cfg.Ethereum.LogConcurrency,
		MaxRetries:     cfg.Ethereum.MaxRetries,
		RetryInterval:  cfg.Ethereum.RetryInterval,
	}, adapterEthClient, blockProvider)
	defer ethereumClient.Close()

	// Initialize services
	authService, err := auth.NewService(auth.Config{
		Domain:     cfg.Auth.Domain,
		JWTSecret:  cfg.Auth.JWTSecret,
		SessionTTL: cfg.Auth.SessionTTL,
		NonceTTL:   cfg.Auth.NonceTTL,
		MaxNonces:  cfg.Auth.MaxNonces,
	}, dataStore, clockAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create auth service", zap.Error(err))
	}

	todoService := todo.NewService(todo.Config{
		ListLimit: cfg.Todo.ListLimit,
		CacheTTL:  cfg.Todo.CacheTTL,
		CacheSize: cfg.Todo.CacheSize,
	}, dataStore, clockAdapter)

	var ownership rewards.TokenOwnership
	switch cfg.Ethereum.OwnershipSource {
	case config.OwnershipSourceStore:
		ownership = rewards.NewStoreOwnership(dataStore, cfg.Ethereum.ChainID, contracts.NFT)
	default:
		ownership = rewards.NewChainOwnership(ethereumClient, contracts.NFT, cfg.Ethereum.StartBlock)
	}
	logger.InfoCtx(ctx, "Resolving NFT ownership",
		zap.String("source", string(cfg.Ethereum.OwnershipSource)),
		zap.String("contract", contracts.NFT.String()))

	limiter, err := ratelimit.NewLimiter(ratelimit.Config{
		Window:      cfg.RateLimit.Window,
		MaxRequests: cfg.RateLimit.MaxRequests,
		MaxClients:  cfg.RateLimit.MaxClients,
	}, clockAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Executor: executor.Config{
			ChainID:   cfg.Ethereum.ChainID,
			Contracts: contracts,
			Domain:    cfg.Auth.Domain,
			Statement: cfg.Auth.Statement,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, server.Dependencies{
		Auth:    authService,
		Todos:   todoService,
		Rewards: rewards.NewService(todoService, ownership),
		Chain:   ethereumClient,
		Limiter: limiter,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
