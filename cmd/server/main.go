package main

import (
	"context"
	"direct-chat/auth"
	"direct-chat/contract"
	"direct-chat/decryption"
	"direct-chat/encryption"
	"direct-chat/infrastructure/grpc/api"
	"direct-chat/infrastructure/grpc/server"
	"direct-chat/infrastructure/websocket"
	"direct-chat/internal"
	"direct-chat/relay"
	"direct-chat/repositories"
	"direct-chat/runtime"
	"direct-chat/runtime/workers"
	"direct-chat/services"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run owns every resource so that deferred cleanups happen before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	cipher, err := encryption.NewMessageCipher(config.MessagePassphrase)
	if err != nil {
		return exitConfig, err
	}
	tokens, err := auth.NewTokenManager(config.JWTSecret, config.JWTIssuer, config.AuthTokenDuration)
	if err != nil {
		return exitConfig, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, repositories.InspectMapper)
	}

	// 3. Live delivery, local or relayed through Redis
	registry := runtime.NewRegistry()
	localNotifier := runtime.NewNotifier(logger, registry, config.SinkTimeout)
	var notifier contract.INotifier = localNotifier

	sup := workers.NewSupervisor(logger)
	sup.Add(workers.NewHeartbeatWorker(logger, registry, config.HeartbeatInterval))

	if config.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		defer func() { _ = redisClient.Close() }()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return exitRuntime, fmt.Errorf("failed to connect to redis: %w", err)
		}
		notifier = relay.NewRedisNotifier(logger, redisClient, config.RedisChannel, localNotifier)
		sup.Add(relay.NewSubscriber(logger, redisClient, config.RedisChannel, localNotifier))
		logger.Info("Notifications relayed through Redis", "addr", config.RedisAddr, "channel", config.RedisChannel)
	}

	service := services.NewDirectChatService(
		logger,
		repositories.NewUserRepository(db),
		repositories.NewDirectChatRepository(db, logger),
		cipher,
		decryption.NewDispatcher(logger, cipher).WithConcurrency(config.DecryptConcurrency),
		notifier,
	)

	errChan := make(chan error, 2)

	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		sup.Run(ctx)
	}()

	// 4. gRPC Server Setup
	listener, err := net.Listen("tcp", config.GRPCAddress())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.GRPCAddress(), err)
	}
	interceptor := auth.NewInterceptor(tokens)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(logger),
			interceptor.Unary(),
		),
		grpc.ChainStreamInterceptor(interceptor.Stream()),
	)
	api.RegisterDirectChatServiceServer(s, server.NewDirectChatServer(logger, service, registry, config.ConnectionBufferSize))

	go func() {
		logger.Info("Starting gRPC server", "address", config.GRPCAddress(), "at", time.Now().UTC())
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 5. WebSocket gateway
	gateway := websocket.NewGateway(logger, tokens, registry, storeHealth(db), config.ConnectionBufferSize)
	httpServer := &http.Server{
		Addr:              config.HTTPAddress(),
		Handler:           gateway.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting WebSocket gateway", "address", config.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 7. Graceful shutdown: streams end first, then workers, then the store
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	// Connect streams only end with their clients: force them out after the timeout.
	grpcStopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(grpcStopped)
	}()
	select {
	case <-grpcStopped:
	case <-shutdownCtx.Done():
		s.Stop()
	}
	sup.Stop()
	<-supervisorDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

func storeHealth(db *badger.DB) websocket.HealthCheck {
	return func(context.Context) error {
		if db.IsClosed() {
			return errors.New("badger is closed")
		}
		return db.View(func(*badger.Txn) error { return nil })
	}
}
