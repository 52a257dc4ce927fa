package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/pathflood/pkg/bus/local"
	"github.com/vertex-lab/pathflood/pkg/bus/redisbus"
	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/utils/logger"
	"github.com/vertex-lab/pathflood/pkg/utils/redisutils"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadEnvFile() loads the variables of the .env file into the environment, if the file exists.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// handleSignals listens for OS signals and triggers context cancellation.
func handleSignals(ctx context.Context, cancel context.CancelFunc, log *logger.Aggregate) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	select {
	case <-ctx.Done():
	case <-signalChan:
		log.Info("signal received, shutting down")
		cancel()
	}
}

// setupBus() returns the bus chosen by config, and a function that releases it.
func setupBus(ctx context.Context, config *Config) (models.Bus, func(), error) {
	switch config.Bus {
	case BusLocal:
		bus := local.NewBus(config.MailboxCapacity)
		return bus, func() { bus.Close() }, nil

	case BusRedis:
		client := redisutils.SetupClient(config.Redis.Addr, config.Redis.DB)
		if err := redisutils.Ping(ctx, client, 2*time.Second); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis at %s is not reachable: %w", config.Redis.Addr, err)
		}

		bus, err := redisbus.NewBus(client, config.Log, config.Redis)
		if err != nil {
			client.Close()
			return nil, nil, err
		}

		release := func() {
			bus.Close()
			closeClient(client, config.Log)
		}
		return bus, release, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBus, config.Bus)
	}
}

func closeClient(client *redis.Client, log *logger.Aggregate) {
	if err := client.Close(); err != nil {
		log.Warn("failed to close the redis client: %v", err)
	}
}

// serveMetrics() exposes the Prometheus metrics on addr until the returned function is called.
// An empty addr starts nothing.
func serveMetrics(addr string, log *logger.Aggregate) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info("serving metrics on %s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown: %v", err)
		}
	}
}
