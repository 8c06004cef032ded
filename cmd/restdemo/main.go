// Command restdemo serves the sample routes of the result envelope: plain
// results, HTTP results with status codes and headers, problem details and a
// cascade that calls back into the service through the REST client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/config"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/server"
	"github.com/kbukum/restkit/version"
)

const serviceName = "restdemo"

func main() {
	var cfg Config
	if err := config.Load(serviceName, &cfg, config.WithEnvPrefix("RESTDEMO")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging, cfg.Name)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg, log); err != nil {
		log.Fatal("restdemo stopped", logger.ErrorFields("run", err))
	}
}

func run(ctx context.Context, cfg *Config, log *logger.Logger) error {
	shutdownTelemetry, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	registry := component.NewRegistry()
	upstream := httpclient.NewComponent(cfg.Upstream, httpclient.WithLogger(logger.WithComponent("upstream")))

	srv := server.New(cfg.Server, logger.GetGlobalLogger())
	srv.ApplyDefaults(cfg.Name, registry.HealthAll)
	registerRoutes(srv.Engine(), newAPI(upstream.Client, cfg.Secure))

	if err := registry.Register(upstream); err != nil {
		return err
	}
	if err := registry.Register(server.NewComponent(srv)); err != nil {
		return err
	}

	log.Info("starting", logger.Fields("version", version.Get().Short(), "environment", cfg.Environment))
	if err := registry.StartAll(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return registry.StopAll(stopCtx)
}
