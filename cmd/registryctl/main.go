/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command registryctl creates, transfers and inspects registry entities on a
// configured backend.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/suparena/entityregistry"
	"github.com/suparena/entityregistry/config"
	"github.com/suparena/entityregistry/logging"
	"github.com/suparena/entityregistry/metrics"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "YAML config file (overrides REGISTRY_CONFIG_FILE)")
	envFileFlag = flag.String("env-file", ".env", "dotenv file loaded before reading the environment")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: registryctl [flags] <command> [args]\n\n%s\nFlags:\n", usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag || *vFlag {
		info := entityregistry.GetVersionInfo()
		fmt.Printf("EntityRegistry registryctl version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "registryctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(*configFlag, *envFileFlag)
	if err != nil {
		return err
	}

	log, flush, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer flush()

	promRegistry := prometheus.NewRegistry()
	m := metrics.New(promRegistry)
	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(cfg.MetricsAddr, promRegistry, log)
		defer stopMetrics()
	}

	reg, err := entityregistry.OpenFromConfig(ctx, cfg, nil,
		entityregistry.WithLogger(log),
		entityregistry.WithMetrics(m),
		entityregistry.WithNotifier(entityregistry.LogNotifier{Log: log.WithName("events")}),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := reg.Close(); err != nil {
			log.Error(err, "close registry")
		}
	}()

	log.V(logging.LevelDebug).Info("registry opened", "backend", cfg.Backend, "policy", cfg.TransferPolicy)
	return execute(ctx, reg, args, stdin, stdout)
}

// serveMetrics exposes /metrics until the returned function is called.
func serveMetrics(addr string, gatherer prometheus.Gatherer, log logr.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error(err, "metrics server stopped", "addr", addr)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
