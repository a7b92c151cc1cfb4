package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"isa-agent/internal/di"
	"isa-agent/internal/infrastructure/env"
	"isa-agent/internal/infrastructure/metrics"
)

func main() {
	cfg := di.ConfigFromEnv(env.NewEnvService())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	container, err := di.NewEvaluatorContainer(cfg, nil, os.Stdout)
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Evaluation started",
		"dataset", cfg.DatasetPath,
		"candidates", cfg.Candidates.Size(),
		"attempt_timeout", cfg.AttemptTimeout,
	)

	err = container.Runner.Run(ctx, cfg.DatasetPath)

	if werr := metrics.WriteTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); werr != nil {
		container.Logger.Warn("Metrics export failed", "path", cfg.MetricsFile, "error", werr)
	}

	if err != nil {
		container.Logger.Error("Evaluation failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		container.Close()
		os.Exit(1)
	}
}
