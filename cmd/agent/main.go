package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"isa-agent/internal/application/port/input"
	"isa-agent/internal/di"
	"isa-agent/internal/infrastructure/env"
	"isa-agent/internal/infrastructure/metrics"
	"isa-agent/internal/infrastructure/userinteraction"
)

const askTimeout = 5 * time.Minute

func main() {
	cfg := di.ConfigFromEnv(env.NewEnvService())
	console := userinteraction.NewConsoleUserInteraction(os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	query := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if query == "" {
		var err error
		query, err = console.AskQuestion(ctx, "Ask a GS1 question:")
		if err != nil {
			log.Fatal(err)
		}
	}
	if query == "" {
		log.Fatal("Empty query")
	}

	// Ingestion may take a while on large chunk files, so it only stops on
	// interrupt.
	container, err := di.NewAgentContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Query received", "query", query, "indexed_chunks", container.Ingest.Successful)

	decision := container.Router.Decide(query)
	var description string
	if t, ok := container.Tools.Get(decision.Tool); ok {
		description = t.Description()
	}
	console.ShowToolStart(ctx, decision.Tool, description, decision.Rule)

	answer, err := askWithTimeout(ctx, container.Agent, query, askTimeout)

	if werr := metrics.WriteTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); werr != nil {
		container.Logger.Warn("Metrics export failed", "path", cfg.MetricsFile, "error", werr)
	}

	if err != nil {
		container.Logger.Error("Query failed", "error", err)
		console.ShowToolResult(ctx, decision.Tool, err.Error(), true)
		container.Close()
		os.Exit(1)
	}

	console.ShowToolResult(ctx, decision.Tool, answer, false)
}

// askWithTimeout bounds only the query itself, not the caller's context.
func askWithTimeout(ctx context.Context, asker input.QueryAsker, query string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return asker.Ask(ctx, query)
}
