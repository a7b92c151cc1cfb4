package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"isa-agent/internal/application/port/input"
	"isa-agent/internal/application/port/output"
	"isa-agent/internal/usecase/router"
)

var _ input.QueryAsker = (*Agent)(nil)

var ErrToolNotRegistered = errors.New("routed tool is not registered")

var routeDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "isa",
	Subsystem: "router",
	Name:      "decisions_total",
	Help:      "Queries routed, by selected tool and matching rule",
}, []string{"tool", "rule"})

type Router interface {
	Decide(query string) router.Decision
}

// Agent routes a query to one tool and returns that tool's answer verbatim.
// It holds no state besides the tool mapping handed to New.
type Agent struct {
	router Router
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func New(r Router, tools output.ToolRegistry, logger output.LoggerPort) *Agent {
	return &Agent{
		router: r,
		tools:  tools,
		logger: logger,
	}
}

// Ask returns exactly what the selected tool returns. Tool errors are not
// wrapped.
func (a *Agent) Ask(ctx context.Context, query string) (string, error) {
	decision := a.router.Decide(query)
	routeDecisions.WithLabelValues(string(decision.Tool), decision.Rule).Inc()
	a.logger.Info("Query routed", "tool", decision.Tool, "rule", decision.Rule)

	tool, ok := a.tools.Get(decision.Tool)
	if !ok {
		a.logger.Error("Routed tool missing from registry", "tool", decision.Tool)
		return "", fmt.Errorf("%w: %s", ErrToolNotRegistered, decision.Tool)
	}

	start := time.Now()
	result, err := tool.Run(ctx, query)
	if err != nil {
		a.logger.Error("Tool execution failed", "tool", decision.Tool, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return result, err
	}

	a.logger.Debug("Tool completed", "tool", decision.Tool, "resultLen", len(result), "duration_ms", time.Since(start).Milliseconds())
	return result, nil
}
