package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"isa-agent/internal/application/port/input"
	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
	"isa-agent/internal/infrastructure/prompts"
)

var _ input.DetailedEvaluator = (*Evaluator)(nil)

// ExhaustedMessage is returned when no candidate produced a judgment.
const ExhaustedMessage = "Error: Could not access Gemini model with any tried project ID, location, or model. Please ensure Vertex AI Generative Models API is enabled and service account has permissions for the relevant projects."

const DefaultAttemptTimeout = 60 * time.Second

var (
	judgeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isa",
		Subsystem: "judge",
		Name:      "attempts_total",
		Help:      "Judge candidate attempts by outcome and the stage they ended in",
	}, []string{"outcome", "stage"})

	judgeEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isa",
		Subsystem: "judge",
		Name:      "evaluations_total",
		Help:      "Evaluations by result (judged, exhausted, cancelled)",
	}, []string{"result"})
)

type Config struct {
	Candidates     entity.CandidateSet
	AttemptTimeout time.Duration
	PromptTemplate string
}

// Evaluator asks a judging backend for a similarity score, trying candidate
// (project, location, model) triples in order until one answers.
type Evaluator struct {
	backend        output.JudgeBackend
	logger         output.LoggerPort
	candidates     entity.CandidateSet
	attemptTimeout time.Duration
	promptTemplate string
}

func New(backend output.JudgeBackend, logger output.LoggerPort, cfg Config) (*Evaluator, error) {
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = DefaultAttemptTimeout
	}
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = prompts.JudgePrompt
	}
	if _, err := prompts.GenerateJudgePrompt(cfg.PromptTemplate, "", ""); err != nil {
		return nil, fmt.Errorf("invalid judge prompt template: %w", err)
	}

	return &Evaluator{
		backend:        backend,
		logger:         logger,
		candidates:     cfg.Candidates,
		attemptTimeout: cfg.AttemptTimeout,
		promptTemplate: cfg.PromptTemplate,
	}, nil
}

// Evaluate returns the judgment text, or ExhaustedMessage when every
// candidate failed.
func (e *Evaluator) Evaluate(ctx context.Context, actual, expected string) string {
	return e.Judge(ctx, actual, expected).Judgment
}

func (e *Evaluator) Judge(ctx context.Context, actual, expected string) *entity.EvaluationReport {
	report := &entity.EvaluationReport{}

	for _, c := range e.candidates.Enumerate() {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		log := e.logger.WithFields(map[string]any{
			"model":    c.Model,
			"project":  c.Project,
			"location": c.Location,
		})

		start := time.Now()
		text, stage, err := e.attempt(ctx, c, actual, expected)
		attempt := entity.Attempt{
			Candidate: c,
			Stage:     stage,
			Duration:  time.Since(start),
		}

		if err == nil {
			attempt.Outcome = entity.OutcomeSuccess
			report.Attempts = append(report.Attempts, attempt)
			judgeAttempts.WithLabelValues(string(attempt.Outcome), string(stage)).Inc()
			judgeEvaluations.WithLabelValues("judged").Inc()

			winner := c
			report.Winner = &winner
			report.Success = true
			report.Judgment = text

			log.Info("Judge candidate succeeded",
				"attempts", len(report.Attempts),
				"duration_ms", attempt.Duration.Milliseconds(),
			)
			return report
		}

		attempt.Outcome = entity.ClassifyFailure(err)
		attempt.Err = err
		report.Attempts = append(report.Attempts, attempt)
		judgeAttempts.WithLabelValues(string(attempt.Outcome), string(stage)).Inc()

		log.Warn("Judge candidate failed",
			"stage", stage,
			"outcome", attempt.Outcome,
			"error", err,
		)
	}

	report.Judgment = ExhaustedMessage
	if report.Cancelled {
		judgeEvaluations.WithLabelValues("cancelled").Inc()
	} else {
		judgeEvaluations.WithLabelValues("exhausted").Inc()
	}

	e.logger.Error("No judge candidate succeeded",
		"attempts", len(report.Attempts),
		"candidates", e.candidates.Size(),
		"cancelled", report.Cancelled,
	)
	return report
}

// attempt runs one candidate under its own timeout and reports the stage
// reached.
func (e *Evaluator) attempt(ctx context.Context, c entity.Candidate, actual, expected string) (string, entity.AttemptStage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	session, err := e.backend.Open(attemptCtx, c.Project, c.Location)
	if err != nil {
		return "", entity.StageSession, err
	}

	model, err := session.Model(attemptCtx, c.Model)
	if err != nil {
		return "", entity.StageModel, err
	}

	prompt, err := prompts.GenerateJudgePrompt(e.promptTemplate, expected, actual)
	if err != nil {
		return "", entity.StagePrompt, entity.Permanent("render prompt", err)
	}

	text, err := model.Generate(attemptCtx, prompt)
	if err != nil {
		return "", entity.StageGenerate, err
	}
	return text, entity.StageGenerate, nil
}
