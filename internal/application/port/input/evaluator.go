package input

import (
	"context"

	"isa-agent/internal/domain/entity"
)

type SimilarityEvaluator interface {
	Evaluate(ctx context.Context, actual, expected string) string
}

type DetailedEvaluator interface {
	SimilarityEvaluator
	Judge(ctx context.Context, actual, expected string) *entity.EvaluationReport
}
