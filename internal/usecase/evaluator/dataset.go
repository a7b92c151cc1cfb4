package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"isa-agent/internal/application/port/input"
	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

var ErrDatasetNotFound = errors.New("dataset file not found")

// LoadDataset reads a JSON array of {"actual", "expected"} records.
func LoadDataset(path string) ([]entity.EvaluationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var records []entity.EvaluationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return records, nil
}

// BatchRunner evaluates every record of a dataset and prints one result
// line per record.
type BatchRunner struct {
	evaluator input.SimilarityEvaluator
	out       io.Writer
	logger    output.LoggerPort
}

func NewBatchRunner(evaluator input.SimilarityEvaluator, out io.Writer, logger output.LoggerPort) *BatchRunner {
	return &BatchRunner{
		evaluator: evaluator,
		out:       out,
		logger:    logger,
	}
}

// Run reports a missing dataset on out and returns nil without evaluating
// anything. Unreadable or malformed datasets are returned as errors.
func (r *BatchRunner) Run(ctx context.Context, path string) error {
	records, err := LoadDataset(path)
	if errors.Is(err, ErrDatasetNotFound) {
		r.logger.Warn("Dataset missing", "path", path)
		fmt.Fprintf(r.out, "Error: Dataset file not found at %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info("Dataset loaded", "path", path, "records", len(records))

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluation interrupted at record %d: %w", i, err)
		}
		fmt.Fprintln(r.out, r.evaluate(ctx, record))
	}
	return nil
}

// evaluate prints one line per failed candidate before the diagnostic when
// no candidate answered and the evaluator exposes its attempts.
func (r *BatchRunner) evaluate(ctx context.Context, record entity.EvaluationRecord) string {
	detailed, ok := r.evaluator.(input.DetailedEvaluator)
	if !ok {
		return r.evaluator.Evaluate(ctx, record.Actual, record.Expected)
	}

	report := detailed.Judge(ctx, record.Actual, record.Expected)
	if !report.Success {
		for _, a := range report.Attempts {
			fmt.Fprintf(r.out, "Error with model '%s' in project '%s' and location '%s': %v\n",
				a.Candidate.Model, a.Candidate.Project, a.Candidate.Location, a.Err)
		}
	}
	return report.Judgment
}
