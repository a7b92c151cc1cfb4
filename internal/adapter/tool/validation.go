package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
	"isa-agent/internal/domain/gs1"
)

var _ output.ToolPort = (*ValidationTool)(nil)

// Runs shorter than four digits are treated as prose ("AI 01", "v24").
var digitRun = regexp.MustCompile(`\d{4,}`)

const noIdentifierMessage = "No GS1 identifier found in the query. Include the digits to check, for example: validate GTIN 4006381333931."

type ValidationTool struct {
	logger output.LoggerPort
}

func NewValidationTool(logger output.LoggerPort) *ValidationTool {
	return &ValidationTool{logger: logger}
}

func (t *ValidationTool) Name() entity.ToolName { return entity.ToolValidation }
func (t *ValidationTool) Description() string {
	return "Checks GTIN, GLN and SSCC numbers for length and check digit"
}

func (t *ValidationTool) Run(ctx context.Context, query string) (string, error) {
	values := digitRun.FindAllString(query, -1)
	if len(values) == 0 {
		return noIdentifierMessage, nil
	}

	kind := InferIdentifierType(query)
	reports := make([]string, 0, len(values))
	for _, v := range values {
		result := gs1.Validate(kind, v)
		t.logger.Info("Identifier validated", "type", kind, "value", v, "valid", result.Valid)
		reports = append(reports, formatValidation(result))
	}
	return strings.Join(reports, "\n\n"), nil
}

// InferIdentifierType picks the key type named in the query, defaulting to
// GTIN.
func InferIdentifierType(query string) entity.IdentifierType {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "sscc"):
		return entity.IdentifierSSCC
	case strings.Contains(q, "gln"):
		return entity.IdentifierGLN
	default:
		return entity.IdentifierGTIN
	}
}

func formatValidation(r entity.ValidationResult) string {
	var b strings.Builder

	label := string(r.Type)
	if r.Type == entity.IdentifierGTIN {
		label = fmt.Sprintf("GTIN-%d", len(r.Value))
	}

	if r.Valid {
		fmt.Fprintf(&b, "%s %s: Valid %s\n", r.Type, r.Value, label)
	} else {
		var failed []string
		for _, c := range r.Checks {
			if !c.Passed {
				failed = append(failed, c.Name)
			}
		}
		fmt.Fprintf(&b, "%s %s: Invalid (%s)\n", r.Type, r.Value, strings.Join(failed, ", "))
	}

	for _, c := range r.Checks {
		status := "Failed"
		if c.Passed {
			status = "Passed"
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", c.Name, status, c.Detail)
	}
	return strings.TrimRight(b.String(), "\n")
}
