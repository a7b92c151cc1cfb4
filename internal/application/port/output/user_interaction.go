package output

import (
	"context"

	"isa-agent/internal/domain/entity"
)

type UserInteractionPort interface {
	AskQuestion(ctx context.Context, question string) (string, error)

	ShowToolStart(ctx context.Context, tool entity.ToolName, description, rule string)
	ShowToolResult(ctx context.Context, tool entity.ToolName, result string, isError bool)
}
