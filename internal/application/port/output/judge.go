package output

import "context"

// JudgeBackend opens sessions against a generative judging service. Errors
// should be tagged with entity.Permanent or entity.Transient where the
// adapter can tell the difference.
type JudgeBackend interface {
	Open(ctx context.Context, project, location string) (JudgeSession, error)
}

type JudgeSession interface {
	Model(ctx context.Context, name string) (JudgeModel, error)
}

type JudgeModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
