package output

import (
	"context"

	"isa-agent/internal/domain/entity"
)

// EmbedderPort embeds search queries with Embed and indexed text with
// EmbedDocument. Providers with asymmetric models embed them differently.
type EmbedderPort interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	Name() string
}

type VectorIndexPort interface {
	Search(ctx context.Context, embedding []float32, topK int) ([]entity.SearchHit, error)
	Len() int
}

type KnowledgeGraphPort interface {
	Query(ctx context.Context, query string) (*entity.KGQueryResult, error)
}
