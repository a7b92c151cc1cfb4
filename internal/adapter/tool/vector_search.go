package tool

import (
	"context"
	"fmt"
	"strings"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

const DefaultTopK = 5

var _ output.ToolPort = (*VectorSearchTool)(nil)

type VectorSearchTool struct {
	embedder output.EmbedderPort
	index    output.VectorIndexPort
	topK     int
	logger   output.LoggerPort
}

func NewVectorSearchTool(embedder output.EmbedderPort, index output.VectorIndexPort, topK int, logger output.LoggerPort) *VectorSearchTool {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &VectorSearchTool{embedder: embedder, index: index, topK: topK, logger: logger}
}

func (t *VectorSearchTool) Name() entity.ToolName { return entity.ToolVectorSearch }
func (t *VectorSearchTool) Description() string {
	return "Retrieves GS1 document passages semantically similar to the question"
}

func (t *VectorSearchTool) Run(ctx context.Context, query string) (string, error) {
	if t.embedder == nil || t.index.Len() == 0 {
		t.logger.Warn("Vector search on empty index", "query", query)
		return "The GS1 document index is empty. Ingest document chunks before asking questions.", nil
	}

	embedding, err := t.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	hits, err := t.index.Search(ctx, embedding, t.topK)
	if err != nil {
		return "", fmt.Errorf("search index: %w", err)
	}
	t.logger.Debug("Vector search finished", "hits", len(hits), "top_k", t.topK)

	if len(hits) == 0 {
		return fmt.Sprintf("No relevant GS1 documents found for %q.", query), nil
	}
	return formatHits(query, hits), nil
}

func formatHits(query string, hits []entity.SearchHit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant document chunks for %q:\n", len(hits), query)

	for i, h := range hits {
		source := []string{h.Chunk.SourceName}
		if h.Chunk.SectionTitle != "" {
			source = append(source, h.Chunk.SectionTitle)
		}
		if h.Chunk.PageNumber > 0 {
			source = append(source, fmt.Sprintf("p. %d", h.Chunk.PageNumber))
		}
		fmt.Fprintf(&b, "\n%d. [%s] (score %.2f)\n   %s\n", i+1, strings.Join(source, " | "), h.Score, strings.TrimSpace(h.Chunk.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}
