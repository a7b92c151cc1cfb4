package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

var _ output.ToolPort = (*KnowledgeGraphTool)(nil)

type KnowledgeGraphTool struct {
	graph  output.KnowledgeGraphPort
	logger output.LoggerPort
}

func NewKnowledgeGraphTool(graph output.KnowledgeGraphPort, logger output.LoggerPort) *KnowledgeGraphTool {
	return &KnowledgeGraphTool{graph: graph, logger: logger}
}

func (t *KnowledgeGraphTool) Name() entity.ToolName { return entity.ToolKnowledgeGraph }
func (t *KnowledgeGraphTool) Description() string {
	return "Explains GS1 concepts from the knowledge graph with their relationships"
}

func (t *KnowledgeGraphTool) Run(ctx context.Context, query string) (string, error) {
	res, err := t.graph.Query(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query knowledge graph: %w", err)
	}

	t.logger.Debug("Knowledge graph queried",
		"matched", len(res.Matched),
		"related", len(res.Related),
		"relationships", len(res.Relationships),
	)

	if len(res.Matched) == 0 && len(res.Related) == 0 && len(res.Relationships) == 0 {
		return fmt.Sprintf("No direct matches or related information found for %q in the Knowledge Graph.", query), nil
	}
	return formatGraph(query, res), nil
}

func formatGraph(query string, res *entity.KGQueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching entities and %d related entities for query %q.\n", len(res.Matched), len(res.Related), query)

	if len(res.Matched) > 0 {
		b.WriteString("\nMatched entities:\n")
		for _, e := range res.Matched {
			writeEntity(&b, e)
		}
	}
	if len(res.Related) > 0 {
		b.WriteString("\nRelated entities:\n")
		for _, e := range res.Related {
			writeEntity(&b, e)
		}
	}
	if len(res.Relationships) > 0 {
		b.WriteString("\nRelationships:\n")
		for _, r := range res.Relationships {
			if r.Direction == entity.DirectionIncoming {
				fmt.Fprintf(&b, "- %s <-%s- %s\n", r.Source.Label, r.Type, r.Target.Label)
			} else {
				fmt.Fprintf(&b, "- %s -%s-> %s\n", r.Source.Label, r.Type, r.Target.Label)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeEntity(b *strings.Builder, e entity.KGEntity) {
	fmt.Fprintf(b, "- %s [%s]", e.Label, e.Type)
	if e.Description != "" {
		fmt.Fprintf(b, ": %s", e.Description)
	}
	b.WriteString("\n")

	keys := make([]string, 0, len(e.Properties))
	for k := range e.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %s\n", k, e.Properties[k])
	}
}
