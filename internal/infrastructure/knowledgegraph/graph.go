// Package knowledgegraph serves GS1 entity lookups from a static graph
// document.
package knowledgegraph

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

//go:embed graph.yaml
var defaultGraph []byte

var _ output.KnowledgeGraphPort = (*Graph)(nil)

// minTermLength keeps very short aliases from matching inside unrelated words.
const minTermLength = 3

type document struct {
	Entities []entity.KGEntity `yaml:"entities"`
}

// Graph is immutable once loaded and safe for concurrent queries.
type Graph struct {
	entities []entity.KGEntity
	byID     map[string]int
}

func Load(data []byte) (*Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse knowledge graph: %w", err)
	}

	g := &Graph{byID: make(map[string]int, len(doc.Entities))}
	for i, e := range doc.Entities {
		if e.ID == "" || e.Label == "" {
			return nil, fmt.Errorf("entity %d: id and label are required", i)
		}
		if _, dup := g.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %q", e.ID)
		}
		g.byID[e.ID] = i
	}
	for _, e := range doc.Entities {
		for _, rel := range e.Related {
			if _, ok := g.byID[rel.TargetID]; !ok {
				return nil, fmt.Errorf("entity %q: relation %q points to unknown entity %q", e.ID, rel.Type, rel.TargetID)
			}
			if rel.Direction != entity.DirectionIncoming && rel.Direction != entity.DirectionOutgoing {
				return nil, fmt.Errorf("entity %q: relation %q has invalid direction %q", e.ID, rel.Type, rel.Direction)
			}
		}
	}
	g.entities = doc.Entities
	return g, nil
}

func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge graph %s: %w", path, err)
	}
	return Load(data)
}

func NewDefault() (*Graph, error) {
	return Load(defaultGraph)
}

func (g *Graph) Len() int {
	return len(g.entities)
}

// Query matches entities whose id, label or alias occurs in the query (or
// whose label contains the whole query) and follows their relations one hop.
func (g *Graph) Query(ctx context.Context, query string) (*entity.KGQueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	result := &entity.KGQueryResult{}
	if q == "" {
		return result, nil
	}

	matched := make(map[string]bool)
	for _, e := range g.entities {
		if matches(e, q) {
			result.Matched = append(result.Matched, e)
			matched[e.ID] = true
		}
	}

	related := make(map[string]bool)
	for _, e := range result.Matched {
		for _, rel := range e.Related {
			target := g.entities[g.byID[rel.TargetID]]
			result.Relationships = append(result.Relationships, entity.KGRelationship{
				Type:      rel.Type,
				Direction: rel.Direction,
				Source:    e,
				Target:    target,
			})
			if !matched[target.ID] && !related[target.ID] {
				related[target.ID] = true
				result.Related = append(result.Related, target)
			}
		}
	}
	return result, nil
}

func matches(e entity.KGEntity, q string) bool {
	label := strings.ToLower(e.Label)
	if len(q) >= minTermLength && strings.Contains(label, q) {
		return true
	}

	terms := append([]string{localID(e.ID), label}, e.Aliases...)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if len(term) < minTermLength {
			continue
		}
		if containsTerm(q, term) {
			return true
		}
	}
	return false
}

func localID(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// containsTerm reports whether term occurs in s without being glued to a
// letter or digit on either side.
func containsTerm(s, term string) bool {
	for offset := 0; ; {
		i := strings.Index(s[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)
		if !isWordByte(s, start-1) && !isWordByte(s, end) {
			return true
		}
		offset = start + 1
	}
}

func isWordByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
