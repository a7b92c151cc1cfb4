package entity

import "fmt"

type ToolName string

const (
	ToolVectorSearch   ToolName = "vector_search"
	ToolKnowledgeGraph ToolName = "knowledge_graph"
	ToolValidation     ToolName = "validation"
)

var knownTools = map[ToolName]struct{}{
	ToolVectorSearch:   {},
	ToolKnowledgeGraph: {},
	ToolValidation:     {},
}

func (t ToolName) String() string {
	return string(t)
}

// ParseToolName accepts the canonical names plus the short aliases used in
// rule files ("vector", "kg", "validate").
func ParseToolName(s string) (ToolName, error) {
	switch s {
	case "vector":
		return ToolVectorSearch, nil
	case "kg":
		return ToolKnowledgeGraph, nil
	case "validate":
		return ToolValidation, nil
	}
	name := ToolName(s)
	if _, ok := knownTools[name]; !ok {
		return "", fmt.Errorf("unknown tool %q", s)
	}
	return name, nil
}
