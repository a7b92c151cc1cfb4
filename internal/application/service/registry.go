package service

import (
	"sort"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

// ToolRegistryImpl is written once during wiring and only read afterwards.
type ToolRegistryImpl struct {
	tools map[entity.ToolName]output.ToolPort
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort),
	}
}

// NewToolRegistryFrom builds a registry from an explicit name → tool mapping.
func NewToolRegistryFrom(tools map[entity.ToolName]output.ToolPort) *ToolRegistryImpl {
	r := NewToolRegistry()
	for name, tool := range tools {
		r.tools[name] = tool
	}
	return r
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) {
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistryImpl) All() []output.ToolPort {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, string(name))
	}
	sort.Strings(names)

	result := make([]output.ToolPort, 0, len(r.tools))
	for _, name := range names {
		result = append(result, r.tools[entity.ToolName(name)])
	}
	return result
}
