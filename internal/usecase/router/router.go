// Package router maps free-text queries to a tool variant using an ordered
// list of rules. The first matching rule wins; the fallback tool applies
// when none match, so every query is routable.
package router

import (
	"strings"

	"isa-agent/internal/domain/entity"
)

const FallbackRuleName = "default"

type Rule struct {
	Name      string
	Tool      entity.ToolName
	Predicate Predicate
}

type Decision struct {
	Tool entity.ToolName
	Rule string
}

// Router is immutable after construction and safe for concurrent use.
type Router struct {
	rules    []Rule
	fallback entity.ToolName
}

func New(rules []Rule, fallback entity.ToolName) *Router {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Router{rules: copied, fallback: fallback}
}

// NewDefault builds a router from the embedded rule set.
func NewDefault() (*Router, error) {
	set, err := LoadRules(defaultRulesYAML)
	if err != nil {
		return nil, err
	}
	return New(set.Rules, set.Fallback), nil
}

func (r *Router) Route(query string) entity.ToolName {
	return r.Decide(query).Tool
}

func (r *Router) Decide(query string) Decision {
	normalized := strings.ToLower(query)
	for _, rule := range r.rules {
		if rule.Predicate.Match(normalized) {
			return Decision{Tool: rule.Tool, Rule: rule.Name}
		}
	}
	return Decision{Tool: r.fallback, Rule: FallbackRuleName}
}

func (r *Router) Rules() []Rule {
	copied := make([]Rule, len(r.rules))
	copy(copied, r.rules)
	return copied
}

func (r *Router) Fallback() entity.ToolName {
	return r.fallback
}
