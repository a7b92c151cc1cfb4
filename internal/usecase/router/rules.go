package router

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"isa-agent/internal/domain/entity"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

var ErrInvalidRule = errors.New("invalid routing rule")

type ruleFile struct {
	Fallback string     `yaml:"fallback"`
	Rules    []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Name     string   `yaml:"name"`
	Tool     string   `yaml:"tool"`
	Keywords []string `yaml:"keywords"`
	Patterns []string `yaml:"patterns"`
}

type RuleSet struct {
	Rules    []Rule
	Fallback entity.ToolName
}

// LoadRules parses a YAML rule document. Rule order in the document is the
// evaluation order.
func LoadRules(data []byte) (*RuleSet, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse routing rules: %w", err)
	}

	if file.Fallback == "" {
		return nil, fmt.Errorf("%w: fallback tool is required", ErrInvalidRule)
	}
	fallback, err := entity.ParseToolName(file.Fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: fallback: %v", ErrInvalidRule, err)
	}

	set := &RuleSet{Fallback: fallback}
	for i, entry := range file.Rules {
		rule, err := buildRule(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%s): %v", ErrInvalidRule, i, entry.Name, err)
		}
		set.Rules = append(set.Rules, rule)
	}
	return set, nil
}

func LoadRulesFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadRules(data)
}

func buildRule(entry ruleEntry) (Rule, error) {
	tool, err := entity.ParseToolName(entry.Tool)
	if err != nil {
		return Rule{}, err
	}

	var members AnyPredicate
	if kw := Keywords(entry.Keywords...); !kw.Empty() {
		members = append(members, kw)
	}
	if len(entry.Patterns) > 0 {
		patterns, err := Patterns(entry.Patterns...)
		if err != nil {
			return Rule{}, err
		}
		members = append(members, patterns)
	}
	if len(members) == 0 {
		return Rule{}, errors.New("no keywords or patterns")
	}

	name := entry.Name
	if name == "" {
		name = string(tool)
	}

	var predicate Predicate = members
	if len(members) == 1 {
		predicate = members[0]
	}
	return Rule{Name: name, Tool: tool, Predicate: predicate}, nil
}
