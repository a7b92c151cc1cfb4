package router

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isa-agent/internal/domain/entity"
)

func defaultRouter(t *testing.T) *Router {
	t.Helper()
	r, err := NewDefault()
	require.NoError(t, err)
	return r
}

func TestRoute_ValidationKeywords(t *testing.T) {
	r := defaultRouter(t)

	queries := []string{
		"Controleer GTIN 4006381333931",
		"graag VALIDATIE van deze GLN",
		"please validate 96385074",
		"Can you CHECK this barcode?",
		"check",
	}
	for _, q := range queries {
		assert.Equal(t, entity.ToolValidation, r.Route(q), q)
	}
}

func TestRoute_ExplanationKeywords(t *testing.T) {
	r := defaultRouter(t)

	queries := []string{
		"Wat betekent AI 01 binnen GS1?",
		"Leg uit wat een SSCC is",
		"Explain the GS1 General Specifications",
		"What does GTIN mean?",
	}
	for _, q := range queries {
		assert.Equal(t, entity.ToolKnowledgeGraph, r.Route(q), q)
	}
}

func TestRoute_ValidationWinsOverExplanation(t *testing.T) {
	r := defaultRouter(t)

	d := r.Decide("Leg uit en controleer GTIN 4006381333931")
	assert.Equal(t, entity.ToolValidation, d.Tool)
	assert.Equal(t, "validation-intent", d.Rule)
}

func TestRoute_FallbackIsTotal(t *testing.T) {
	r := defaultRouter(t)

	queries := []string{"", "   ", "Welke GS1 standaarden gelden voor verpakkingen?", "日本語のクエリ", "GTIN"}
	for _, q := range queries {
		d := r.Decide(q)
		assert.Equal(t, entity.ToolVectorSearch, d.Tool, q)
		assert.Equal(t, FallbackRuleName, d.Rule)
	}
}

func TestRoute_CustomRulesSwapWithoutTouchingDispatch(t *testing.T) {
	r := New([]Rule{
		{Name: "kg-first", Tool: entity.ToolKnowledgeGraph, Predicate: Keywords("gtin")},
		{Name: "validate", Tool: entity.ToolValidation, Predicate: Keywords("validate")},
	}, entity.ToolValidation)

	assert.Equal(t, entity.ToolKnowledgeGraph, r.Route("validate GTIN"))
	assert.Equal(t, entity.ToolValidation, r.Route("validate this"))
	assert.Equal(t, entity.ToolValidation, r.Route("anything"))
}

func TestRouter_RulesReturnsCopy(t *testing.T) {
	r := defaultRouter(t)
	rules := r.Rules()
	require.NotEmpty(t, rules)

	rules[0].Tool = entity.ToolVectorSearch
	assert.Equal(t, entity.ToolValidation, r.Rules()[0].Tool)
	assert.Equal(t, entity.ToolVectorSearch, r.Fallback())
}

func TestPredicates(t *testing.T) {
	kw := Keywords("  Leg Uit ", "")
	assert.True(t, kw.Match("kun je dit leg uit doen"))
	assert.False(t, kw.Match("uitleg"))
	assert.Equal(t, "keywords(leg uit)", kw.Name())

	pat, err := Patterns(`what does .+ mean`)
	require.NoError(t, err)
	assert.True(t, pat.Match("what does ai 01 mean?"))
	assert.False(t, pat.Match("what does it"))

	either := AnyPredicate{kw, pat}
	assert.True(t, either.Match("what does x mean"))
	assert.Contains(t, either.Name(), " or ")
}

func TestLoadRules_Errors(t *testing.T) {
	cases := map[string]string{
		"missing fallback": "rules: []",
		"unknown fallback": "fallback: oracle",
		"unknown tool":     "fallback: vector\nrules:\n  - tool: oracle\n    keywords: [x]",
		"empty predicate":  "fallback: vector\nrules:\n  - tool: kg",
		"bad pattern":      "fallback: vector\nrules:\n  - tool: kg\n    patterns: ['(']",
	}
	for name, doc := range cases {
		_, err := LoadRules([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidRule, name)
	}

	_, err := LoadRules([]byte("rules: [unclosed"))
	assert.Error(t, err)
}

func TestLoadRulesFile_Aliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := "fallback: kg\nrules:\n  - tool: validate\n    keywords: [prüfen]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	set, err := LoadRulesFile(path)
	require.NoError(t, err)
	assert.Equal(t, entity.ToolKnowledgeGraph, set.Fallback)
	require.Len(t, set.Rules, 1)
	assert.Equal(t, "validation", set.Rules[0].Name)

	r := New(set.Rules, set.Fallback)
	assert.Equal(t, entity.ToolValidation, r.Route("Bitte PRÜFEN"))
	assert.Equal(t, entity.ToolKnowledgeGraph, r.Route("iets anders"))
}
