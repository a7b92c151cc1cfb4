package router

import (
	"fmt"
	"regexp"
	"strings"
)

// Predicate decides whether a rule applies. Match receives the query already
// lower-cased by the router.
type Predicate interface {
	Match(normalized string) bool
	Name() string
}

// KeywordPredicate matches when any keyword occurs as a substring.
type KeywordPredicate struct {
	keywords []string
}

func Keywords(words ...string) KeywordPredicate {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			normalized = append(normalized, w)
		}
	}
	return KeywordPredicate{keywords: normalized}
}

func (p KeywordPredicate) Match(normalized string) bool {
	for _, kw := range p.keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

func (p KeywordPredicate) Name() string {
	return "keywords(" + strings.Join(p.keywords, "|") + ")"
}

func (p KeywordPredicate) Empty() bool {
	return len(p.keywords) == 0
}

// PatternPredicate matches when any regular expression finds a match.
type PatternPredicate struct {
	patterns []*regexp.Regexp
}

func Patterns(exprs ...string) (PatternPredicate, error) {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return PatternPredicate{}, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		compiled = append(compiled, re)
	}
	return PatternPredicate{patterns: compiled}, nil
}

func (p PatternPredicate) Match(normalized string) bool {
	for _, re := range p.patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

func (p PatternPredicate) Name() string {
	names := make([]string, 0, len(p.patterns))
	for _, re := range p.patterns {
		names = append(names, strings.TrimPrefix(re.String(), "(?i)"))
	}
	return "patterns(" + strings.Join(names, "|") + ")"
}

// AnyPredicate matches when any member matches.
type AnyPredicate []Predicate

func (p AnyPredicate) Match(normalized string) bool {
	for _, member := range p {
		if member.Match(normalized) {
			return true
		}
	}
	return false
}

func (p AnyPredicate) Name() string {
	names := make([]string, 0, len(p))
	for _, member := range p {
		names = append(names, member.Name())
	}
	return strings.Join(names, " or ")
}
