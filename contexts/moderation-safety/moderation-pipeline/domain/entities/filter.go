package entities

import (
	"regexp"
	"strings"
)

// Filter holds the precompiled word-boundary matchers for the local
// moderation stage. It is built once at startup from per-locale word lists
// and is immutable afterwards, so unbounded concurrent reads are safe.
type Filter struct {
	patterns []*regexp.Regexp
}

// NewFilter compiles one case-insensitive alternation per non-empty locale
// list. Terms are quoted, so list entries are plain words, not patterns.
func NewFilter(lists map[string][]string) *Filter {
	patterns := make([]*regexp.Regexp, 0, len(lists))
	for _, terms := range lists {
		cleaned := make([]string, 0, len(terms))
		for _, term := range terms {
			if trimmed := strings.TrimSpace(term); trimmed != "" {
				cleaned = append(cleaned, regexp.QuoteMeta(trimmed))
			}
		}
		if len(cleaned) == 0 {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)\b(?:`+strings.Join(cleaned, "|")+`)\b`))
	}
	return &Filter{patterns: patterns}
}

// Match reports the first blocked term found in text. No I/O, never fails.
func (f *Filter) Match(text string) (string, bool) {
	for _, pattern := range f.patterns {
		if hit := pattern.FindString(text); hit != "" {
			return hit, true
		}
	}
	return "", false
}
