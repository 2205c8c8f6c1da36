package services

import (
	"strings"
)

// DefaultBlocklist is the fixed list of refused terms
var DefaultBlocklist = []string{
	"stupid",
	"shut up",
	"idiot",
	"damn",
	"bitch",
	"asshole",
	"fuck",
	"crap",
	"wanker",
}

// BlocklistFilter is a case-insensitive substring filter.
// It is not real moderation: "scrap" matches "crap".
type BlocklistFilter struct {
	terms []string
}

// NewBlocklistFilter creates a filter over terms; nil selects DefaultBlocklist
func NewBlocklistFilter(terms []string) *BlocklistFilter {
	if terms == nil {
		terms = DefaultBlocklist
	}

	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			lowered = append(lowered, term)
		}
	}

	return &BlocklistFilter{terms: lowered}
}

// Match implements ContentFilter.Match
func (f *BlocklistFilter) Match(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, term := range f.terms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}
