package usecase

import (
	"sort"
	"strings"
)

// Scoring for keyword matches
const (
	phraseMatchBonus = 10.0 // Whole query appears in the document
	wordMatchBonus   = 1.0  // Each query word that appears in the document
)

// KeywordMatcher scores documents by substring overlap with the query.
// It is the degraded-mode ranker used when TF-IDF ranking fails or finds nothing.
type KeywordMatcher struct{}

// NewKeywordMatcher creates a new keyword matcher
func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{}
}

// Search scores every document and returns the non-zero scores in descending order,
// truncated to limit (limit <= 0 keeps all). Documents with equal scores keep their input order.
// A blank query matches nothing.
func (m *KeywordMatcher) Search(query string, documents []string, limit int) []ScoredIndex {
	queryLower := strings.ToLower(query)
	if strings.TrimSpace(queryLower) == "" {
		return nil
	}
	queryWords := strings.Fields(queryLower)

	var matches []ScoredIndex
	for i, doc := range documents {
		score := scoreDocument(queryLower, queryWords, strings.ToLower(doc))
		if score > 0 {
			matches = append(matches, ScoredIndex{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// scoreDocument applies the phrase bonus and the per-word bonus independently
func scoreDocument(queryLower string, queryWords []string, docLower string) float64 {
	score := 0.0
	if strings.Contains(docLower, queryLower) {
		score += phraseMatchBonus
	}
	for _, word := range queryWords {
		if strings.Contains(docLower, word) {
			score += wordMatchBonus
		}
	}
	return score
}

// containsAnyWord reports whether text contains at least one of the words as a substring
func containsAnyWord(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
