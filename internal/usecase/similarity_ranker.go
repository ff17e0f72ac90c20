package usecase

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/shopassist/backend/internal/domain"
)

// Defaults for the TF-IDF vector space
const (
	DefaultMaxFeatures         = 1000
	DefaultSimilarityThreshold = 0.1
)

// termPattern matches runs of two or more word characters
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// ScoredIndex is a document position paired with its relevance score
type ScoredIndex struct {
	Index int
	Score float64
}

// SimilarityRanker ranks documents against a query with TF-IDF weighting and cosine similarity
type SimilarityRanker struct {
	maxFeatures int
}

// NewSimilarityRanker creates a ranker whose vocabulary keeps at most maxFeatures terms
func NewSimilarityRanker(maxFeatures int) *SimilarityRanker {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &SimilarityRanker{maxFeatures: maxFeatures}
}

// Rank scores every document against query and returns the best `limit` indices whose
// score is strictly above threshold, ordered by descending score then ascending index.
// The threshold is applied after the top-limit cut. A limit <= 0 keeps every document.
// Returns domain.ErrVectorization when the corpus has no usable vocabulary.
func (r *SimilarityRanker) Rank(query string, documents []string, limit int, threshold float64) ([]ScoredIndex, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	corpus := make([][]string, 0, len(documents)+1)
	corpus = append(corpus, analyze(query))
	for _, doc := range documents {
		corpus = append(corpus, analyze(doc))
	}

	vocabulary := r.buildVocabulary(corpus)
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary, documents may contain only stop words", domain.ErrVectorization)
	}

	idf := inverseDocumentFrequency(corpus, vocabulary)
	queryVector := weigh(corpus[0], vocabulary, idf)

	ranked := make([]ScoredIndex, len(documents))
	for i := range documents {
		ranked[i] = ScoredIndex{
			Index: i,
			Score: dot(queryVector, weigh(corpus[i+1], vocabulary, idf)),
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	results := make([]ScoredIndex, 0, len(ranked))
	for _, candidate := range ranked {
		if candidate.Score > threshold {
			results = append(results, candidate)
		}
	}
	return results, nil
}

// analyze lowercases text, extracts word terms, removes stop words and
// returns the unigrams followed by the bigrams of the remaining terms.
func analyze(text string) []string {
	words := termPattern.FindAllString(strings.ToLower(text), -1)
	tokens := words[:0]
	for _, w := range words {
		if !isStopWord(w) {
			tokens = append(tokens, w)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// buildVocabulary keeps the maxFeatures most frequent terms across the corpus.
// Ties are broken alphabetically so the vocabulary is deterministic.
func (r *SimilarityRanker) buildVocabulary(corpus [][]string) map[string]int {
	counts := make(map[string]int)
	for _, terms := range corpus {
		for _, term := range terms {
			counts[term]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		if counts[terms[a]] != counts[terms[b]] {
			return counts[terms[a]] > counts[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > r.maxFeatures {
		terms = terms[:r.maxFeatures]
	}

	vocabulary := make(map[string]int, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
	}
	return vocabulary
}

// inverseDocumentFrequency computes the smoothed idf: ln((1+n)/(1+df)) + 1
func inverseDocumentFrequency(corpus [][]string, vocabulary map[string]int) []float64 {
	df := make([]int, len(vocabulary))
	for _, terms := range corpus {
		seen := make(map[int]bool)
		for _, term := range terms {
			if idx, ok := vocabulary[term]; ok && !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(corpus))
	idf := make([]float64, len(vocabulary))
	for i, freq := range df {
		idf[i] = math.Log((1+n)/(1+float64(freq))) + 1
	}
	return idf
}

// weigh builds the L2-normalized TF-IDF vector of a document
func weigh(terms []string, vocabulary map[string]int, idf []float64) []float64 {
	vector := make([]float64, len(vocabulary))
	for _, term := range terms {
		if idx, ok := vocabulary[term]; ok {
			vector[idx]++
		}
	}

	norm := 0.0
	for idx, tf := range vector {
		vector[idx] = tf * idf[idx]
		norm += vector[idx] * vector[idx]
	}
	if norm == 0 {
		return vector
	}
	norm = math.Sqrt(norm)
	for idx := range vector {
		vector[idx] /= norm
	}
	return vector
}

// dot returns the inner product of two vectors; for unit vectors this is the cosine similarity
func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
