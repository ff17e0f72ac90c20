package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokens shorter than this are dropped during normalization
const minTokenLength = 3

// foldAccents decomposes, drops combining marks and recomposes (e.g. "café" -> "cafe")
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// TextNormalizer cleans free text before similarity comparison
type TextNormalizer struct {
	lemmatizer *Lemmatizer
	logger     zerolog.Logger
}

// NewTextNormalizer creates a normalizer with the built-in lemmatizer
func NewTextNormalizer(logger zerolog.Logger) *TextNormalizer {
	return &TextNormalizer{
		lemmatizer: NewLemmatizer(),
		logger:     logger.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize lowercases text, strips punctuation, drops stop words and short tokens,
// lemmatizes what is left and joins the survivors with single spaces.
// Empty or all-stopword input yields "".
func (n *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Step 1: Lowercase and fold accents
	cleaned := strings.ToLower(text)
	if folded, _, err := transform.String(foldAccents, cleaned); err == nil {
		cleaned = folded
	}

	// Step 2: Remove punctuation and symbols
	cleaned = stripPunctuation(cleaned)

	// Step 3: Tokenize, filter and lemmatize
	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < minTokenLength || isStopWord(word) {
			continue
		}
		kept = append(kept, n.lemmatizer.Lemmatize(word))
	}

	normalized := strings.Join(kept, " ")
	n.logger.Debug().Str("input", text).Str("output", normalized).Msg("normalized text")
	return normalized
}

// stripPunctuation removes Unicode punctuation and symbol characters
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}
