package usecase

import (
	"strings"

	"github.com/shopassist/backend/internal/domain"
)

// CategoryRule maps a category to the keywords that trigger it
type CategoryRule struct {
	Category string
	Keywords []string
}

// RecommendationCategoryRules is the table used by the recommendation fallback.
// Order is precedence: "running shoes" triggers sports and clothing and resolves to sports.
var RecommendationCategoryRules = []CategoryRule{
	{domain.CategorySports, []string{"sports", "athletic", "running", "gym", "workout", "fitness", "exercise"}},
	{domain.CategoryClothing, []string{"shirt", "t-shirt", "pants", "jeans", "dress", "jacket", "shoes", "clothes"}},
	{domain.CategoryElectronics, []string{"phone", "laptop", "computer", "headphones", "camera", "tech", "electronic"}},
	{domain.CategoryHome, []string{"furniture", "home", "kitchen", "decor", "household"}},
}

// DescriptionCategoryRules is the table used when extracting features from an image description
var DescriptionCategoryRules = []CategoryRule{
	{domain.CategoryClothing, []string{"shirt", "t-shirt", "pants", "jeans", "dress", "sweater", "jacket", "coat", "shoes", "sneakers", "boots"}},
	{domain.CategorySports, []string{"sports", "athletic", "running", "gym", "workout", "exercise", "fitness"}},
	{domain.CategoryElectronics, []string{"phone", "laptop", "computer", "tablet", "headphones", "camera", "tv"}},
	{domain.CategoryHome, []string{"furniture", "chair", "table", "bed", "lamp", "decor", "kitchen"}},
	{domain.CategoryBooks, []string{"book", "novel", "textbook", "magazine", "journal"}},
}

// CategoryClassifier maps a query to the first category whose keywords it contains
type CategoryClassifier struct {
	rules []CategoryRule
}

// NewCategoryClassifier creates a classifier over rules in precedence order
func NewCategoryClassifier(rules []CategoryRule) *CategoryClassifier {
	return &CategoryClassifier{rules: rules}
}

// Classify returns the first category (in rule order) with a keyword that is a substring
// of the lowercased query, and false when none matches.
func (c *CategoryClassifier) Classify(query string) (string, bool) {
	queryLower := strings.ToLower(query)
	for _, rule := range c.rules {
		if containsAnyWord(queryLower, rule.Keywords) {
			return rule.Category, true
		}
	}
	return "", false
}

// Attribute vocabularies, checked in declaration order
var (
	colorKeywords    = []string{"red", "blue", "green", "black", "white", "yellow", "purple", "pink", "brown", "gray", "grey"}
	sizeKeywords     = []string{"small", "medium", "large", "xl", "xxl", "xs"}
	materialKeywords = []string{"cotton", "polyester", "leather", "wool", "silk", "denim"}
)

// FeatureExtractor pulls a coarse category and color/size/material attributes out of free text
type FeatureExtractor struct {
	classifier *CategoryClassifier
}

// NewFeatureExtractor creates an extractor using the description category table
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{classifier: NewCategoryClassifier(DescriptionCategoryRules)}
}

// Extract returns the features found in text. Attributes are formatted "kind:value".
func (e *FeatureExtractor) Extract(text string) domain.ProductFeatures {
	features := domain.ProductFeatures{Attributes: []string{}}
	if category, ok := e.classifier.Classify(text); ok {
		features.Category = category
	}

	textLower := strings.ToLower(text)
	for _, group := range []struct {
		kind     string
		keywords []string
	}{
		{"color", colorKeywords},
		{"size", sizeKeywords},
		{"material", materialKeywords},
	} {
		for _, keyword := range group.keywords {
			if strings.Contains(textLower, keyword) {
				features.Attributes = append(features.Attributes, group.kind+":"+keyword)
			}
		}
	}
	return features
}
