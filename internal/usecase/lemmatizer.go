package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

// inflectionRule rewrites a suffix to produce a candidate base form
type inflectionRule struct {
	suffix      string
	replacement string
}

// Rules are tried in order; the first candidate found in the lexicon wins.
var inflectionRules = []inflectionRule{
	// nouns
	{"s", ""}, {"ses", "s"}, {"xes", "x"}, {"zes", "z"}, {"ches", "ch"}, {"shes", "sh"},
	{"men", "man"}, {"ies", "y"}, {"ves", "f"}, {"ves", "fe"},
	// verbs
	{"es", "e"}, {"es", ""}, {"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	// adjectives
	{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
}

// irregularForms maps inflected forms that no suffix rule can reach
var irregularForms = map[string]string{
	"men": "man", "women": "woman", "children": "child", "feet": "foot", "teeth": "tooth",
	"mice": "mouse", "geese": "goose", "people": "person", "ran": "run", "bought": "buy",
	"wore": "wear", "worn": "wear", "kept": "keep", "made": "make", "sold": "sell",
	"brought": "bring", "found": "find", "felt": "feel", "took": "take", "taken": "take",
	"gave": "give", "given": "give", "went": "go", "gone": "go", "came": "come",
	"saw": "see", "seen": "see", "wrote": "write", "written": "write", "held": "hold",
	"slept": "sleep", "built": "build", "paid": "pay", "swam": "swim", "swum": "swim",
	"rode": "ride", "ridden": "ride", "lit": "light", "better": "good", "best": "good",
}

// baseForms is the dictionary of lemmas the lemmatizer may produce.
// It covers the shopping vocabulary the catalog and chat queries use.
var baseForms = []string{
	// apparel and footwear
	"shoe", "sneaker", "boot", "sandal", "slipper", "heel", "sock", "shirt", "tshirt", "blouse",
	"top", "pants", "jeans", "shorts", "trousers", "legging", "skirt", "dress", "sweater", "hoodie",
	"jacket", "coat", "vest", "suit", "tie", "scarf", "glove", "hat", "cap", "belt", "bag",
	"backpack", "wallet", "outerwear", "clothes", "clothing", "apparel", "fashion", "denim",
	"cotton", "wool", "silk", "leather", "polyester", "fabric", "mesh", "upper", "pocket",
	"fit", "size", "color", "colour", "style", "wear", "wearer",
	// sports and fitness
	"sport", "athlete", "athletic", "run", "runner", "jog", "walk", "hike", "gym", "workout",
	"exercise", "fitness", "yoga", "pilates", "meditation", "mat", "weight", "dumbbell",
	"train", "trainer", "training", "cushion", "cushioning", "grip", "foam", "midsole",
	"distance", "performance", "activity", "outdoor", "indoor", "bike", "ball", "racket",
	"swim", "ride", "heart", "rate", "health", "sleep", "step", "calorie",
	// electronics
	"phone", "smartphone", "laptop", "computer", "tablet", "headphone", "earbud", "speaker",
	"camera", "lens", "photo", "photograph", "photography", "tv", "television", "watch",
	"smartwatch", "tracker", "track", "monitor", "battery", "charger", "cable", "screen",
	"sound", "audio", "music", "listen", "noise", "cancellation", "wireless", "bluetooth",
	"gps", "aperture", "bokeh", "effect", "image", "quality", "device", "gadget", "tech",
	"electronic", "electronics", "game", "console", "keyboard", "mouse", "drone", "signal",
	// home and kitchen
	"home", "house", "household", "kitchen", "furniture", "chair", "table", "desk", "bed",
	"sofa", "couch", "lamp", "light", "decor", "rug", "pillow", "blanket", "towel", "shelf",
	"knife", "leaf", "plate", "cup", "mug", "bottle", "water", "drink", "glass", "pan", "pot",
	"hour", "day", "night", "material", "plastic", "metal", "steel", "wood",
	// nouns that end in "s" but are not plurals of lexicon words
	"news", "series", "species", "physics", "canvas", "chess", "glasses",
	// books
	"book", "novel", "textbook", "magazine", "journal", "story", "author", "page", "read",
	// commerce and conversation
	"product", "item", "price", "deal", "discount", "brand", "gift", "order", "buy", "sell",
	"purchase", "shop", "store", "cart", "recommend", "recommendation", "search", "find",
	"show", "need", "want", "look", "like", "love", "help", "thank", "feature", "design",
	"occasion", "party", "travel", "commute", "use", "user", "feel", "keep", "make", "take",
	"give", "come", "see", "write", "hold", "build", "pay", "bring", "good", "man", "woman",
	"child", "kid", "baby", "person", "foot", "tooth", "goose", "family", "friend", "work",
	"office", "school", "student", "summer", "winter", "rain", "snow", "sun", "beach",
	"long", "short", "light", "heavy", "cheap", "expensive", "new", "old", "comfortable",
	"casual", "formal", "classic", "modern", "premium", "professional", "portable", "compact",
	"durable", "reusable", "waterproof", "breathable", "sustainable", "organic", "eco",
	"friendly", "advance", "advanced", "smart", "fast", "slow", "cold", "hot", "warm", "cool",
	"red", "blue", "green", "black", "white", "yellow", "purple", "pink", "brown", "gray", "grey",
}

// Lemmatizer reduces words to dictionary base forms.
// Every word it returns is either in its lexicon or returned unchanged, so Lemmatize(Lemmatize(w)) == Lemmatize(w).
type Lemmatizer struct {
	lexicon   map[string]bool
	irregular map[string]string
}

// NewLemmatizer creates a lemmatizer over the built-in lexicon.
// Lexicon entries that are stop words or shorter than minTokenLength are dropped so
// lemmas always survive a second normalization pass.
func NewLemmatizer() *Lemmatizer {
	l := &Lemmatizer{
		lexicon:   make(map[string]bool, len(baseForms)),
		irregular: make(map[string]string, len(irregularForms)),
	}
	for _, word := range baseForms {
		if keepLemma(word) {
			l.lexicon[word] = true
		}
	}
	for form, base := range irregularForms {
		if keepLemma(base) && !l.lexicon[form] {
			l.lexicon[base] = true
			l.irregular[form] = base
		}
	}
	return l
}

func keepLemma(word string) bool {
	return utf8.RuneCountInString(word) >= minTokenLength && !isStopWord(word)
}

// Lemmatize returns the base form of a lowercase word, or the word itself when no base form is known
func (l *Lemmatizer) Lemmatize(word string) string {
	if l.lexicon[word] {
		return word
	}
	if base, ok := l.irregular[word]; ok {
		return base
	}
	for _, rule := range inflectionRules {
		if !strings.HasSuffix(word, rule.suffix) || len(word) <= len(rule.suffix) {
			continue
		}
		stem := word[:len(word)-len(rule.suffix)]
		if candidate := stem + rule.replacement; l.lexicon[candidate] {
			return candidate
		}
		// running -> runn -> run, fitted -> fitt -> fit
		if rule.replacement == "" && (rule.suffix == "ing" || rule.suffix == "ed") && hasDoubledEnding(stem) {
			if candidate := stem[:len(stem)-1]; l.lexicon[candidate] {
				return candidate
			}
		}
	}
	if stem, err := snowball.Stem(word, "english", false); err == nil && l.lexicon[stem] {
		return stem
	}
	return word
}

func hasDoubledEnding(s string) bool {
	n := len(s)
	return n >= 2 && s[n-1] == s[n-2]
}
