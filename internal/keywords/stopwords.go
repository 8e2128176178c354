package keywords

// stopwords contains English function words and high-frequency fillers
// that carry no discriminative value for keyword extraction.
var stopwords = map[string]struct{}{
	// Articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"some": {}, "any": {}, "each": {}, "every": {}, "no": {}, "such": {},
	// Pronouns
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {}, "its": {},
	"my": {}, "your": {}, "his": {}, "our": {}, "their": {},
	"who": {}, "whom": {}, "whose": {}, "which": {}, "what": {},
	// Conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"because": {}, "although": {}, "while": {}, "whereas": {}, "if": {}, "unless": {},
	// Prepositions
	"in": {}, "on": {}, "at": {}, "by": {}, "for": {}, "with": {}, "without": {},
	"to": {}, "from": {}, "of": {}, "into": {}, "onto": {}, "over": {}, "under": {},
	"about": {}, "between": {}, "through": {}, "during": {}, "before": {}, "after": {},
	"above": {}, "below": {}, "up": {}, "down": {}, "out": {}, "off": {},
	// Auxiliaries and copulas
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"am": {}, "do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {},
	// Adverbs and particles
	"not": {}, "very": {}, "too": {}, "also": {}, "just": {}, "only": {},
	"then": {}, "than": {}, "there": {}, "here": {}, "when": {}, "where": {},
	"how": {}, "why": {}, "all": {}, "both": {}, "more": {}, "most": {},
	"other": {}, "same": {}, "own": {}, "as": {}, "now": {},
}

func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
