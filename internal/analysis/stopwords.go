package analysis

// DefaultStopWords are common English function words ignored when ranking terms.
var DefaultStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
	"can", "could", "did", "do", "does", "doing", "down", "during",
	"each", "either", "every", "few", "for", "from", "further",
	"had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how", "however",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just",
	"many", "may", "me", "might", "more", "most", "much", "must", "my", "myself",
	"neither", "no", "nor", "not", "now", "of", "off", "often", "on", "once", "only", "or", "other", "others",
	"our", "ours", "ourselves", "out", "over", "own",
	"same", "shall", "she", "should", "since", "so", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there", "therefore", "these", "they",
	"this", "those", "through", "thus", "to", "too",
	"under", "until", "up", "upon", "very", "was", "we", "were", "what", "when", "where", "whether", "which",
	"while", "who", "whom", "whose", "why", "will", "with", "within", "without", "would",
	"you", "your", "yours", "yourself", "yourselves",
}

// StopWordSet is a read-only lookup built from a stop-word list.
type StopWordSet map[string]struct{}

// NewStopWordSet builds a lookup from words.
func NewStopWordSet(words []string) StopWordSet {
	set := make(StopWordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether the lowercase word is a stop-word.
func (s StopWordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}
