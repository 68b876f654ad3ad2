package quizgen

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/domain"
)

const (
	minFactLength   = 15
	minFactScore    = 2
	minFactCap      = 20
	maxFactKeywords = 5
	minKeywordLen   = 5
)

type factRule struct {
	pattern *regexp.Regexp
	points  int
	tag     domain.FactType
}

// factRules are applied in order; the last matching rule sets the tag.
var factRules = []factRule{
	{regexp.MustCompile(`(?i)\b(is|are|means|defined as|refers to|known as)\b`), 5, domain.FactDefinition},
	{regexp.MustCompile(`(?i)\b(process|method|procedure|steps|stages|phases)\b`), 4, domain.FactProcess},
	{regexp.MustCompile(`\d`), 3, domain.FactNumerical},
	{regexp.MustCompile(`(?i)\b(because|since|due to|results in|causes|leads to)\b`), 3, domain.FactCausal},
	{regexp.MustCompile(`(?i)\b(formula|equation|law|theorem|principle)\b|=`), 4, domain.FactFormula},
}

var keywordTokenRe = regexp.MustCompile(`[a-z0-9]+`)

// FactExtractor ranks sentences by how well they support a question.
type FactExtractor struct {
	stopWords analysis.StopWordSet
}

// NewFactExtractor creates a FactExtractor.
func NewFactExtractor(stopWords analysis.StopWordSet) *FactExtractor {
	return &FactExtractor{stopWords: stopWords}
}

// Extract returns facts scoring above the threshold, best first, capped at max(20, 2*questionCount).
// subjectKeywords each add two points when they occur in a sentence.
func (e *FactExtractor) Extract(sentences []string, subjectKeywords []string, questionCount int) []domain.KeyFact {
	matchers := keywordMatchers(subjectKeywords)

	var facts []domain.KeyFact
	for pos, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		length := utf8.RuneCountInString(sentence)
		if length <= minFactLength {
			continue
		}

		score := 0
		tag := domain.FactGeneral
		for _, rule := range factRules {
			if rule.pattern.MatchString(sentence) {
				score += rule.points
				tag = rule.tag
			}
		}
		for _, m := range matchers {
			if m.MatchString(sentence) {
				score += 2
			}
		}
		if length > 80 {
			score += 2
		}
		if length > 120 {
			score++
		}

		if score <= minFactScore {
			continue
		}
		facts = append(facts, domain.KeyFact{
			Text:     sentence,
			Position: pos,
			Type:     tag,
			Score:    score,
			Keywords: extractKeywords(e.stopWords, sentence),
		})
	}

	sort.SliceStable(facts, func(i, j int) bool {
		return facts[i].Score > facts[j].Score
	})

	limit := 2 * questionCount
	if limit < minFactCap {
		limit = minFactCap
	}
	if len(facts) > limit {
		facts = facts[:limit]
	}
	return facts
}

// extractKeywords returns the first five distinct lowercase tokens longer than four characters that are not stop-words.
func extractKeywords(stopWords analysis.StopWordSet, sentence string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, maxFactKeywords)
	for _, tok := range keywordTokenRe.FindAllString(strings.ToLower(sentence), -1) {
		if len(tok) < minKeywordLen || stopWords.Contains(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == maxFactKeywords {
			break
		}
	}
	return out
}

func keywordMatchers(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return out
}
