// Package analysis computes structural statistics of cleaned text.
package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"quiz-synth/internal/domain"
)

const (
	maxHeadings      = 10
	maxKeyTerms      = 15
	minSentenceLen   = 10
	minParagraphLen  = 20
	minHeadingLen    = 5
	maxHeadingLen    = 100
	minKeyTermLength = 5
)

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n[ \t]*\n`)
	nonWordRe        = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// Analyzer produces a DocumentAnalysis. It holds no mutable state.
type Analyzer struct {
	stopWords StopWordSet
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStopWords replaces the default stop-word list.
func WithStopWords(words []string) Option {
	return func(a *Analyzer) {
		a.stopWords = NewStopWordSet(words)
	}
}

// NewAnalyzer creates an Analyzer using DefaultStopWords unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{stopWords: NewStopWordSet(DefaultStopWords)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StopWords exposes the analyzer's stop-word set.
func (a *Analyzer) StopWords() StopWordSet {
	return a.stopWords
}

// Analyze never fails; empty input yields zeroed statistics with medium difficulty.
func (a *Analyzer) Analyze(text string) *domain.DocumentAnalysis {
	words := strings.Fields(text)
	sentences := Sentences(text)

	return &domain.DocumentAnalysis{
		TotalWords:     len(words),
		TotalSentences: len(sentences),
		Paragraphs:     countParagraphs(text),
		Headings:       headings(text),
		KeyTerms:       a.KeyTerms(text, maxKeyTerms),
		Difficulty:     EstimateDifficulty(words, len(sentences)),
	}
}

// Sentences splits on runs of terminal punctuation and keeps fragments longer than ten characters.
func Sentences(text string) []string {
	var out []string
	for _, part := range sentenceSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > minSentenceLen {
			out = append(out, part)
		}
	}
	return out
}

func countParagraphs(text string) int {
	n := 0
	for _, part := range paragraphSplitRe.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(part)) > minParagraphLen {
			n++
		}
	}
	return n
}

func headings(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n < minHeadingLen || n >= maxHeadingLen {
			continue
		}
		if strings.ContainsAny(line[len(line)-1:], ".!?") {
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		if !unicode.IsUpper(first) {
			continue
		}
		out = append(out, line)
		if len(out) == maxHeadings {
			break
		}
	}
	return out
}

// KeyTerms ranks non-stop-words longer than four characters by frequency.
// Equal counts keep the order of first appearance.
func (a *Analyzer) KeyTerms(text string, limit int) []domain.TermFrequency {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), "")

	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) < minKeyTermLength || a.stopWords.Contains(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	terms := make([]domain.TermFrequency, 0, len(order))
	for _, tok := range order {
		terms = append(terms, domain.TermFrequency{Term: tok, Count: counts[tok]})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// EstimateDifficulty rates text by average word length and words per sentence.
func EstimateDifficulty(words []string, sentenceCount int) domain.Difficulty {
	if len(words) == 0 {
		return domain.DifficultyMedium
	}
	letters := 0
	for _, w := range words {
		letters += utf8.RuneCountInString(w)
	}
	avgWordLen := float64(letters) / float64(len(words))

	if sentenceCount == 0 {
		sentenceCount = 1
	}
	avgSentenceLen := float64(len(words)) / float64(sentenceCount)

	switch {
	case avgWordLen > 6 || avgSentenceLen > 20:
		return domain.DifficultyHard
	case avgWordLen < 4.5 && avgSentenceLen < 12:
		return domain.DifficultyEasy
	default:
		return domain.DifficultyMedium
	}
}
