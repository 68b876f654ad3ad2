package quizgen

import (
	"fmt"
	"math/rand"
	"strings"

	"quiz-synth/internal/domain"
)

var shortTemplates = []string{
	"Explain the following statement in your own words: %q",
	"Why is the following point important in the material? %q",
	"Summarize what the material says here: %q",
}

// fallback produces questions straight from sentences once the fact pool stops yielding.
// Sentences are taken round-robin, those not already used as key facts first, so none
// repeats before every sentence has been used once.
type fallback struct {
	synth     *Synthesizer
	sentences []string
	order     []int
	next      int
	template  int
}

func newFallback(synth *Synthesizer, sentences []string, facts []domain.KeyFact) *fallback {
	isFact := make(map[int]bool, len(facts))
	for _, f := range facts {
		isFact[f.Position] = true
	}
	order := make([]int, 0, len(sentences))
	for i := range sentences {
		if !isFact[i] {
			order = append(order, i)
		}
	}
	for i := range sentences {
		if isFact[i] {
			order = append(order, i)
		}
	}
	return &fallback{synth: synth, sentences: sentences, order: order}
}

// question returns a question of type qt from the next sentence, or false when there is no text at all.
func (f *fallback) question(rng *rand.Rand, qt domain.QuestionType, m *material) (*domain.Question, bool) {
	if len(f.order) == 0 {
		return nil, false
	}
	pos := f.order[f.next%len(f.order)]
	f.next++
	sentence := strings.TrimSpace(f.sentences[pos])

	fact := domain.KeyFact{
		Text:     sentence,
		Position: pos,
		Type:     domain.FactGeneral,
		Keywords: extractKeywords(f.synth.stopWords, sentence),
	}

	switch qt {
	case domain.QuestionMCQ:
		return f.synth.Synthesize(rng, fact, qt, m)
	case domain.QuestionFillBlank:
		if q, ok := f.synth.Synthesize(rng, fact, qt, m); ok {
			return q, true
		}
	}

	tmpl := shortTemplates[f.template%len(shortTemplates)]
	f.template++
	q := &domain.Question{
		Type:          domain.QuestionShort,
		Prompt:        fmt.Sprintf(tmpl, sentence),
		CorrectAnswer: truncate(sentence, maxShortAnswerLen, "..."),
		Explanation:   "Based on the material: " + sentence,
		Difficulty:    m.difficulty,
		Topic:         m.subject,
		Keywords:      fact.Keywords,
	}
	return q, true
}
