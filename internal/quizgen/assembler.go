package quizgen

import (
	"math/rand"
	"strings"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/topic"
)

// Plan is a fully resolved assembly request. Difficulty must not be adaptive.
type Plan struct {
	Subject    string
	Text       string
	Difficulty domain.Difficulty
	Count      int
	Types      []domain.QuestionType
	Title      string
	TimeLimit  int
}

// Assembler turns a plan into a quiz using the fact extractor, the synthesizer and the fallback.
type Assembler struct {
	table      topic.Table
	classifier *topic.Classifier
	extractor  *FactExtractor
	synth      *Synthesizer
}

// NewAssembler builds an Assembler over the classifier's keyword table.
func NewAssembler(classifier *topic.Classifier, stopWords analysis.StopWordSet) *Assembler {
	return &Assembler{
		table:      classifier.Table(),
		classifier: classifier,
		extractor:  NewFactExtractor(stopWords),
		synth:      NewSynthesizer(stopWords),
	}
}

// Distribute splits total across n types: an equal base each, with the remainder
// going one apiece to the first types in order.
func Distribute(total, n int) []int {
	if n <= 0 {
		return nil
	}
	counts := make([]int, n)
	for i := range counts {
		counts[i] = total / n
		if i < total%n {
			counts[i]++
		}
	}
	return counts
}

// Assemble never fails. It yields plan.Count questions whenever the text has at least one sentence.
func (a *Assembler) Assemble(rng *rand.Rand, plan Plan) *domain.Quiz {
	sentences := splitSentences(plan.Text)
	m := a.material(plan, sentences)
	facts := a.extractor.Extract(sentences, m.subjectKeywords, plan.Count)
	fb := newFallback(a.synth, sentences, facts)

	questions := make([]*domain.Question, 0, plan.Count)
	cursor := 0
	for i, quota := range Distribute(plan.Count, len(plan.Types)) {
		qt := plan.Types[i]
		produced, misses := 0, 0
		for produced < quota && misses < len(facts) {
			fact := facts[cursor%len(facts)]
			cursor++
			q, ok := a.synth.Synthesize(rng, fact, qt, m)
			if !ok {
				misses++
				continue
			}
			questions = append(questions, q)
			produced++
			misses = 0
		}
		for produced < quota {
			q, ok := fb.question(rng, qt, m)
			if !ok {
				break
			}
			questions = append(questions, q)
			produced++
		}
	}

	title := strings.TrimSpace(plan.Title)
	if title == "" {
		title = plan.Subject + " Quiz"
	}
	return &domain.Quiz{
		Title:      title,
		Difficulty: plan.Difficulty,
		TimeLimit:  plan.TimeLimit,
		Questions:  questions,
	}
}

// material resolves the keyword table entry for the plan. A subject missing from the table
// falls back to the topic detected in the text.
func (a *Assembler) material(plan Plan, sentences []string) *material {
	tableSubject := plan.Subject
	if _, ok := a.table.Lookup(plan.Subject); !ok {
		tableSubject = a.classifier.Classify(plan.Text)
	}
	keywords := a.table.Keywords(tableSubject)
	return &material{
		subject:         plan.Subject,
		difficulty:      plan.Difficulty,
		sentences:       sentences,
		subjectKeywords: keywords,
		keywordMatchers: keywordMatchers(keywords),
		subjectBank:     a.table.Distractors(tableSubject),
		genericBank:     topic.GenericDistractors,
	}
}
