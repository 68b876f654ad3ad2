package quizgen

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/domain"
)

const (
	maxShortAnswerLen = 200
	minFillTokens     = 6
	minBlankWordLen   = 5
)

var (
	numberRe      = regexp.MustCompile(`\d+(?:\.\d+)?`)
	processCueRe  = regexp.MustCompile(`(?i)\b(process|method|procedure|steps|stages|phases)\b`)
	wordRe        = regexp.MustCompile(`[\p{L}\p{N}]+`)
	definitionSep = " is "
)

// material is the per-request context shared by every question of one quiz.
type material struct {
	subject         string
	difficulty      domain.Difficulty
	sentences       []string
	subjectKeywords []string
	keywordMatchers []*regexp.Regexp
	subjectBank     []string
	genericBank     []string
}

// Synthesizer turns key facts into questions. It keeps no state between calls.
type Synthesizer struct {
	stopWords analysis.StopWordSet
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(stopWords analysis.StopWordSet) *Synthesizer {
	return &Synthesizer{stopWords: stopWords}
}

// Synthesize builds a question of type qt from fact. ok is false when the fact cannot support that type.
func (s *Synthesizer) Synthesize(rng *rand.Rand, fact domain.KeyFact, qt domain.QuestionType, m *material) (*domain.Question, bool) {
	var q *domain.Question
	switch qt {
	case domain.QuestionMCQ:
		q = s.multipleChoice(rng, fact, m)
	case domain.QuestionShort:
		q = s.shortAnswer(fact, m)
	case domain.QuestionFillBlank:
		q = s.fillBlank(rng, fact, m)
	}
	if q == nil {
		return nil, false
	}
	q.Type = qt
	q.Difficulty = m.difficulty
	q.Topic = m.subject
	if q.Keywords == nil {
		q.Keywords = append([]string{}, fact.Keywords...)
	}
	return q, true
}

func (s *Synthesizer) multipleChoice(rng *rand.Rand, fact domain.KeyFact, m *material) *domain.Question {
	if fact.Type == domain.FactDefinition {
		if term, def, ok := splitDefinition(fact.Text); ok {
			return &domain.Question{
				Prompt:        fmt.Sprintf("What is %s?", term),
				Options:       withCorrect(rng, def, contextualDistractors(rng, def, m.sentences, m.subjectBank, m.genericBank)),
				CorrectAnswer: def,
				Explanation:   fmt.Sprintf("The material defines %s as %s.", term, def),
			}
		}
	}

	if fact.Type == domain.FactNumerical {
		if loc := numberRe.FindStringIndex(fact.Text); loc != nil {
			token := fact.Text[loc[0]:loc[1]]
			value, err := strconv.ParseFloat(token, 64)
			if err == nil {
				masked := fact.Text[:loc[0]] + blank + fact.Text[loc[1]:]
				return &domain.Question{
					Prompt:        "Which number completes the statement? " + masked,
					Options:       withCorrect(rng, token, numericDistractors(value, token)),
					CorrectAnswer: token,
					Explanation:   "The material states: " + fact.Text,
				}
			}
		}
	}

	return s.genericChoice(rng, fact.Text, m)
}

func (s *Synthesizer) genericChoice(rng *rand.Rand, sentence string, m *material) *domain.Question {
	correct := strings.TrimSpace(sentence)
	return &domain.Question{
		Prompt:        "Which of the following statements is correct according to the material?",
		Options:       withCorrect(rng, correct, contextualDistractors(rng, correct, m.sentences, m.subjectBank, m.genericBank)),
		CorrectAnswer: correct,
		Explanation:   "This statement appears in the material: " + correct,
	}
}

func (s *Synthesizer) shortAnswer(fact domain.KeyFact, m *material) *domain.Question {
	text := strings.TrimSpace(fact.Text)
	var prompt, answer string

	switch fact.Type {
	case domain.FactDefinition:
		if term, def, ok := splitDefinition(text); ok {
			prompt = fmt.Sprintf("Define %s.", term)
			answer = def
		}
	case domain.FactProcess:
		if cue := processCueRe.FindString(text); cue != "" {
			prompt = fmt.Sprintf("Describe the %s involving %s.", strings.ToLower(cue), topKeyword(fact, m))
			answer = text
		}
	case domain.FactCausal:
		prompt = fmt.Sprintf("Explain the cause-and-effect relationship involving %s.", topKeyword(fact, m))
		answer = text
	}
	if prompt == "" {
		prompt = fmt.Sprintf("Explain %s based on the content.", topKeyword(fact, m))
		answer = text
	}

	return &domain.Question{
		Prompt:        prompt,
		CorrectAnswer: truncate(answer, maxShortAnswerLen, "..."),
		Explanation:   "Based on the material: " + text,
	}
}

func (s *Synthesizer) fillBlank(rng *rand.Rand, fact domain.KeyFact, m *material) *domain.Question {
	text := strings.TrimSpace(fact.Text)
	if len(strings.Fields(text)) < minFillTokens {
		return nil
	}

	start, end, ok := subjectWord(text, m.keywordMatchers)
	if !ok {
		start, end, ok = s.longestWord(rng, text)
	}
	if !ok {
		return nil
	}

	word := text[start:end]
	return &domain.Question{
		Prompt:        "Fill in the blank: " + text[:start] + blank + text[end:],
		CorrectAnswer: word,
		Explanation:   "The complete sentence reads: " + text,
	}
}

// subjectWord locates the first subject keyword, in table order, present in text.
func subjectWord(text string, matchers []*regexp.Regexp) (int, int, bool) {
	for _, re := range matchers {
		if loc := re.FindStringIndex(text); loc != nil {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

// longestWord picks at random among the longest non-stop-words longer than four characters.
func (s *Synthesizer) longestWord(rng *rand.Rand, text string) (int, int, bool) {
	var candidates [][]int
	longest := 0
	for _, loc := range wordRe.FindAllStringIndex(text, -1) {
		word := strings.ToLower(text[loc[0]:loc[1]])
		n := utf8.RuneCountInString(word)
		if n < minBlankWordLen || s.stopWords.Contains(word) {
			continue
		}
		switch {
		case n > longest:
			longest = n
			candidates = [][]int{loc}
		case n == longest:
			candidates = append(candidates, loc)
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}
	pick := candidates[rng.Intn(len(candidates))]
	return pick[0], pick[1], true
}

// splitDefinition splits "X is Y." into term X and definition Y.
func splitDefinition(text string) (string, string, bool) {
	i := strings.Index(text, definitionSep)
	if i < 0 {
		return "", "", false
	}
	term := strings.TrimSpace(text[:i])
	def := trimTerminal(text[i+len(definitionSep):])
	if term == "" || def == "" {
		return "", "", false
	}
	return term, def, true
}

func topKeyword(fact domain.KeyFact, m *material) string {
	if len(fact.Keywords) > 0 {
		return fact.Keywords[0]
	}
	if m.subject != "" {
		return m.subject
	}
	return "this topic"
}

func withCorrect(rng *rand.Rand, correct string, distractors []string) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, distractors...)
	options = append(options, correct)
	shuffle(rng, options)
	return options
}
