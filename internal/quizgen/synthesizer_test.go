package quizgen

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"quiz-synth/internal/domain"
	"quiz-synth/internal/topic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMaterial(sentences, keywords []string) *material {
	table := topic.DefaultTable()
	return &material{
		subject:         "Biology",
		difficulty:      domain.DifficultyMedium,
		sentences:       sentences,
		subjectKeywords: keywords,
		keywordMatchers: keywordMatchers(keywords),
		subjectBank:     table.Distractors("Biology"),
		genericBank:     topic.GenericDistractors,
	}
}

func assertValidMCQ(t *testing.T, q *domain.Question) {
	t.Helper()
	require.Equal(t, domain.QuestionMCQ, q.Type)
	require.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, q.CorrectAnswer)
	seen := make(map[string]struct{})
	for _, opt := range q.Options {
		key := normalize(opt)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate option %q in %v", opt, q.Options)
		seen[key] = struct{}{}
	}
}

func TestSynthesizer_DefinitionMCQ(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	fact := domain.KeyFact{Text: "Mitochondria is the powerhouse of the cell.", Type: domain.FactDefinition, Keywords: []string{"mitochondria", "powerhouse"}}
	m := testMaterial([]string{fact.Text}, nil)

	q, ok := s.Synthesize(rand.New(rand.NewSource(1)), fact, domain.QuestionMCQ, m)
	require.True(t, ok)
	assertValidMCQ(t, q)
	assert.Equal(t, "What is Mitochondria?", q.Prompt)
	assert.Equal(t, "the powerhouse of the cell", q.CorrectAnswer)
	assert.Equal(t, domain.DifficultyMedium, q.Difficulty)
	assert.Equal(t, "Biology", q.Topic)
	assert.Equal(t, []string{"mitochondria", "powerhouse"}, q.Keywords)
	assert.NotEmpty(t, q.Explanation)
}

func TestSynthesizer_NumericMCQ(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	fact := domain.KeyFact{Text: "The boiling point of water is 100 degrees Celsius at sea level.", Type: domain.FactNumerical}
	m := testMaterial([]string{fact.Text}, nil)

	q, ok := s.Synthesize(rand.New(rand.NewSource(7)), fact, domain.QuestionMCQ, m)
	require.True(t, ok)
	assertValidMCQ(t, q)
	assert.Equal(t, "100", q.CorrectAnswer)
	assert.ElementsMatch(t, []string{"100", "200", "50", "110"}, q.Options)
	assert.Contains(t, q.Prompt, "The boiling point of water is _____ degrees Celsius at sea level.")
}

func TestSynthesizer_NumericDistractorsAvoidCollisions(t *testing.T) {
	got := numericDistractors(0, "0")
	assert.Len(t, got, 3)
	assert.NotContains(t, got, "0")

	assert.Equal(t, []string{"5", "1.25", "12.5"}, numericDistractors(2.5, "2.5"))
}

func TestSynthesizer_GenericMCQ(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	sentences := []string{
		"Rain falls on the quiet hills.",
		"Birds sing loudly at dawn.",
		"Rivers carry mud to the sea.",
		"Wind shapes the tall dunes.",
	}
	fact := domain.KeyFact{Text: sentences[0], Type: domain.FactGeneral}

	q, ok := s.Synthesize(rand.New(rand.NewSource(3)), fact, domain.QuestionMCQ, testMaterial(sentences, nil))
	require.True(t, ok)
	assertValidMCQ(t, q)
	assert.Equal(t, "Rain falls on the quiet hills.", q.CorrectAnswer)
	for _, opt := range q.Options {
		if opt != q.CorrectAnswer {
			assert.Contains(t, []string{"Birds sing loudly at dawn", "Rivers carry mud to the sea", "Wind shapes the tall dunes"}, opt)
		}
	}
}

// A context sentence that restates the correct answer must never become a distractor.
func TestSynthesizer_MCQNeverDuplicatesCorrectAnswer(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	sentences := []string{
		"Water is a liquid at room temperature.",
		"a liquid at room temperature",
		"A liquid at room temperature.",
		"A LIQUID   at room temperature!",
		"Under pressure it remains a liquid at room temperature.",
	}
	fact := domain.KeyFact{Text: sentences[0], Type: domain.FactDefinition}

	for seed := int64(0); seed < 50; seed++ {
		q, ok := s.Synthesize(rand.New(rand.NewSource(seed)), fact, domain.QuestionMCQ, testMaterial(sentences, nil))
		require.True(t, ok)
		assertValidMCQ(t, q)
		for _, opt := range q.Options {
			if opt != q.CorrectAnswer {
				assert.NotContains(t, strings.ToLower(opt), "liquid at room temperature")
			}
		}
	}
}

func TestContextualDistractors_ExhaustedPools(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := contextualDistractors(rng, "answer", []string{"answer"}, nil, []string{"Answer."})
	require.Len(t, got, 3)
	assert.Equal(t, "None of the listed statements (1)", got[0])
}

func TestSynthesizer_ShortAnswer(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	m := testMaterial(nil, nil)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		fact   domain.KeyFact
		prompt string
		answer string
	}{
		{
			name:   "definition",
			fact:   domain.KeyFact{Text: "Osmosis is the diffusion of water across a membrane.", Type: domain.FactDefinition},
			prompt: "Define Osmosis.",
			answer: "the diffusion of water across a membrane",
		},
		{
			name:   "process",
			fact:   domain.KeyFact{Text: "Mitosis proceeds through four stages before the cell divides.", Type: domain.FactProcess, Keywords: []string{"mitosis"}},
			prompt: "Describe the stages involving mitosis.",
			answer: "Mitosis proceeds through four stages before the cell divides.",
		},
		{
			name:   "causal",
			fact:   domain.KeyFact{Text: "Leaves wilt because water evaporates faster than roots absorb it.", Type: domain.FactCausal, Keywords: []string{"leaves"}},
			prompt: "Explain the cause-and-effect relationship involving leaves.",
			answer: "Leaves wilt because water evaporates faster than roots absorb it.",
		},
		{
			name:   "generic",
			fact:   domain.KeyFact{Text: "Ferns reproduce with spores.", Type: domain.FactGeneral, Keywords: []string{"ferns"}},
			prompt: "Explain ferns based on the content.",
			answer: "Ferns reproduce with spores.",
		},
		{
			name:   "generic without keywords uses subject",
			fact:   domain.KeyFact{Text: "It grows.", Type: domain.FactGeneral},
			prompt: "Explain Biology based on the content.",
			answer: "It grows.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := s.Synthesize(rng, tt.fact, domain.QuestionShort, m)
			require.True(t, ok)
			assert.Equal(t, domain.QuestionShort, q.Type)
			assert.Equal(t, tt.prompt, q.Prompt)
			assert.Equal(t, tt.answer, q.CorrectAnswer)
			assert.Nil(t, q.Options)
		})
	}
}

func TestSynthesizer_ShortAnswerTruncation(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	fact := domain.KeyFact{Text: "Entropy is " + strings.Repeat("a measure of disorder ", 12) + ".", Type: domain.FactDefinition}

	q, ok := s.Synthesize(rand.New(rand.NewSource(1)), fact, domain.QuestionShort, testMaterial(nil, nil))
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(q.CorrectAnswer, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(q.CorrectAnswer), maxShortAnswerLen+3)
}

func TestSynthesizer_FillBlank(t *testing.T) {
	s := NewSynthesizer(testStopWords())

	t.Run("prefers subject keyword", func(t *testing.T) {
		fact := domain.KeyFact{Text: "Chlorophyll is the green pigment that absorbs light in the chloroplast."}
		m := testMaterial(nil, []string{"photosynthesis", "chlorophyll"})

		q, ok := s.Synthesize(rand.New(rand.NewSource(1)), fact, domain.QuestionFillBlank, m)
		require.True(t, ok)
		assert.Equal(t, "Chlorophyll", q.CorrectAnswer)
		assert.Equal(t, "Fill in the blank: _____ is the green pigment that absorbs light in the chloroplast.", q.Prompt)
	})

	t.Run("longest word otherwise", func(t *testing.T) {
		fact := domain.KeyFact{Text: "Glaciers slowly carve deep valleys through ancient mountains."}

		q, ok := s.Synthesize(rand.New(rand.NewSource(1)), fact, domain.QuestionFillBlank, testMaterial(nil, nil))
		require.True(t, ok)
		assert.Equal(t, "mountains", q.CorrectAnswer)
	})

	t.Run("random among equally long words", func(t *testing.T) {
		fact := domain.KeyFact{Text: "Plants absorb water while leaves absorb light daily."}
		seen := make(map[string]bool)
		for seed := int64(0); seed < 40; seed++ {
			q, ok := s.Synthesize(rand.New(rand.NewSource(seed)), fact, domain.QuestionFillBlank, testMaterial(nil, nil))
			require.True(t, ok)
			seen[q.CorrectAnswer] = true
		}
		for word := range seen {
			assert.Contains(t, []string{"Plants", "absorb", "leaves"}, word)
		}
	})

	t.Run("too few tokens", func(t *testing.T) {
		fact := domain.KeyFact{Text: "Water boils at high heat."}
		q, ok := s.Synthesize(rand.New(rand.NewSource(1)), fact, domain.QuestionFillBlank, testMaterial(nil, nil))
		assert.False(t, ok)
		assert.Nil(t, q)
	})

	t.Run("no candidate word", func(t *testing.T) {
		fact := domain.KeyFact{Text: "It is a an the of to in on at by."}
		_, ok := s.Synthesize(rand.New(rand.NewSource(1)), fact, domain.QuestionFillBlank, testMaterial(nil, nil))
		assert.False(t, ok)
	})
}

func TestFillBlank_SubstitutionRestoresSentence(t *testing.T) {
	s := NewSynthesizer(testStopWords())
	sentences := []string{
		"Photosynthesis converts light energy into chemical energy inside chloroplasts.",
		"The mitochondria releases energy from glucose during cellular respiration.",
		"Ribosomes assemble proteins by reading messenger RNA codons one at a time.",
		"Enzymes lower the activation energy (Ea) of biochemical reactions.",
	}
	keywords := topic.DefaultTable().Keywords("Biology")

	for seed := int64(0); seed < 20; seed++ {
		for _, sentence := range sentences {
			for _, kw := range [][]string{nil, keywords} {
				q, ok := s.Synthesize(rand.New(rand.NewSource(seed)), domain.KeyFact{Text: sentence}, domain.QuestionFillBlank, testMaterial(nil, kw))
				require.True(t, ok)
				masked := strings.TrimPrefix(q.Prompt, "Fill in the blank: ")
				assert.Equal(t, sentence, strings.Replace(masked, blank, q.CorrectAnswer, 1))
			}
		}
	}
}
