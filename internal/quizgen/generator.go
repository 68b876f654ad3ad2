// Package quizgen synthesizes quizzes from cleaned text without any external model.
package quizgen

import (
	"context"
	"math/rand"
	"time"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/textclean"
	"quiz-synth/internal/topic"

	"go.uber.org/zap"
)

// Generator implements domain.QuizGenerationService offline.
type Generator struct {
	analyzer  *analysis.Analyzer
	assembler *Assembler
	seed      int64
	seeded    bool
	logger    *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes every request draw from a source seeded with seed.
// Zero keeps time-based seeding.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.seed = seed
			g.seeded = true
		}
	}
}

// NewGenerator creates a Generator.
func NewGenerator(logger *zap.Logger, classifier *topic.Classifier, analyzer *analysis.Analyzer, opts ...Option) *Generator {
	g := &Generator{
		analyzer:  analyzer,
		assembler: NewAssembler(classifier, analyzer.StopWords()),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateQuiz cleans the content, resolves adaptive difficulty and assembles the quiz.
func (g *Generator) GenerateQuiz(ctx context.Context, req *domain.GenerationRequest) (*domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || req.QuestionCount < 1 || len(req.QuestionTypes) == 0 {
		return nil, domain.NewInvalidInputError("quiz request needs a positive question count and at least one question type")
	}

	text := textclean.Clean(req.Content)
	if text == "" {
		return nil, domain.NewInsufficientContentError(0, 0)
	}

	difficulty := req.Difficulty
	if difficulty == domain.DifficultyAdaptive || difficulty == "" {
		difficulty = g.analyzer.Analyze(text).Difficulty
	}

	quiz := g.assembler.Assemble(g.newRand(), Plan{
		Subject:    req.Subject,
		Text:       text,
		Difficulty: difficulty,
		Count:      req.QuestionCount,
		Types:      req.QuestionTypes,
		Title:      req.Title,
		TimeLimit:  req.TimeLimit,
	})

	g.logger.Info("Quiz generated",
		zap.String("subject", req.Subject),
		zap.String("difficulty", string(difficulty)),
		zap.Int("requested", req.QuestionCount),
		zap.Int("generated", len(quiz.Questions)),
	)
	return quiz, nil
}

func (g *Generator) newRand() *rand.Rand {
	seed := g.seed
	if !g.seeded {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

var _ domain.QuizGenerationService = (*Generator)(nil)
