package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/cache"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/logger"
	"quiz-synth/internal/textclean"
	"quiz-synth/internal/util"
	"quiz-synth/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz generation
type QuizService interface {
	Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
}

type quizService struct {
	generator domain.QuizGenerationService
	analyzer  *analysis.Analyzer
	validator *validation.Validator
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewQuizService creates a new instance of quizService. cache may be nil.
func NewQuizService(
	generator domain.QuizGenerationService,
	analyzer *analysis.Analyzer,
	validator *validation.Validator,
	cache domain.Cache,
	cacheTTL time.Duration,
) QuizService {
	return &quizService{
		generator: generator,
		analyzer:  analyzer,
		validator: validator,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Generate validates the request, resolves adaptive difficulty and returns a
// quiz, from the cache when the same content and knobs were seen before.
func (s *quizService) Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	genReq, errs := s.validator.ValidateGenerateQuizRequest(req)
	if len(errs) > 0 {
		return nil, domain.NewInvalidQuizRequestError(errs)
	}

	if genReq.Difficulty == domain.DifficultyAdaptive {
		genReq.Difficulty = s.analyzer.Analyze(textclean.Clean(genReq.Content)).Difficulty
		logger.Get().Debug("Resolved adaptive difficulty", zap.String("difficulty", string(genReq.Difficulty)))
	}

	cacheKey := quizCacheKey(genReq)
	if quiz := s.cached(ctx, cacheKey); quiz != nil {
		applyRequestMeta(quiz, genReq)
		return dto.NewQuizResponse(quiz), nil
	}

	quiz, err := s.generator.GenerateQuiz(ctx, genReq)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKey, quiz)
	return dto.NewQuizResponse(quiz), nil
}

func quizCacheKey(req *domain.GenerationRequest) string {
	types := make([]string, 0, len(req.QuestionTypes))
	for _, t := range req.QuestionTypes {
		types = append(types, string(t))
	}
	return cache.QuizKey(util.ContentHash(req.Content), req.Subject, string(req.Difficulty), req.QuestionCount, types)
}

func (s *quizService) cached(ctx context.Context, key string) *domain.Quiz {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("QuizService: cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		logger.Get().Warn("QuizService: evicting unreadable cache entry", zap.String("key", key), zap.Error(err))
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("QuizService: cache delete failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	logger.Get().Debug("QuizService: cache hit", zap.String("key", key))
	return &quiz
}

func (s *quizService) store(ctx context.Context, key string, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Warn("QuizService: failed to encode quiz for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		logger.Get().Warn("QuizService: cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// applyRequestMeta sets the parts of a cached quiz that are not part of its cache key.
func applyRequestMeta(quiz *domain.Quiz, req *domain.GenerationRequest) {
	quiz.Title = req.Title
	if quiz.Title == "" {
		quiz.Title = req.Subject + " Quiz"
	}
	quiz.TimeLimit = req.TimeLimit
}
