package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/cache"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/textclean"
	"quiz-synth/internal/util"
	"quiz-synth/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const quizTTL = time.Hour

func quizRequest() *dto.GenerateQuizRequest {
	return &dto.GenerateQuizRequest{
		Subject:       "Biology",
		Content:       plantNotes,
		Difficulty:    "medium",
		QuestionCount: 5,
		QuestionTypes: []string{"mcq"},
	}
}

func generatedQuiz() *domain.Quiz {
	return &domain.Quiz{
		Title:      "Biology Quiz",
		Difficulty: domain.DifficultyMedium,
		Questions: []*domain.Question{{
			Type:          domain.QuestionMCQ,
			Prompt:        "What is Photosynthesis?",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
			Difficulty:    domain.DifficultyMedium,
			Topic:         "Biology",
			Keywords:      []string{"photosynthesis"},
		}},
	}
}

func expectedKey(difficulty string) string {
	return cache.QuizKey(util.ContentHash(plantNotes), "Biology", difficulty, 5, []string{"mcq"})
}

func newQuizService(gen domain.QuizGenerationService, c domain.Cache) QuizService {
	return NewQuizService(gen, analysis.NewAnalyzer(), validation.NewValidator(0, nil), c, quizTTL)
}

func TestQuizService_Generate_NoCache(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.MatchedBy(func(r *domain.GenerationRequest) bool {
		return r.Subject == "Biology" && r.Difficulty == domain.DifficultyMedium &&
			r.QuestionCount == 5 && len(r.QuestionTypes) == 1 && r.QuestionTypes[0] == domain.QuestionMCQ
	})).Return(generatedQuiz(), nil).Once()

	resp, err := newQuizService(gen, nil).Generate(context.Background(), quizRequest())
	require.NoError(t, err)
	assert.Equal(t, "Biology Quiz", resp.Title)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "What is Photosynthesis?", resp.Questions[0].Question)
	gen.AssertExpectations(t)
}

func TestQuizService_Generate_InvalidRequest(t *testing.T) {
	gen := new(MockGenerator)
	req := quizRequest()
	req.QuestionCount = 50

	_, err := newQuizService(gen, nil).Generate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidQuizRequest))

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "questionCount", verrs[0].Field)
	gen.AssertNotCalled(t, "GenerateQuiz", mock.Anything, mock.Anything)
}

func TestQuizService_Generate_ResolvesAdaptive(t *testing.T) {
	expected := analysis.NewAnalyzer().Analyze(textclean.Clean(plantNotes)).Difficulty
	gen := new(MockGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.MatchedBy(func(r *domain.GenerationRequest) bool {
		return r.Difficulty == expected
	})).Return(generatedQuiz(), nil).Once()

	req := quizRequest()
	req.Difficulty = "adaptive"
	_, err := newQuizService(gen, nil).Generate(context.Background(), req)
	require.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestQuizService_Generate_CacheMissStores(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(generatedQuiz(), nil).Once()

	c := new(MockCache)
	key := expectedKey("medium")
	c.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	c.On("Set", mock.Anything, key, mock.MatchedBy(func(v string) bool {
		var q domain.Quiz
		return json.Unmarshal([]byte(v), &q) == nil && len(q.Questions) == 1
	}), quizTTL).Return(nil).Once()

	_, err := newQuizService(gen, c).Generate(context.Background(), quizRequest())
	require.NoError(t, err)
	c.AssertExpectations(t)
	gen.AssertExpectations(t)
}

func TestQuizService_Generate_CacheHit(t *testing.T) {
	raw, err := json.Marshal(generatedQuiz())
	require.NoError(t, err)

	gen := new(MockGenerator)
	c := new(MockCache)
	c.On("Get", mock.Anything, expectedKey("medium")).Return(string(raw), nil).Once()

	req := quizRequest()
	req.Title = "Week 3 Review"
	req.TimeLimit = 15
	resp, err := newQuizService(gen, c).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Week 3 Review", resp.Title)
	assert.Equal(t, 15, resp.TimeLimit)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, []string{"a", "b", "c", "d"}, resp.Questions[0].Options)
	gen.AssertNotCalled(t, "GenerateQuiz", mock.Anything, mock.Anything)
}

func TestQuizService_Generate_CacheErrorsAreNotFatal(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(generatedQuiz(), nil).Times(3)

	t.Run("read and write fail", func(t *testing.T) {
		c := new(MockCache)
		c.On("Get", mock.Anything, mock.Anything).Return("", errors.New("connection refused")).Once()
		c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

		resp, err := newQuizService(gen, c).Generate(context.Background(), quizRequest())
		require.NoError(t, err)
		assert.Len(t, resp.Questions, 1)
	})

	t.Run("unreadable entry", func(t *testing.T) {
		c := new(MockCache)
		c.On("Get", mock.Anything, expectedKey("medium")).Return("{not json", nil).Once()
		c.On("Delete", mock.Anything, expectedKey("medium")).Return(nil).Once()
		c.On("Set", mock.Anything, expectedKey("medium"), mock.Anything, quizTTL).Return(nil).Once()

		_, err := newQuizService(gen, c).Generate(context.Background(), quizRequest())
		require.NoError(t, err)
		c.AssertExpectations(t)
	})

	t.Run("eviction fails", func(t *testing.T) {
		c := new(MockCache)
		c.On("Get", mock.Anything, mock.Anything).Return("[]", nil).Once()
		c.On("Delete", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
		c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := newQuizService(gen, c).Generate(context.Background(), quizRequest())
		require.NoError(t, err)
		assert.Len(t, resp.Questions, 1)
		c.AssertExpectations(t)
	})
	gen.AssertExpectations(t)
}

func TestQuizService_Generate_GeneratorError(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(nil, domain.NewInsufficientContentError(0, 0)).Once()
	c := new(MockCache)
	c.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss).Once()

	_, err := newQuizService(gen, c).Generate(context.Background(), quizRequest())
	assert.True(t, domain.IsCode(err, domain.CodeInsufficientContent))
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
