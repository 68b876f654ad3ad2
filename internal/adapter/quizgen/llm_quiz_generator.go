package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"quiz-synth/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const (
	defaultLLMTimeout = 60 * time.Second
	maxPromptContent  = 12000
)

// LLMQuizGenerator asks a language model for the quiz and falls back to the
// offline generator whenever the model output is unusable.
type LLMQuizGenerator struct {
	model    llms.Model
	fallback domain.QuizGenerationService
	timeout  time.Duration
	logger   *zap.Logger
}

// NewOllamaQuizGenerator creates an LLMQuizGenerator backed by an Ollama server.
func NewOllamaQuizGenerator(serverURL, modelName string, fallback domain.QuizGenerationService, logger *zap.Logger) (*LLMQuizGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
		ollama.WithHTTPClient(&http.Client{Timeout: defaultLLMTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	logger.Info("LLM quiz generator ready", zap.String("server", serverURL), zap.String("model", modelName))
	return NewLLMQuizGenerator(llm, fallback, logger), nil
}

// NewLLMQuizGenerator wraps any langchaingo model.
func NewLLMQuizGenerator(model llms.Model, fallback domain.QuizGenerationService, logger *zap.Logger) *LLMQuizGenerator {
	return &LLMQuizGenerator{
		model:    model,
		fallback: fallback,
		timeout:  defaultLLMTimeout,
		logger:   logger,
	}
}

// GenerateQuiz implements domain.QuizGenerationService.
func (g *LLMQuizGenerator) GenerateQuiz(ctx context.Context, req *domain.GenerationRequest) (*domain.Quiz, error) {
	if req == nil || req.Difficulty == domain.DifficultyAdaptive {
		return g.fallback.GenerateQuiz(ctx, req)
	}

	quiz, err := g.generate(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		g.logger.Warn("LLM quiz generation failed, using offline generator", zap.Error(err))
		return g.fallback.GenerateQuiz(ctx, req)
	}
	return quiz, nil
}

type llmQuestion struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Keywords      []string `json:"keywords"`
}

type llmQuiz struct {
	Questions []llmQuestion `json:"questions"`
}

func (g *LLMQuizGenerator) generate(ctx context.Context, req *domain.GenerationRequest) (*domain.Quiz, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(callCtx, g.model, buildPrompt(req), llms.WithTemperature(0.3))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	g.logger.Debug("Raw LLM response received", zap.Int("length", len(raw)))

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var parsed llmQuiz
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("unmarshal quiz JSON: %w", err))
	}

	return toQuiz(req, &parsed)
}

// truncateRunes keeps at most n runes of s.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func buildPrompt(req *domain.GenerationRequest) string {
	types := make([]string, 0, len(req.QuestionTypes))
	for _, t := range req.QuestionTypes {
		types = append(types, string(t))
	}
	content := truncateRunes(req.Content, maxPromptContent)

	return fmt.Sprintf(`You are a quiz generator. Using ONLY the study material below, write exactly %d %s-difficulty questions about %q.
Allowed question types: %s. Spread the questions evenly across the allowed types, in that order.
Respond with ONLY a JSON object in this format:
{
  "questions": [
    {
      "type": "mcq",
      "question": "question text",
      "options": ["four", "distinct", "answer", "options"],
      "correctAnswer": "one of the options",
      "explanation": "why the answer is correct, quoting the material",
      "keywords": ["up", "to", "five"]
    }
  ]
}

Rules:
1. "mcq" questions have exactly 4 distinct options and correctAnswer is one of them
2. "short" questions have no options; correctAnswer is under 200 characters
3. "fillblank" questions contain the marker _____ once and correctAnswer is the missing word

Study material:
%s`, req.QuestionCount, req.Difficulty, req.Subject, strings.Join(types, ", "), content)
}

// extractJSON strips reasoning blocks and returns the outermost JSON object.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end > start {
			s = strings.TrimSpace(s[:start] + s[end+len("</think>"):])
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", errors.New("no JSON object found in LLM response")
	}
	return s[start : end+1], nil
}

func toQuiz(req *domain.GenerationRequest, parsed *llmQuiz) (*domain.Quiz, error) {
	if len(parsed.Questions) != req.QuestionCount {
		return nil, domain.NewLLMServiceError(fmt.Errorf("model returned %d questions, want %d", len(parsed.Questions), req.QuestionCount))
	}

	allowed := make(map[domain.QuestionType]struct{}, len(req.QuestionTypes))
	for _, t := range req.QuestionTypes {
		allowed[t] = struct{}{}
	}

	questions := make([]*domain.Question, 0, len(parsed.Questions))
	for i, lq := range parsed.Questions {
		qt, ok := domain.ParseQuestionType(lq.Type)
		if !ok {
			return nil, domain.NewLLMServiceError(fmt.Errorf("question %d has unknown type %q", i, lq.Type))
		}
		if _, ok := allowed[qt]; !ok {
			return nil, domain.NewLLMServiceError(fmt.Errorf("question %d has type %q which was not requested", i, qt))
		}
		if strings.TrimSpace(lq.Question) == "" || strings.TrimSpace(lq.CorrectAnswer) == "" {
			return nil, domain.NewLLMServiceError(fmt.Errorf("question %d is incomplete", i))
		}

		q := &domain.Question{
			Type:          qt,
			Prompt:        strings.TrimSpace(lq.Question),
			CorrectAnswer: strings.TrimSpace(lq.CorrectAnswer),
			Explanation:   strings.TrimSpace(lq.Explanation),
			Difficulty:    req.Difficulty,
			Topic:         req.Subject,
			Keywords:      lq.Keywords,
		}
		if q.Keywords == nil {
			q.Keywords = []string{}
		}
		if len(q.Keywords) > 5 {
			q.Keywords = q.Keywords[:5]
		}
		if qt == domain.QuestionMCQ {
			if err := checkOptions(lq.Options, q.CorrectAnswer); err != nil {
				return nil, domain.NewLLMServiceError(fmt.Errorf("question %d: %w", i, err))
			}
			q.Options = make([]string, len(lq.Options))
			for j, opt := range lq.Options {
				q.Options[j] = strings.TrimSpace(opt)
			}
		}
		questions = append(questions, q)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.Subject + " Quiz"
	}
	return &domain.Quiz{
		Title:      title,
		Difficulty: req.Difficulty,
		TimeLimit:  req.TimeLimit,
		Questions:  questions,
	}, nil
}

func checkOptions(options []string, correct string) error {
	if len(options) != 4 {
		return fmt.Errorf("mcq needs 4 options, got %d", len(options))
	}
	seen := make(map[string]struct{}, 4)
	found := false
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return errors.New("mcq option is empty")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("mcq option %q is duplicated", opt)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(opt) == correct {
			found = true
		}
	}
	if !found {
		return errors.New("mcq correct answer is not among the options")
	}
	return nil
}

var _ domain.QuizGenerationService = (*LLMQuizGenerator)(nil)
