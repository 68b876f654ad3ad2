package handler

import (
	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/logger"
	"quiz-synth/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz handles POST /api/quizzes/generate
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse quiz request body", zap.Error(err))
		return domain.NewInvalidInputError("Request body must be a JSON quiz generation request")
	}

	quiz, err := h.service.Generate(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}
