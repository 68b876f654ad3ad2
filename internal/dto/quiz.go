package dto

import "quiz-synth/internal/domain"

// GenerateQuizRequest is the body of POST /api/quizzes/generate
type GenerateQuizRequest struct {
	Subject       string   `json:"subject"`
	Content       string   `json:"content"`
	Difficulty    string   `json:"difficulty"`
	QuestionCount int      `json:"questionCount"`
	QuestionTypes []string `json:"questionTypes"`
	Title         string   `json:"title,omitempty"`
	TimeLimit     int      `json:"timeLimit,omitempty"`
}

// QuestionResponse represents a generated question in the API response
type QuestionResponse struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
	Keywords      []string `json:"keywords"`
}

// QuizResponse represents a generated quiz in the API response
type QuizResponse struct {
	Title      string             `json:"title"`
	Difficulty string             `json:"difficulty"`
	TimeLimit  int                `json:"timeLimit,omitempty"`
	Questions  []QuestionResponse `json:"questions"`
}

// NewQuizResponse converts a domain quiz into its wire shape.
func NewQuizResponse(quiz *domain.Quiz) *QuizResponse {
	resp := &QuizResponse{
		Title:      quiz.Title,
		Difficulty: string(quiz.Difficulty),
		TimeLimit:  quiz.TimeLimit,
		Questions:  make([]QuestionResponse, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		keywords := q.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		resp.Questions = append(resp.Questions, QuestionResponse{
			Type:          string(q.Type),
			Question:      q.Prompt,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    string(q.Difficulty),
			Topic:         q.Topic,
			Keywords:      keywords,
		})
	}
	return resp
}
