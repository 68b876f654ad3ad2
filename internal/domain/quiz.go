package domain

import "strings"

// Difficulty is the requested or estimated level of a quiz.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyAdaptive Difficulty = "adaptive"
)

// ParseDifficulty converts a free-form string into a Difficulty.
func ParseDifficulty(diff string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(diff))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	case DifficultyAdaptive:
		return DifficultyAdaptive, true
	default:
		return "", false
	}
}

// QuestionType is the kind of question to synthesize.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionShort     QuestionType = "short"
	QuestionFillBlank QuestionType = "fillblank"
)

// ParseQuestionType validates a question type string.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch QuestionType(strings.ToLower(strings.TrimSpace(s))) {
	case QuestionMCQ:
		return QuestionMCQ, true
	case QuestionShort:
		return QuestionShort, true
	case QuestionFillBlank:
		return QuestionFillBlank, true
	default:
		return "", false
	}
}

// FactType is the semantic tag inferred for a key fact.
type FactType string

const (
	FactDefinition FactType = "definition"
	FactProcess    FactType = "process"
	FactNumerical  FactType = "numerical"
	FactCausal     FactType = "causal"
	FactFormula    FactType = "formula"
	FactGeneral    FactType = "general"
)

// KeyFact is a sentence judged likely to support a quiz question.
type KeyFact struct {
	Text     string
	Position int
	Type     FactType
	Score    int
	Keywords []string
}

// Question is a single synthesized quiz item. Options is set only for MCQ.
type Question struct {
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	Topic         string       `json:"topic"`
	Keywords      []string     `json:"keywords"`
}

// Quiz is the terminal artifact of synthesis.
type Quiz struct {
	Title      string      `json:"title"`
	Difficulty Difficulty  `json:"difficulty"`
	TimeLimit  int         `json:"timeLimit,omitempty"`
	Questions  []*Question `json:"questions"`
}

// GenerationRequest carries a validated quiz generation request into a QuizGenerationService.
type GenerationRequest struct {
	Subject       string
	Content       string
	Difficulty    Difficulty
	QuestionCount int
	QuestionTypes []QuestionType
	Title         string
	TimeLimit     int
}
