package domain

import "context"

// QuizGenerationService turns study content into a quiz.
// The offline synthesizer and the LLM-backed generator both implement it with the same output contract.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, req *GenerationRequest) (*Quiz, error)
}

// DocumentAcquirer converts a raw upload into cleaned text.
type DocumentAcquirer interface {
	Acquire(doc *RawDocument) (*ParsedText, error)
	AcquireText(text, name string) (*ParsedText, error)
}
