package validation

import (
	"strings"
	"unicode/utf8"

	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
)

const (
	maxSubjectLength = 50
	maxTitleLength   = 100
	minContentLength = 50
	minQuestionCount = 5
	maxQuestionCount = 20
	minTimeLimit     = 5
	maxTimeLimit     = 120
)

// Validator provides request validation functionality
type Validator struct {
	maxBytes int
	allowed  map[string]struct{}
}

// NewValidator creates a validator for uploads up to maxBytes of the allowed content types.
func NewValidator(maxBytes int, allowedTypes []string) *Validator {
	if maxBytes <= 0 {
		maxBytes = domain.MaxUploadBytes
	}
	if len(allowedTypes) == 0 {
		allowedTypes = domain.DefaultAllowedContentTypes
	}
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[domain.NormalizeContentType(t)] = struct{}{}
	}
	return &Validator{maxBytes: maxBytes, allowed: allowed}
}

// ValidateUpload checks the declared type and size of an upload before any bytes are read.
func (v *Validator) ValidateUpload(contentType string, size int64) error {
	if _, ok := v.allowed[domain.NormalizeContentType(contentType)]; !ok {
		return domain.NewUnsupportedFileTypeError(contentType)
	}
	if size > int64(v.maxBytes) {
		return domain.NewFileTooLargeError(int(size), v.maxBytes)
	}
	return nil
}

// ValidatePasteText validates the pasted-text request
func (v *Validator) ValidatePasteText(req *dto.PasteTextRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.Content) == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	} else if len(req.Content) > v.maxBytes {
		errors = append(errors, domain.NewOutOfRangeError("content", len(req.Content), 1, v.maxBytes))
	}
	return errors
}

// ValidateGenerateQuizRequest validates the quiz generation request and returns it in domain form.
// An empty difficulty means medium; repeated question types are collapsed.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) (*domain.GenerationRequest, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		errors = append(errors, domain.NewMissingFieldError("subject"))
	} else if n := utf8.RuneCountInString(subject); n > maxSubjectLength {
		errors = append(errors, domain.NewOutOfRangeError("subject", n, 1, maxSubjectLength))
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	} else if n := utf8.RuneCountInString(content); n < minContentLength {
		errors = append(errors, domain.ValidationError{
			Field:   "content",
			Code:    domain.CodeOutOfRange,
			Message: "content must be at least 50 characters",
		})
	}

	difficulty := domain.DifficultyMedium
	if strings.TrimSpace(req.Difficulty) != "" {
		d, ok := domain.ParseDifficulty(req.Difficulty)
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
		difficulty = d
	}

	if req.QuestionCount < minQuestionCount || req.QuestionCount > maxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("questionCount", req.QuestionCount, minQuestionCount, maxQuestionCount))
	}

	types, typeErrs := questionTypes(req.QuestionTypes)
	errors = append(errors, typeErrs...)

	title := strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(title); n > maxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", n, 0, maxTitleLength))
	}

	if req.TimeLimit != 0 && (req.TimeLimit < minTimeLimit || req.TimeLimit > maxTimeLimit) {
		errors = append(errors, domain.NewOutOfRangeError("timeLimit", req.TimeLimit, minTimeLimit, maxTimeLimit))
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return &domain.GenerationRequest{
		Subject:       subject,
		Content:       content,
		Difficulty:    difficulty,
		QuestionCount: req.QuestionCount,
		QuestionTypes: types,
		Title:         title,
		TimeLimit:     req.TimeLimit,
	}, nil
}

func questionTypes(raw []string) ([]domain.QuestionType, domain.ValidationErrors) {
	if len(raw) == 0 {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("questionTypes")}
	}

	var errors domain.ValidationErrors
	seen := make(map[domain.QuestionType]struct{}, len(raw))
	types := make([]domain.QuestionType, 0, len(raw))
	for _, s := range raw {
		qt, ok := domain.ParseQuestionType(s)
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError("questionTypes", s))
			continue
		}
		if _, dup := seen[qt]; dup {
			continue
		}
		seen[qt] = struct{}{}
		types = append(types, qt)
	}
	return types, errors
}
