// Package extract converts uploaded documents into cleaned text.
package extract

import (
	"errors"
	"unicode/utf8"

	"quiz-synth/internal/domain"
	"quiz-synth/internal/textclean"

	"go.uber.org/zap"
)

const (
	minContentChars = 50
	minContentWords = 10
)

// Acquirer implements domain.DocumentAcquirer.
type Acquirer struct {
	maxBytes int
	allowed  map[string]struct{}
	pdf      *StrategyChain
	logger   *zap.Logger
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithMaxBytes overrides the upload size limit.
func WithMaxBytes(n int) Option {
	return func(a *Acquirer) {
		if n > 0 {
			a.maxBytes = n
		}
	}
}

// WithAllowedTypes overrides the content type allow-list.
func WithAllowedTypes(types []string) Option {
	return func(a *Acquirer) {
		if len(types) == 0 {
			return
		}
		a.allowed = make(map[string]struct{}, len(types))
		for _, t := range types {
			a.allowed[domain.NormalizeContentType(t)] = struct{}{}
		}
	}
}

// WithPDFChain replaces the default PDF strategy chain.
func WithPDFChain(chain *StrategyChain) Option {
	return func(a *Acquirer) {
		a.pdf = chain
	}
}

// NewAcquirer creates an Acquirer with the default allow-list, size limit and PDF strategies.
func NewAcquirer(logger *zap.Logger, opts ...Option) *Acquirer {
	a := &Acquirer{
		maxBytes: domain.MaxUploadBytes,
		logger:   logger,
	}
	WithAllowedTypes(domain.DefaultAllowedContentTypes)(a)
	for _, opt := range opts {
		opt(a)
	}
	if a.pdf == nil {
		a.pdf = NewStrategyChain(logger, DefaultPDFStrategies("")...)
	}
	return a
}

// Acquire extracts, cleans and validates the text of a raw document.
// Every returned error is a *domain.DomainError.
func (a *Acquirer) Acquire(doc *domain.RawDocument) (*domain.ParsedText, error) {
	contentType := domain.NormalizeContentType(doc.ContentType)
	if _, ok := a.allowed[contentType]; !ok {
		return nil, domain.NewUnsupportedFileTypeError(doc.ContentType)
	}
	if doc.Size() > a.maxBytes {
		return nil, domain.NewFileTooLargeError(doc.Size(), a.maxBytes)
	}

	raw, err := a.extractRaw(contentType, doc.Data)
	if err != nil {
		a.logger.Warn("Document extraction failed",
			zap.String("filename", doc.Filename),
			zap.String("content_type", contentType),
			zap.Error(err),
		)
		return nil, err
	}

	parsed, err := finish(raw, doc.Filename, contentType)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Document acquired",
		zap.String("filename", doc.Filename),
		zap.String("content_type", contentType),
		zap.Int("bytes", doc.Size()),
		zap.Int("words", parsed.WordCount),
	)
	return parsed, nil
}

// AcquireText cleans and validates pasted text.
func (a *Acquirer) AcquireText(text, name string) (*domain.ParsedText, error) {
	if len(text) > a.maxBytes {
		return nil, domain.NewFileTooLargeError(len(text), a.maxBytes)
	}
	return finish(text, name, domain.ContentTypePlainText)
}

func (a *Acquirer) extractRaw(contentType string, data []byte) (string, error) {
	switch contentType {
	case domain.ContentTypePlainText:
		return decodeText(data)
	case domain.ContentTypeMarkdown, domain.ContentTypeXMarkdown:
		text, err := decodeText(data)
		if err != nil {
			return "", err
		}
		return stripMarkdown(text), nil
	case domain.ContentTypeDocx:
		return extractDocx(data)
	case domain.ContentTypeDoc:
		return extractDoc(data)
	case domain.ContentTypePDF:
		return a.extractPDF(data)
	default:
		return "", domain.NewUnsupportedFileTypeError(contentType)
	}
}

func (a *Acquirer) extractPDF(data []byte) (string, error) {
	if !hasPDFHeader(data) {
		return "", domain.NewCorruptedDocumentError(errMissingPDFHeader)
	}
	text, err := a.pdf.Extract(data)
	if err == nil {
		return text, nil
	}
	if isEncryptedPDF(data) {
		return "", domain.NewPasswordProtectedError()
	}
	var attempts []string
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		attempts = exhausted.Attempts
	}
	return "", domain.NewAllStrategiesFailedError(attempts)
}

func finish(raw, name, fileType string) (*domain.ParsedText, error) {
	content := textclean.Clean(raw)
	chars := utf8.RuneCountInString(content)
	words := textclean.CountWords(content)
	if chars < minContentChars || words < minContentWords {
		return nil, domain.NewInsufficientContentError(chars, words)
	}
	return &domain.ParsedText{
		Content:        content,
		WordCount:      words,
		CharacterCount: chars,
		OriginalName:   name,
		FileType:       fileType,
	}, nil
}

var _ domain.DocumentAcquirer = (*Acquirer)(nil)
