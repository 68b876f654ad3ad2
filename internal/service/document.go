package service

import (
	"context"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/logger"
	"quiz-synth/internal/topic"
	"quiz-synth/internal/validation"

	"go.uber.org/zap"
)

// DocumentService defines the interface for turning uploads into study text
type DocumentService interface {
	Upload(ctx context.Context, doc *domain.RawDocument, analyze bool) (*dto.UploadResponse, error)
	PasteText(ctx context.Context, req *dto.PasteTextRequest) (*dto.UploadResponse, error)
}

type documentService struct {
	acquirer   domain.DocumentAcquirer
	analyzer   *analysis.Analyzer
	classifier *topic.Classifier
	validator  *validation.Validator
}

// NewDocumentService creates a new instance of documentService
func NewDocumentService(
	acquirer domain.DocumentAcquirer,
	analyzer *analysis.Analyzer,
	classifier *topic.Classifier,
	validator *validation.Validator,
) DocumentService {
	return &documentService{
		acquirer:   acquirer,
		analyzer:   analyzer,
		classifier: classifier,
		validator:  validator,
	}
}

// Upload validates and extracts an uploaded document. With analyze set, the
// response also carries structural statistics and the detected topic.
func (s *documentService) Upload(ctx context.Context, doc *domain.RawDocument, analyze bool) (*dto.UploadResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpload(doc.ContentType, int64(doc.Size())); err != nil {
		return nil, err
	}

	parsed, err := s.acquirer.Acquire(doc)
	if err != nil {
		logger.Get().Warn("Document extraction failed",
			zap.String("filename", doc.Filename),
			zap.String("content_type", doc.ContentType),
			zap.Int("size", doc.Size()),
			zap.Error(err))
		return nil, err
	}

	logger.Get().Info("Document extracted",
		zap.String("filename", doc.Filename),
		zap.String("content_type", parsed.FileType),
		zap.Int("words", parsed.WordCount))
	return s.respond(parsed, analyze), nil
}

// PasteText runs pasted text through the same cleaning and checks as an upload.
func (s *documentService) PasteText(ctx context.Context, req *dto.PasteTextRequest) (*dto.UploadResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidatePasteText(req); len(errs) > 0 {
		return nil, errs
	}

	name := req.Name
	if name == "" {
		name = "pasted-text"
	}
	parsed, err := s.acquirer.AcquireText(req.Content, name)
	if err != nil {
		return nil, err
	}
	return s.respond(parsed, req.Analyze), nil
}

func (s *documentService) respond(parsed *domain.ParsedText, analyze bool) *dto.UploadResponse {
	if !analyze {
		return dto.NewUploadResponse(parsed, nil, "")
	}
	return dto.NewUploadResponse(parsed, s.analyzer.Analyze(parsed.Content), s.classifier.Classify(parsed.Content))
}
