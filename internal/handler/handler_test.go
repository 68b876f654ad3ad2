package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/extract"
	"quiz-synth/internal/middleware"
	"quiz-synth/internal/quizgen"
	"quiz-synth/internal/service"
	"quiz-synth/internal/topic"
	"quiz-synth/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const studyNotes = `Photosynthesis is the process by which green plants convert light energy into chemical energy.
Chlorophyll is the green pigment that absorbs light in the chloroplast.
The Calvin cycle uses 3 molecules of carbon dioxide to build one sugar molecule.
Mitochondria are known as the powerhouse of the cell.`

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, doc *domain.RawDocument, analyze bool) (*dto.UploadResponse, error) {
	args := m.Called(ctx, doc, analyze)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

func (m *MockDocumentService) PasteText(ctx context.Context, req *dto.PasteTextRequest) (*dto.UploadResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

type MockCache struct {
	mock.Mock
	domain.Cache
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupApp(docs service.DocumentService, quizzes service.QuizService) *fiber.App {
	validator := validation.NewValidator(domain.MaxUploadBytes, nil)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestID())

	documentHandler := NewDocumentHandler(docs)
	quizHandler := NewQuizHandler(quizzes)
	vm := middleware.NewValidationMiddleware(validator)

	api := app.Group("/api")
	api.Post("/documents/upload", vm.ValidateUpload(), documentHandler.Upload)
	api.Post("/documents/text", documentHandler.PasteText)
	api.Post("/quizzes/generate", quizHandler.GenerateQuiz)
	return app
}

func uploadRequest(t *testing.T, filename, contentType string, data []byte, analyze string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if analyze != "" {
		require.NoError(t, w.WriteField("analyze", analyze))
	}
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, path string, v interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDocumentHandler_Upload(t *testing.T) {
	docs := new(MockDocumentService)
	expected := &dto.UploadResponse{Content: "cleaned", WordCount: 1, OriginalName: "notes.txt", FileType: "text/plain"}
	docs.On("Upload", mock.Anything, mock.MatchedBy(func(d *domain.RawDocument) bool {
		return string(d.Data) == "raw notes" && d.ContentType == "text/plain" && d.Filename == "notes.txt"
	}), true).Return(expected, nil).Once()

	resp, err := setupApp(docs, new(MockQuizService)).Test(uploadRequest(t, "notes.txt", "text/plain", []byte("raw notes"), "true"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, *expected, got)
	docs.AssertExpectations(t)
}

func TestDocumentHandler_UploadErrors(t *testing.T) {
	t.Run("unsupported type never reaches the service", func(t *testing.T) {
		docs := new(MockDocumentService)
		resp, err := setupApp(docs, new(MockQuizService)).Test(uploadRequest(t, "slides.pptx", "application/vnd.ms-powerpoint", []byte("x"), ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		docs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service error mapped", func(t *testing.T) {
		docs := new(MockDocumentService)
		docs.On("Upload", mock.Anything, mock.Anything, false).Return(nil, domain.NewPasswordProtectedError()).Once()

		resp, err := setupApp(docs, new(MockQuizService)).Test(uploadRequest(t, "secret.pdf", "application/pdf", []byte("%PDF-1.4"), ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "PASSWORD_PROTECTED", body.Code)
		assert.NotEmpty(t, body.Details["hint"])
	})
}

func TestDocumentHandler_PasteText(t *testing.T) {
	docs := new(MockDocumentService)
	docs.On("PasteText", mock.Anything, &dto.PasteTextRequest{Content: studyNotes, Analyze: true}).
		Return(&dto.UploadResponse{Content: studyNotes, DetectedTopic: "Biology"}, nil).Once()
	app := setupApp(docs, new(MockQuizService))

	resp, err := app.Test(jsonRequest(t, "/api/documents/text", dto.PasteTextRequest{Content: studyNotes, Analyze: true}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	docs.AssertExpectations(t)

	bad := httptest.NewRequest(http.MethodPost, "/api/documents/text", strings.NewReader("{"))
	bad.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(bad)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	quizzes := new(MockQuizService)
	req := dto.GenerateQuizRequest{Subject: "Biology", Content: studyNotes, Difficulty: "easy", QuestionCount: 5, QuestionTypes: []string{"mcq"}}
	quizzes.On("Generate", mock.Anything, &req).Return(&dto.QuizResponse{Title: "Biology Quiz", Difficulty: "easy"}, nil).Once()

	resp, err := setupApp(new(MockDocumentService), quizzes).Test(jsonRequest(t, "/api/quizzes/generate", req))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got dto.QuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Biology Quiz", got.Title)
	quizzes.AssertExpectations(t)
}

func TestQuizHandler_GenerateQuizErrors(t *testing.T) {
	quizzes := new(MockQuizService)
	quizzes.On("Generate", mock.Anything, mock.Anything).
		Return(nil, domain.NewInvalidQuizRequestError(domain.ValidationErrors{domain.NewMissingFieldError("subject")})).Once()
	app := setupApp(new(MockDocumentService), quizzes)

	resp, err := app.Test(jsonRequest(t, "/api/quizzes/generate", dto.GenerateQuizRequest{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_QUIZ_REQUEST", body.Code)

	bad := httptest.NewRequest(http.MethodPost, "/api/quizzes/generate", strings.NewReader("not json"))
	bad.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(bad)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Full pipeline: upload text, then generate a quiz from the extracted content.
func TestEndToEnd_UploadThenGenerate(t *testing.T) {
	analyzer := analysis.NewAnalyzer()
	classifier := topic.NewClassifier(topic.DefaultTable())
	validator := validation.NewValidator(domain.MaxUploadBytes, nil)
	docs := service.NewDocumentService(extract.NewAcquirer(zap.NewNop()), analyzer, classifier, validator)
	generator := quizgen.NewGenerator(zap.NewNop(), classifier, analyzer, quizgen.WithSeed(7))
	quizzes := service.NewQuizService(generator, analyzer, validator, nil, 0)
	app := setupApp(docs, quizzes)

	resp, err := app.Test(uploadRequest(t, "notes.txt", "text/plain", []byte(studyNotes), "1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded dto.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Equal(t, "Biology", uploaded.DetectedTopic)
	require.NotNil(t, uploaded.Analysis)

	resp, err = app.Test(jsonRequest(t, "/api/quizzes/generate", dto.GenerateQuizRequest{
		Subject:       uploaded.DetectedTopic,
		Content:       uploaded.Content,
		Difficulty:    "medium",
		QuestionCount: 6,
		QuestionTypes: []string{"mcq", "short", "fillblank"},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var quiz dto.QuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	assert.Equal(t, "Biology Quiz", quiz.Title)
	require.Len(t, quiz.Questions, 6)
	for _, q := range quiz.Questions {
		if q.Type == "mcq" {
			assert.Len(t, q.Options, 4)
			assert.Contains(t, q.Options, q.CorrectAnswer)
		}
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		cache    domain.Cache
		expected string
	}{
		{"no cache", nil, "disabled"},
		{"cache ok", func() domain.Cache {
			c := new(MockCache)
			c.On("Ping", mock.Anything).Return(nil)
			return c
		}(), "ok"},
		{"cache down", func() domain.Cache {
			c := new(MockCache)
			c.On("Ping", mock.Anything).Return(errors.New("dial tcp: connection refused"))
			return c
		}(), "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler(tt.cache).Check)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body["cache"])
		})
	}
}
