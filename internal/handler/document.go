package handler

import (
	"io"
	"strconv"

	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/logger"
	"quiz-synth/internal/middleware"
	"quiz-synth/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DocumentHandler handles document upload HTTP requests
type DocumentHandler struct {
	service service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload handles POST /api/documents/upload. It must run after
// middleware.ValidationMiddleware.ValidateUpload.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fh, contentType, ok := middleware.UploadFromCtx(c)
	if !ok {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	f, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	analyze, _ := strconv.ParseBool(c.FormValue("analyze"))
	resp, err := h.service.Upload(c.UserContext(), &domain.RawDocument{
		Data:        data,
		ContentType: contentType,
		Filename:    fh.Filename,
	}, analyze)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PasteText handles POST /api/documents/text
func (h *DocumentHandler) PasteText(c *fiber.Ctx) error {
	var req dto.PasteTextRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse paste text body", zap.Error(err))
		return domain.NewInvalidInputError("Request body must be JSON with a content field")
	}

	resp, err := h.service.PasteText(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
