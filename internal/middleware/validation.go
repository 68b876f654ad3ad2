package middleware

import (
	"mime/multipart"

	"quiz-synth/internal/domain"
	"quiz-synth/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	uploadFileKey        = "upload_file"
	uploadContentTypeKey = "upload_content_type"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateUpload checks the multipart "file" part's type and size before the
// handler reads it.
func (vm *ValidationMiddleware) ValidateUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return domain.ValidationErrors{domain.NewMissingFieldError("file")}
		}

		contentType := domain.ResolveContentType(fh.Header.Get(fiber.HeaderContentType), fh.Filename)
		if err := vm.validator.ValidateUpload(contentType, fh.Size); err != nil {
			return err
		}

		c.Locals(uploadFileKey, fh)
		c.Locals(uploadContentTypeKey, contentType)
		return c.Next()
	}
}

// UploadFromCtx returns the file header and resolved content type stored by ValidateUpload.
func UploadFromCtx(c *fiber.Ctx) (*multipart.FileHeader, string, bool) {
	fh, ok := c.Locals(uploadFileKey).(*multipart.FileHeader)
	if !ok {
		return nil, "", false
	}
	contentType, _ := c.Locals(uploadContentTypeKey).(string)
	return fh, contentType, true
}
