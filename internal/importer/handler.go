package importer

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

// Handler accepts resume uploads and returns their extracted text.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches import routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/imports/resume", h.importResume)
}

func (h *Handler) importResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}

	text, err := ExtractText(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		var unsupported *UnsupportedInputError
		if errors.As(err, &unsupported) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "Only plain text and PDF files are supported.", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "Could not read text from the file.", nil)
		return
	}

	respond.OK(c, gin.H{
		"fileName": fileHeader.Filename,
		"text":     text,
	})
}
