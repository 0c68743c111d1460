package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/pkg/response"
)

// DefaultMaxUploadBytes caps a single video upload.
const DefaultMaxUploadBytes int64 = 512 << 20

type MediaHandler struct {
	Svc      *application.MediaService
	MaxBytes int64
	Logger   *logrus.Logger
}

func NewMediaHandler(svc *application.MediaService, maxBytes int64, logger *logrus.Logger) *MediaHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &MediaHandler{Svc: svc, MaxBytes: maxBytes, Logger: logger}
}

// UploadVideo accepts multipart fields "file" and "title".
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	doc, err := h.Svc.UploadVideo(c.Request.Context(), id.Email, application.UploadVideoInput{
		Title:       c.PostForm("title"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}
