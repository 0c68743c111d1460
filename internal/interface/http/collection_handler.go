package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/pkg/response"
)

// CollectionHandler exposes one document collection over HTTP.
type CollectionHandler struct {
	Svc    *application.CollectionService
	Logger *logrus.Logger
}

func NewCollectionHandler(svc *application.CollectionService, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{Svc: svc, Logger: logger}
}

func (h *CollectionHandler) List(c *gin.Context) {
	h.writeDocs(c, func() ([]entity.Document, error) { return h.Svc.List(c.Request.Context()) })
}

// Latest returns the n newest documents.
func (h *CollectionHandler) Latest(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.writeDocs(c, func() ([]entity.Document, error) { return h.Svc.Latest(c.Request.Context(), n) })
	}
}

// FilterBy lists documents whose field equals query parameter param.
// Without the parameter nothing matches.
func (h *CollectionHandler) FilterBy(param, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := c.Query(param)
		if v == "" {
			c.JSON(http.StatusOK, []entity.Document{})
			return
		}
		filter := map[string]any{field: v}
		h.writeDocs(c, func() ([]entity.Document, error) { return h.Svc.Find(c.Request.Context(), filter) })
	}
}

func (h *CollectionHandler) Search(c *gin.Context) {
	h.writeDocs(c, func() ([]entity.Document, error) { return h.Svc.Search(c.Request.Context(), c.Query("q")) })
}

func (h *CollectionHandler) Get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *CollectionHandler) Insert(c *gin.Context) {
	var doc entity.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	id, err := h.Svc.Insert(c.Request.Context(), doc)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": id})
}

// Increment adds one to field of the document :id.
func (h *CollectionHandler) Increment(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Svc.Increment(c.Request.Context(), c.Param("id"), field, 1); err != nil {
			writeError(c, h.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"acknowledged": true, "matchedCount": 1, "modifiedCount": 1})
	}
}

func (h *CollectionHandler) writeDocs(c *gin.Context, load func() ([]entity.Document, error)) {
	docs, err := load()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}
