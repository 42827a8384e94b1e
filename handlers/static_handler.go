package handlers

import (
	"errors"
	"net/http"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/storage"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves static assets out of the configured storage
type StaticHandler struct {
	storage storage.Storage
	log     logging.Logger
}

func NewStaticHandler(storage storage.Storage, log logging.Logger) *StaticHandler {
	return &StaticHandler{
		storage: storage,
		log:     log,
	}
}

// Serve handles GET /static/*filepath
func (h *StaticHandler) Serve(c *gin.Context) {
	key := c.Param("filepath")

	rc, err := h.storage.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		internalError(c, h.log, "failed to open asset", err)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	c.DataFromReader(http.StatusOK, -1, storage.ContentType(key), rc, nil)
}
