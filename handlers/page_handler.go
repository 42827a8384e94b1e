package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the informational pages
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/all_requests")
}

// About handles GET /about
func (h *PageHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

// Help handles GET /help
func (h *PageHandler) Help(c *gin.Context) {
	render(c, http.StatusOK, "help.html", gin.H{"Title": "Help"})
}

// NotFound answers every unmatched route
func (h *PageHandler) NotFound(c *gin.Context) {
	notFound(c, "")
}
