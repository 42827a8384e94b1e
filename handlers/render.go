package handlers

import (
	"net/http"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/middleware"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// render writes an HTML page, exposing the logged-in account to the layout
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if account, ok := middleware.CurrentAccount(c); ok {
		data["Account"] = &account
	}
	c.HTML(status, page, data)
}

// internalError logs err and answers with a plain 500. Error details never
// reach the client.
func internalError(c *gin.Context, log logging.Logger, msg string, err error) {
	log.Error(c.Request.Context(), msg, "error", err, "path", c.Request.URL.Path)
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, internalErrorMessage)
}

func notFound(c *gin.Context, message string) {
	render(c, http.StatusNotFound, "not_found.html", gin.H{
		"Title":   "Not found",
		"Message": message,
	})
}
