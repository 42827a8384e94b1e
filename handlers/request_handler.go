package handlers

import (
	"errors"
	"net/http"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler handles HTTP requests for help requests and neighbors
type RequestHandler struct {
	requestService *service.RequestService
	log            logging.Logger
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *service.RequestService, log logging.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		log:            log,
	}
}

// CreateRequestForm represents the help request form
type CreateRequestForm struct {
	Name        string `form:"name" binding:"required,max=255"`
	Email       string `form:"email" binding:"required,email,max=255"`
	RequestType string `form:"request_type" binding:"required,max=100"`
	RequestDate string `form:"request_date" binding:"required"`
	Location    string `form:"location" binding:"required,max=255"`
	Summary     string `form:"summary" binding:"required,max=5000"`
}

// ShowCreateRequest handles GET /create_request
func (h *RequestHandler) ShowCreateRequest(c *gin.Context) {
	render(c, http.StatusOK, "create_request.html", gin.H{"Title": "Ask for help"})
}

// CreateRequest handles POST /create_request
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var form CreateRequestForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCreateRequest(c, &form, "Please fill in every field with a valid email address. Types are limited to 100 characters, names and locations to 255.")
		return
	}

	_, err := h.requestService.CreateRequest(c.Request.Context(), service.CreateRequestRequest{
		Name:        form.Name,
		Email:       form.Email,
		RequestType: form.RequestType,
		RequestDate: form.RequestDate,
		Location:    form.Location,
		Summary:     form.Summary,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			h.renderCreateRequest(c, &form, "Date must be in YYYY-MM-DD format.")
			return
		}
		internalError(c, h.log, "failed to create request", err)
		return
	}

	c.Redirect(http.StatusFound, "/all_requests")
}

func (h *RequestHandler) renderCreateRequest(c *gin.Context, form *CreateRequestForm, message string) {
	render(c, http.StatusBadRequest, "create_request.html", gin.H{
		"Title": "Ask for help",
		"Form":  form,
		"Error": message,
	})
}

// ListRequests handles GET /all_requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	result, err := h.requestService.ListRequests(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "failed to list requests", err)
		return
	}

	render(c, http.StatusOK, "all_requests.html", gin.H{
		"Title":    "Open requests",
		"Requests": result.Requests,
	})
}

// GetRequest handles GET /request_details/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c, "Request not found.")
		return
	}

	result, err := h.requestService.GetRequest(c.Request.Context(), service.GetRequestRequest{ID: id})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c, "Request not found.")
			return
		}
		internalError(c, h.log, "failed to get request", err)
		return
	}

	render(c, http.StatusOK, "request_details.html", gin.H{
		"Title":   "Request details",
		"Request": result.Request,
	})
}

// AcceptRequest handles POST /accept_request/:id
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c, "Request not found.")
		return
	}

	_, err = h.requestService.AcceptRequest(c.Request.Context(), service.AcceptRequestRequest{ID: id})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c, "Request not found.")
			return
		}
		internalError(c, h.log, "failed to accept request", err)
		return
	}

	c.Redirect(http.StatusFound, "/all_requests")
}

// ListNeighbors handles GET /my_neighbors
func (h *RequestHandler) ListNeighbors(c *gin.Context) {
	result, err := h.requestService.ListNeighbors(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "failed to list neighbors", err)
		return
	}

	render(c, http.StatusOK, "my_neighbors.html", gin.H{
		"Title":     "My neighbors",
		"Neighbors": result.Neighbors,
	})
}
