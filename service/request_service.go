package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/models"
	"neighborhelp-backend/repository"

	"github.com/google/uuid"
)

// DateLayout is the accepted format for request dates
const DateLayout = "2006-01-02"

// RequestRepository is the pending request storage used by RequestService
type RequestRepository interface {
	CreateWithProfile(ctx context.Context, profile *models.Profile, request *models.HelpRequest) error
	ListDetails(ctx context.Context) ([]*models.RequestDetail, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.RequestDetail, error)
	Accept(ctx context.Context, id uuid.UUID) (*models.Neighbor, error)
}

// NeighborRepository is the neighbor log storage used by RequestService
type NeighborRepository interface {
	List(ctx context.Context) ([]*models.Neighbor, error)
}

// RequestService handles business logic for help requests
type RequestService struct {
	requestRepo  RequestRepository
	neighborRepo NeighborRepository
	log          logging.Logger
}

// RequestServiceOption is a functional option for RequestService
type RequestServiceOption func(*RequestService)

// WithRequestRepository sets the request repository
func WithRequestRepository(repo RequestRepository) RequestServiceOption {
	return func(s *RequestService) {
		s.requestRepo = repo
	}
}

// WithNeighborRepository sets the neighbor repository
func WithNeighborRepository(repo NeighborRepository) RequestServiceOption {
	return func(s *RequestService) {
		s.neighborRepo = repo
	}
}

// WithRequestLogger sets the logger
func WithRequestLogger(log logging.Logger) RequestServiceOption {
	return func(s *RequestService) {
		s.log = log
	}
}

// NewRequestService creates a new request service
func NewRequestService(opts ...RequestServiceOption) *RequestService {
	s := &RequestService{log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequestRequest represents a submitted help request
type CreateRequestRequest struct {
	Name        string
	Email       string
	RequestType string
	RequestDate string
	Location    string
	Summary     string
}

// CreateRequestResult represents the result of submitting a help request
type CreateRequestResult struct {
	Profile *models.Profile
	Request *models.HelpRequest
}

// CreateRequest stores a requester profile and the request filed under it
func (s *RequestService) CreateRequest(ctx context.Context, req CreateRequestRequest) (*CreateRequestResult, error) {
	if s.requestRepo == nil {
		return nil, errors.New("request repository not set")
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(req.RequestDate))
	if err != nil {
		return nil, ErrInvalidDate
	}

	profile := &models.Profile{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}
	request := &models.HelpRequest{
		RequestType: strings.TrimSpace(req.RequestType),
		RequestDate: date,
		Location:    strings.TrimSpace(req.Location),
		Summary:     strings.TrimSpace(req.Summary),
	}

	if err := s.requestRepo.CreateWithProfile(ctx, profile, request); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "request created", "request_id", request.ID)
	return &CreateRequestResult{Profile: profile, Request: request}, nil
}

// ListRequestsResult represents the pending requests
type ListRequestsResult struct {
	Requests []*models.RequestDetail
}

// ListRequests lists every pending request with its profile
func (s *RequestService) ListRequests(ctx context.Context) (*ListRequestsResult, error) {
	if s.requestRepo == nil {
		return nil, errors.New("request repository not set")
	}

	details, err := s.requestRepo.ListDetails(ctx)
	if err != nil {
		return nil, err
	}

	return &ListRequestsResult{Requests: details}, nil
}

// GetRequestRequest represents a request to view one pending request
type GetRequestRequest struct {
	ID uuid.UUID
}

// GetRequestResult represents one pending request
type GetRequestResult struct {
	Request *models.RequestDetail
}

// GetRequest retrieves a pending request by ID
func (s *RequestService) GetRequest(ctx context.Context, req GetRequestRequest) (*GetRequestResult, error) {
	if s.requestRepo == nil {
		return nil, errors.New("request repository not set")
	}

	detail, err := s.requestRepo.GetDetail(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &GetRequestResult{Request: detail}, nil
}

// AcceptRequestRequest names the pending request to accept
type AcceptRequestRequest struct {
	ID uuid.UUID
}

// AcceptRequestResult carries the neighbor record created by the accept
type AcceptRequestResult struct {
	Neighbor *models.Neighbor
}

// AcceptRequest archives a pending request as a neighbor record and removes
// it from the pending set. Returns ErrNotFound when there is no such request;
// in that case nothing is written.
func (s *RequestService) AcceptRequest(ctx context.Context, req AcceptRequestRequest) (*AcceptRequestResult, error) {
	if s.requestRepo == nil {
		return nil, errors.New("request repository not set")
	}

	neighbor, err := s.requestRepo.Accept(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info(ctx, "request accepted", "request_id", req.ID, "neighbor_id", neighbor.ID)
	return &AcceptRequestResult{Neighbor: neighbor}, nil
}

// ListNeighborsResult represents the neighbor log
type ListNeighborsResult struct {
	Neighbors []*models.Neighbor
}

// ListNeighbors lists the accepted requests
func (s *RequestService) ListNeighbors(ctx context.Context) (*ListNeighborsResult, error) {
	if s.neighborRepo == nil {
		return nil, errors.New("neighbor repository not set")
	}

	neighbors, err := s.neighborRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ListNeighborsResult{Neighbors: neighbors}, nil
}
