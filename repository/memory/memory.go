// Package memory holds in-process implementations of the repositories. They
// back local runs without PostgreSQL (DB_DRIVER=memory) and the tests of the
// layers above the database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"neighborhelp-backend/models"
	"neighborhelp-backend/repository"

	"github.com/google/uuid"
)

// Store is one in-memory dataset shared by the three repositories
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*models.Account // keyed by email
	profiles  map[uuid.UUID]*models.Profile
	requests  map[uuid.UUID]*models.HelpRequest
	neighbors []*models.Neighbor
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*models.Account),
		profiles: make(map[uuid.UUID]*models.Profile),
		requests: make(map[uuid.UUID]*models.HelpRequest),
		now:      time.Now,
	}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{s: s}
}

func (s *Store) Requests() *RequestRepository {
	return &RequestRepository{s: s}
}

func (s *Store) Neighbors() *NeighborRepository {
	return &NeighborRepository{s: s}
}

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(account.Email)
	if _, exists := r.s.accounts[key]; exists {
		return repository.ErrDuplicateEmail
	}

	account.ID = uuid.New()
	account.CreatedAt = r.s.now()
	copied := *account
	r.s.accounts[key] = &copied
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, exists := r.s.accounts[strings.ToLower(email)]
	if !exists {
		return nil, repository.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

type RequestRepository struct {
	s *Store
}

func (r *RequestRepository) CreateWithProfile(ctx context.Context, profile *models.Profile, request *models.HelpRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	profile.ID = uuid.New()
	profile.CreatedAt = now
	request.ID = uuid.New()
	request.ProfileID = profile.ID
	request.CreatedAt = now

	storedProfile := *profile
	storedRequest := *request
	r.s.profiles[profile.ID] = &storedProfile
	r.s.requests[request.ID] = &storedRequest
	return nil
}

func (r *RequestRepository) ListDetails(ctx context.Context) ([]*models.RequestDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	details := make([]*models.RequestDetail, 0, len(r.s.requests))
	for _, req := range r.s.requests {
		details = append(details, r.s.detail(req))
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})
	return details, nil
}

func (r *RequestRepository) GetDetail(ctx context.Context, id uuid.UUID) (*models.RequestDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, exists := r.s.requests[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return r.s.detail(req), nil
}

// Accept holds the write lock for the whole move, so it is atomic with
// respect to every other repository call.
func (r *RequestRepository) Accept(ctx context.Context, id uuid.UUID) (*models.Neighbor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, exists := r.s.requests[id]
	if !exists {
		return nil, repository.ErrNotFound
	}

	n := models.NeighborFromDetail(r.s.detail(req))
	n.ID = uuid.New()
	n.AcceptedAt = r.s.now()
	r.s.neighbors = append(r.s.neighbors, n)
	delete(r.s.requests, id)

	copied := *n
	return &copied, nil
}

type NeighborRepository struct {
	s *Store
}

func (r *NeighborRepository) List(ctx context.Context) ([]*models.Neighbor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	neighbors := make([]*models.Neighbor, 0, len(r.s.neighbors))
	for i := len(r.s.neighbors) - 1; i >= 0; i-- {
		copied := *r.s.neighbors[i]
		neighbors = append(neighbors, &copied)
	}
	return neighbors, nil
}

// detail joins a request with its profile. Caller holds the lock.
func (s *Store) detail(req *models.HelpRequest) *models.RequestDetail {
	d := &models.RequestDetail{
		ID:          req.ID,
		ProfileID:   req.ProfileID,
		RequestType: req.RequestType,
		RequestDate: req.RequestDate,
		Location:    req.Location,
		Summary:     req.Summary,
		CreatedAt:   req.CreatedAt,
	}
	if p, ok := s.profiles[req.ProfileID]; ok {
		d.Name = p.Name
		d.Email = p.Email
	}
	return d
}
