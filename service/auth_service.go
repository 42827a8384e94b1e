package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"neighborhelp-backend/auth"
	"neighborhelp-backend/logging"
	"neighborhelp-backend/models"
	"neighborhelp-backend/repository"
	"neighborhelp-backend/session"
)

// AccountRepository is the account storage used by AuthService
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(hashedPassword, password string) error
	CheckMissing(password string)
}

// AuthService handles registration, login and sessions
type AuthService struct {
	accountRepo AccountRepository
	hasher      PasswordHasher
	sessions    session.Store
	log         logging.Logger
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// WithAccountRepository sets the account repository
func WithAccountRepository(repo AccountRepository) AuthServiceOption {
	return func(s *AuthService) {
		s.accountRepo = repo
	}
}

// WithPasswordHasher sets the password hasher
func WithPasswordHasher(hasher PasswordHasher) AuthServiceOption {
	return func(s *AuthService) {
		s.hasher = hasher
	}
}

// WithSessionStore sets the session store
func WithSessionStore(store session.Store) AuthServiceOption {
	return func(s *AuthService) {
		s.sessions = store
	}
}

// WithAuthLogger sets the logger
func WithAuthLogger(log logging.Logger) AuthServiceOption {
	return func(s *AuthService) {
		s.log = log
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Name     string
	Email    string
	Address  string
	Contact  string
	Password string
}

// RegisterResult represents the result of creating an account
type RegisterResult struct {
	Account *models.Account
}

// Register hashes the password and stores a new account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if s.accountRepo == nil || s.hasher == nil {
		return nil, errors.New("auth service not configured")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}

	account := &models.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Address:      strings.TrimSpace(req.Address),
		Contact:      strings.TrimSpace(req.Contact),
		PasswordHash: hash,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info(ctx, "account registered", "account_id", account.ID)
	return &RegisterResult{Account: account}, nil
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult carries the session opened by a successful login
type LoginResult struct {
	Session *models.Session
}

// Login checks the credentials and opens a session. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if s.accountRepo == nil || s.hasher == nil || s.sessions == nil {
		return nil, errors.New("auth service not configured")
	}

	account, err := s.accountRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.CheckMissing(req.Password)
			s.log.Info(ctx, "login rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Check(account.PasswordHash, req.Password); err != nil {
		s.log.Info(ctx, "login rejected")
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, account.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info(ctx, "login succeeded", "account_id", account.ID)
	return &LoginResult{Session: sess}, nil
}

// Logout destroys the session. An empty or unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || s.sessions == nil {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate returns the live session for a token, or session.ErrNotFound
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" || s.sessions == nil {
		return nil, session.ErrNotFound
	}
	return s.sessions.Get(ctx, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
