package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hserranome/drawaday-api/internal/models"
	"github.com/hserranome/drawaday-api/internal/repositories"
	"github.com/hserranome/drawaday-api/pkg/password"
	"github.com/hserranome/drawaday-api/pkg/rabbitmq"
	"github.com/hserranome/drawaday-api/pkg/token"
)

// Domain errors surfaced by AuthService. Handlers map these to
// transport status codes; everything else is an unexpected failure.
var (
	// ErrEmailTaken means a user with that email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so a
	// caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService composes the user store, the password hasher, and the
// token manager into signup, login, and token-subject resolution.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   *password.Hasher
	tokens   *token.Manager
	mqClient *rabbitmq.Client // optional; nil disables event publishing
}

// NewAuthService creates a new AuthService. mqClient may be nil when no
// broker is configured.
func NewAuthService(userRepo repositories.UserRepository, hasher *password.Hasher, tokens *token.Manager, mqClient *rabbitmq.Client) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mqClient: mqClient,
	}
}

// Signup registers a new user, hashes their password, persists the
// record, and issues a token bound to the new identity.
func (s *AuthService) Signup(email, plaintext string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}

	digest, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: digest,
	}
	if err := s.userRepo.Create(user); err != nil {
		// The pre-check above is not atomic with the insert; a
		// concurrent signup with the same email loses at the unique
		// index and still has to look like a duplicate.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.publishUserRegistered(user)

	return user, tokenString, nil
}

// Login verifies credentials and issues a fresh token. An unknown email
// and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(email, plaintext string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, tokenString, nil
}

// ValidateUser resolves the identity embedded in a verified token back
// to a current user record. A token for a deleted account fails here
// even though its signature still checks out.
func (s *AuthService) ValidateUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// publishUserRegistered emits a user.registered event. Publishing is
// best-effort: a broker failure must not fail the signup that already
// committed.
func (s *AuthService) publishUserRegistered(user *models.User) {
	if s.mqClient == nil {
		return
	}
	event := rabbitmq.UserRegisteredEvent{
		UserID:       user.ID,
		Email:        user.Email,
		RegisteredAt: time.Now(),
	}
	if err := s.mqClient.PublishUserRegistered(event); err != nil {
		log.Printf("Warning: failed to publish user registered event for user %s: %v", user.ID, err)
	}
}
