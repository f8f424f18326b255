package repositories

import (
	"errors"

	"github.com/hserranome/drawaday-api/internal/models"
)

// Sentinel errors returned by UserRepository implementations.
// Callers branch on these with errors.Is rather than matching messages.
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create would violate the
	// unique email index. The database is the authority here: the
	// check-then-insert sequence in the service is not atomic, so a
	// concurrent signup race must still surface as this error.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user data access.
// Emails are normalized to lower case by implementations, so lookups
// and the uniqueness guarantee are case-insensitive.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
