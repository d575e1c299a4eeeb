package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/regsvc/user-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; Create never persists plaintext.
	// Returns ErrEmailExists or ErrUsernameExists if the corresponding
	// unique constraint rejects the row. The constraint is authoritative:
	// callers may pre-check with ExistsByEmail/ExistsByUsername, but a
	// concurrent registration can still surface a duplicate error here.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// UpdateLastLogin records a successful login timestamp for the user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}

// ProfileStore defines the interface for user profile persistence.
// Profiles are created in the same transaction as their owning user.
type ProfileStore interface {
	// Create saves a new profile to the store.
	Create(ctx context.Context, profile *domain.UserProfile) error

	// GetByUserID retrieves the profile owned by the given user.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	// WithTx returns a new ProfileStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
