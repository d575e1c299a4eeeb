package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/regsvc/user-api/internal/domain"
	"github.com/regsvc/user-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create.
// Profiles reference their owning user with a foreign key and are expected
// to be inserted in the same transaction as the user row.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, bio, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Bio,
		profile.AvatarURL,
		profile.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to insert profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return MapError(err)
	}

	return nil
}

// GetByUserID implements store.ProfileStore.GetByUserID.
func (s *PostgresProfileStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProfile, error) {
	query := `
		SELECT id, user_id, bio, avatar_url, created_at
		FROM user_profiles
		WHERE user_id = $1`

	var profile domain.UserProfile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.AvatarURL,
		&profile.CreatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrProfileNotFound
		}
		return nil, MapError(err)
	}

	return &profile, nil
}

// WithTx implements store.ProfileStore.WithTx.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
