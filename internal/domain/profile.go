package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the auxiliary record created together with a User at
// registration time. It exists in a strict one-to-one relationship with its
// owning user and shares its lifecycle: either both records exist or neither
// does.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfile creates an empty profile for the given user.
func NewUserProfile(userID uuid.UUID) (*UserProfile, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	return &UserProfile{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}, nil
}
