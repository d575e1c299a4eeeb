package service

import (
	"context"

	"github.com/google/uuid"
)

// WelcomeNotification is the payload handed to the notifier after a
// successful registration.
type WelcomeNotification struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}

// Notifier dispatches fire-and-forget notifications. Implementations must
// not block on delivery: NotifyWelcome returns once the notification has
// been handed off, and delivery failures are the implementation's concern
// (logged, never propagated). Registration never fails because of it.
type Notifier interface {
	NotifyWelcome(ctx context.Context, notification WelcomeNotification)
}
