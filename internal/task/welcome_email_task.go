package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/regsvc/user-api/internal/email"
)

// welcomeEmailPayload is the serialized task data: the registered user's
// identity and address.
type welcomeEmailPayload struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}

// WelcomeEmailTask sends the welcome email for a freshly registered user.
type WelcomeEmailTask struct {
	id      uuid.UUID
	payload welcomeEmailPayload
	sender  email.WelcomeSender
	logger  *slog.Logger
}

// NewWelcomeEmailTask creates a welcome email task for the given user.
func NewWelcomeEmailTask(
	userID uuid.UUID,
	emailAddr string,
	sender email.WelcomeSender,
	logger *slog.Logger,
) (*WelcomeEmailTask, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if emailAddr == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WelcomeEmailTask{
		id:      uuid.New(),
		payload: welcomeEmailPayload{UserID: userID, Email: emailAddr},
		sender:  sender,
		logger:  logger,
	}, nil
}

// Ensure WelcomeEmailTask implements Task
var _ Task = (*WelcomeEmailTask)(nil)

// ID implements Task.ID.
func (t *WelcomeEmailTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type.
func (t *WelcomeEmailTask) Type() string {
	return TaskTypeWelcomeEmail
}

// Payload implements Task.Payload.
func (t *WelcomeEmailTask) Payload() []byte {
	data, err := json.Marshal(t.payload)
	if err != nil {
		return nil
	}
	return data
}

// Execute implements Task.Execute by delivering the welcome email.
func (t *WelcomeEmailTask) Execute(ctx context.Context) error {
	t.logger.Info("sending welcome email",
		"user_id", t.payload.UserID,
		"email", t.payload.Email)

	if err := t.sender.SendWelcomeEmail(t.payload.Email); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
