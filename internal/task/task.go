// Package task provides the in-process background job machinery used for
// fire-and-forget work such as welcome emails.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypeWelcomeEmail identifies the post-registration welcome email job.
	TaskTypeWelcomeEmail = "welcome_email"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
