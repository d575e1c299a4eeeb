package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	verrs := ValidationErrors{}
	assert.True(t, verrs.Empty())
	assert.False(t, verrs.Has(FieldEmail))

	verrs.Add(FieldEmail, MsgEmailExists)
	verrs.Add(FieldPassword, MsgPasswordTooShort)
	verrs.Add(FieldPassword, MsgPasswordMismatch)

	assert.False(t, verrs.Empty())
	assert.True(t, verrs.Has(FieldEmail))
	assert.Equal(t, []string{MsgPasswordTooShort, MsgPasswordMismatch}, verrs[FieldPassword])
}

func TestValidationErrorsErrorRendering(t *testing.T) {
	t.Parallel()

	verrs := ValidationErrors{}
	verrs.Add(FieldUsername, MsgUsernameExists)
	verrs.Add(FieldEmail, MsgEmailExists)

	// Fields render sorted so the message is stable across runs.
	want := "validation failed: email: " + MsgEmailExists +
		", username: " + MsgUsernameExists
	assert.Equal(t, want, verrs.Error())
}

func TestValidationErrorsUnwrapsThroughErrorsAs(t *testing.T) {
	t.Parallel()

	verrs := ValidationErrors{}
	verrs.Add(FieldEmail, MsgInvalidEmail)

	wrapped := fmt.Errorf("register: %w", error(verrs))

	var got ValidationErrors
	require.True(t, errors.As(wrapped, &got))
	assert.Equal(t, []string{MsgInvalidEmail}, got[FieldEmail])
}
