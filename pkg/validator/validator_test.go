package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `validate:"required,min=1,max=255"`
	Email    string `validate:"required,email"`
	State    string `validate:"omitempty,oneof=draft todo doing done trash"`
}

func TestValidate_Valid(t *testing.T) {
	req := sampleRequest{Username: "alice", Email: "alice@example.com", State: "draft"}
	assert.NoError(t, Validate(req))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(sampleRequest{Email: "alice@example.com"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "is required", valErr.Fields()["Username"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	err := Validate(sampleRequest{Username: "alice", Email: "not-an-email"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
	assert.Contains(t, valErr.Error(), "Email")
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(sampleRequest{Username: "alice", Email: "alice@example.com", State: "archived"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields()["State"], "must be one of")
}
