package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	DoctorID string `validate:"required,uuid"`
	Status   string `validate:"omitempty,oneof=scheduled completed cancelled no_show"`
}

func TestValidationErrorMap(t *testing.T) {
	err := Validate(sampleRequest{Email: "not-an-email", DoctorID: "", Status: "pending"})
	assert.Error(t, err)

	fields := ValidationErrorMap(err)
	assert.Equal(t, "Must be a valid email address.", fields["email"])
	assert.Equal(t, "This field is required.", fields["doctorID"])
	assert.Contains(t, fields["status"], "Must be one of:")
}

func TestValidationErrorMapNonValidatorError(t *testing.T) {
	fields := ValidationErrorMap(assert.AnError)
	assert.Empty(t, fields)
}
