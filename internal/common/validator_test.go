package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	testCases := []struct {
		name      string
		setup     func(v *Validator)
		wantValid bool
		wantErrs  map[string]string
	}{
		{
			name:      "no errors",
			setup:     func(v *Validator) {},
			wantValid: true,
			wantErrs:  map[string]string{},
		},
		{
			name: "failed check",
			setup: func(v *Validator) {
				v.Check(false, "username", "must be provided")
			},
			wantValid: false,
			wantErrs:  map[string]string{"username": "must be provided"},
		},
		{
			name: "first error wins",
			setup: func(v *Validator) {
				v.AddError("email", "must be provided")
				v.AddError("email", "must be a valid email address")
			},
			wantValid: false,
			wantErrs:  map[string]string{"email": "must be provided"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			tc.setup(v)

			assert.Equal(t, tc.wantValid, v.Valid())
			assert.Equal(t, tc.wantErrs, v.Errors)
		})
	}
}

func TestCheckStringLength(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.CheckStringLength("abc", 3, 5))
	assert.True(t, v.CheckStringLength("abcde", 3, 5))
	assert.False(t, v.CheckStringLength("ab", 3, 5))
	assert.False(t, v.CheckStringLength("abcdef", 3, 5))
}

func TestValidationError(t *testing.T) {
	v := NewValidator()
	v.AddError("password", "must be provided")

	err := v.ValidationError()

	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"password": "must be provided"}, validationErr.Errors)
}
