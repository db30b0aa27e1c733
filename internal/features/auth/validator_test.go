package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trekline/gotours/internal/pkg/apperror"
)

func TestValidateSignup(t *testing.T) {
	valid := SignupRequest{Name: "A", Email: "a@b.com", Password: "password1", PasswordConfirm: "password1"}
	require.NoError(t, ValidateSignup(&valid))

	cases := []struct {
		name string
		req  SignupRequest
	}{
		{"missing name", SignupRequest{Email: "a@b.com", Password: "password1", PasswordConfirm: "password1"}},
		{"bad email", SignupRequest{Name: "A", Email: "nope", Password: "password1", PasswordConfirm: "password1"}},
		{"short password", SignupRequest{Name: "A", Email: "a@b.com", Password: "short", PasswordConfirm: "short"}},
		{"mismatched confirm", SignupRequest{Name: "A", Email: "a@b.com", Password: "password1", PasswordConfirm: "password2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSignup(&tc.req)
			require.Error(t, err)

			var appErr *apperror.Error
			require.True(t, errors.As(err, &appErr))
			require.Equal(t, 400, appErr.Code)
		})
	}
}

func TestValidateLogin_MissingCredentials(t *testing.T) {
	require.Error(t, ValidateLogin(&LoginRequest{Email: "a@b.com"}))
	require.Error(t, ValidateLogin(&LoginRequest{Password: "password1"}))
	require.NoError(t, ValidateLogin(&LoginRequest{Email: "a@b.com", Password: "x"}))
}
