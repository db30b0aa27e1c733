package auth

import (
	"strings"

	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/validator"
)

func ValidateSignup(req *SignupRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperror.BadRequest("Please tell us your name")
	}
	if !validator.IsValidEmail(req.Email) {
		return apperror.BadRequest("Please provide a valid email")
	}
	return ValidatePasswordPair(req.Password, req.PasswordConfirm)
}

func ValidateLogin(req *LoginRequest) error {
	if req.Email == "" || req.Password == "" {
		return apperror.BadRequest("Please provide email and password")
	}
	return nil
}

// ValidatePasswordPair checks the new password and its confirmation, used by
// signup and both password-change flows.
func ValidatePasswordPair(password, confirm string) error {
	if !validator.IsValidPassword(password) {
		return apperror.BadRequest("Password must be at least 8 characters")
	}
	if password != confirm {
		return apperror.BadRequest("Passwords do not match")
	}
	return nil
}
