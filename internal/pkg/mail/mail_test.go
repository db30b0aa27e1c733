package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordResetBody(t *testing.T) {
	url := "https://api.gotours.dev/api/v1/users/reset-password/abc123"
	body := PasswordResetBody(url)

	require.Contains(t, body, url)
	require.Contains(t, body, "passwordConfirm")
	require.Contains(t, body, "ignore this email")
}
