package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/mail"
	"github.com/trekline/gotours/internal/pkg/response"
	"github.com/trekline/gotours/internal/pkg/token"
	"github.com/trekline/gotours/internal/pkg/validator"
)

type Handler struct {
	repo   *Repository
	cfg    *config.Config
	mailer mail.Sender
}

func NewHandler(repo *Repository, cfg *config.Config, mailer mail.Sender) *Handler {
	return &Handler{repo: repo, cfg: cfg, mailer: mailer}
}

// sendToken issues a session token, sets it as an http-only cookie and
// writes the success envelope. The cookie is Secure in production only.
func (h *Handler) sendToken(c *gin.Context, code int, user *User) {
	signed, err := token.Sign(user.ID.Hex(), h.cfg.JWTSecret, h.cfg.JWTExpiresIn)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("jwt", signed, int(h.cfg.JWTCookieExpiry.Seconds()), "/", "", h.cfg.IsProduction(), true)

	response.WithToken(c, code, signed, gin.H{"user": user})
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /users/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	if err := ValidateSignup(&req); err != nil {
		response.Error(c, err)
		return
	}

	user := &User{
		Name:  req.Name,
		Email: validator.NormalizeEmail(req.Email),
		Role:  RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		response.Error(c, err)
		return
	}

	h.sendToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	if err := ValidateLogin(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), validator.NormalizeEmail(req.Email))
	if err != nil {
		response.Error(c, err)
		return
	}
	// same message whether the email or the password is wrong
	if user == nil || !user.CorrectPassword(req.Password) {
		response.Error(c, apperror.Unauthorized("Incorrect email or password"))
		return
	}

	h.sendToken(c, http.StatusOK, user)
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users/logout [get]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("jwt", "", -1, "/", "", h.cfg.IsProduction(), true)
	response.Message(c, "Logged out")
}

// ForgotPassword godoc
// @Summary Email a password reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /users/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), validator.NormalizeEmail(req.Email))
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, apperror.NotFound("There is no user with this email address"))
		return
	}

	plaintext, err := user.CreatePasswordResetToken()
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.repo.SavePasswordReset(c.Request.Context(), user.ID, user.PasswordResetToken, *user.PasswordResetExpires); err != nil {
		response.Error(c, err)
		return
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/users/reset-password/%s", scheme(c), c.Request.Host, plaintext)

	if err := h.mailer.Send(user.Email, "Your password reset token (valid for 10 min)", mail.PasswordResetBody(resetURL)); err != nil {
		// roll the persisted reset fields back so the dead token can't linger
		if clearErr := h.repo.ClearPasswordReset(c.Request.Context(), user.ID); clearErr != nil {
			log.Error().Err(clearErr).Str("user", user.ID.Hex()).Msg("failed to clear reset token after mail error")
		}
		response.Error(c, apperror.Wrap(500, "There was an error sending the email. Try again later", err))
		return
	}

	response.Message(c, "Token sent to email!")
}

// ResetPassword godoc
// @Summary Reset the password with an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /users/reset-password/{token} [patch]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	user, err := h.repo.FindByResetToken(c.Request.Context(), HashResetToken(c.Param("token")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, apperror.BadRequest("Token is invalid or has expired"))
		return
	}

	if err := ValidatePasswordPair(req.Password, req.PasswordConfirm); err != nil {
		response.Error(c, err)
		return
	}

	if err := user.SetPassword(req.Password); err != nil {
		response.Error(c, err)
		return
	}
	// also clears the reset fields, so the token is single use
	if err := h.repo.UpdatePassword(c.Request.Context(), user.ID, user.Password); err != nil {
		response.Error(c, err)
		return
	}

	h.sendToken(c, http.StatusOK, user)
}

// UpdatePassword godoc
// @Summary Change the password while logged in
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /users/update-password [patch]
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	current := CurrentUser(c)
	user, err := h.repo.FindByIDWithPassword(c.Request.Context(), current.ID.Hex())
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil || !user.CorrectPassword(req.PasswordCurrent) {
		response.Error(c, apperror.Unauthorized("Your current password is wrong"))
		return
	}

	if err := ValidatePasswordPair(req.Password, req.PasswordConfirm); err != nil {
		response.Error(c, err)
		return
	}

	if err := user.SetPassword(req.Password); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.repo.UpdatePassword(c.Request.Context(), user.ID, user.Password); err != nil {
		response.Error(c, err)
		return
	}

	h.sendToken(c, http.StatusOK, user)
}

func scheme(c *gin.Context) string {
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}
