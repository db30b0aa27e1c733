package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/trekline/gotours/internal/features/auth"
	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/cloudinary"
	"github.com/trekline/gotours/internal/pkg/pagination"
	"github.com/trekline/gotours/internal/pkg/response"
	"github.com/trekline/gotours/internal/pkg/validator"
)

type Handler struct {
	repo *auth.Repository
	cld  *cloudinary.Service
}

func NewHandler(repo *auth.Repository, cld *cloudinary.Service) *Handler {
	return &Handler{repo: repo, cld: cld}
}

// respondUpdatedUser is the shared tail of every user mutation: a nil user
// means the document vanished between the guard and the write.
func respondUpdatedUser(c *gin.Context, user *auth.User, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, apperror.NotFound("No user found with that ID"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateMeRequest limits profile self-service to name and email. Password
// changes go through /users/update-password.
type UpdateMeRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// GetMe godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"user": auth.CurrentUser(c)})
}

// UpdateMe godoc
// @Summary Update the authenticated user's name or email
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateMeRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /users/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	if req.Password != "" || req.PasswordConfirm != "" {
		response.Error(c, apperror.BadRequest("This route is not for password updates. Please use /update-password"))
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		if !validator.IsValidEmail(req.Email) {
			response.Error(c, apperror.BadRequest("Please provide a valid email"))
			return
		}
		fields["email"] = validator.NormalizeEmail(req.Email)
	}
	if len(fields) == 0 {
		response.Error(c, apperror.BadRequest("Nothing to update"))
		return
	}

	user, err := h.repo.UpdateFields(c.Request.Context(), auth.CurrentUser(c).ID.Hex(), fields)
	respondUpdatedUser(c, user, err)
}

// UpdatePhoto godoc
// @Summary Upload a profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image file"
// @Success 200 {object} response.Envelope
// @Router /users/me/photo [patch]
func (h *Handler) UpdatePhoto(c *gin.Context) {
	if h.cld == nil {
		response.Error(c, apperror.Internal("Image uploads are not configured"))
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error(c, apperror.BadRequest("Photo file is required"))
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.Error(c, apperror.Wrap(400, err.Error(), err))
		return
	}

	result, err := h.cld.UploadImage(c.Request.Context(), file, "users")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.repo.UpdateFields(c.Request.Context(), auth.CurrentUser(c).ID.Hex(), bson.M{"photo": result.URL})
	respondUpdatedUser(c, user, err)
}

// DeleteMe godoc
// @Summary Deactivate the authenticated user's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 204 {object} response.Envelope
// @Router /users/me [delete]
func (h *Handler) DeleteMe(c *gin.Context) {
	if err := h.repo.Deactivate(c.Request.Context(), auth.CurrentUser(c).ID.Hex()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	users, total, err := h.repo.List(c.Request.Context(), pagination.New(page, limit, 0).Offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(users), gin.H{
		"users":      users,
		"pagination": pagination.New(page, limit, total),
	})
}

// Get godoc
// @Summary Get a user by id (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, apperror.NotFound("No user found with that ID"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Update godoc
// @Summary Patch a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		if !validator.IsValidEmail(req.Email) {
			response.Error(c, apperror.BadRequest("Please provide a valid email"))
			return
		}
		fields["email"] = validator.NormalizeEmail(req.Email)
	}
	if req.Role != "" {
		switch req.Role {
		case auth.RoleUser, auth.RoleGuide, auth.RoleLeadGuide, auth.RoleAdmin:
			fields["role"] = req.Role
		default:
			response.Error(c, apperror.BadRequest("Role is either: user, guide, lead-guide or admin"))
			return
		}
	}
	if len(fields) == 0 {
		response.Error(c, apperror.BadRequest("Nothing to update"))
		return
	}

	user, err := h.repo.UpdateFields(c.Request.Context(), c.Param("id"), fields)
	respondUpdatedUser(c, user, err)
}

// Delete godoc
// @Summary Delete a user (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
