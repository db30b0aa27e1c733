package reviews

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekline/gotours/internal/features/auth"
	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/response"
)

// TourStatsWriter receives the recomputed rating rollup. Satisfied by the
// tours repository.
type TourStatsWriter interface {
	UpdateRatingStats(ctx context.Context, tourID primitive.ObjectID, quantity int, average float64) error
}

type Handler struct {
	repo      *Repository
	tourStats TourStatsWriter
}

func NewHandler(repo *Repository, tourStats TourStatsWriter) *Handler {
	return &Handler{repo: repo, tourStats: tourStats}
}

// recompute runs the rollup for a tour after a successful mutation. An
// explicit post-commit step rather than a hidden hook, so the data flow is
// visible here and testable on its own.
func (h *Handler) recompute(ctx context.Context, tourID primitive.ObjectID) {
	quantity, average, err := h.repo.CalcAverageRatings(ctx, tourID)
	if err != nil {
		log.Error().Err(err).Str("tour", tourID.Hex()).Msg("rating rollup failed")
		return
	}
	if err := h.tourStats.UpdateRatingStats(ctx, tourID, quantity, average); err != nil {
		log.Error().Err(err).Str("tour", tourID.Hex()).Msg("rating rollup write failed")
	}
}

// Create godoc
// @Summary Create a review
// @Description On the nested route the tour id comes from the path; the author is always the authenticated user
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /tours/{id}/reviews [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	// nested route wins over a tour id in the body
	tourHex := c.Param("id")
	if tourHex == "" {
		tourHex = req.Tour
	}
	tourID, err := primitive.ObjectIDFromHex(tourHex)
	if err != nil {
		response.Error(c, apperror.BadRequest("Review must belong to a tour"))
		return
	}

	if err := ValidateCreate(&req); err != nil {
		response.Error(c, err)
		return
	}

	review := &Review{
		Review: req.Review,
		Rating: req.Rating,
		Tour:   tourID,
		User:   auth.CurrentUser(c).ID,
	}

	if err := h.repo.Create(c.Request.Context(), review); err != nil {
		// the (tour,user) unique index surfaces double reviews here
		response.Error(c, err)
		return
	}

	h.recompute(c.Request.Context(), tourID)

	response.Created(c, gin.H{"review": review})
}

// List godoc
// @Summary List reviews
// @Description Scoped to one tour on the nested route
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /reviews [get]
func (h *Handler) List(c *gin.Context) {
	var tourID *primitive.ObjectID
	if hex := c.Param("id"); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			response.Error(c, apperror.NotFound("Invalid ID"))
			return
		}
		tourID = &id
	}

	reviews, err := h.repo.List(c.Request.Context(), tourID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(reviews), gin.H{"reviews": reviews})
}

// Get godoc
// @Summary Get a review by id
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /reviews/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	review, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if review == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": review})
}

// ownershipFilter lets admins touch any review, normal users only their own.
func ownershipFilter(c *gin.Context) bson.M {
	user := auth.CurrentUser(c)
	if user.Role == auth.RoleAdmin {
		return bson.M{}
	}
	return bson.M{"user": user.ID}
}

// Update godoc
// @Summary Patch a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body UpdateReviewRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /reviews/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	if err := ValidateUpdate(&req); err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.repo.Update(c.Request.Context(), c.Param("id"), ownershipFilter(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if review == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	h.recompute(c.Request.Context(), review.Tour)

	response.Success(c, http.StatusOK, gin.H{"review": review})
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /reviews/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	review, err := h.repo.Delete(c.Request.Context(), c.Param("id"), ownershipFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if review == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	h.recompute(c.Request.Context(), review.Tour)

	response.NoContent(c)
}
